// Package routes is the static table mapping logical operations to URL
// templates. Facades and the CLI resolve paths here; the client itself never
// consults the table.
package routes

import (
	"fmt"
	"strings"
)

// Account endpoints (never enveloped; "accounts" is not an entity path).
const (
	Login   = "accounts/Login"
	Refresh = "accounts/Refresh"
	Logout  = "accounts/Logout"
	Me      = "accounts/me"
	Enums   = "enums"
)

// table maps operation names to URL templates. Placeholders are expanded by
// URL in declaration order of the args.
var table = map[string]string{
	"companies.list":   "companies",
	"companies.create": "companies",
	"companies.update": "companies/{id}",
	"companies.delete": "companies/{id}",

	"plans.list":   "plans",
	"plans.create": "plans",
	"plans.update": "plans/{id}",
	"plans.delete": "plans/{id}",

	"states.list":   "states",
	"states.create": "states",
	"states.update": "states/{id}",
	"states.delete": "states/{id}",

	"details.list":   "details",
	"details.create": "details",
	"details.update": "details/{id}",
	"details.delete": "details/{id}",

	"functionalfields.list":   "functionalfields",
	"functionalfields.create": "functionalfields",
	"functionalfields.update": "functionalfields/{id}",
	"functionalfields.delete": "functionalfields/{id}",

	"projects.summaries": "projects/summaries",
	"projects.filter":    "projects/summaries/filter",
	"projects.get":       "projects/{id}",
	"projects.create":    "projects",
	"projects.update":    "projects/{id}",
	"projects.delete":    "projects/{id}",

	"projectcompanies.byProject": "projectcompanies/project/{projectId}",
	"projectcompanies.create":    "projectcompanies",
	"projectcompanies.update":    "projectcompanies/{id}",
	"projectcompanies.delete":    "projectcompanies/{id}",

	"projectdetails.byProject": "projectdetails/project/{projectId}",
	"projectdetails.create":    "projectdetails",
	"projectdetails.update":    "projectdetails/{id}",
	"projectdetails.delete":    "projectdetails/{id}",

	"projectfiles.byProject": "projectfiles/project/{projectId}",
	"projectfiles.upload":    "projectfiles",
	"projectfiles.delete":    "projectfiles/{id}",
	"projectfiles.download":  "projectfiles/download/{id}",

	"projectstates.byProject": "projectstates/project/{projectId}",
	"projectstates.create":    "projectstates",
	"projectstates.degrade":   "projectstates/degrade",

	"pdc.byProjectDetail": "projectdetailcompanies/project-Detail/{projectDetailId}",
	"pdc.create":          "projectdetailcompanies",
	"pdc.update":          "projectdetailcompanies/{id}",
	"pdc.delete":          "projectdetailcompanies/{id}",

	"pdcstates.byPdc":  "projectdetailcompanystates/project-Detail-Company/{pdcId}",
	"pdcstates.create": "projectdetailcompanystates",
	"pdcstates.delete": "projectdetailcompanystates/{id}",

	"pdcyears.byProjectDetail": "projectdetailcompanyyears/project-detail/{projectDetailId}",
	"pdcyears.byPdc":           "projectdetailcompanyyears/project-Detail-Company/{pdcId}",
	"pdcyears.create":          "projectdetailcompanyyears",
	"pdcyears.update":          "projectdetailcompanyyears/{id}",
	"pdcyears.delete":          "projectdetailcompanyyears/{id}",

	"users.list":           "users",
	"users.get":            "users/{id}",
	"users.create":         "users",
	"users.update":         "users/{id}",
	"users.toggleActive":   "users/{id}/active",
	"users.changePassword": "users/{id}/password",
	"users.roles":          "users/roles",
}

// URL resolves an operation to a concrete path, expanding template
// placeholders left to right with args.
func URL(op string, args ...any) (string, error) {
	tmpl, ok := table[op]
	if !ok {
		return "", fmt.Errorf("routes: unknown operation %q", op)
	}
	path := tmpl
	for _, a := range args {
		open := strings.Index(path, "{")
		if open < 0 {
			return "", fmt.Errorf("routes: too many args for %q", op)
		}
		end := strings.Index(path, "}")
		path = path[:open] + fmt.Sprint(a) + path[end+1:]
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("routes: missing args for %q", op)
	}
	return path, nil
}

// MustURL is URL for statically known operations; it panics on a table miss,
// which is a programming error.
func MustURL(op string, args ...any) string {
	path, err := URL(op, args...)
	if err != nil {
		panic(err)
	}
	return path
}
