// Package api exposes typed facades over the resilient client, one per
// entity family of the remote API.
package api

import (
	"context"

	"github.com/liomshq/lioms-client/internal/client"
	"github.com/liomshq/lioms-client/internal/model"
	"github.com/liomshq/lioms-client/internal/routes"
)

// API bundles every facade around one client.
type API struct {
	Companies        CRUD[model.Company, model.CompanyPost, model.CompanyPut]
	Plans            CRUD[model.Plan, model.PlanPost, model.PlanPut]
	States           CRUD[model.State, model.StatePost, model.StatePut]
	Details          CRUD[model.Detail, model.DetailPost, model.DetailPut]
	FunctionalFields CRUD[model.FunctionalField, model.FunctionalFieldPost, model.FunctionalFieldPut]

	Projects         Projects
	ProjectCompanies ProjectCompanies
	ProjectDetails   ProjectDetails
	ProjectFiles     ProjectFiles
	ProjectStates    ProjectStates
	PDC              ProjectDetailCompanies
	PDCStates        ProjectDetailCompanyStates
	PDCYears         ProjectDetailCompanyYears
	Users            Users

	c *client.Client
}

// New wires every facade to c.
func New(c *client.Client) *API {
	return &API{
		Companies:        newCRUD[model.Company, model.CompanyPost, model.CompanyPut](c, "companies"),
		Plans:            newCRUD[model.Plan, model.PlanPost, model.PlanPut](c, "plans"),
		States:           newCRUD[model.State, model.StatePost, model.StatePut](c, "states"),
		Details:          newCRUD[model.Detail, model.DetailPost, model.DetailPut](c, "details"),
		FunctionalFields: newCRUD[model.FunctionalField, model.FunctionalFieldPost, model.FunctionalFieldPut](c, "functionalfields"),
		Projects:         Projects{c: c},
		ProjectCompanies: ProjectCompanies{c: c},
		ProjectDetails:   ProjectDetails{c: c},
		ProjectFiles:     ProjectFiles{c: c},
		ProjectStates:    ProjectStates{c: c},
		PDC:              ProjectDetailCompanies{c: c},
		PDCStates:        ProjectDetailCompanyStates{c: c},
		PDCYears:         ProjectDetailCompanyYears{c: c},
		Users:            Users{c: c},
		c:                c,
	}
}

// Enums fetches the enum catalog.
func (a *API) Enums(ctx context.Context) (model.Enums, error) {
	var out model.Enums
	err := a.c.Get(ctx, routes.Enums, &out)
	return out, err
}

// CRUD is the generic list/create/update/delete facade shared by the lookup
// entities until one of them grows a bespoke endpoint.
type CRUD[TGet, TPost, TPut any] struct {
	c    *client.Client
	list string
	item string
}

func newCRUD[TGet, TPost, TPut any](c *client.Client, base string) CRUD[TGet, TPost, TPut] {
	return CRUD[TGet, TPost, TPut]{
		c:    c,
		list: routes.MustURL(base + ".list"),
		item: base + ".update",
	}
}

// List fetches every row.
func (r CRUD[TGet, TPost, TPut]) List(ctx context.Context) ([]TGet, error) {
	var out []TGet
	err := r.c.Get(ctx, r.list, &out)
	return out, err
}

// Create posts dto; the created row is decoded when the server returns one.
func (r CRUD[TGet, TPost, TPut]) Create(ctx context.Context, dto TPost) (TGet, error) {
	var out TGet
	err := r.c.DoJSON(ctx, "POST", r.list, dto, &out)
	return out, err
}

// Update puts dto under id.
func (r CRUD[TGet, TPost, TPut]) Update(ctx context.Context, id int64, dto TPut) (TGet, error) {
	var out TGet
	err := r.c.DoJSON(ctx, "PUT", routes.MustURL(r.item, id), dto, &out)
	return out, err
}

// Delete removes the row with id.
func (r CRUD[TGet, TPost, TPut]) Delete(ctx context.Context, id int64) error {
	return r.c.Delete(ctx, routes.MustURL(r.item, id))
}
