// Package envelope normalizes wire shapes against an inconsistent backend
// contract: create/update bodies are wrapped in entity-named DTO envelopes
// before transmission, and list/single responses are unwrapped on receipt.
//
// The backend answers some endpoints bare and others enveloped; Unwrap
// accepts either shape so callers only ever see the bare form. That asymmetry
// is a permanent property of the API, not something to fix here.
package envelope

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Envelope field names used by the backend for collection and single-item
// responses.
const (
	listKey = "getDTOs"
	itemKey = "getDTO"
)

// entities maps the first path segment (lowercased) to the canonical entity
// name used in envelope keys. Never mutated at runtime.
var entities = map[string]string{
	"companies":                  "Company",
	"plans":                      "Plan",
	"states":                     "State",
	"details":                    "Detail",
	"functionalfields":           "FunctionalField",
	"projects":                   "Project",
	"projectcompanies":           "ProjectCompany",
	"projectdetails":             "ProjectDetail",
	"projectfiles":               "ProjectFile",
	"projectstates":              "ProjectState",
	"projectdetailcompanies":     "ProjectDetailCompany",
	"projectdetailcompanystates": "ProjectDetailCompanyState",
	"projectdetailcompanyyears":  "ProjectDetailCompanyYear",
	"users":                      "User",
}

// exemptPrefixes lists paths whose bodies are bespoke and must never be
// wrapped: the bulk filter and the project state transitions.
var exemptPrefixes = []string{
	"projects/summaries/filter",
	"projectstates",
}

// exemptSuffixes covers user state-transition actions, where the id sits in
// the middle of the path and a prefix cannot match.
var exemptSuffixes = []string{
	"/active",
	"/password",
}

// ResolveEntity returns the canonical entity name for a request path, or ""
// when the path is exempt or its first segment is unmapped.
func ResolveEntity(path string) string {
	p := strings.ToLower(strings.TrimPrefix(path, "/"))
	for _, pre := range exemptPrefixes {
		if strings.HasPrefix(p, pre) {
			return ""
		}
	}
	for _, suf := range exemptSuffixes {
		if strings.HasSuffix(p, suf) {
			return ""
		}
	}
	seg, _, _ := strings.Cut(p, "/")
	return entities[seg]
}

// ShouldWrap reports whether a body must be enveloped before transmission:
// the method is a create or update, the path resolves to an entity, the body
// is a JSON object, and the expected envelope key is not already present.
// Multipart and non-object bodies never wrap.
func ShouldWrap(method, path string, body map[string]any) bool {
	if body == nil {
		return false
	}
	var key string
	switch method {
	case "POST":
		key = "PostDTO"
	case "PUT":
		key = "PutDTO"
	default:
		return false
	}
	entity := ResolveEntity(path)
	if entity == "" {
		return false
	}
	_, present := body[entity+key]
	return !present
}

// WrapCreate envelopes a create body as {"<Entity>PostDTO": body}.
func WrapCreate(entity string, body map[string]any) map[string]any {
	return map[string]any{entity + "PostDTO": body}
}

// WrapUpdate envelopes an update body as
// {"id": id, "<Entity>PutDTO": {"id": id, ...body}}. The identifier comes
// from the body's id field when present, else from the final path segment.
func WrapUpdate(entity, path string, body map[string]any) map[string]any {
	id, ok := bodyID(body)
	if !ok {
		id = pathID(path)
	}
	inner := make(map[string]any, len(body)+1)
	for k, v := range body {
		inner[k] = v
	}
	inner["id"] = id
	return map[string]any{"id": id, entity + "PutDTO": inner}
}

func bodyID(body map[string]any) (int64, bool) {
	v, ok := body["id"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		id, err := n.Int64()
		return id, err == nil
	}
	return 0, false
}

func pathID(path string) int64 {
	p := strings.TrimSuffix(path, "/")
	seg := p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		seg = p[i+1:]
	}
	id, _ := strconv.ParseInt(seg, 10, 64)
	return id
}

// ToObject converts any JSON-serializable value into the map form the wrap
// helpers operate on. ok is false for values that are not JSON objects
// (arrays, scalars, raw readers).
func ToObject(body any) (map[string]any, bool) {
	if body == nil {
		return nil, false
	}
	if m, ok := body.(map[string]any); ok {
		return m, true
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}

// Unwrap strips a response envelope: an object whose only field is the list
// or single-item envelope key yields that field's value; anything else is
// returned unchanged. Idempotent and infallible; bare payloads are the
// common case.
func Unwrap(raw json.RawMessage) json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw
	}
	if len(obj) != 1 {
		return raw
	}
	if v, ok := obj[listKey]; ok {
		return v
	}
	if v, ok := obj[itemKey]; ok {
		return v
	}
	return raw
}
