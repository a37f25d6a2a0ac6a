package api

import (
	"context"
	"net/http"

	"github.com/liomshq/lioms-client/internal/client"
	"github.com/liomshq/lioms-client/internal/model"
	"github.com/liomshq/lioms-client/internal/routes"
)

// Projects is the facade over the project endpoints.
type Projects struct {
	c *client.Client
}

// Summaries lists all projects with aggregate counts.
func (p Projects) Summaries(ctx context.Context) ([]model.ProjectSummary, error) {
	var out []model.ProjectSummary
	err := p.c.Get(ctx, routes.MustURL("projects.summaries"), &out)
	return out, err
}

// Filter runs the bulk filter; its body is bespoke and travels unwrapped.
func (p Projects) Filter(ctx context.Context, f model.ProjectFilter) ([]model.ProjectSummary, error) {
	var out []model.ProjectSummary
	err := p.c.DoJSON(ctx, http.MethodPost, routes.MustURL("projects.filter"), f, &out)
	return out, err
}

// Get fetches one project by id.
func (p Projects) Get(ctx context.Context, id int64) (model.Project, error) {
	var out model.Project
	err := p.c.Get(ctx, routes.MustURL("projects.get", id), &out)
	return out, err
}

// Create posts a new project.
func (p Projects) Create(ctx context.Context, dto model.ProjectPost) error {
	return p.c.DoJSON(ctx, http.MethodPost, routes.MustURL("projects.create"), dto, nil)
}

// Update puts dto under id.
func (p Projects) Update(ctx context.Context, id int64, dto model.ProjectPut) error {
	return p.c.DoJSON(ctx, http.MethodPut, routes.MustURL("projects.update", id), dto, nil)
}

// Delete removes the project with id.
func (p Projects) Delete(ctx context.Context, id int64) error {
	return p.c.Delete(ctx, routes.MustURL("projects.delete", id))
}
