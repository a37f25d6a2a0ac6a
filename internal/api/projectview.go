package api

import (
	"context"
	"io"
	"net/http"

	"github.com/liomshq/lioms-client/internal/client"
	"github.com/liomshq/lioms-client/internal/model"
	"github.com/liomshq/lioms-client/internal/routes"
)

// ProjectCompanies manages company assignments on a project.
type ProjectCompanies struct {
	c *client.Client
}

func (p ProjectCompanies) ByProject(ctx context.Context, projectID int64) ([]model.ProjectCompany, error) {
	var out []model.ProjectCompany
	err := p.c.Get(ctx, routes.MustURL("projectcompanies.byProject", projectID), &out)
	return out, err
}

func (p ProjectCompanies) Create(ctx context.Context, dto model.ProjectCompanyPost) error {
	return p.c.DoJSON(ctx, http.MethodPost, routes.MustURL("projectcompanies.create"), dto, nil)
}

func (p ProjectCompanies) Update(ctx context.Context, id int64, dto model.ProjectCompanyPut) error {
	return p.c.DoJSON(ctx, http.MethodPut, routes.MustURL("projectcompanies.update", id), dto, nil)
}

func (p ProjectCompanies) Delete(ctx context.Context, id int64) error {
	return p.c.Delete(ctx, routes.MustURL("projectcompanies.delete", id))
}

// ProjectDetails manages the itemized detail lines on a project.
type ProjectDetails struct {
	c *client.Client
}

func (p ProjectDetails) ByProject(ctx context.Context, projectID int64) ([]model.ProjectDetail, error) {
	var out []model.ProjectDetail
	err := p.c.Get(ctx, routes.MustURL("projectdetails.byProject", projectID), &out)
	return out, err
}

func (p ProjectDetails) Create(ctx context.Context, dto model.ProjectDetailPost) error {
	return p.c.DoJSON(ctx, http.MethodPost, routes.MustURL("projectdetails.create"), dto, nil)
}

func (p ProjectDetails) Update(ctx context.Context, id int64, dto model.ProjectDetailPut) error {
	return p.c.DoJSON(ctx, http.MethodPut, routes.MustURL("projectdetails.update", id), dto, nil)
}

func (p ProjectDetails) Delete(ctx context.Context, id int64) error {
	return p.c.Delete(ctx, routes.MustURL("projectdetails.delete", id))
}

// ProjectFiles manages attachments. Uploads are multipart and therefore
// never enveloped.
type ProjectFiles struct {
	c *client.Client
}

func (p ProjectFiles) ByProject(ctx context.Context, projectID int64) ([]model.ProjectFile, error) {
	var out []model.ProjectFile
	err := p.c.Get(ctx, routes.MustURL("projectfiles.byProject", projectID), &out)
	return out, err
}

// Upload sends one file with its project id and privacy level.
func (p ProjectFiles) Upload(ctx context.Context, projectID int64, fileName string, content io.Reader, privacyLevel int) error {
	fields := map[string]string{
		"projectId":    itoa(projectID),
		"privacyLevel": itoa(int64(privacyLevel)),
	}
	_, err := p.c.Upload(ctx, routes.MustURL("projectfiles.upload"), fields, "file", fileName, content)
	return err
}

func (p ProjectFiles) Delete(ctx context.Context, id int64) error {
	return p.c.Delete(ctx, routes.MustURL("projectfiles.delete", id))
}

// DownloadPath returns the server path for a file's content; the caller
// fetches it with whatever streaming it needs.
func (p ProjectFiles) DownloadPath(id int64) string {
	return routes.MustURL("projectfiles.download", id)
}

// ProjectStates manages project workflow transitions. Both endpoints carry
// bespoke bodies and are exempt from enveloping.
type ProjectStates struct {
	c *client.Client
}

func (p ProjectStates) ByProject(ctx context.Context, projectID int64) ([]model.ProjectState, error) {
	var out []model.ProjectState
	err := p.c.Get(ctx, routes.MustURL("projectstates.byProject", projectID), &out)
	return out, err
}

// Advance moves a project to a new state.
func (p ProjectStates) Advance(ctx context.Context, dto model.ProjectStatePost) error {
	return p.c.DoJSON(ctx, http.MethodPost, routes.MustURL("projectstates.create"), dto, nil)
}

// Degrade moves a project back to an earlier state with a rejection note.
func (p ProjectStates) Degrade(ctx context.Context, dto model.ProjectStateDegrade) error {
	return p.c.DoJSON(ctx, http.MethodPost, routes.MustURL("projectstates.degrade"), dto, nil)
}

// ProjectDetailCompanies assigns companies to project details.
type ProjectDetailCompanies struct {
	c *client.Client
}

func (p ProjectDetailCompanies) ByProjectDetail(ctx context.Context, projectDetailID int64) ([]model.ProjectDetailCompany, error) {
	var out []model.ProjectDetailCompany
	err := p.c.Get(ctx, routes.MustURL("pdc.byProjectDetail", projectDetailID), &out)
	return out, err
}

func (p ProjectDetailCompanies) Create(ctx context.Context, dto model.ProjectDetailCompanyPost) error {
	return p.c.DoJSON(ctx, http.MethodPost, routes.MustURL("pdc.create"), dto, nil)
}

func (p ProjectDetailCompanies) Update(ctx context.Context, id int64, dto model.ProjectDetailCompanyPut) error {
	return p.c.DoJSON(ctx, http.MethodPut, routes.MustURL("pdc.update", id), dto, nil)
}

func (p ProjectDetailCompanies) Delete(ctx context.Context, id int64) error {
	return p.c.Delete(ctx, routes.MustURL("pdc.delete", id))
}

// ProjectDetailCompanyStates tracks workflow states per assignment.
type ProjectDetailCompanyStates struct {
	c *client.Client
}

func (p ProjectDetailCompanyStates) ByAssignment(ctx context.Context, pdcID int64) ([]model.ProjectDetailCompanyState, error) {
	var out []model.ProjectDetailCompanyState
	err := p.c.Get(ctx, routes.MustURL("pdcstates.byPdc", pdcID), &out)
	return out, err
}

func (p ProjectDetailCompanyStates) Create(ctx context.Context, dto model.ProjectDetailCompanyStatePost) error {
	return p.c.DoJSON(ctx, http.MethodPost, routes.MustURL("pdcstates.create"), dto, nil)
}

func (p ProjectDetailCompanyStates) Delete(ctx context.Context, id int64) error {
	return p.c.Delete(ctx, routes.MustURL("pdcstates.delete", id))
}

// ProjectDetailCompanyYears tracks per-year counts per assignment.
type ProjectDetailCompanyYears struct {
	c *client.Client
}

func (p ProjectDetailCompanyYears) ByProjectDetail(ctx context.Context, projectDetailID int64) ([]model.ProjectDetailCompanyYear, error) {
	var out []model.ProjectDetailCompanyYear
	err := p.c.Get(ctx, routes.MustURL("pdcyears.byProjectDetail", projectDetailID), &out)
	return out, err
}

func (p ProjectDetailCompanyYears) ByAssignment(ctx context.Context, pdcID int64) ([]model.ProjectDetailCompanyYear, error) {
	var out []model.ProjectDetailCompanyYear
	err := p.c.Get(ctx, routes.MustURL("pdcyears.byPdc", pdcID), &out)
	return out, err
}

func (p ProjectDetailCompanyYears) Create(ctx context.Context, dto model.ProjectDetailCompanyYearPost) error {
	return p.c.DoJSON(ctx, http.MethodPost, routes.MustURL("pdcyears.create"), dto, nil)
}

func (p ProjectDetailCompanyYears) Update(ctx context.Context, id int64, dto model.ProjectDetailCompanyYearPut) error {
	return p.c.DoJSON(ctx, http.MethodPut, routes.MustURL("pdcyears.update", id), dto, nil)
}

func (p ProjectDetailCompanyYears) Delete(ctx context.Context, id int64) error {
	return p.c.Delete(ctx, routes.MustURL("pdcyears.delete", id))
}
