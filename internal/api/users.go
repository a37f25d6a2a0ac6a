package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/liomshq/lioms-client/internal/client"
	"github.com/liomshq/lioms-client/internal/model"
	"github.com/liomshq/lioms-client/internal/routes"
)

// Users is the account administration facade.
type Users struct {
	c *client.Client
}

func (u Users) List(ctx context.Context) ([]model.UserProfile, error) {
	var out []model.UserProfile
	err := u.c.Get(ctx, routes.MustURL("users.list"), &out)
	return out, err
}

func (u Users) Get(ctx context.Context, id int64) (model.UserProfile, error) {
	var out model.UserProfile
	err := u.c.Get(ctx, routes.MustURL("users.get", id), &out)
	return out, err
}

func (u Users) Create(ctx context.Context, dto model.UserPost) (model.UserProfile, error) {
	var out model.UserProfile
	err := u.c.DoJSON(ctx, http.MethodPost, routes.MustURL("users.create"), dto, &out)
	return out, err
}

func (u Users) Update(ctx context.Context, id int64, dto model.UserPut) (model.UserProfile, error) {
	var out model.UserProfile
	err := u.c.DoJSON(ctx, http.MethodPut, routes.MustURL("users.update", id), dto, &out)
	return out, err
}

// ToggleActive flips an account's active flag. A state transition with a
// bespoke body, never enveloped.
func (u Users) ToggleActive(ctx context.Context, id int64, isActive bool) (model.UserProfile, error) {
	var out model.UserProfile
	body := map[string]any{"isActive": isActive}
	err := u.c.DoJSON(ctx, http.MethodPut, routes.MustURL("users.toggleActive", id), body, &out)
	return out, err
}

// ChangePassword replaces an account's password. Bespoke body, never
// enveloped.
func (u Users) ChangePassword(ctx context.Context, id int64, password string) error {
	body := map[string]any{"password": password}
	return u.c.DoJSON(ctx, http.MethodPut, routes.MustURL("users.changePassword", id), body, nil)
}

func (u Users) Roles(ctx context.Context) ([]model.Role, error) {
	var out []model.Role
	err := u.c.Get(ctx, routes.MustURL("users.roles"), &out)
	return out, err
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
