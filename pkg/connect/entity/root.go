package entity

import (
	"context"
	"fmt"

	connecterrors "github.com/symfonycorp/connect-go/pkg/connect/errors"
	"github.com/symfonycorp/connect-go/pkg/connect/model"
)

// Root is the API entry point: collection links, the authenticated user when
// a token was presented, and the top-level forms.
type Root struct {
	Entity
}

func NewRoot() *Root {
	r := &Root{Entity: newEntity("root", "", "")}
	r.declare("badgesUrl", "usersUrl", "clubsUrl", "projectsUrl", "currentUser")

	return r
}

func (r *Root) BadgesURL() string {
	value, _ := r.Get("badgesUrl")
	return asString(value)
}

func (r *Root) SetBadgesURL(url string) *Root {
	r.Set("badgesUrl", url)
	return r
}

func (r *Root) UsersURL() string {
	value, _ := r.Get("usersUrl")
	return asString(value)
}

func (r *Root) SetUsersURL(url string) *Root {
	r.Set("usersUrl", url)
	return r
}

func (r *Root) ClubsURL() string {
	value, _ := r.Get("clubsUrl")
	return asString(value)
}

func (r *Root) SetClubsURL(url string) *Root {
	r.Set("clubsUrl", url)
	return r
}

func (r *Root) ProjectsURL() string {
	value, _ := r.Get("projectsUrl")
	return asString(value)
}

func (r *Root) SetProjectsURL(url string) *Root {
	r.Set("projectsUrl", url)
	return r
}

// CurrentUser returns nil for anonymous roots.
func (r *Root) CurrentUser() *User {
	value, _ := r.Get("currentUser")
	user, _ := value.(*User)
	return user
}

func (r *Root) SetCurrentUser(user *User) *Root {
	r.Set("currentUser", user)
	return r
}

func (r *Root) Badges(ctx context.Context) (*Index, error) {
	return r.fetchIndex(ctx, r.BadgesURL())
}

func (r *Root) Badge(ctx context.Context, uuid string) (*Badge, error) {
	resource, err := r.fetch(ctx, r.BadgesURL()+"/"+uuid)
	if err != nil {
		return nil, err
	}

	badge, ok := resource.(*Badge)
	if !ok {
		return nil, connecterrors.NewBadResponseError(fmt.Sprintf("expected a badge, got %s", resource.Kind()))
	}

	return badge, nil
}

func (r *Root) LastUsers(ctx context.Context) (*Index, error) {
	return r.fetchIndex(ctx, r.UsersURL())
}

func (r *Root) User(ctx context.Context, uuid string) (*User, error) {
	resource, err := r.fetch(ctx, r.UsersURL()+"/"+uuid)
	if err != nil {
		return nil, err
	}

	user, ok := resource.(*User)
	if !ok {
		return nil, connecterrors.NewBadResponseError(fmt.Sprintf("expected a user, got %s", resource.Kind()))
	}

	return user, nil
}

// SearchUsers submits the search_users form with the given query.
func (r *Root) SearchUsers(ctx context.Context, query string) (*Index, error) {
	form, err := r.Form("search_users")
	if err != nil {
		return nil, err
	}

	if r.api == nil {
		return nil, connecterrors.NewSchemaError("root is not attached to an api client")
	}

	fields := model.NewFields()
	fields.Set("q", query)

	resource, err := r.api.Submit(ctx, form.Action(), form.Method(), fields, nil)
	if err != nil {
		return nil, err
	}

	index, ok := resource.(*Index)
	if !ok {
		return nil, connecterrors.NewBadResponseError(fmt.Sprintf("expected an index, got %s", resource.Kind()))
	}

	return index, nil
}

func (r *Root) fetch(ctx context.Context, url string) (Resource, error) {
	if r.api == nil {
		return nil, connecterrors.NewSchemaError("root is not attached to an api client")
	}

	return r.api.Get(ctx, url, nil)
}

func (r *Root) fetchIndex(ctx context.Context, url string) (*Index, error) {
	resource, err := r.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	index, ok := resource.(*Index)
	if !ok {
		return nil, connecterrors.NewBadResponseError(fmt.Sprintf("expected an index, got %s", resource.Kind()))
	}

	return index, nil
}
