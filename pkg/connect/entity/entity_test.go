package entity

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	connecterrors "github.com/symfonycorp/connect-go/pkg/connect/errors"
	"github.com/symfonycorp/connect-go/pkg/connect/model"
)

type fakeAPI struct {
	getURL     string
	getResult  Resource
	getErr     error
	submitURL  string
	submitVerb string
	submitSent *model.Fields
	result     Resource
}

func (f *fakeAPI) Get(_ context.Context, url string, _ map[string][]string) (Resource, error) {
	f.getURL = url
	return f.getResult, f.getErr
}

func (f *fakeAPI) Submit(_ context.Context, url, method string, fields *model.Fields, _ map[string][]string) (Resource, error) {
	f.submitURL = url
	f.submitVerb = method
	f.submitSent = fields
	return f.result, nil
}

func TestSchemaRejectsUndeclaredProperties(t *testing.T) {
	is := is.New(t)

	user := NewUser("", "")

	_, err := user.Get("shoeSize")
	is.True(errors.Is(err, connecterrors.ErrSchema))

	err = user.Set("shoeSize", 46)
	is.True(errors.Is(err, connecterrors.ErrSchema))

	is.True(!user.Has("shoeSize"))
	is.True(user.Has("username"))
}

func TestPropertyRoundtrip(t *testing.T) {
	is := is.New(t)

	user := NewUser("", "")
	is.NoErr(user.Set("city", "Austin"))

	value, err := user.Get("city")
	is.NoErr(err)
	is.Equal(value, "Austin")
	is.Equal(user.City(), "Austin")
}

func TestAddAppendsToSequences(t *testing.T) {
	is := is.New(t)

	index := NewIndex("")
	is.NoErr(index.Add("items", NewBadge("", "")))
	is.NoErr(index.Add("items", NewBadge("", "")))
	is.Equal(index.Len(), 2)

	club := NewClub("", "")
	is.NoErr(club.Add("members", NewMember()))
	is.Equal(len(club.Members()), 1)
}

func TestIsResolvesFlagNames(t *testing.T) {
	is := is.New(t)

	member := NewMember()
	is.NoErr(member.Set("isOwner", true))

	// verbatim lookup
	owner, err := member.Is("isOwner")
	is.NoErr(err)
	is.True(owner)

	project := NewProject("", "")
	is.NoErr(project.Set("isPrivate", true))

	// the flag is declared without its prefix on some kinds
	private, err := project.Is("isPrivate")
	is.NoErr(err)
	is.True(private)

	// an unset flag reads as false
	club := NewClub("", "")
	is.NoErr(club.Set("name", "Afsy"))
	_, err = club.Is("isName")
	is.True(err != nil)
}

func TestFormLookup(t *testing.T) {
	is := is.New(t)

	user := NewUser("", "")
	user.AddForm("edit", model.NewForm("/users/x", "PUT"))

	form, err := user.Form("edit")
	is.NoErr(err)
	is.Equal(form.Method(), "PUT")

	_, err = user.Form("delete")
	is.True(errors.Is(err, connecterrors.ErrSchema))
}

func TestSetAPIPropagatesToEmbeddedEntities(t *testing.T) {
	is := is.New(t)

	badges := NewIndex("")
	badge := NewBadge("", "")
	badges.AddItem(badge)

	user := NewUser("", "")
	user.SetBadges(badges)

	api := &fakeAPI{}
	user.SetAPI(api)

	is.Equal(badges.API(), API(api))
	is.Equal(badge.API(), API(api))
}

func TestRefreshOverwritesPropertiesAndForms(t *testing.T) {
	is := is.New(t)

	fresh := NewUser("https://example.com/api/users/x", "")
	fresh.SetName("Carlos Ray Norris")
	fresh.AddForm("edit", model.NewForm("/users/x", "PUT"))

	api := &fakeAPI{getResult: fresh}

	stale := NewUser("https://example.com/api/users/x", "")
	stale.SetName("Chuck Norris")
	stale.SetAPI(api)

	is.NoErr(stale.Refresh(context.Background()))
	is.Equal(api.getURL, "https://example.com/api/users/x")
	is.Equal(stale.Name(), "Carlos Ray Norris")

	_, err := stale.Form("edit")
	is.NoErr(err)
}

func TestRefreshWithoutClientFails(t *testing.T) {
	is := is.New(t)

	user := NewUser("https://example.com/api/users/x", "")
	err := user.Refresh(context.Background())
	is.True(errors.Is(err, connecterrors.ErrSchema))
}

func TestSubmitSendsOnlyFieldsTheEntityDeclares(t *testing.T) {
	is := is.New(t)

	form := model.NewForm("https://example.com/api/users/x", "PUT")
	form.AddField("name", "")
	form.AddField("city", "")
	form.AddField("favoriteColor", "")

	user := NewUser("https://example.com/api/users/x", "")
	user.SetName("Chuck Norris")
	user.SetCity("Austin")
	user.AddForm("edit", form)

	api := &fakeAPI{result: NoContent}
	user.SetAPI(api)

	_, err := user.Submit(context.Background(), "edit", nil)
	is.NoErr(err)

	is.Equal(api.submitURL, "https://example.com/api/users/x")
	is.Equal(api.submitVerb, "PUT")
	is.Equal(api.submitSent.Names(), []string{"name", "city"})

	name, _ := api.submitSent.Get("name")
	is.Equal(name, "Chuck Norris")
}

func TestSubmitExpandsFieldGroupsPerEntity(t *testing.T) {
	is := is.New(t)

	group := model.NewFields()
	group.Set("name", "")
	group.Set("level", "")

	form := model.NewForm("https://example.com/api/users/x", "PUT")
	form.AddField("badges", group)

	badges := NewBadge("", "").SetName("Early adopter").SetLevel(2)

	user := NewUser("https://example.com/api/users/x", "")
	is.NoErr(user.Set("badges", []any{&badges.Entity}))
	user.AddForm("edit", form)

	api := &fakeAPI{result: NoContent}
	user.SetAPI(api)

	_, err := user.Submit(context.Background(), "edit", nil)
	is.NoErr(err)

	sent, ok := api.submitSent.Get("badges")
	is.True(ok)
	groups, ok := sent.([]*model.Fields)
	is.True(ok)
	is.Equal(len(groups), 1)

	name, _ := groups[0].Get("name")
	is.Equal(name, "Early adopter")
	level, _ := groups[0].Get("level")
	is.Equal(level, 2)
}

func TestSubmitFromAnotherSource(t *testing.T) {
	is := is.New(t)

	form := model.NewForm("https://example.com/api/users", "POST")
	form.AddField("q", "")

	root := NewRoot()
	root.AddForm("search", form)

	source := NewUser("", "")
	is.NoErr(source.Set("name", "chuck"))

	api := &fakeAPI{result: NoContent}
	root.SetAPI(api)

	_, err := root.Submit(context.Background(), "search", &source.Entity)
	is.NoErr(err)

	// the root itself has no q property and the user has no q either
	is.Equal(api.submitSent.Len(), 0)
}

func TestIndexPaging(t *testing.T) {
	is := is.New(t)

	next := NewIndex("https://example.com/api/users?index=20")
	api := &fakeAPI{getResult: next}

	index := NewIndex("https://example.com/api/users")
	index.SetNextURL("https://example.com/api/users?index=20")
	index.SetAPI(api)

	page, err := index.Next(context.Background())
	is.NoErr(err)
	is.Equal(page, next)
	is.Equal(api.getURL, "https://example.com/api/users?index=20")

	_, err = index.Prev(context.Background())
	is.True(err != nil)
}

func TestRootHelpers(t *testing.T) {
	is := is.New(t)

	badge := NewBadge("https://example.com/api/badges/7", "")
	api := &fakeAPI{getResult: badge}

	root := NewRoot()
	root.SetBadgesURL("https://example.com/api/badges")
	root.SetAPI(api)

	fetched, err := root.Badge(context.Background(), "7")
	is.NoErr(err)
	is.Equal(fetched, badge)
	is.Equal(api.getURL, "https://example.com/api/badges/7")
}

func TestRootSearchUsers(t *testing.T) {
	is := is.New(t)

	form := model.NewForm("https://example.com/api/users", "GET")
	form.AddField("q", "")

	results := NewIndex("https://example.com/api/users?q=chuck")
	api := &fakeAPI{result: results}

	root := NewRoot()
	root.AddForm("search_users", form)
	root.SetAPI(api)

	index, err := root.SearchUsers(context.Background(), "chuck")
	is.NoErr(err)
	is.Equal(index, results)

	is.Equal(api.submitURL, "https://example.com/api/users")
	is.Equal(api.submitVerb, "GET")
	query, _ := api.submitSent.Get("q")
	is.Equal(query, "chuck")
}

func TestClubAndProjectTypeLabels(t *testing.T) {
	is := is.New(t)

	club := NewClub("", "")
	club.SetType(ClubTypeTeam)
	is.Equal(club.TextualType(), "Team of developers")

	project := NewProject("", "")
	project.SetType(ProjectTypeWebsite)
	is.Equal(project.TextualType(), "Website")

	_, known := ProjectTypeFromLabel("Operating system")
	is.True(!known)
}
