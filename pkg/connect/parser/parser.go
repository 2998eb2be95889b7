// Package parser turns the Connect hypermedia XML dialect into the runtime
// entity model. The wire format wraps everything in an api element and mixes
// vocabularies: Atom links, XHTML forms, FOAF persons and groups, DOAP
// projects, vCard addresses, plus a handful of custom elements.
package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/symfonycorp/connect-go/pkg/connect/entity"
	connecterrors "github.com/symfonycorp/connect-go/pkg/connect/errors"
	"github.com/symfonycorp/connect-go/pkg/connect/model"
)

// ContentType identifies the hypermedia dialect this parser understands.
const ContentType = "application/vnd.com.symfony.connect+xml"

const collectionRelPrefix = "https://rels.connect.symfony.com/"

var bracketedName = regexp.MustCompile(`(.+)\[(.+)\]\[(.+)\]`)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) ContentType() string {
	return ContentType
}

// Parse consumes one XML document and produces exactly one resource. Partial
// results are never returned: any missing required node or attribute fails
// the whole parse.
func (p *Parser) Parse(body []byte) (entity.Resource, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, connecterrors.NewParseError("the body is empty.", body)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, connecterrors.NewParseError(fmt.Sprintf("could not parse the document: %s.", err.Error()), body)
	}

	root := doc.Root()
	if root == nil || root.Space != "" || root.Tag != "api" {
		return nil, connecterrors.NewParseError("the document has no api wrapper element. Is this the right content type?", body)
	}

	w := &walker{body: body}

	return w.dispatch(root)
}

// walker carries the raw body so every failure can include a snippet of the
// offending document.
type walker struct {
	body []byte
}

func (w *walker) fail(format string, args ...any) error {
	return connecterrors.NewParseError(fmt.Sprintf(format, args...), w.body)
}

func (w *walker) dispatch(api *etree.Element) (entity.Resource, error) {
	if el := singleChild(api, "", "root"); el != nil {
		return w.parseRoot(el)
	}

	for _, container := range []string{"index", "users", "clubs", "projects", "badges"} {
		if el := singleChild(api, "", container); el != nil {
			return w.parseIndex(el)
		}
	}

	if el := singleChild(api, "foaf", "Person"); el != nil {
		return w.parseUser(el)
	}

	if el := singleChild(api, "doap", "Project"); el != nil {
		return w.parseProject(el)
	}

	if el := singleChild(api, "foaf", "Group"); el != nil {
		return w.parseClub(el)
	}

	if el := singleChild(api, "", "badge"); el != nil {
		return w.parseBadge(el)
	}

	if el := singleChild(api, "", "error"); el != nil {
		return w.parseError(el)
	}

	return nil, w.fail("the document does not contain a recognizable entity.")
}

func (w *walker) parseRoot(el *etree.Element) (*entity.Root, error) {
	root := entity.NewRoot()

	for _, link := range el.FindElements("atom:link") {
		rel := link.SelectAttrValue("rel", "")
		if !strings.HasPrefix(rel, collectionRelPrefix) {
			continue
		}

		href := link.SelectAttrValue("href", "")
		switch strings.TrimPrefix(rel, collectionRelPrefix) {
		case "badges":
			root.SetBadgesURL(href)
		case "users":
			root.SetUsersURL(href)
		case "clubs":
			root.SetClubsURL(href)
		case "projects":
			root.SetProjectsURL(href)
		}
	}

	if person := singleChild(el, "foaf", "Person"); person != nil {
		user, err := w.parseUser(person)
		if err != nil {
			return nil, err
		}
		root.SetCurrentUser(user)
	}

	for _, form := range el.FindElements("xhtml:form") {
		if err := w.parseForm(&root.Entity, form); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func (w *walker) parseIndex(el *etree.Element) (*entity.Index, error) {
	index := entity.NewIndex(w.linkToSelf(el))

	for _, attr := range []struct {
		name string
		set  func(int) *entity.Index
	}{
		{"total", index.SetTotal},
		{"count", index.SetCount},
		{"index", index.SetOffset},
		{"limit", index.SetLimit},
	} {
		value, err := w.requiredAttrInt(el, attr.name)
		if err != nil {
			return nil, err
		}
		attr.set(value)
	}

	index.SetNextURL(w.linkHref(el, "atom:link[@rel='next']", 0))
	index.SetPrevURL(w.linkHref(el, "atom:link[@rel='prev']", 0))

	for _, child := range el.ChildElements() {
		var (
			item entity.Resource
			err  error
		)

		switch fullTag(child) {
		case "foaf:Person":
			item, err = w.parseUser(child)
		case "foaf:Group":
			item, err = w.parseClub(child)
		case "doap:Project":
			item, err = w.parseProject(child)
		case "doap:developer":
			item, err = w.parseContributor(child)
		case "membership":
			item, err = w.parseMembership(child)
		case "badge":
			item, err = w.parseBadge(child)
		default:
			continue
		}

		if err != nil {
			return nil, err
		}
		index.AddItem(item)
	}

	forms := el.FindElements("xhtml:form")
	if len(forms) == 1 {
		if err := w.parseForm(&index.Entity, forms[0]); err != nil {
			return nil, err
		}
	}

	return index, nil
}

func (w *walker) parseUser(el *etree.Element) (*entity.User, error) {
	user := entity.NewUser(w.linkToSelf(el), w.linkToAlternateSelf(el))

	uuid, err := w.requiredAttr(el, "id")
	if err != nil {
		return nil, err
	}
	user.SetUUID(uuid)

	user.Set("name", w.nodeValue(el, "foaf:name"))
	user.Set("image", w.sanitize(w.linkHref(el, "atom:link[@rel='foaf:depiction']", 0)))
	user.Set("biography", w.nodeValue(el, "bio:olb"))
	user.Set("birthdate", w.nodeValue(el, "foaf:birthday"))
	user.Set("city", w.nodeValue(el, "vcard:locality"))
	user.Set("country", w.nodeValue(el, "vcard:country-name"))
	user.Set("company", w.nodeValue(el, "cv:hasWorkHistory/cv:employedIn"))
	user.Set("jobPosition", w.nodeValue(el, "cv:hasWorkHistory/cv:jobTitle"))
	user.Set("blogUrl", w.nodeValue(el, "foaf:weblog"))
	user.Set("url", w.nodeValue(el, "foaf:homepage"))
	user.Set("feedUrl", w.sanitize(w.linkHref(el, "atom:link[@title='blog/feed']", 0)))
	user.Set("email", w.nodeValue(el, "foaf:mbox"))

	for _, account := range el.FindElements("foaf:account/foaf:OnlineAccount") {
		accountName, _ := w.nodeValue(account, "foaf:name").(string)
		accountValue, _ := w.nodeValue(account, "foaf:accountName").(string)

		switch accountName {
		case "SymfonyConnect", "SensioLabs Connect":
			user.SetUsername(accountValue)
			if err := w.parseJoinedAt(user, account); err != nil {
				return nil, err
			}
		case "github":
			user.SetGithubUsername(accountValue)
		case "twitter":
			user.SetTwitterUsername(accountValue)
		case "facebook":
			user.SetFacebookUID(accountValue)
		case "linkedin":
			user.SetLinkedInURL(accountValue)
		default:
			return nil, w.fail("I do not know how to parse these kinds of OnlineAccount: %s.", accountName)
		}
	}

	additionalEmails := []string{}
	for _, mbox := range el.FindElements("foaf:mbox[@rel='alternate']") {
		if email, ok := w.sanitize(strings.TrimSpace(mbox.Text())).(string); ok {
			additionalEmails = append(additionalEmails, email)
		}
	}
	user.SetAdditionalEmails(additionalEmails)

	for name, set := range map[string]func(*entity.Index) *entity.User{
		"badges":      user.SetBadges,
		"memberships": user.SetMemberships,
		"projects":    user.SetProjects,
	} {
		container := embeddedIndex(el, name)
		if container == nil {
			continue
		}

		index, err := w.parseIndex(container)
		if err != nil {
			return nil, err
		}
		set(index)
	}

	for _, form := range el.FindElements("xhtml:form") {
		if err := w.parseForm(&user.Entity, form); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (w *walker) parseJoinedAt(user *entity.User, account *etree.Element) error {
	since, ok := w.nodeValue(account, "since").(string)
	if !ok {
		return nil
	}

	joinedAt, err := time.Parse(time.RFC3339, since)
	if err != nil {
		return w.fail("could not parse the account member-since date %q.", since)
	}
	user.SetJoinedAt(joinedAt)

	return nil
}

func (w *walker) parseProject(el *etree.Element) (*entity.Project, error) {
	project := entity.NewProject(w.linkToSelf(el), w.linkToAlternate(el))

	uuid, err := w.requiredAttr(el, "id")
	if err != nil {
		return nil, err
	}
	project.SetUUID(uuid)

	project.Set("image", w.sanitize(w.linkHref(el, "atom:link[@rel='foaf:depiction']", 0)))
	project.Set("name", w.nodeValue(el, "doap:name"))
	project.Set("isPrivate", w.nodeValue(el, "is-private"))
	project.Set("slug", w.nodeValue(el, "slug"))
	project.Set("description", w.nodeValue(el, "doap:description"))
	project.Set("url", w.nodeValue(el, "doap:homepage"))
	project.Set("repositoryUrl", w.nodeValue(el, "doap:Repository/doap:GitRepository/doap:location"))

	if label, ok := w.nodeValue(el, "doap:category").(string); ok {
		code, known := entity.ProjectTypeFromLabel(label)
		if !known {
			return nil, w.fail("unknown project category %q.", label)
		}
		project.SetType(code)
	}

	forms := el.FindElements("xhtml:form")
	if len(forms) == 1 {
		if err := w.parseForm(&project.Entity, forms[0]); err != nil {
			return nil, err
		}
	}

	if container := embeddedIndex(el, "contributors"); container != nil {
		contributors, err := w.parseIndex(container)
		if err != nil {
			return nil, err
		}
		project.SetContributors(contributors)
	}

	return project, nil
}

func (w *walker) parseClub(el *etree.Element) (*entity.Club, error) {
	club := entity.NewClub(w.linkToSelf(el), w.linkToAlternate(el))

	uuid, err := w.requiredAttr(el, "id")
	if err != nil {
		return nil, err
	}
	club.SetUUID(uuid)

	club.Set("name", w.nodeValue(el, "foaf:name"))
	club.Set("description", w.nodeValue(el, "description"))
	club.Set("url", w.nodeValue(el, "foaf:homepage"))
	club.Set("slug", w.nodeValue(el, "slug"))
	club.Set("email", w.nodeValue(el, "email"))
	club.Set("feedUrl", w.sanitize(w.linkHref(el, "atom:link[@rel='related']", 0)))
	club.Set("city", w.nodeValue(el, "vcard:locality"))
	club.Set("country", w.nodeValue(el, "vcard:country-name"))
	club.Set("image", w.sanitize(w.linkHref(el, "atom:link[@rel='foaf:depiction']", 0)))

	if label, ok := w.nodeValue(el, "category").(string); ok {
		code, known := entity.ClubTypeFromLabel(label)
		if !known {
			return nil, w.fail("unknown club category %q.", label)
		}
		club.SetType(code)
	}

	if members := el.FindElement("members"); members != nil {
		for _, child := range members.ChildElements() {
			var (
				member *entity.Member
				err    error
			)

			switch fullTag(child) {
			case "member":
				member, err = w.parseMember(child)
			case "foaf:Person":
				// bare person, membership flags unknown
				member = entity.NewMember()
				var user *entity.User
				if user, err = w.parseUser(child); err == nil {
					member.SetUser(user)
				}
			default:
				continue
			}

			if err != nil {
				return nil, err
			}
			club.AddMember(member)
		}
	}

	if container := embeddedIndex(el, "cumulated-badges"); container != nil {
		badges, err := w.parseIndex(container)
		if err != nil {
			return nil, err
		}
		club.SetCumulatedBadges(badges)
	}

	if container := embeddedIndex(el, "badges"); container != nil {
		badges, err := w.parseIndex(container)
		if err != nil {
			return nil, err
		}
		club.SetBadges(badges)
	}

	forms := el.FindElements("xhtml:form")
	if len(forms) == 1 {
		if err := w.parseForm(&club.Entity, forms[0]); err != nil {
			return nil, err
		}
	}

	return club, nil
}

func (w *walker) parseMember(el *etree.Element) (*entity.Member, error) {
	member := entity.NewMember()
	member.Set("isMembershipPublic", w.nodeValue(el, "is-membership-public"))
	member.Set("isOwner", w.nodeValue(el, "is-owner"))

	person := el.FindElement("foaf:Person")
	if person == nil {
		return nil, w.fail("a club member has no foaf:Person.")
	}

	user, err := w.parseUser(person)
	if err != nil {
		return nil, err
	}
	member.SetUser(user)

	return member, nil
}

func (w *walker) parseMembership(el *etree.Element) (*entity.Membership, error) {
	membership := entity.NewMembership()

	group := el.FindElement("foaf:Group")
	if group == nil {
		return nil, w.fail("a membership has no foaf:Group.")
	}

	club, err := w.parseClub(group)
	if err != nil {
		return nil, err
	}
	membership.SetClub(club)
	membership.Set("isPublic", w.nodeValue(el, "is-public"))
	membership.Set("isOwner", w.nodeValue(el, "is-owner"))

	return membership, nil
}

func (w *walker) parseContributor(el *etree.Element) (*entity.Contributor, error) {
	contributor := entity.NewContributor()

	for _, field := range []struct {
		path string
		set  func(int) *entity.Contributor
	}{
		{"lines-added", contributor.SetLinesAdded},
		{"lines-deleted", contributor.SetLinesDeleted},
		{"commits", contributor.SetCommits},
		{"rank", contributor.SetRank},
	} {
		value, present, err := w.intValue(el, field.path)
		if err != nil {
			return nil, err
		}
		if present {
			field.set(value)
		}
	}

	person := el.FindElement("foaf:Person")
	if person == nil {
		return nil, w.fail("a contributor has no foaf:Person.")
	}

	user, err := w.parseUser(person)
	if err != nil {
		return nil, err
	}
	contributor.SetUser(user)

	return contributor, nil
}

func (w *walker) parseBadge(el *etree.Element) (*entity.Badge, error) {
	badge := entity.NewBadge(w.linkToSelf(el), w.linkToAlternateSelf(el))

	id, err := w.requiredAttrInt(el, "id")
	if err != nil {
		return nil, err
	}
	badge.SetID(id)

	if count := el.SelectAttr("count"); count != nil {
		value, err := strconv.Atoi(count.Value)
		if err != nil {
			return nil, w.fail("the badge count %q is not a number.", count.Value)
		}
		badge.SetCount(value)
	}

	badge.Set("name", w.nodeValue(el, "name"))
	badge.Set("description", w.nodeValue(el, "description"))

	level, present, err := w.intValue(el, "level")
	if err != nil {
		return nil, err
	}
	if present {
		badge.SetLevel(level)
	}

	badge.Set("image", w.sanitize(w.linkHref(el, "atom:link[@rel='foaf:depiction']", 0)))

	return badge, nil
}

func (w *walker) parseError(el *etree.Element) (*model.Error, error) {
	apiError := model.NewError()

	for _, parameter := range el.FindElements("entity/body/parameter") {
		name, err := w.requiredAttr(parameter, "name")
		if err != nil {
			return nil, err
		}
		apiError.AddParameter(name)

		for _, message := range parameter.FindElements("message") {
			apiError.AddParameterError(name, strings.TrimSpace(message.Text()))
		}
	}

	return apiError, nil
}

func (w *walker) parseForm(e *entity.Entity, formEl *etree.Element) error {
	formID, err := w.requiredAttr(formEl, "id")
	if err != nil {
		return err
	}
	action, err := w.requiredAttr(formEl, "action")
	if err != nil {
		return err
	}
	method, err := w.requiredAttr(formEl, "method")
	if err != nil {
		return err
	}

	form := model.NewForm(action, method)

	fields, err := w.parseFormFields(formEl)
	if err != nil {
		return err
	}
	for _, name := range fields.Names() {
		value, _ := fields.Get(name)
		form.AddField(name, value)
	}

	for _, sel := range formEl.FindElements("xhtml:select") {
		name, err := w.requiredAttr(sel, "name")
		if err != nil {
			return err
		}

		options := map[string]string{}
		for _, option := range sel.FindElements("xhtml:option") {
			value := option.SelectAttrValue("value", "")
			if value == "" {
				// "choose one" placeholder
				continue
			}
			options[value] = strings.TrimSpace(option.Text())
		}
		form.SetFieldOptions(name, options)
	}

	e.AddForm(formID, form)

	return nil
}

// parseFormFields scans the direct input, textarea, select and fieldset
// children of el in document order. Fieldsets recurse into a nested field
// map keyed by the fieldset id.
func (w *walker) parseFormFields(el *etree.Element) (*model.Fields, error) {
	fields := model.NewFields()

	for _, node := range el.ChildElements() {
		if node.Space != "xhtml" {
			continue
		}

		switch node.Tag {
		case "fieldset":
			name, err := w.requiredAttr(node, "id")
			if err != nil {
				return nil, err
			}

			nested, err := w.parseFormFields(node)
			if err != nil {
				return nil, err
			}
			fields.Set(name, nested)

		case "input", "textarea", "select":
			name, err := w.requiredAttr(node, "name")
			if err != nil {
				return nil, err
			}

			// the wire convention nests repeated fields under a collection
			// index (a[b][c]); only the innermost segment names the field
			if matches := bracketedName.FindStringSubmatch(name); matches != nil {
				name = matches[3]
			}

			var value any
			if node.Tag == "input" && node.SelectAttrValue("type", "") == "checkbox" {
				value = node.SelectAttr("checked") != nil
			} else if attr := node.SelectAttr("value"); attr != nil {
				value = w.sanitize(attr.Value)
			}

			fields.Set(name, value)
		}
	}

	return fields, nil
}

// sanitize applies the one uniform text coercion rule: literal booleans
// become booleans, the empty string becomes nil, everything else passes
// through as a string.
func (w *walker) sanitize(value any) any {
	text, ok := value.(string)
	if !ok {
		return value
	}

	switch text {
	case "true":
		return true
	case "false":
		return false
	case "":
		return nil
	default:
		return text
	}
}

// nodeValue returns the sanitized text of the first element matching path,
// or nil when the element is absent.
func (w *walker) nodeValue(el *etree.Element, path string) any {
	node := el.FindElement(path)
	if node == nil {
		return nil
	}

	return w.sanitize(strings.TrimSpace(node.Text()))
}

func (w *walker) intValue(el *etree.Element, path string) (int, bool, error) {
	raw, ok := w.nodeValue(el, path).(string)
	if !ok {
		return 0, false, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, w.fail("the value %q of <%s> is not a number.", raw, path)
	}

	return value, true, nil
}

// linkHref returns the href of the link at the given position among the
// matches of path, or the empty string. Some generations of the wire format
// distinguish links only by position, so the Nth match must be addressable.
func (w *walker) linkHref(el *etree.Element, path string, position int) string {
	links := el.FindElements(path)
	if position >= len(links) {
		return ""
	}

	return links[position].SelectAttrValue("href", "")
}

func (w *walker) linkToSelf(el *etree.Element) string {
	return w.linkHref(el, "atom:link[@rel='self']", 0)
}

// linkToAlternateSelf locates the alternate URL for kinds whose documents
// carry it as a second self link.
func (w *walker) linkToAlternateSelf(el *etree.Element) string {
	return w.linkHref(el, "atom:link[@rel='self']", 1)
}

// linkToAlternate locates the alternate URL for kinds whose documents use a
// dedicated relation.
func (w *walker) linkToAlternate(el *etree.Element) string {
	return w.linkHref(el, "atom:link[@rel='alternate']", 0)
}

func (w *walker) requiredAttr(el *etree.Element, name string) (string, error) {
	attr := el.SelectAttr(name)
	if attr == nil {
		return "", w.fail("missing required attribute %q on <%s>.", name, fullTag(el))
	}

	return attr.Value, nil
}

func (w *walker) requiredAttrInt(el *etree.Element, name string) (int, error) {
	raw, err := w.requiredAttr(el, name)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, w.fail("the attribute %q of <%s> is not a number.", name, fullTag(el))
	}

	return value, nil
}

func singleChild(el *etree.Element, space, tag string) *etree.Element {
	var found *etree.Element
	for _, child := range el.ChildElements() {
		if child.Space == space && child.Tag == tag {
			if found != nil {
				return nil
			}
			found = child
		}
	}

	return found
}

// embeddedIndex locates a named collection container. Recent documents carry
// the pagination attributes on the container itself; older ones nest an
// index element inside it.
func embeddedIndex(el *etree.Element, name string) *etree.Element {
	container := singleChild(el, "", name)
	if container == nil {
		return nil
	}

	if inner := singleChild(container, "", "index"); inner != nil {
		return inner
	}

	return container
}

func fullTag(el *etree.Element) string {
	if el.Space == "" {
		return el.Tag
	}

	return el.Space + ":" + el.Tag
}
