package entity

import (
	"context"
	"fmt"
	"strings"

	connecterrors "github.com/symfonycorp/connect-go/pkg/connect/errors"
	"github.com/symfonycorp/connect-go/pkg/connect/model"
)

// Resource is anything a parsed API response can turn into: one of the
// entity kinds, a structured error payload, or the NoContent sentinel.
type Resource interface {
	Kind() string
}

type noContent struct{}

func (noContent) Kind() string { return "no-content" }

// NoContent is returned for 204 and empty-body responses instead of an
// entity.
var NoContent Resource = noContent{}

// API is the part of the HTTP client that entities call back into to refresh
// themselves and to dispatch form submissions. It is a shared, non-owning
// reference: the client never holds entities, so there is no cycle.
type API interface {
	Get(ctx context.Context, url string, headers map[string][]string) (Resource, error)
	Submit(ctx context.Context, url, method string, fields *model.Fields, headers map[string][]string) (Resource, error)
}

// Entity is the schema-checked record every concrete kind embeds. The set of
// property names is fixed when the kind constructor runs; accessing any other
// name fails with a schema error. Property values are the only mutable state.
type Entity struct {
	kind         string
	selfURL      string
	alternateURL string

	names      []string
	properties map[string]any

	forms map[string]*model.Form
	api   API
}

func newEntity(kind, selfURL, alternateURL string) Entity {
	return Entity{
		kind:         kind,
		selfURL:      selfURL,
		alternateURL: alternateURL,
		properties:   map[string]any{},
		forms:        map[string]*model.Form{},
	}
}

func (e *Entity) base() *Entity { return e }

func (e *Entity) Kind() string {
	return e.kind
}

func (e *Entity) SelfURL() string {
	return e.selfURL
}

func (e *Entity) AlternateURL() string {
	return e.alternateURL
}

// addProperty declares a schema slot. Called only from kind constructors.
func (e *Entity) addProperty(name string, defaultValue any) *Entity {
	if _, declared := e.properties[name]; !declared {
		e.names = append(e.names, name)
	}
	e.properties[name] = defaultValue

	return e
}

func (e *Entity) declare(names ...string) *Entity {
	for _, name := range names {
		e.addProperty(name, nil)
	}

	return e
}

func (e *Entity) Has(name string) bool {
	_, ok := e.properties[name]
	return ok
}

func (e *Entity) Get(name string) (any, error) {
	value, ok := e.properties[name]
	if !ok {
		return nil, connecterrors.NewSchemaError(fmt.Sprintf("property %q is not declared on %s", name, e.kind))
	}

	return value, nil
}

func (e *Entity) Set(name string, value any) error {
	if !e.Has(name) {
		return connecterrors.NewSchemaError(fmt.Sprintf("property %q is not declared on %s", name, e.kind))
	}

	e.properties[name] = value

	return nil
}

// Add appends a value to a sequence-valued property.
func (e *Entity) Add(name string, value any) error {
	current, err := e.Get(name)
	if err != nil {
		return err
	}

	switch seq := current.(type) {
	case nil:
		return e.Set(name, []any{value})
	case []any:
		return e.Set(name, append(seq, value))
	default:
		return connecterrors.NewSchemaError(fmt.Sprintf("property %q of %s is not a sequence", name, e.kind))
	}
}

// Is resolves a boolean flag the way dynamic is<Name> accessors did: the name
// is tried verbatim first ("isOwner"), then with its "is" prefix stripped
// ("owner").
func (e *Entity) Is(name string) (bool, error) {
	lookup := name
	if !e.Has(lookup) && strings.HasPrefix(name, "is") && len(name) > 2 {
		lookup = strings.ToLower(name[2:3]) + name[3:]
	}

	value, err := e.Get(lookup)
	if err != nil {
		return false, err
	}

	switch flag := value.(type) {
	case nil:
		return false, nil
	case bool:
		return flag, nil
	default:
		return false, connecterrors.NewSchemaError(fmt.Sprintf("property %q of %s is not a boolean", lookup, e.kind))
	}
}

// PropertyNames returns the declared schema in declaration order.
func (e *Entity) PropertyNames() []string {
	names := make([]string, len(e.names))
	copy(names, e.names)
	return names
}

func (e *Entity) AddForm(formID string, form *model.Form) {
	e.forms[formID] = form
}

func (e *Entity) Form(formID string) (*model.Form, error) {
	form, ok := e.forms[formID]
	if !ok {
		return nil, connecterrors.NewSchemaError(fmt.Sprintf("form %q is not available on %s", formID, e.kind))
	}

	return form, nil
}

func (e *Entity) Forms() map[string]*model.Form {
	return e.forms
}

func (e *Entity) SetForms(forms map[string]*model.Form) {
	if forms == nil {
		forms = map[string]*model.Form{}
	}
	e.forms = forms
}

// SetAPI stores the client back-reference and propagates it into every
// property value that is itself an entity, including the items of an
// embedded index.
func (e *Entity) SetAPI(api API) {
	e.api = api
	for _, name := range e.names {
		propagateAPI(e.properties[name], api)
	}
}

func (e *Entity) API() API {
	return e.api
}

func propagateAPI(value any, api API) {
	switch v := value.(type) {
	case interface{ SetAPI(API) }:
		v.SetAPI(api)
	case []any:
		for _, item := range v {
			propagateAPI(item, api)
		}
	}
}

// Refresh re-fetches the entity from its self URL and overwrites every
// declared property and the whole form table with the fresh values.
func (e *Entity) Refresh(ctx context.Context) error {
	if e.api == nil {
		return connecterrors.NewSchemaError(fmt.Sprintf("%s is not attached to an api client", e.kind))
	}

	resource, err := e.api.Get(ctx, e.selfURL, nil)
	if err != nil {
		return err
	}

	fresh, ok := resource.(interface{ base() *Entity })
	if !ok {
		return connecterrors.NewBadResponseError(fmt.Sprintf("refreshing %s did not yield an entity", e.selfURL))
	}

	freshBase := fresh.base()
	for _, name := range e.names {
		value, err := freshBase.Get(name)
		if err != nil {
			return err
		}
		e.properties[name] = value
	}

	e.forms = freshBase.forms

	return nil
}

// Submit builds the outgoing field map for the named form from source and
// dispatches it through the owning client. A nil source means the entity
// itself. Fields the source does not declare are left out; a template value
// that is itself a field group is expanded once per entity in the matching
// sequence-valued property, keeping only the sub-keys each item declares.
func (e *Entity) Submit(ctx context.Context, formID string, source *Entity) (Resource, error) {
	form, err := e.Form(formID)
	if err != nil {
		return nil, err
	}

	if source == nil {
		source = e
	}

	if e.api == nil {
		return nil, connecterrors.NewSchemaError(fmt.Sprintf("%s is not attached to an api client", e.kind))
	}

	fields := model.NewFields()
	for _, key := range form.Fields().Names() {
		if !source.Has(key) {
			continue
		}

		template, _ := form.Fields().Get(key)
		group, repeated := template.(*model.Fields)
		if !repeated {
			value, _ := source.Get(key)
			fields.Set(key, value)
			continue
		}

		current, _ := source.Get(key)
		items, ok := current.([]any)
		if !ok && current != nil {
			return nil, connecterrors.NewSchemaError(fmt.Sprintf("property %q of %s is not a sequence of entities", key, source.kind))
		}

		groups := make([]*model.Fields, 0, len(items))
		for _, item := range items {
			sub, ok := item.(interface{ base() *Entity })
			if !ok {
				return nil, connecterrors.NewSchemaError(fmt.Sprintf("property %q of %s holds a non-entity value", key, source.kind))
			}

			subBase := sub.base()
			subFields := model.NewFields()
			for _, subKey := range group.Names() {
				if !subBase.Has(subKey) {
					continue
				}
				value, _ := subBase.Get(subKey)
				subFields.Set(subKey, value)
			}
			groups = append(groups, subFields)
		}
		fields.Set(key, groups)
	}

	return e.api.Submit(ctx, form.Action(), form.Method(), fields, nil)
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func asInt(value any) int {
	n, _ := value.(int)
	return n
}

func asBool(value any) bool {
	b, _ := value.(bool)
	return b
}
