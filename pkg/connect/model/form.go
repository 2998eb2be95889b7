package model

import (
	"fmt"
	"strings"
)

// Fields is an ordered name to value mapping for one form. A value is either
// a scalar (string, bool or nil) or a nested *Fields when the server grouped
// the field inside a fieldset.
type Fields struct {
	names  []string
	values map[string]any
}

func NewFields() *Fields {
	return &Fields{
		values: map[string]any{},
	}
}

func (f *Fields) Set(name string, value any) {
	if _, exists := f.values[name]; !exists {
		f.names = append(f.names, name)
	}
	f.values[name] = value
}

func (f *Fields) Get(name string) (any, bool) {
	value, ok := f.values[name]
	return value, ok
}

func (f *Fields) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Names returns the field names in the order they were discovered.
func (f *Fields) Names() []string {
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

func (f *Fields) Len() int {
	return len(f.names)
}

// Form describes one submittable action discovered in a response: where to
// send it, how, and which fields it expects.
type Form struct {
	action       string
	method       string
	fields       *Fields
	fieldOptions map[string]map[string]string
}

func NewForm(action, method string) *Form {
	return &Form{
		action:       action,
		method:       method,
		fields:       NewFields(),
		fieldOptions: map[string]map[string]string{},
	}
}

func (f *Form) Action() string {
	return f.action
}

func (f *Form) Method() string {
	return f.method
}

func (f *Form) AddField(name string, value any) {
	f.fields.Set(name, value)
}

func (f *Form) Field(name string) (any, bool) {
	return f.fields.Get(name)
}

func (f *Form) Fields() *Fields {
	return f.fields
}

func (f *Form) SetFieldOptions(field string, options map[string]string) {
	f.fieldOptions[field] = options
}

func (f *Form) HasFieldOptions(field string) bool {
	_, ok := f.fieldOptions[field]
	return ok
}

// FieldOptions returns the allowed value to label mapping for a select-like
// field.
func (f *Form) FieldOptions(field string) (map[string]string, error) {
	options, ok := f.fieldOptions[field]
	if !ok {
		known := make([]string, 0, len(f.fieldOptions))
		for name := range f.fieldOptions {
			known = append(known, name)
		}
		return nil, fmt.Errorf("the field %q has no options (fields with options: %q)", field, strings.Join(known, ", "))
	}

	return options, nil
}
