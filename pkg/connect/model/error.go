package model

// Error is the structured validation payload the server returns on a client
// error: entity body parameter names mapped to their violation messages.
// Both the parameter order and the message order within a parameter follow
// the wire document.
type Error struct {
	names      []string
	parameters map[string][]string
}

func NewError() *Error {
	return &Error{
		parameters: map[string][]string{},
	}
}

func (e *Error) Kind() string {
	return "error"
}

func (e *Error) HasParameter(name string) bool {
	_, ok := e.parameters[name]
	return ok
}

// AddParameter registers a parameter name, with no messages yet. Registering
// the same name twice is a no-op.
func (e *Error) AddParameter(name string) *Error {
	if !e.HasParameter(name) {
		e.names = append(e.names, name)
		e.parameters[name] = []string{}
	}

	return e
}

func (e *Error) AddParameterError(name, message string) *Error {
	e.AddParameter(name)
	e.parameters[name] = append(e.parameters[name], message)

	return e
}

// Parameters returns the registered parameter names in document order.
func (e *Error) Parameters() []string {
	names := make([]string, len(e.names))
	copy(names, e.names)
	return names
}

func (e *Error) Messages(name string) []string {
	return e.parameters[name]
}
