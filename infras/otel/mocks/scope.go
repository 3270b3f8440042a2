package mocks

import (
	"sync"

	"trekking/infras/otel"
)

// Scope is a no-op otel.Scope that remembers the errors and events it was given.
type Scope struct {
	mu     sync.Mutex
	Errors []error
	Events []string
}

// AddEvent implements otel.Scope.
func (s *Scope) AddEvent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Events = append(s.Events, name)
}

// End implements otel.Scope.
func (s *Scope) End() {

}

// SetAttribute implements otel.Scope.
func (s *Scope) SetAttribute(_ string, _ any) {

}

// SetAttributes implements otel.Scope.
func (s *Scope) SetAttributes(_ map[string]any) {

}

// TraceError implements otel.Scope.
func (s *Scope) TraceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Errors = append(s.Errors, err)
}

// TraceIfError implements otel.Scope.
func (s *Scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func NewScope() otel.Scope {
	return &Scope{}
}
