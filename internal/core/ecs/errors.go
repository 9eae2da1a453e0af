package ecs

import (
	"errors"
	"fmt"
)

// ErrEntityNotAlive is returned when attaching components to a destroyed or
// never-allocated entity.
var ErrEntityNotAlive = errors.New("ecs: entity not alive")

// UnknownComponentError reports a component kind or name that was never
// registered.
type UnknownComponentError struct {
	Kind Kind
	Name string
}

func (e *UnknownComponentError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("ecs: unknown component %q", e.Name)
	}
	return fmt.Sprintf("ecs: unknown component kind %d", e.Kind)
}

// DuplicateComponentError reports a second registration of the same kind or name.
type DuplicateComponentError struct {
	Kind Kind
	Name string
}

func (e *DuplicateComponentError) Error() string {
	return fmt.Sprintf("ecs: component %q (kind %d) already registered", e.Name, e.Kind)
}

// MissingComponentError is raised (as a panic value) when a system dereferences
// a component the entity does not hold.
type MissingComponentError struct {
	Kind   Kind
	Name   string
	Entity EntityID
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("ecs: entity %s has no %s component", e.Entity, e.Name)
}
