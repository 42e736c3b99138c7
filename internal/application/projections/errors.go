package projections

import "fmt"

// NotFoundError reports a record that is absent both upstream and in the
// local cache.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func errNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}
