package core

import (
	"fmt"
	"strings"
)

// InvalidInputError reports malformed engine input, such as mismatched
// snapshot and metric slices or weights that break the sum invariant.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// NotFoundError reports a reference to an entity that does not exist in the
// analyzed snapshot set.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// UnknownRoleError reports a learning-path request for a role missing from
// the catalog. Known holds the valid role names for the error message.
type UnknownRoleError struct {
	Role  string
	Known []string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q: valid roles are %s", e.Role, strings.Join(e.Known, ", "))
}
