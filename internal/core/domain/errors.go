package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when a record does not exist or
// is not visible to the requesting owner. The two cases are deliberately
// indistinguishable.
var ErrNotFound = errors.New("not found")

// NotFoundError carries the resource name for user-facing 404 responses.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ValidationError rejects a request whose payload parsed but whose fields
// are out of range or missing.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// AuthError signals a missing, invalid or expired credential.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return e.Detail
}

// ConflictError signals a uniqueness clash, e.g. registering an email that
// already has an account.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string {
	return e.Detail
}
