package domain

import (
	"errors"
	"strings"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrSessionNotFound = errors.New("session not found")
)

// ErrorKind classifies failures of the contact-submission flow so callers
// can react to the category instead of matching message strings.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindDelivery    ErrorKind = "delivery"
	KindPersistence ErrorKind = "persistence"
	KindInternal    ErrorKind = "internal"
)

// ValidationErrors collects every violated rule of a request. Operations
// report all violations together, not just the first one.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// Add appends a message and returns the updated list.
func (v ValidationErrors) Add(msg string) ValidationErrors {
	return append(v, msg)
}
