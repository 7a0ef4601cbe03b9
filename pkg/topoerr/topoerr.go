/*
Copyright 2024 topo-configgen contributors
*/

// Package topoerr defines the categorized error taxonomy surfaced by the
// configuration-generation pipeline. Every stage returns one of these kinds
// instead of an opaque error so collaborators can branch on Kind without
// string matching.
package topoerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind names a category of pipeline failure.
type Kind string

const (
	// InvalidTopology covers unknown ids, duplicate names, and dangling edges.
	InvalidTopology Kind = "InvalidTopology"
	// InvalidVlan covers VLAN prefix/native-ness violations.
	InvalidVlan Kind = "InvalidVlan"
	// InterfaceConflict covers duplicate interface bindings and EtherChannel range collisions.
	InterfaceConflict Kind = "InterfaceConflict"
	// AddressExhausted covers allocator exhaustion of the base block.
	AddressExhausted Kind = "AddressExhausted"
	// PhysicalModelMissing covers physical mode devices lacking a model tag.
	PhysicalModelMissing Kind = "PhysicalModelMissing"
	// ConfigBuildFailure covers internally inconsistent plans (a pipeline bug).
	ConfigBuildFailure Kind = "ConfigBuildFailure"
)

// Error is a categorized, human-readable pipeline error.
type Error struct {
	Kind    Kind
	Subject string // the offending device/VLAN/link label
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("%s: %q: %v", e.Kind, e.Subject, e.cause)
}

// Unwrap exposes the wrapped cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a categorized error naming the offending subject.
func New(kind Kind, subject string, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Subject: subject,
		cause:   errors.Errorf(format, args...),
	}
}

// Wrap attaches a kind and subject to an existing error.
func Wrap(kind Kind, subject string, err error) *Error {
	return &Error{
		Kind:    kind,
		Subject: subject,
		cause:   errors.WithStack(err),
	}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind == kind
	}
	return false
}
