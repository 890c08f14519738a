// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package xerrors defines the error taxonomy shared by every shadercross
// component: the loader, the HLSL frontend driver, the SPIR-V reflection
// pass, the transpiler, and the translation orchestrator all return errors
// built from the same Kind enum so callers can type-switch or errors.As
// uniformly regardless of which component failed.
package xerrors

import "fmt"

// Kind categorizes a shadercross error.
type Kind uint8

const (
	// BackendUnavailable means a required native library was not loaded.
	BackendUnavailable Kind = iota

	// CompilationFailed means a backend returned a negative status or
	// produced a non-empty error blob.
	CompilationFailed

	// TranspileFailed means the SPIR-V-Cross API returned non-success.
	TranspileFailed

	// InvalidDescriptorSet means a resource's descriptor-set index fell
	// outside the set allowed for its kind and stage.
	InvalidDescriptorSet

	// MissingDecoration means a resource lacked a required Set or Binding
	// decoration.
	MissingDecoration

	// UnsupportedRoute means the requested (source, destination, stage)
	// combination has no translation route (e.g. SPIR-V to SPIR-V).
	UnsupportedRoute

	// IoError means a file read/write failed. The core never touches the
	// filesystem and never constructs it; the CLI reports its own file
	// errors as plain messages.
	IoError
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case BackendUnavailable:
		return "BackendUnavailable"
	case CompilationFailed:
		return "CompilationFailed"
	case TranspileFailed:
		return "TranspileFailed"
	case InvalidDescriptorSet:
		return "InvalidDescriptorSet"
	case MissingDecoration:
		return "MissingDecoration"
	case UnsupportedRoute:
		return "UnsupportedRoute"
	case IoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every shadercross
// component.
type Error struct {
	// Kind categorizes the error.
	Kind Kind

	// Message carries backend-specific detail (a raw HRESULT, the text of
	// an error blob, the name of a missing backend, ...).
	Message string

	// ResourceKind optionally names the kind of resource that violated a
	// descriptor-set or decoration invariant (InvalidDescriptorSet,
	// MissingDecoration only).
	ResourceKind string

	// DescriptorSet optionally carries the offending set index
	// (InvalidDescriptorSet only).
	DescriptorSet int
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case InvalidDescriptorSet:
		return fmt.Sprintf("%s: descriptor set %d invalid for %s", e.Kind, e.DescriptorSet, e.ResourceKind)
	case MissingDecoration:
		return fmt.Sprintf("%s: %s missing set/binding decoration", e.Kind, e.ResourceKind)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// New creates an Error of the given kind with a plain message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidDescriptorSet creates an InvalidDescriptorSet error naming the
// offending resource kind and set index.
func NewInvalidDescriptorSet(resourceKind string, set int) *Error {
	return &Error{Kind: InvalidDescriptorSet, ResourceKind: resourceKind, DescriptorSet: set}
}

// NewMissingDecoration creates a MissingDecoration error naming the
// offending resource kind.
func NewMissingDecoration(resourceKind string) *Error {
	return &Error{Kind: MissingDecoration, ResourceKind: resourceKind}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
