// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

// Package service implements the business procedures behind the API:
// slug derivation and collision resolution, referential-integrity checks,
// and post/category relationship maintenance. Stores are injected so the
// procedures can run against any database handle.
package service

import "fmt"

// Code is a machine-readable failure kind. Everything not covered by a
// code — including a slug uniqueness race lost at the storage layer after
// retries — propagates as an ordinary wrapped error.
type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeBadRequest         Code = "BAD_REQUEST"
	CodePreconditionFailed Code = "PRECONDITION_FAILED"
)

// Error is a typed procedure failure carrying a code and a caller-facing
// message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func notFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

func badRequest(msg string) *Error {
	return &Error{Code: CodeBadRequest, Message: msg}
}

func preconditionFailed(msg string) *Error {
	return &Error{Code: CodePreconditionFailed, Message: msg}
}
