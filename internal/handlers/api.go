// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the inkwell API.
// Handlers are grouped by resource and receive their dependencies through
// the handler struct. They decode and validate input, call the service
// procedures, and translate typed failures into HTTP responses.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/service"
)

// errorBody is the JSON error envelope returned for every failure.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeJSON marshals v and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeRaw writes an already-serialized JSON body (e.g. from the cache).
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// writeError writes the error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, status, body)
}

// writeServiceError maps a failure from the service layer onto an HTTP
// response. Typed failures keep their code; validation failures become
// BAD_REQUEST; anything else is an internal error whose details stay in
// the log, not the response.
func writeServiceError(w http.ResponseWriter, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		writeError(w, statusFor(svcErr.Code), string(svcErr.Code), svcErr.Message)
		return
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), valErrs.Error())
		return
	}

	slog.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
}

// statusFor maps a service failure code onto an HTTP status.
func statusFor(code service.Code) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeConflict:
		return http.StatusConflict
	case service.CodeBadRequest:
		return http.StatusBadRequest
	case service.CodePreconditionFailed:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// badRequest builds the typed failure used for malformed query parameters,
// so they flow through writeServiceError like any other BAD_REQUEST.
func badRequest(msg string) *service.Error {
	return &service.Error{Code: service.CodeBadRequest, Message: msg}
}

// decode reads the request body into v.
func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
