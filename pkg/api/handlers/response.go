package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/marmos91/indexfs/internal/logger"
	storeerrors "github.com/marmos91/indexfs/pkg/alloc/errors"
)

// Response is the envelope of every API response.
//
//   - Status is "ok", "error", "healthy" or "unhealthy"
//   - Data carries the payload on success
//   - Error and Code describe a failure
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Code      string    `json:"code,omitempty"`
}

// Error codes carried in Response.Code.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInsufficientSpace = "INSUFFICIENT_SPACE"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode API response", logger.Err(err))
	}
}

func okResponse(data any) Response {
	return Response{Status: "ok", Timestamp: time.Now().UTC(), Data: data}
}

func healthyResponse(data any) Response {
	return Response{Status: "healthy", Timestamp: time.Now().UTC(), Data: data}
}

func unhealthyResponse(msg string) Response {
	return Response{Status: "unhealthy", Timestamp: time.Now().UTC(), Error: msg}
}

func errorResponse(code, msg string) Response {
	return Response{Status: "error", Timestamp: time.Now().UTC(), Error: msg, Code: code}
}

// OK writes 200 with data.
func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, okResponse(data))
}

// Created writes 201 with data.
func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, okResponse(data))
}

// BadRequest writes 400 VALIDATION_ERROR.
func BadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse(CodeValidation, msg))
}

// NotFound writes 404 NOT_FOUND.
func NotFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, errorResponse(CodeNotFound, msg))
}

// InternalServerError writes 500 INTERNAL_ERROR.
func InternalServerError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusInternalServerError, errorResponse(CodeInternal, msg))
}

// StatusFor maps a store error to its HTTP status and response code.
func StatusFor(err error) (int, string) {
	switch storeerrors.CodeOf(err) {
	case storeerrors.ErrNotFound:
		return http.StatusNotFound, CodeNotFound
	case storeerrors.ErrDuplicateName:
		return http.StatusConflict, CodeConflict
	case storeerrors.ErrInsufficientSpace:
		return http.StatusInsufficientStorage, CodeInsufficientSpace
	case storeerrors.ErrInvalidInput:
		return http.StatusBadRequest, CodeValidation
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// writeStoreError writes err using StatusFor. Unclassified errors are logged
// and reported without their message.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.ErrorCtx(r.Context(), "API request failed", logger.Err(err))
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse(code, msg))
}
