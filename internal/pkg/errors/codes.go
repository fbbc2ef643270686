package errors

import "net/http"

const (
	CodeSourceNotFound     = "SOURCE_NOT_FOUND"
	CodeSchemaError        = "SCHEMA_ERROR"
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeDatasetUnavailable = "DATASET_UNAVAILABLE"
)

var (
	// ErrSourceNotFound: no tabular source at the configured location
	ErrSourceNotFound = New(
		CodeSourceNotFound,
		"Dataset source not found",
		http.StatusInternalServerError,
	)

	// ErrSchema: a required column is missing from the source
	ErrSchema = New(
		CodeSchemaError,
		"Required column is missing",
		http.StatusInternalServerError,
	)

	ErrInvalidArgument = New(
		CodeInvalidArgument,
		"Invalid argument",
		http.StatusBadRequest,
	)

	// ErrDatasetUnavailable: the dataset failed to load at startup
	ErrDatasetUnavailable = New(
		CodeDatasetUnavailable,
		"Data not loaded. Check dataset path and columns.",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
