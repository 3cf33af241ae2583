package errors

import "net/http"

var (
	ErrNotFound = New(
		"PLACE_NOT_FOUND",
		"Place not found",
		http.StatusNotFound,
	)

	ErrStorage = New(
		"STORAGE_ERROR",
		"Storage operation failed",
		http.StatusInternalServerError,
	)

	ErrSchemaMismatch = New(
		"SCHEMA_MISMATCH",
		"Database schema does not match the expected layout",
		http.StatusInternalServerError,
	)

	ErrQueryEngine = New(
		"QUERY_ENGINE_ERROR",
		"Text query failed",
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

	ErrInvalidDocument = New(
		"INVALID_DOCUMENT",
		"Document failed validation",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
