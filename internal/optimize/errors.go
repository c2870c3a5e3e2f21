package optimize

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrUnsupportedFormat   = errors.New("unsupported download format")
	ErrArtifactUnavailable = errors.New("artifact was not produced")
)

const (
	ErrorCodeValidation        = "VALIDATION_ERROR"
	ErrorCodeUnsupportedUpload = "UNSUPPORTED_UPLOAD"
	ErrorCodeLLMUpstream       = "LLM_UPSTREAM_ERROR"
	ErrorCodeLLMSchemaMismatch = "LLM_SCHEMA_MISMATCH"
	ErrorCodeStorage           = "STORAGE_ERROR"
	ErrorCodeInternal          = "INTERNAL_ERROR"
)
