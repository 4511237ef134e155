package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeExtraction      = "EXTRACTION_ERROR"
	ErrCodeIndexWrite      = "INDEX_WRITE_ERROR"
	ErrCodeRetrieval       = "RETRIEVAL_ERROR"
	ErrCodeCompletion      = "COMPLETION_ERROR"
	ErrCodeMalformedOutput = "MALFORMED_OUTPUT_ERROR"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrNoDocumentBytes   = NewDomainError(ErrCodeValidation, "no document bytes provided")
	ErrNoDocumentID      = NewDomainError(ErrCodeValidation, "no document id provided")
	ErrNoConcept         = NewDomainError(ErrCodeValidation, "no concept provided")
	ErrInvalidBase64     = NewDomainError(ErrCodeValidation, "document payload is not valid base64")
	ErrInvalidNodeSize   = NewDomainError(ErrCodeValidation, "invalid node size")
	ErrInvalidNodeRing   = NewDomainError(ErrCodeValidation, "invalid node ring")
	ErrDuplicateNodeID   = NewDomainError(ErrCodeValidation, "duplicate node id in graph")
	ErrEmptyGraph        = NewDomainError(ErrCodeValidation, "graph contains no nodes")
	ErrEmptyPath         = NewDomainError(ErrCodeValidation, "study path contains no steps")
)

// ExtractionError wraps a document extraction failure.
func ExtractionError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeExtraction, "failed to extract document text", err)
}

// IndexWriteError wraps an index ingestion failure.
func IndexWriteError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeIndexWrite, "failed to index document chunks", err)
}

// RetrievalError wraps a semantic query failure.
func RetrievalError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeRetrieval, "failed to retrieve document excerpts", err)
}

// CompletionError wraps a generation service failure.
func CompletionError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeCompletion, "completion service failed", err)
}

// MalformedOutputError wraps an unparsable model completion. The raw text is
// carried in the cause for diagnostics and must never reach the end user.
func MalformedOutputError(raw string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeMalformedOutput, "model output could not be parsed",
		fmt.Errorf("%w; raw output: %s", err, raw))
}
