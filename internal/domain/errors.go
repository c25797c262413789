package domain

import "errors"

// Identifier and access-key errors. Callers wrap these with the offending value
// and classify them with errors.Is.
var (
	ErrLengthMismatch       = errors.New("wrong number of digits")
	ErrChecksumMismatch     = errors.New("check digit mismatch")
	ErrUnknownState         = errors.New("unknown state")
	ErrUnknownDocumentModel = errors.New("unknown document model")
	ErrInvalidIssuerID      = errors.New("invalid issuer CNPJ/CPF")
	ErrMalformedKey         = errors.New("malformed access key")
	ErrInvalidEmissionDate  = errors.New("invalid emission date")
	ErrInvalidFormat        = errors.New("invalid format")
)

// Service and transport errors.
var (
	ErrUnsupportedKind     = errors.New("unsupported identifier kind")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrBatchTooLarge       = errors.New("batch exceeds maximum number of rows")
	ErrUploadFailed        = errors.New("report upload to storage failed")
	ErrArchiveDisabled     = errors.New("report archive is not configured")
)

// Stable error codes exposed in API responses and batch reports.
const (
	CodeLengthMismatch       = "LENGTH_MISMATCH"
	CodeChecksumMismatch     = "CHECKSUM_MISMATCH"
	CodeUnknownState         = "UNKNOWN_STATE"
	CodeUnknownDocumentModel = "UNKNOWN_DOCUMENT_MODEL"
	CodeInvalidIssuerID      = "INVALID_ISSUER_ID"
	CodeMalformedKey         = "MALFORMED_KEY"
	CodeInvalidEmissionDate  = "INVALID_EMISSION_DATE"
	CodeInvalidFormat        = "INVALID_FORMAT"
	CodeUnsupportedKind      = "UNSUPPORTED_KIND"
	CodeInvalidInput         = "INVALID_INPUT"
)

// ErrorCode classifies an identifier error. Unclassified errors map to
// CodeInvalidFormat.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrLengthMismatch):
		return CodeLengthMismatch
	case errors.Is(err, ErrChecksumMismatch):
		return CodeChecksumMismatch
	case errors.Is(err, ErrUnknownState):
		return CodeUnknownState
	case errors.Is(err, ErrUnknownDocumentModel):
		return CodeUnknownDocumentModel
	case errors.Is(err, ErrInvalidIssuerID):
		return CodeInvalidIssuerID
	case errors.Is(err, ErrMalformedKey):
		return CodeMalformedKey
	case errors.Is(err, ErrInvalidEmissionDate):
		return CodeInvalidEmissionDate
	case errors.Is(err, ErrUnsupportedKind):
		return CodeUnsupportedKind
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	default:
		return CodeInvalidFormat
	}
}
