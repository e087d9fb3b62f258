package domain

import "errors"

var (
	// ErrMalformedHeader signals an unparseable matrix file header.
	ErrMalformedHeader = errors.New("malformed matrix header")
	// ErrTruncatedData signals a matrix payload shorter than rows*cols floats.
	ErrTruncatedData = errors.New("truncated matrix data")
	// ErrMalformedMetadata signals a metadata record missing id or title.
	ErrMalformedMetadata = errors.New("malformed metadata")
	// ErrDimensionMismatch signals a query vector whose dimensionality
	// disagrees with a domain's matrix column count.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrAnswersTooShort signals combined free-text answers too short to
	// embed meaningfully.
	ErrAnswersTooShort = errors.New("answers too short")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
