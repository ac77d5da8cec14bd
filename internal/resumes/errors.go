package resumes

import "errors"

var (
	ErrNotFound      = errors.New("resume not found")
	ErrQuotaExceeded = errors.New("free plan resume limit reached")
	ErrInvalidInput  = errors.New("invalid input")
)
