package util

import "errors"

var (
	ErrUserIDRequired     = errors.New("userId is required")
	ErrSubmissionNotFound = errors.New("submission not found")
)
