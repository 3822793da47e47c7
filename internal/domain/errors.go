package domain

import "errors"

var (
	ErrDownloadFailed      = errors.New("failed to download document from URL")
	ErrFileTooLarge        = errors.New("document exceeds maximum allowed size")
	ErrUnreadableDocument  = errors.New("failed to open document")
	ErrNoPages             = errors.New("no pages could be extracted from the provided document")
	ErrUnsupportedProvider = errors.New("unknown vision model provider")
)
