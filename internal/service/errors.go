package service

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotQueried        = errors.New("dashboard not queried")
	ErrExportUnavailable = errors.New("export unavailable")
)
