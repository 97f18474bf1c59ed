package books

import "errors"

var (
	ErrJournalNotFound = errors.New("journal not found")
	ErrNameRequired    = errors.New("journal name is required")
)
