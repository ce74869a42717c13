package service

import "errors"

// ErrInvalidDocument reports that a freshly built graph document failed
// validation and was not written.
var ErrInvalidDocument = errors.New("graph document failed validation")
