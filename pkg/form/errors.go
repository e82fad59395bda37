package form

import "errors"

// ErrUnknownField is returned by Edit for a field outside the form.
var ErrUnknownField = errors.New("form: unknown field")
