package schema

import "errors"

var (
	ErrEmptyName      = errors.New("empty field name")
	ErrDuplicateField = errors.New("duplicate field name")
	ErrUnknownField   = errors.New("unknown field name")
	ErrFieldType      = errors.New("field type mismatch")
	ErrArity          = errors.New("wrong number of values")
)
