package annotation

import "errors"

var (
	// ErrUnknownClass is returned by a Provider handed a class it did not produce.
	ErrUnknownClass = errors.New("annotation: unknown class")

	// ErrMalformedTag is returned when a member's tag text is not valid struct tag syntax.
	ErrMalformedTag = errors.New("annotation: malformed tag")

	// ErrNoSuchField is returned by FieldValue when the named field does not exist.
	ErrNoSuchField = errors.New("annotation: no such field")

	// ErrNilMember is returned by a Provider asked for the tags of a nil member.
	ErrNilMember = errors.New("annotation: nil member")

	// ErrNoSuchMethod is returned by MethodValue when the named method does not exist.
	ErrNoSuchMethod = errors.New("annotation: no such method")

	// ErrNotAccessor is returned by MethodValue for methods that take arguments
	// or do not return exactly one value.
	ErrNotAccessor = errors.New("annotation: method is not an accessor")

	// ErrNotStruct is returned when a value is nil or not a struct.
	ErrNotStruct = errors.New("annotation: not a struct")
)
