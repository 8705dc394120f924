package template

import "errors"

// Domain errors for the template package.
var (
	// ErrInvalidTemplate is returned when template validation fails.
	ErrInvalidTemplate = errors.New("template: invalid")

	// ErrInvalidRange is returned when a range has min greater than max.
	ErrInvalidRange = errors.New("template: invalid range")

	// ErrInvalidPriority is returned when an entry priority is not recognised.
	ErrInvalidPriority = errors.New("template: invalid priority")

	// ErrInvalidPropertyType is returned when a property type is not recognised.
	ErrInvalidPropertyType = errors.New("template: invalid property type")

	// ErrUnknownProduct is returned when a template references a product
	// that does not exist in the catalogue.
	ErrUnknownProduct = errors.New("template: unknown product")

	// ErrDuplicateTemplate is returned when the seed file declares the
	// same template ID twice.
	ErrDuplicateTemplate = errors.New("template: duplicate id")

	// ErrEmptyRegistry is returned when the seed file contains no templates.
	ErrEmptyRegistry = errors.New("template: empty registry")
)
