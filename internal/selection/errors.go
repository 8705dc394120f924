package selection

import "errors"

var (
	// ErrConfigurationNotFound indicates the requested configuration does
	// not exist.
	ErrConfigurationNotFound = errors.New("selection: configuration not found")

	// ErrConfigurationExists indicates a configuration with the same ID
	// already exists.
	ErrConfigurationExists = errors.New("selection: configuration already exists")

	// ErrInvalidConfiguration indicates the configuration failed validation.
	ErrInvalidConfiguration = errors.New("selection: invalid configuration")

	// ErrUnknownProduct indicates a selected item references a product ID
	// that is not in the catalogue.
	ErrUnknownProduct = errors.New("selection: unknown product")
)
