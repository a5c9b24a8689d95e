package sample

import "errors"

var (
	// ErrInvalidPath is returned when a structured-data locator names a key that is absent.
	ErrInvalidPath = errors.New("invalid path")
	// ErrSymbolNotFound is returned when no line starts with the requested symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrNoBlockTerminator is returned when a matched symbol has no ':', '{' or ';' after it.
	ErrNoBlockTerminator = errors.New("no block terminator found")
	// ErrUnbalancedBlock is returned when a brace block never closes.
	ErrUnbalancedBlock = errors.New("unbalanced brace block")
	// ErrUnsupportedType is returned for sample types other than yml and proto.
	ErrUnsupportedType = errors.New("unsupported sample type")
	// ErrExtractionFailed covers empty locators and unreadable sources.
	ErrExtractionFailed = errors.New("extraction failed")
)
