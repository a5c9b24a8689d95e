package assemble

import "errors"

var (
	// ErrReadSource indicates a template or metadata file could not be read.
	ErrReadSource = errors.New("read document source")
	// ErrInvalidMetadata indicates the metadata file is not a usable mapping.
	ErrInvalidMetadata = errors.New("invalid document metadata")
	// ErrTitle indicates the template has no level-one heading.
	ErrTitle = errors.New("title extraction failed")
	// ErrSample indicates an embedded sample could not be extracted.
	ErrSample = errors.New("sample resolution failed")
	// ErrInvalidSchema indicates a component schema has no usable $id.
	ErrInvalidSchema = errors.New("invalid component schema")
)
