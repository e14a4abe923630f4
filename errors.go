package captainhook

import "errors"

// Sentinel errors for library operations.
var (
	// ErrBlockNotFound is returned by block lookups when the begin marker is
	// absent. Inject treats it as a no-op and does not return it.
	ErrBlockNotFound = errors.New("block not found")

	// ErrMalformedBlock indicates a begin marker without a matching end marker,
	// or an end marker placed before its begin marker.
	ErrMalformedBlock = errors.New("malformed block")

	// ErrEmptyBlockID indicates an empty block ID was passed to Inject.
	ErrEmptyBlockID = errors.New("block ID cannot be empty")

	// Configuration errors.
	ErrUnknownExtension    = errors.New("no injection template for extension")
	ErrUnknownTemplateType = errors.New("unknown template type")
	ErrInvalidCommentStyle = errors.New("invalid comment style")
)
