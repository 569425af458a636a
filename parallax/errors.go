package parallax

import "errors"

var (
	ErrNoCoordinator        = errors.New("parallax: no coordinator")
	ErrAmbiguousCoordinator = errors.New("parallax: more than one coordinator")
	ErrUnknownKind          = errors.New("parallax: unknown layer kind")
	ErrUnknownOffsetMode    = errors.New("parallax: unknown offset mode")
	ErrUnknownTileMode      = errors.New("parallax: unknown tile mode")
)
