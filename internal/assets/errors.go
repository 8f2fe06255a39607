package assets

import "errors"

var (
	// ErrAssetMissing is returned when a folder image is not in the assets directory.
	ErrAssetMissing = errors.New("assets: folder image missing")

	// ErrNoUsableFont is returned when no candidate font file exists anywhere
	// on the search path.
	ErrNoUsableFont = errors.New("assets: no usable font")
)
