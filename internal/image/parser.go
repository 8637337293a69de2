// Copyright (c) 2026 Harmonia. All rights reserved.

package image

import (
	"context"
	"fmt"

	"github.com/harmonia-catalog/harmonia/internal/platform/apperr"
	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
)

// ParsedImage is the validated (and possibly transcoded) result of
// [Parser.Parse]: the bytes actually written to storage plus the
// extension they should be saved under.
type ParsedImage struct {
	Bytes     []byte
	Extension string
	WidthPx   int
	HeightPx  int
}

// ParseOptions bounds what [Parser.Parse] accepts, mirroring the
// configurable validation ranges of the system this pipeline is modeled
// on: a file-size window, a dimension window, an optional target aspect
// ratio (with tolerance), and an optional transcode target format.
type ParseOptions struct {
	MinFileSizeBytes int
	MaxFileSizeBytes int
	MinDimensionPx   int
	MaxDimensionPx   int
	AllowedFormats   []string
	TargetRatio      *float64
	TranscodeTo      string
}

// DefaultParseOptions returns the bounds applied when a caller does not
// override them.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		MinFileSizeBytes: constants.MinImageFileSizeBytes,
		MaxFileSizeBytes: constants.MaxImageFileSizeBytes,
		MinDimensionPx:   constants.MinImageDimensionPx,
		MaxDimensionPx:   constants.MaxImageDimensionPx,
		AllowedFormats:   []string{"jpeg", "png", "webp"},
		TranscodeTo:      constants.DefaultImageTranscodeFormat,
	}
}

// Parser validates raw upload bytes against [ParseOptions] and returns
// the bytes actually destined for storage (transcoded, if configured).
// Implementations wrap a concrete image-decoding library; this package
// only depends on the interface so that library is swappable without
// touching [Service].
type Parser interface {
	Parse(ctx context.Context, raw []byte, opts ParseOptions) (ParsedImage, error)
}

// FileStorage writes and removes image blobs at a storage-relative path
// (see [Image.Path]). Implementations may back onto local disk, S3, or
// any other blob store; [Service] never assumes a concrete backend.
type FileStorage interface {
	Write(ctx context.Context, path string, data []byte) error
	Remove(ctx context.Context, path string) error
}

// ValidationError wraps a rejected-upload reason as an [apperr.AppError]
// (422 Unprocessable).
func ValidationError(reason string) error {
	return apperr.Unprocessable(fmt.Sprintf("image rejected: %s", reason))
}
