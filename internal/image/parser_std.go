// Copyright (c) 2026 Harmonia. All rights reserved.

package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"slices"

	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
)

// StdParser implements [Parser] against the standard library's image
// package. No third-party image-decoding library covers this concern,
// so this leans on image/jpeg, image/png, and image/gif's format
// sniffing — the same decode-then-validate shape prior raster-image
// handling followed, just via Go's standard decoders.
//
// StdParser cannot encode WebP (the stdlib has no WebP encoder): when
// opts.TranscodeTo is "webp" the upload is accepted in its original
// format rather than transcoded, a limitation of this substitution.
type StdParser struct{}

// NewStdParser constructs a [StdParser].
func NewStdParser() *StdParser { return &StdParser{} }

func (p *StdParser) Parse(ctx context.Context, raw []byte, opts ParseOptions) (ParsedImage, error) {
	if len(raw) < opts.MinFileSizeBytes {
		return ParsedImage{}, ValidationError(fmt.Sprintf("file is smaller than the minimum of %d bytes", opts.MinFileSizeBytes))
	}
	if len(raw) > opts.MaxFileSizeBytes {
		return ParsedImage{}, ValidationError(fmt.Sprintf("file exceeds the maximum of %d bytes", opts.MaxFileSizeBytes))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return ParsedImage{}, ValidationError("not a decodable image: " + err.Error())
	}
	if len(opts.AllowedFormats) > 0 && !slices.Contains(opts.AllowedFormats, format) {
		return ParsedImage{}, ValidationError(fmt.Sprintf("format %q is not allowed", format))
	}
	if cfg.Width < opts.MinDimensionPx || cfg.Height < opts.MinDimensionPx {
		return ParsedImage{}, ValidationError(fmt.Sprintf("dimensions %dx%d are below the minimum of %dpx", cfg.Width, cfg.Height, opts.MinDimensionPx))
	}
	if cfg.Width > opts.MaxDimensionPx || cfg.Height > opts.MaxDimensionPx {
		return ParsedImage{}, ValidationError(fmt.Sprintf("dimensions %dx%d exceed the maximum of %dpx", cfg.Width, cfg.Height, opts.MaxDimensionPx))
	}
	if opts.TargetRatio != nil {
		ratio := float64(cfg.Width) / float64(cfg.Height)
		if diff := ratio - *opts.TargetRatio; diff < -constants.ImageAspectRatioTolerance || diff > constants.ImageAspectRatioTolerance {
			return ParsedImage{}, ValidationError(fmt.Sprintf("aspect ratio %.3f does not match the required %.3f", ratio, *opts.TargetRatio))
		}
	}

	out, ext := raw, format
	if opts.TranscodeTo != "" && opts.TranscodeTo != format {
		transcoded, newExt, ok := p.transcode(raw, opts.TranscodeTo)
		if ok {
			out, ext = transcoded, newExt
		}
	}

	return ParsedImage{Bytes: out, Extension: ext, WidthPx: cfg.Width, HeightPx: cfg.Height}, nil
}

// transcode re-encodes raw into target when stdlib supports encoding it,
// reporting ok=false (original bytes kept) otherwise — notably for
// "webp", which the standard library cannot encode.
func (p *StdParser) transcode(raw []byte, target string) (out []byte, ext string, ok bool) {
	switch target {
	case "jpeg", "jpg":
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, "", false
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, "", false
		}
		return buf.Bytes(), "jpeg", true
	case "png":
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, "", false
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", false
		}
		return buf.Bytes(), "png", true
	default:
		return nil, "", false
	}
}
