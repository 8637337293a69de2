// Copyright (c) 2026 Harmonia. All rights reserved.

package songlyrics

import (
	"context"

	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
	"github.com/harmonia-catalog/harmonia/internal/platform/validate"
)

// Validate checks payload against the song-lyrics invariants: content
// must not be empty, a song must be named and the language id must be
// positive.
func Validate(ctx context.Context, p Payload) error {
	v := &validate.Validator{}

	v.Required(FieldSongID, p.SongID)
	v.Custom("language_id", p.LanguageID <= 0, "Must be a positive language id")
	v.Required(FieldContent, p.Content).
		MaxLen(FieldContent, p.Content, constants.MaxIdentifierLength*20)

	return v.Err()
}
