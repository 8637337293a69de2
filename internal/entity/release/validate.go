// Copyright (c) 2026 Harmonia. All rights reserved.

package release

import (
	"context"
	"fmt"

	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
	"github.com/harmonia-catalog/harmonia/internal/platform/validate"
)

// Validate checks payload against the release invariants: a title and a
// known release type are required, the recording window must not end
// before it starts, and every track must be either Linked (names a song)
// or Unlinked (carries its own title) but not neither.
func Validate(ctx context.Context, p Payload) error {
	v := &validate.Validator{}

	v.Required(FieldTitle, p.Title).
		MaxLen(FieldTitle, p.Title, constants.MaxIdentifierLength).
		IdentifierSlug(FieldTitle, p.Title)

	v.OneOf(FieldReleaseType, string(p.ReleaseType),
		string(TypeAlbum), string(TypeEP), string(TypeSingle), string(TypeCompilation), string(TypeOther))

	if p.RecordingStartDate.Value != nil && p.RecordingEndDate.Value != nil &&
		p.RecordingEndDate.Value.Before(*p.RecordingStartDate.Value) {
		v.Custom(FieldDiscs, true, "RecordingEndDateBeforeStartDate")
	}

	for di, disc := range p.Discs {
		for ti, tr := range disc.Tracks {
			field := fmt.Sprintf("%s[%d].tracks[%d]", FieldDiscs, di, ti)
			if tr.SongID == "" && tr.UnlinkedTitle == "" {
				v.Custom(field, true, "TrackMustBeLinkedOrCarryATitle")
			}
		}
	}

	return v.Err()
}
