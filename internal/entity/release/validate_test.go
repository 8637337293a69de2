// Copyright (c) 2026 Harmonia. All rights reserved.

package release_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/entity/release"
)

func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func validPayload() release.Payload {
	return release.Payload{
		Title:       "A Perfect Vacuum",
		ReleaseType: release.TypeAlbum,
		Discs: []release.Disc{
			{Tracks: []release.Track{{SongID: "song-1"}}},
		},
	}
}

func TestValidate_RequiresTitle(t *testing.T) {
	p := validPayload()
	p.Title = ""
	require.Error(t, release.Validate(context.Background(), p))
}

func TestValidate_RejectsUnknownReleaseType(t *testing.T) {
	p := validPayload()
	p.ReleaseType = "bootleg"
	require.Error(t, release.Validate(context.Background(), p))
}

func TestValidate_RejectsTrackThatIsNeitherLinkedNorTitled(t *testing.T) {
	p := validPayload()
	p.Discs[0].Tracks = append(p.Discs[0].Tracks, release.Track{})
	require.Error(t, release.Validate(context.Background(), p))
}

func TestValidate_AcceptsUnlinkedTrackWithOwnTitle(t *testing.T) {
	p := validPayload()
	p.Discs[0].Tracks = append(p.Discs[0].Tracks, release.Track{UnlinkedTitle: "A B-Side"})
	assert.NoError(t, release.Validate(context.Background(), p))
}

func TestValidate_RejectsRecordingEndBeforeStart(t *testing.T) {
	p := validPayload()
	start := mustParseDate(t, "2020-06-01")
	end := mustParseDate(t, "2020-01-01")
	p.RecordingStartDate.Value = &start
	p.RecordingEndDate.Value = &end
	require.Error(t, release.Validate(context.Background(), p))
}
