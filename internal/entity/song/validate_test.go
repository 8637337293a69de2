// Copyright (c) 2026 Harmonia. All rights reserved.

package song_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/entity/song"
)

func validPayload() song.Payload {
	return song.Payload{Title: "Ref:rain"}
}

func TestValidate_RequiresTitle(t *testing.T) {
	p := validPayload()
	p.Title = ""

	err := song.Validate(context.Background(), p)
	require.Error(t, err)
}

func TestValidate_AcceptsCreditsAndLocalizedTitles(t *testing.T) {
	p := validPayload()
	p.Credits = []song.Credit{{ArtistID: "artist-1", RoleID: "role-1"}}
	p.LanguageIDs = []int{1, 2}
	p.LocalizedTitles = []song.LocalizedTitle{{LanguageID: 1, Title: "リフレイン"}}

	assert.NoError(t, song.Validate(context.Background(), p))
}

func TestValidate_RejectsTitleAboveMaxLength(t *testing.T) {
	p := validPayload()
	p.Title = string(make([]byte, 513))

	err := song.Validate(context.Background(), p)
	require.Error(t, err)
}
