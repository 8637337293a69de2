// Copyright (c) 2026 Harmonia. All rights reserved.

package songlyrics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/entity/songlyrics"
)

func TestValidate_RequiresSongIDAndContent(t *testing.T) {
	err := songlyrics.Validate(context.Background(), songlyrics.Payload{})
	require.Error(t, err)
}

func TestValidate_AcceptsCompletePayload(t *testing.T) {
	p := songlyrics.Payload{SongID: "song-1", LanguageID: 1, Content: "la la la", IsMain: true}
	assert.NoError(t, songlyrics.Validate(context.Background(), p))
}
