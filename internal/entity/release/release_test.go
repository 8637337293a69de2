// Copyright (c) 2026 Harmonia. All rights reserved.

package release_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harmonia-catalog/harmonia/internal/entity/release"
)

func TestTrack_IsLinked(t *testing.T) {
	assert.True(t, release.Track{SongID: "song-1"}.IsLinked())
	assert.False(t, release.Track{UnlinkedTitle: "A B-Side"}.IsLinked())
	assert.False(t, release.Track{}.IsLinked())
}
