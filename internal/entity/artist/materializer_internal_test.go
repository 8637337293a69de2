// Copyright (c) 2026 Harmonia. All rights reserved.

package artist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMembershipSides_SoloArtistIsMemberSide(t *testing.T) {
	memberID, groupID := resolveMembershipSides("artist-1", false, "group-9")

	assert.Equal(t, "artist-1", memberID)
	assert.Equal(t, "group-9", groupID)
}

func TestResolveMembershipSides_GroupArtistIsGroupSide(t *testing.T) {
	memberID, groupID := resolveMembershipSides("artist-1", true, "member-9")

	assert.Equal(t, "member-9", memberID)
	assert.Equal(t, "artist-1", groupID)
}

func TestEncodeDecodeTenure_RoundTrips(t *testing.T) {
	join := time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	ranges := []TenureRange{{Join: &join, Leave: nil}}

	raw, err := encodeTenure(ranges)
	require.NoError(t, err)

	decoded, err := decodeTenure(raw)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.True(t, decoded[0].Join.Equal(join))
	assert.Nil(t, decoded[0].Leave)
}

func TestEncodeDecodeTenure_EmptyRoundTripsToNil(t *testing.T) {
	raw, err := encodeTenure(nil)
	require.NoError(t, err)

	decoded, err := decodeTenure(raw)
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestEncodeDecodeImages_RoundTrips(t *testing.T) {
	images := []ImageRef{{ImageID: "img-1", Usage: "avatar"}, {ImageID: "img-2", Usage: "banner"}}

	raw, err := encodeImages(images)
	require.NoError(t, err)

	decoded, err := decodeImages(raw)
	require.NoError(t, err)
	assert.Equal(t, images, decoded)
}

func TestDecodeImages_EmptyBytesYieldsNil(t *testing.T) {
	decoded, err := decodeImages(nil)
	require.NoError(t, err)
	assert.Nil(t, decoded)
}
