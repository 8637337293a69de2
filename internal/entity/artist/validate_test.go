// Copyright (c) 2026 Harmonia. All rights reserved.

package artist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/entity/artist"
	"github.com/harmonia-catalog/harmonia/internal/platform/apperr"
	"github.com/harmonia-catalog/harmonia/pkg/pointer"
)

func at(year int, month time.Month, day int) *time.Time {
	return pointer.To(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func validPayload() artist.Payload {
	return artist.Payload{Name: "Yoko Kanno", ArtistType: artist.TypeSolo}
}

func TestValidate_RequiresName(t *testing.T) {
	p := validPayload()
	p.Name = ""

	err := artist.Validate(context.Background(), p)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, artist.FieldName, ae.Details[0].Field)
}

func TestValidate_RejectsUnknownArtistTypeWithMemberships(t *testing.T) {
	p := validPayload()
	p.ArtistType = artist.TypeUnknown
	p.Memberships = []artist.Membership{{CounterpartArtistID: "group-1"}}

	err := artist.Validate(context.Background(), p)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UnknownTypeArtistHasMembers", ae.Details[0].Message)
}

func TestValidate_AllowsUnknownArtistTypeWithoutMemberships(t *testing.T) {
	p := validPayload()
	p.ArtistType = artist.TypeUnknown

	assert.NoError(t, artist.Validate(context.Background(), p))
}

func TestValidate_SingletonTenureRequiresJoinBeforeLeave(t *testing.T) {
	p := validPayload()
	p.ArtistType = artist.TypeMultiple
	p.Memberships = []artist.Membership{{
		CounterpartArtistID: "member-1",
		Tenure:              []artist.TenureRange{{Join: at(2010, time.January, 1), Leave: at(2005, time.January, 1)}},
	}}

	err := artist.Validate(context.Background(), p)
	require.Error(t, err)
}

func TestValidate_SingletonTenureAllowsOpenBounds(t *testing.T) {
	p := validPayload()
	p.ArtistType = artist.TypeMultiple
	p.Memberships = []artist.Membership{{
		CounterpartArtistID: "member-1",
		Tenure:              []artist.TenureRange{{Join: at(2010, time.January, 1), Leave: nil}},
	}}

	assert.NoError(t, artist.Validate(context.Background(), p))
}

func TestValidate_NonOverlappingTenureRangesPass(t *testing.T) {
	p := validPayload()
	p.ArtistType = artist.TypeMultiple
	p.Memberships = []artist.Membership{{
		CounterpartArtistID: "member-1",
		Tenure: []artist.TenureRange{
			{Join: nil, Leave: at(2005, time.January, 1)},
			{Join: at(2008, time.January, 1), Leave: at(2012, time.January, 1)},
			{Join: at(2015, time.January, 1), Leave: nil},
		},
	}}

	assert.NoError(t, artist.Validate(context.Background(), p))
}

func TestValidate_OverlappingTenureRangesFail(t *testing.T) {
	p := validPayload()
	p.ArtistType = artist.TypeMultiple
	p.Memberships = []artist.Membership{{
		CounterpartArtistID: "member-1",
		Tenure: []artist.TenureRange{
			{Join: at(2008, time.January, 1), Leave: at(2012, time.January, 1)},
			{Join: at(2011, time.January, 1), Leave: at(2015, time.January, 1)},
		},
	}}

	err := artist.Validate(context.Background(), p)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "memberships[0].tenure", ae.Details[0].Field)
}

func TestValidate_UnorderedTenureRangesAreSortedBeforeChecking(t *testing.T) {
	p := validPayload()
	p.ArtistType = artist.TypeMultiple
	p.Memberships = []artist.Membership{{
		CounterpartArtistID: "member-1",
		Tenure: []artist.TenureRange{
			{Join: at(2015, time.January, 1), Leave: nil},
			{Join: nil, Leave: at(2005, time.January, 1)},
		},
	}}

	assert.NoError(t, artist.Validate(context.Background(), p))
}
