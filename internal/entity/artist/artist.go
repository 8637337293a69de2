// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package artist implements the Artist entity materializer: a performer
(Solo), a group of performers (Multiple), or a placeholder for an
unidentified credited party (Unknown).

The plain CRUD shape is generalized with history/reapply and the
richer child relations (aliases, links, localized names, directed
memberships, image references) a versioned catalog entity requires.
*/
package artist

import "time"

// Type is the kind of artist: an individual, a group of individuals, or
// a placeholder for a credited party that has not been identified yet.
type Type string

const (
	TypeSolo     Type = "solo"
	TypeMultiple Type = "multiple"
	TypeUnknown  Type = "unknown"
)

// DatePrecision is the granularity at which a partial date is known.
type DatePrecision string

const (
	PrecisionDay   DatePrecision = "day"
	PrecisionMonth DatePrecision = "month"
	PrecisionYear  DatePrecision = "year"
)

// Date is a value/precision pair; both must be set or unset together.
type Date struct {
	Value     *time.Time
	Precision *DatePrecision
}

// IsSet reports whether the date carries a value.
func (d Date) IsSet() bool { return d.Value != nil }

// Consistent reports whether Value and Precision are both set or both unset.
func (d Date) Consistent() bool {
	return (d.Value == nil) == (d.Precision == nil)
}

// LocalizedName is a name in one language other than the primary Name.
type LocalizedName struct {
	LanguageID int
	Name       string
}

// Link is an external URL associated with the artist (official site,
// social profile, streaming page).
type Link struct {
	URL string
}

// TenureRange is one join/leave interval of a [Membership]. Absent bounds
// default to -infinity/+infinity for overlap comparisons.
type TenureRange struct {
	Join  *time.Time
	Leave *time.Time
}

// Membership is one directed edge of the artist membership graph. For a
// Solo artist being created, CounterpartArtistID names the group it
// belongs to; for a Multiple artist, it names one of its members. The
// materializer resolves which side of the live membership row this
// artist occupies from its own ArtistType.
type Membership struct {
	CounterpartArtistID string
	Roles               []string
	Tenure              []TenureRange
}

// ImageRef is an image this artist uses, tagged with how (avatar, banner, …).
type ImageRef struct {
	ImageID string
	Usage   string
}

// Payload is the proposed state of an artist, as submitted to the
// correction engine by propose_create/propose_update.
type Payload struct {
	Name            string
	ArtistType      Type
	TextAliases     []string
	StartDate       Date
	EndDate         Date
	StartLocation   *string
	CurrentLocation *string

	AliasArtistIDs []string
	Links          []Link
	LocalizedNames []LocalizedName
	Memberships    []Membership
	Images         []ImageRef
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldArtistType  = "artist_type"
	FieldMemberships = "memberships"
	FieldTenure      = "tenure"
)
