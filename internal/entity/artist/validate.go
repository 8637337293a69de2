// Copyright (c) 2026 Harmonia. All rights reserved.

package artist

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
	"github.com/harmonia-catalog/harmonia/internal/platform/validate"
)

// Validate checks payload against the artist invariants: an
// Unknown-type artist must carry no memberships, and every
// membership's tenure ranges must be monotonically non-overlapping.
func Validate(ctx context.Context, p Payload) error {
	v := &validate.Validator{}

	v.Required(FieldName, p.Name).
		MinLen(FieldName, p.Name, constants.MinIdentifierLength).
		MaxLen(FieldName, p.Name, constants.MaxIdentifierLength).
		IdentifierSlug(FieldName, p.Name)

	v.OneOf(FieldArtistType, string(p.ArtistType), string(TypeSolo), string(TypeMultiple), string(TypeUnknown))

	if p.ArtistType == TypeUnknown && len(p.Memberships) > 0 {
		v.Custom(FieldMemberships, true, "UnknownTypeArtistHasMembers")
	}

	for i, m := range p.Memberships {
		if err := validateTenure(m.Tenure); err != nil {
			v.Custom(fmt.Sprintf("%s[%d].%s", FieldMemberships, i, FieldTenure), true, err.Error())
		}
	}

	return v.Err()
}

// validateTenure checks that ranges are monotonically non-overlapping:
// for any consecutive pair (A,B), A.join < A.leave < B.join < B.leave,
// with absent bounds defaulting to -infinity/+infinity. A singleton range
// requires join <= leave when both are set.
func validateTenure(ranges []TenureRange) error {
	if len(ranges) == 0 {
		return nil
	}
	if len(ranges) == 1 {
		r := ranges[0]
		if r.Join != nil && r.Leave != nil && r.Join.After(*r.Leave) {
			return fmt.Errorf("tenure join must be on or before leave")
		}
		return nil
	}

	sorted := make([]TenureRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		return boundBefore(sorted[i].Join, sorted[j].Join)
	})

	for i := 0; i < len(sorted)-1; i++ {
		a, b := sorted[i], sorted[i+1]
		if !boundStrictlyBefore(a.Join, a.Leave) {
			return fmt.Errorf("tenure range %d: join must be strictly before leave", i)
		}
		if !boundStrictlyBefore(a.Leave, b.Join) {
			return fmt.Errorf("tenure ranges %d and %d overlap or are out of order", i, i+1)
		}
		if !boundStrictlyBefore(b.Join, b.Leave) {
			return fmt.Errorf("tenure range %d: join must be strictly before leave", i+1)
		}
	}
	return nil
}

// boundBefore orders possibly-nil join bounds for sorting, treating a nil
// bound as -infinity.
func boundBefore(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}

// boundStrictlyBefore reports whether a is strictly before b, treating a
// nil a as -infinity and a nil b as +infinity.
func boundStrictlyBefore(a, b *time.Time) bool {
	if a == nil || b == nil {
		return true
	}
	return a.Before(*b)
}
