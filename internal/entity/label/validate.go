// Copyright (c) 2026 Harmonia. All rights reserved.

package label

import (
	"context"

	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
	"github.com/harmonia-catalog/harmonia/internal/platform/validate"
)

// Validate checks payload against the label invariants: a name is
// required, and a dissolved date (if set) may not precede the founded
// date (if set).
func Validate(ctx context.Context, p Payload) error {
	v := &validate.Validator{}

	v.Required(FieldName, p.Name).
		MinLen(FieldName, p.Name, constants.MinIdentifierLength).
		MaxLen(FieldName, p.Name, constants.MaxIdentifierLength).
		IdentifierSlug(FieldName, p.Name)

	if p.FoundedDate.Value != nil && p.DissolvedDate.Value != nil && p.DissolvedDate.Value.Before(*p.FoundedDate.Value) {
		v.Custom("dissolved_date", true, "must be on or after founded_date")
	}

	return v.Err()
}
