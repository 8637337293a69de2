// Copyright (c) 2026 Harmonia. All rights reserved.

package event

import (
	"context"

	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
	"github.com/harmonia-catalog/harmonia/internal/platform/validate"
)

// Validate checks payload against the event invariants: a name is
// required, and an end date (if set) may not precede the start date
// (if set).
func Validate(ctx context.Context, p Payload) error {
	v := &validate.Validator{}

	v.Required(FieldName, p.Name).
		MinLen(FieldName, p.Name, constants.MinIdentifierLength).
		MaxLen(FieldName, p.Name, constants.MaxIdentifierLength).
		IdentifierSlug(FieldName, p.Name)

	if p.StartDate.Value != nil && p.EndDate.Value != nil && p.EndDate.Value.Before(*p.StartDate.Value) {
		v.Custom("end_date", true, "must be on or after start_date")
	}

	return v.Err()
}
