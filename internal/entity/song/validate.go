// Copyright (c) 2026 Harmonia. All rights reserved.

package song

import (
	"context"

	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
	"github.com/harmonia-catalog/harmonia/internal/platform/validate"
)

// Validate checks payload against the song invariants: a title is required.
func Validate(ctx context.Context, p Payload) error {
	v := &validate.Validator{}

	v.Required(FieldTitle, p.Title).
		MinLen(FieldTitle, p.Title, constants.MinIdentifierLength).
		MaxLen(FieldTitle, p.Title, constants.MaxIdentifierLength).
		IdentifierSlug(FieldTitle, p.Title)

	return v.Err()
}
