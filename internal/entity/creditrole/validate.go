// Copyright (c) 2026 Harmonia. All rights reserved.

package creditrole

import (
	"context"

	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
	"github.com/harmonia-catalog/harmonia/internal/platform/validate"
)

// Validate checks payload against the credit-role invariants: a name is
// required and must be a valid identifier slug. Super-role ids are not
// checked.
func Validate(ctx context.Context, p Payload) error {
	v := &validate.Validator{}

	v.Required(FieldName, p.Name).
		MinLen(FieldName, p.Name, constants.MinIdentifierLength).
		MaxLen(FieldName, p.Name, constants.MaxIdentifierLength).
		IdentifierSlug(FieldName, p.Name)

	return v.Err()
}
