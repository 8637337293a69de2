// Copyright (c) 2026 Harmonia. All rights reserved.

package tag

import (
	"context"
	"fmt"

	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
	"github.com/harmonia-catalog/harmonia/internal/platform/validate"
)

// Validate checks payload against the tag invariants: a name is
// required, the tag type must be known, and no related tag may be listed
// twice. Whether a relation points at the tag itself is not checked.
func Validate(ctx context.Context, p Payload) error {
	v := &validate.Validator{}

	v.Required(FieldName, p.Name).
		MinLen(FieldName, p.Name, constants.MinIdentifierLength).
		MaxLen(FieldName, p.Name, constants.MaxIdentifierLength).
		IdentifierSlug(FieldName, p.Name)

	v.OneOf(FieldTagType, string(p.TagType),
		string(TypeGenre), string(TypeScene), string(TypeLanguage), string(TypeOther))

	seen := make(map[string]bool, len(p.Relations))
	for i, r := range p.Relations {
		if seen[r.RelatedTagID] {
			v.Custom(fmt.Sprintf("%s[%d]", FieldRelations, i), true, "duplicate relation to the same tag")
		}
		seen[r.RelatedTagID] = true
	}

	return v.Err()
}
