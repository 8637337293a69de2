// Copyright (c) 2026 Harmonia. All rights reserved.

package language

import "context"

// Repository defines the data access contract for the language reference
// table.
type Repository interface {
	ListLanguages(ctx context.Context) ([]*Language, error)
	GetLanguage(ctx context.Context, id int) (*Language, error)
}
