// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package creditrole implements the CreditRole entity materializer: a
named contribution role (e.g. "Guitar", "Mixing") used by song and
release credits, organized into a super-role hierarchy.
*/
package creditrole

// Payload is the proposed state of a credit role.
type Payload struct {
	Name             string
	ShortDescription *string
	Description      *string
	SuperRoleIDs     []string
}

// # Field Identifiers

const (
	FieldName         = "name"
	FieldSuperRoleIDs = "super_role_ids"
)
