// Copyright (c) 2026 Harmonia. All rights reserved.

package creditrole_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/entity/creditrole"
)

func validPayload() creditrole.Payload {
	return creditrole.Payload{Name: "Guitar"}
}

func TestValidate_RequiresName(t *testing.T) {
	p := validPayload()
	p.Name = ""

	err := creditrole.Validate(context.Background(), p)
	require.Error(t, err)
}

func TestValidate_AcceptsSuperRoles(t *testing.T) {
	p := validPayload()
	p.SuperRoleIDs = []string{"role-strings"}

	assert.NoError(t, creditrole.Validate(context.Background(), p))
}

func TestValidate_RejectsNameAboveMaxLength(t *testing.T) {
	p := validPayload()
	p.Name = string(make([]byte, 513))

	err := creditrole.Validate(context.Background(), p)
	require.Error(t, err)
}
