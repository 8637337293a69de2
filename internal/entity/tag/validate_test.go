// Copyright (c) 2026 Harmonia. All rights reserved.

package tag_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/entity/tag"
	"github.com/harmonia-catalog/harmonia/internal/platform/apperr"
)

func validPayload() tag.Payload {
	return tag.Payload{Name: "Shoegaze", TagType: tag.TypeGenre}
}

func TestValidate_RequiresName(t *testing.T) {
	p := validPayload()
	p.Name = ""

	err := tag.Validate(context.Background(), p)
	require.Error(t, err)
}

func TestValidate_RejectsUnknownTagType(t *testing.T) {
	p := validPayload()
	p.TagType = "nonsense"

	err := tag.Validate(context.Background(), p)
	require.Error(t, err)
}

func TestValidate_RejectsDuplicateRelations(t *testing.T) {
	p := validPayload()
	p.Relations = []tag.Relation{
		{RelatedTagID: "tag-2", Type: tag.RelationSubgenreOf},
		{RelatedTagID: "tag-2", Type: tag.RelationDerivedFrom},
	}

	err := tag.Validate(context.Background(), p)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "relations[1]", ae.Details[0].Field)
}

func TestValidate_DistinctRelationsPass(t *testing.T) {
	p := validPayload()
	p.Relations = []tag.Relation{
		{RelatedTagID: "tag-2", Type: tag.RelationSubgenreOf},
		{RelatedTagID: "tag-3", Type: tag.RelationDerivedFrom},
	}

	assert.NoError(t, tag.Validate(context.Background(), p))
}
