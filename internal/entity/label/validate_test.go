// Copyright (c) 2026 Harmonia. All rights reserved.

package label_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/entity/label"
	"github.com/harmonia-catalog/harmonia/pkg/pointer"
)

func validPayload() label.Payload {
	return label.Payload{Name: "Sony Music"}
}

func datePtr(t time.Time) *time.Time { return pointer.To(t) }

func TestValidate_RequiresName(t *testing.T) {
	p := validPayload()
	p.Name = ""

	err := label.Validate(context.Background(), p)
	require.Error(t, err)
}

func TestValidate_RejectsDissolvedBeforeFounded(t *testing.T) {
	p := validPayload()
	p.FoundedDate = label.Date{Value: datePtr(time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))}
	p.DissolvedDate = label.Date{Value: datePtr(time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC))}

	err := label.Validate(context.Background(), p)
	require.Error(t, err)
}

func TestValidate_AcceptsDissolvedAfterFounded(t *testing.T) {
	p := validPayload()
	p.FoundedDate = label.Date{Value: datePtr(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))}
	p.DissolvedDate = label.Date{Value: datePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))}

	assert.NoError(t, label.Validate(context.Background(), p))
}

func TestValidate_AcceptsOnlyFoundedDate(t *testing.T) {
	p := validPayload()
	p.FoundedDate = label.Date{Value: datePtr(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))}

	assert.NoError(t, label.Validate(context.Background(), p))
}
