// Copyright (c) 2026 Harmonia. All rights reserved.

package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/entity/event"
	"github.com/harmonia-catalog/harmonia/pkg/pointer"
)

func validPayload() event.Payload {
	return event.Payload{Name: "Fuji Rock Festival"}
}

func datePtr(t time.Time) *time.Time { return pointer.To(t) }

func TestValidate_RequiresName(t *testing.T) {
	p := validPayload()
	p.Name = ""

	err := event.Validate(context.Background(), p)
	require.Error(t, err)
}

func TestValidate_RejectsEndBeforeStart(t *testing.T) {
	p := validPayload()
	p.StartDate = event.Date{Value: datePtr(time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC))}
	p.EndDate = event.Date{Value: datePtr(time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC))}

	err := event.Validate(context.Background(), p)
	require.Error(t, err)
}

func TestValidate_AcceptsEndAfterStart(t *testing.T) {
	p := validPayload()
	p.StartDate = event.Date{Value: datePtr(time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC))}
	p.EndDate = event.Date{Value: datePtr(time.Date(2026, 7, 22, 0, 0, 0, 0, time.UTC))}

	assert.NoError(t, event.Validate(context.Background(), p))
}

func TestValidate_AcceptsAlternativeNames(t *testing.T) {
	p := validPayload()
	p.AlternativeNames = []string{"FRF"}

	assert.NoError(t, event.Validate(context.Background(), p))
}
