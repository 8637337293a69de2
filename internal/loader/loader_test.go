// Copyright (c) 2026 Harmonia. All rights reserved.

package loader_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harmonia-catalog/harmonia/internal/loader"
)

type stubItem struct {
	CreatedAt time.Time
}

func TestNewPage_FullPageSetsNextCursor(t *testing.T) {
	now := time.Now()
	items := []stubItem{{CreatedAt: now.Add(-2 * time.Hour)}, {CreatedAt: now.Add(-time.Hour)}}
	page := loader.NewPage(items, loader.Cursor{Limit: 2}, func(i stubItem) time.Time { return i.CreatedAt })

	assert.NotNil(t, page.NextCursor)
	assert.True(t, page.NextCursor.Equal(items[1].CreatedAt))
}

func TestNewPage_PartialPageHasNoNextCursor(t *testing.T) {
	items := []stubItem{{CreatedAt: time.Now()}}
	page := loader.NewPage(items, loader.Cursor{Limit: 5}, func(i stubItem) time.Time { return i.CreatedAt })

	assert.Nil(t, page.NextCursor)
}

func TestNewPage_EmptyItemsHasNoNextCursor(t *testing.T) {
	page := loader.NewPage([]stubItem{}, loader.Cursor{Limit: 5}, func(i stubItem) time.Time { return i.CreatedAt })
	assert.Nil(t, page.NextCursor)
}
