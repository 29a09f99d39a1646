// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type modeEntry struct {
	Slug string `json:"slug"`
	SKU  string `json:"sku"`
}

func TestTypedCache_GetOrSet(t *testing.T) {
	mc := NewMemoryCache(MemoryCacheOptions{})
	defer func() { _ = mc.Close() }()
	tc := NewTypedCache[map[string]modeEntry](mc, "modes:", time.Minute)
	ctx := context.Background()

	calls := 0
	load := func() (map[string]modeEntry, error) {
		calls++
		return map[string]modeEntry{"verified": {Slug: "verified", SKU: "ASD"}}, nil
	}

	first, err := tc.GetOrSet(ctx, "course-v1:foo+baz+bar", load)
	require.NoError(t, err)
	second, err := tc.GetOrSet(ctx, "course-v1:foo+baz+bar", load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "ASD", second["verified"].SKU)
}

func TestTypedCache_ErrorNotCached(t *testing.T) {
	mc := NewMemoryCache(MemoryCacheOptions{})
	defer func() { _ = mc.Close() }()
	tc := NewTypedCache[int](mc, "n:", time.Minute)
	ctx := context.Background()

	boom := errors.New("boom")
	_, err := tc.GetOrSet(ctx, "k", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	_, ok := tc.Get(ctx, "k")
	assert.False(t, ok)
}

func TestTypedCache_Invalidate(t *testing.T) {
	mc := NewMemoryCache(MemoryCacheOptions{})
	defer func() { _ = mc.Close() }()
	a := NewTypedCache[string](mc, "a:", time.Minute)
	b := NewTypedCache[string](mc, "b:", time.Minute)
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "1", "x"))
	require.NoError(t, b.Set(ctx, "1", "y"))
	require.NoError(t, a.Invalidate(ctx))

	_, ok := a.Get(ctx, "1")
	assert.False(t, ok)
	got, ok := b.Get(ctx, "1")
	assert.True(t, ok)
	assert.Equal(t, "y", got)
}

func TestTypedCache_DecodeFailureIsMiss(t *testing.T) {
	mc := NewMemoryCache(MemoryCacheOptions{})
	defer func() { _ = mc.Close() }()
	ctx := context.Background()
	_ = mc.Set(ctx, "n:k", []byte("not json"), 0)

	tc := NewTypedCache[int](mc, "n:", time.Minute)
	_, ok := tc.Get(ctx, "k")
	assert.False(t, ok)
}
