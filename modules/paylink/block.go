// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package paylink

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/ocms-paylink/internal/model"
)

const (
	// BlockType is the component type registered with the host.
	BlockType = "payment_link"

	// DefaultDisplayName is shown until an author renames the block.
	DefaultDisplayName = "Enlace de Pago"

	// MaxDisplayNameLength bounds submitted display names, in runes.
	MaxDisplayNameLength = 255

	fieldDisplayName = "display_name"
)

// FieldStore persists block settings fields as JSON values.
type FieldStore interface {
	Get(ctx context.Context, usageID, name string, dst any) (bool, error)
	Set(ctx context.Context, usageID, name string, value any) error
}

// Block is one payment link instance in a course.
type Block struct {
	usage  model.UsageKey
	fields FieldStore

	courseIDOnce sync.Once
	courseID     string
	blockIDOnce  sync.Once
	blockID      string
}

// NewBlock binds a block instance to its usage key and field storage.
func NewBlock(usage model.UsageKey, fields FieldStore) *Block {
	return &Block{usage: usage, fields: fields}
}

// Usage returns the block's usage key.
func (b *Block) Usage() model.UsageKey { return b.usage }

// BlockCourseID returns the course id as a string, computed once.
func (b *Block) BlockCourseID() string {
	b.courseIDOnce.Do(func() {
		b.courseID = b.usage.Course.String()
	})
	return b.courseID
}

// BlockID returns the full usage id as a string, computed once.
func (b *Block) BlockID() string {
	b.blockIDOnce.Do(func() {
		b.blockID = b.usage.String()
	})
	return b.blockID
}

// DisplayName returns the stored display name or the default.
func (b *Block) DisplayName(ctx context.Context) string {
	var name string
	found, err := b.fields.Get(ctx, b.BlockID(), fieldDisplayName, &name)
	if err != nil {
		slog.Warn("failed to read component field",
			"component", BlockType, "block", b.BlockID(), "field", fieldDisplayName, "error", err)
		return DefaultDisplayName
	}
	if !found || name == "" {
		return DefaultDisplayName
	}
	return name
}

// SetDisplayName stores a cleaned display name and returns the value saved.
func (b *Block) SetDisplayName(ctx context.Context, name string) (string, error) {
	name = CleanDisplayName(name)
	if err := b.fields.Set(ctx, b.BlockID(), fieldDisplayName, name); err != nil {
		return "", err
	}
	return name, nil
}

var displayNamePolicy = bluemonday.StrictPolicy()

// CleanDisplayName strips markup, trims and truncates a submitted display
// name. An empty result becomes DefaultDisplayName. The result is plain text;
// templates escape it on output.
func CleanDisplayName(name string) string {
	name = strings.TrimSpace(html.UnescapeString(displayNamePolicy.Sanitize(name)))
	if r := []rune(name); len(r) > MaxDisplayNameLength {
		name = strings.TrimSpace(string(r[:MaxDisplayNameLength]))
	}
	if name == "" {
		return DefaultDisplayName
	}
	return name
}
