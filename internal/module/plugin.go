// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package module

import (
	"sort"
	"sync"

	"github.com/olegiv/ocms-paylink/internal/config"
)

// Settings types. Common settings always apply; production settings apply
// on top of them outside development.
const (
	SettingsCommon     = "common"
	SettingsProduction = "production"
)

// SettingsFunc mutates host settings on behalf of a plugin.
type SettingsFunc func(s *Settings)

// Plugin is an optional interface for modules that contribute host settings,
// keyed by project type (config.ProjectLMS, config.ProjectCMS) and then
// settings type.
type Plugin interface {
	PluginSettings() map[string]map[string]SettingsFunc
}

// Settings collects what plugins enabled for the running project.
type Settings struct {
	Project string

	mu         sync.RWMutex
	components map[string]bool
}

// NewSettings creates empty settings for a project.
func NewSettings(project string) *Settings {
	return &Settings{
		Project:    project,
		components: make(map[string]bool),
	}
}

// EnableComponent makes a component type available to courses.
func (s *Settings) EnableComponent(blockType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components[blockType] = true
}

// ComponentEnabled reports whether a component type was enabled.
func (s *Settings) ComponentEnabled(blockType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.components[blockType]
}

// Components returns the enabled component types, sorted.
func (s *Settings) Components() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.components))
	for name := range s.components {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsStudio reports whether the settings belong to the authoring project.
func (s *Settings) IsStudio() bool {
	return s.Project == config.ProjectCMS
}
