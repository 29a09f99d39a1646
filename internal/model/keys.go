// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	courseKeyPrefix = "course-v1:"
	usageKeyPrefix  = "block-v1:"
)

// ErrInvalidKey is returned when a course or usage key cannot be parsed.
var ErrInvalidKey = errors.New("invalid key")

var keyPartPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-~]+$`)

// CourseKey identifies a course run.
type CourseKey struct {
	Org    string
	Course string
	Run    string
}

// ParseCourseKey parses "course-v1:org+course+run" or the legacy
// slash-separated "org/course/run" form.
func ParseCourseKey(s string) (CourseKey, error) {
	var parts []string
	switch {
	case strings.HasPrefix(s, courseKeyPrefix):
		parts = strings.Split(strings.TrimPrefix(s, courseKeyPrefix), "+")
	case strings.Count(s, "/") == 2:
		parts = strings.Split(s, "/")
	default:
		return CourseKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	if len(parts) != 3 {
		return CourseKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	for _, p := range parts {
		if !keyPartPattern.MatchString(p) {
			return CourseKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
		}
	}
	return CourseKey{Org: parts[0], Course: parts[1], Run: parts[2]}, nil
}

// String returns the canonical course-v1 form.
func (k CourseKey) String() string {
	return courseKeyPrefix + k.Org + "+" + k.Course + "+" + k.Run
}

// IsZero reports whether the key is empty.
func (k CourseKey) IsZero() bool {
	return k == CourseKey{}
}

// UsageKey identifies a block within a course.
type UsageKey struct {
	Course    CourseKey
	BlockType string
	BlockID   string
}

// NewUsageKey builds a usage key for a block in the given course.
func NewUsageKey(course CourseKey, blockType, blockID string) UsageKey {
	return UsageKey{Course: course, BlockType: blockType, BlockID: blockID}
}

// ParseUsageKey parses "block-v1:org+course+run+type@TYPE+block@ID".
func ParseUsageKey(s string) (UsageKey, error) {
	if !strings.HasPrefix(s, usageKeyPrefix) {
		return UsageKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	parts := strings.Split(strings.TrimPrefix(s, usageKeyPrefix), "+")
	if len(parts) != 5 {
		return UsageKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	course, err := ParseCourseKey(courseKeyPrefix + strings.Join(parts[:3], "+"))
	if err != nil {
		return UsageKey{}, err
	}
	blockType, ok := strings.CutPrefix(parts[3], "type@")
	if !ok || !keyPartPattern.MatchString(blockType) {
		return UsageKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	blockID, ok := strings.CutPrefix(parts[4], "block@")
	if !ok || !keyPartPattern.MatchString(blockID) {
		return UsageKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return UsageKey{Course: course, BlockType: blockType, BlockID: blockID}, nil
}

// String returns the canonical block-v1 form.
func (k UsageKey) String() string {
	return fmt.Sprintf("%s%s+%s+%s+type@%s+block@%s",
		usageKeyPrefix, k.Course.Org, k.Course.Course, k.Course.Run, k.BlockType, k.BlockID)
}

// Location returns the short block location used in rendered markup:
// everything after the last "@" of the key.
func (k UsageKey) Location() string {
	s := k.String()
	return s[strings.LastIndex(s, "@")+1:]
}
