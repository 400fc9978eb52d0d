// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"slices"

	"github.com/jeung1234/community/models"
)

// Selection tracks the options picked for one choice question before the
// ballot is submitted. It has no side effects beyond its own state.
type Selection struct {
	multi    bool
	disabled bool
	ids      []string
}

// NewSelection returns an empty selection for the question type. Types
// other than multipleChoice behave as single choice.
func NewSelection(questionType string) *Selection {
	return &Selection{multi: models.NormalizeType(questionType) == models.TypeMultiChoice}
}

// Toggle applies a click on optionID. In single-choice mode the option
// replaces any prior pick; in multi-choice mode its membership flips.
// It reports whether the selection changed.
func (s *Selection) Toggle(optionID string) bool {
	if s.disabled || optionID == "" {
		return false
	}

	if !s.multi {
		if len(s.ids) == 1 && s.ids[0] == optionID {
			return false
		}
		s.ids = []string{optionID}
		return true
	}

	if i := slices.Index(s.ids, optionID); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return true
	}
	s.ids = append(s.ids, optionID)
	return true
}

// Disable freezes the selection. Used for authors and for viewers who
// already participated.
func (s *Selection) Disable() { s.disabled = true }

func (s *Selection) Disabled() bool { return s.disabled }

// Selected returns the picked option IDs in click order.
func (s *Selection) Selected() []string {
	return slices.Clone(s.ids)
}

func (s *Selection) Contains(optionID string) bool {
	return slices.Contains(s.ids, optionID)
}

func (s *Selection) Empty() bool { return len(s.ids) == 0 }

// Restore replaces the selection, bypassing Disable. It shows what a
// returning voter picked last time.
func (s *Selection) Restore(optionIDs []string) {
	s.ids = slices.Clone(optionIDs)
	if !s.multi && len(s.ids) > 1 {
		s.ids = s.ids[:1]
	}
}
