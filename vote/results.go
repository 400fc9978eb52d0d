// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/jeung1234/community/models"
)

// Percentage returns the share of totalVotes held by optionVotes, in
// [0, 100]. Zero or negative inputs yield exactly 0 so an empty poll never
// draws a bar.
func Percentage(optionVotes, totalVotes int) float64 {
	if totalVotes <= 0 || optionVotes <= 0 {
		return 0
	}
	if optionVotes > totalVotes {
		slog.Debug("option votes exceed total, capping at 100%",
			"option_votes", optionVotes,
			"total_votes", totalVotes,
		)
		return 100
	}
	return float64(optionVotes) / float64(totalVotes) * 100
}

// FormatPercentage renders p with one decimal digit, e.g. "75.0%".
// Shares are not reconciled to sum to 100.
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// OptionResult is one row of a results table.
type OptionResult struct {
	ID      string  `json:"id"`
	Text    string  `json:"text"`
	Votes   int     `json:"votes"`
	Percent float64 `json:"percent"`
}

func (r OptionResult) Label() string { return FormatPercentage(r.Percent) }

// Tally computes the share of each option against total.
func Tally(options []models.Option, total int) []OptionResult {
	results := make([]OptionResult, 0, len(options))
	for _, opt := range options {
		results = append(results, OptionResult{
			ID:      opt.ID,
			Text:    opt.Text,
			Votes:   opt.Votes,
			Percent: Percentage(opt.Votes, total),
		})
	}
	return results
}

// SumVotes adds up option votes, ignoring negative counts.
func SumVotes(options []models.Option) int {
	total := 0
	for _, opt := range options {
		if opt.Votes > 0 {
			total += opt.Votes
		}
	}
	return total
}

// QuestionResults is the tally of one survey question. Its denominator is
// the sum of the question's option votes, so multi-choice shares are
// shares of picks, not of respondents.
type QuestionResults struct {
	QuestionID string         `json:"question_id"`
	Text       string         `json:"text"`
	Type       string         `json:"type"`
	Total      int            `json:"total"`
	Options    []OptionResult `json:"options"`
}

// TallyPoll tallies a poll against its total vote count.
func TallyPoll(p models.Poll) []OptionResult {
	return Tally(p.Options, p.TotalVotes)
}

// TallySurvey tallies every choice question of a survey. Text questions
// are skipped.
func TallySurvey(s models.Survey) []QuestionResults {
	var out []QuestionResults
	for _, q := range s.Questions {
		if !models.IsChoice(q.Type) {
			continue
		}
		total := SumVotes(q.Options)
		out = append(out, QuestionResults{
			QuestionID: q.ID,
			Text:       q.Text,
			Type:       q.Type,
			Total:      total,
			Options:    Tally(q.Options, total),
		})
	}
	return out
}

// Bar draws a proportional bar of the given width using fill for the
// covered part and pad for the rest.
func Bar(percent float64, width int, fill, pad string) string {
	if width <= 0 {
		return ""
	}
	n := int(math.Round(percent / 100 * float64(width)))
	n = max(0, min(n, width))
	return strings.Repeat(fill, n) + strings.Repeat(pad, width-n)
}
