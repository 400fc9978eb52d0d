// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vote holds the ballot-side logic shared by polls and surveys.

# Selection

Selection tracks picks for one question before submission:

	sel := vote.NewSelection(models.TypeSingleChoice)
	sel.Toggle("a")
	sel.Toggle("b") // selection is now {b}

In multi-choice mode Toggle flips membership, so toggling an option twice
restores the previous set. A disabled selection ignores toggles.

# Results

Percentage is the share of a total in [0, 100], and exactly 0 when either
input is zero or negative:

	vote.Percentage(3, 4)                      // 75
	vote.FormatPercentage(vote.Percentage(1, 4)) // "25.0%"

Tally, TallyPoll and TallySurvey build result rows; Bar renders one row as
a fixed-width text bar. Display rounding is not reconciled across options.
*/
package vote
