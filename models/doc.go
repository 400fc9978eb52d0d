// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the data exchanged with the community backend and
the records kept in the local store.

# Account and Board

  - User: id, name, email (password only travels on register/login/update)
  - Post: board entry with author name and id
  - Comment: reply attached to a post

# Polls and Surveys

  - Poll: single question, typed singleChoice or multipleChoice
  - Survey: ordered questions, each independently typed
  - Question: choice questions carry Options, text questions do not
  - Option: id stable across edits, vote count never negative

# Local Records

  - VoteRecord: (kind, subject, user) -> selected option ids

# Constants

Question types:

	TypeSingleChoice = "singleChoice"
	TypeMultiChoice  = "multipleChoice"
	TypeShortText    = "textShort"
	TypeLongText     = "textLong"

Subject kinds:

	KindPoll   = "poll"
	KindSurvey = "survey"
*/
package models
