package models

import "time"

// Question type tags
const (
	TypeSingleChoice = "singleChoice"
	TypeMultiChoice  = "multipleChoice"
	TypeShortText    = "textShort"
	TypeLongText     = "textLong"
)

// Subject kinds
const (
	KindPoll   = "poll"
	KindSurvey = "survey"
)

// Form limits
const (
	MinOptions   = 2
	MaxOptions   = 10
	MinQuestions = 1
	MaxQuestions = 20
	MinPassword  = 6
)

// NormalizeType maps the hyphenated spellings (single-choice,
// multi-choice, short-text, long-text) onto the wire tags. Anything else
// is returned unchanged.
func NormalizeType(questionType string) string {
	switch questionType {
	case "single-choice":
		return TypeSingleChoice
	case "multi-choice":
		return TypeMultiChoice
	case "short-text":
		return TypeShortText
	case "long-text":
		return TypeLongText
	}
	return questionType
}

// IsChoice reports whether a question type carries options.
func IsChoice(questionType string) bool {
	questionType = NormalizeType(questionType)
	return questionType == TypeSingleChoice || questionType == TypeMultiChoice
}

// Account types

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Board types

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Author string `json:"author,omitempty"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

// Poll and survey types

// Option IDs stay stable across edits; Votes is never negative.
type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author"`
	AuthorID    string    `json:"authorId"`
	CreatedAt   time.Time `json:"createdAt"`
	Type        string    `json:"pollType"`
	Options     []Option  `json:"options"`
	TotalVotes  int       `json:"totalVotes"`
}

type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []Option `json:"options,omitempty"`
}

type Survey struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Author           string     `json:"author"`
	AuthorID         string     `json:"authorId"`
	CreatedAt        time.Time  `json:"createdAt"`
	Questions        []Question `json:"questions"`
	TotalRespondents int        `json:"totalRespondents"`
}

type CastVoteRequest struct {
	OptionIDs []string `json:"optionIds"`
}

// Answer holds either selected option IDs or free text, depending on the
// question type.
type Answer struct {
	OptionIDs []string `json:"optionIds,omitempty"`
	Text      string   `json:"text,omitempty"`
}

// question_id -> answer
type SubmitResponseRequest struct {
	Answers map[string]Answer `json:"answers"`
}

// Local types

// VoteRecord is the client-side participation marker. It is advisory only.
type VoteRecord struct {
	Kind       string    `json:"kind"`
	SubjectID  string    `json:"subject_id"`
	UserID     string    `json:"user_id"`
	OptionIDs  []string  `json:"option_ids"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
