// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/jeung1234/community/api"
	"github.com/jeung1234/community/auth"
	"github.com/jeung1234/community/guard"
	"github.com/jeung1234/community/models"
	"github.com/jeung1234/community/validate"
	"github.com/jeung1234/community/view"
	"github.com/jeung1234/community/vote"
)

// ErrUsage means the command line was malformed.
var ErrUsage = errors.New("usage error")

// Env is what every command handler needs.
type Env struct {
	Client    *api.Client
	Session   *auth.Holder
	Guard     guard.Guard
	Out       io.Writer
	Notifier  view.Notifier
	Navigator view.Navigator
	Style     Style
}

// Style controls how result bars are drawn.
type Style struct {
	Fill     string
	Pad      string
	BarWidth int
}

var (
	UnicodeStyle = Style{Fill: "█", Pad: "░", BarWidth: 20}
	ASCIIStyle   = Style{Fill: "#", Pad: ".", BarWidth: 20}
)

// StyleFor picks Unicode bars when w is a terminal.
func StyleFor(w io.Writer) Style {
	f, ok := w.(*os.File)
	if !ok {
		return ASCIIStyle
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return UnicodeStyle
	}
	return ASCIIStyle
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

// currentUser returns the signed-in user or sends the viewer to the login
// page.
func (e *Env) currentUser(action string) (models.User, error) {
	user, ok := e.Session.User()
	if !ok {
		e.Notifier.Notify(view.LevelWarn, "Log in to "+action+".")
		e.Navigator.Navigate(view.LoginPath)
		return models.User{}, auth.ErrNotSignedIn
	}
	return user, nil
}

// fail reports err to the user and moves them to fallback. Authorization
// failures always lead to the login page.
func (e *Env) fail(err error, message, fallback string) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		e.Notifier.Notify(view.LevelError, message+" Please log in again.")
		e.Navigator.Navigate(view.LoginPath)
		return err
	case errors.Is(err, validate.ErrInvalid):
		var ve *validate.Error
		if errors.As(err, &ve) {
			e.Notifier.Notify(view.LevelWarn, ve.Message)
		} else {
			e.Notifier.Notify(view.LevelWarn, message)
		}
		return err
	case errors.Is(err, api.ErrTransport):
		e.Notifier.Notify(view.LevelError, "The server is unreachable.")
	default:
		var ae *api.Error
		if errors.As(err, &ae) && ae.Message != "" {
			e.Notifier.Notify(view.LevelError, message+" ("+ae.Message+")")
		} else {
			e.Notifier.Notify(view.LevelError, message)
		}
	}
	if fallback != "" {
		e.Navigator.Navigate(fallback)
	}
	return err
}

func (e *Env) usage(text string) error {
	e.Notifier.Notify(view.LevelWarn, "usage: "+text)
	return ErrUsage
}

func (e *Env) deps() view.Deps {
	return view.Deps{
		Guard:     e.Guard,
		Session:   e.Session,
		Notifier:  e.Notifier,
		Navigator: e.Navigator,
	}
}

// newFlagSet returns a flag set for a subcommand that reports errors
// instead of exiting.
func (e *Env) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse parses args and returns the positional arguments. Flags may appear
// before or after positionals.
func (e *Env) parse(fs *flag.FlagSet, args []string, usage string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, e.usage(usage)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// choice converts a 1-based position typed by the user into an index.
func choice(s string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("%w: choice %q is not between 1 and %d", ErrUsage, s, n)
	}
	return i - 1, nil
}

// byNewest sorts a copy of items, newest first. Ties keep backend order.
func byNewest[T any](items []T, createdAt func(T) time.Time) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return createdAt(b).Compare(createdAt(a))
	})
	return out
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func count(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return humanize.Comma(int64(n)) + " " + plural
}

func typeLabel(t string) string {
	switch t {
	case models.TypeSingleChoice:
		return "single choice"
	case models.TypeMultiChoice:
		return "multiple choice"
	case models.TypeShortText:
		return "short text"
	case models.TypeLongText:
		return "long text"
	}
	return t
}

// parseType accepts the short names used on the command line.
func parseType(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "singlechoice", "":
		return models.TypeSingleChoice, true
	case "multi", "multiple", "multiplechoice":
		return models.TypeMultiChoice, true
	case "short", "textshort":
		return models.TypeShortText, true
	case "long", "textlong":
		return models.TypeLongText, true
	}
	return "", false
}

// printResults renders tallies, marking the viewer's own picks.
func (e *Env) printResults(results []vote.QuestionResults, picked func(questionID, optionID string) bool, showQuestion bool) {
	for qi, q := range results {
		if showQuestion {
			e.printf("%d. %s (%s, %s)\n", qi+1, q.Text, typeLabel(q.Type), count(q.Total, "vote", "votes"))
		}
		for oi, r := range q.Options {
			mark := " "
			if picked != nil && picked(q.QuestionID, r.ID) {
				mark = "*"
			}
			e.printf("  %s[%d] %-20s %s %6s  %s\n",
				mark, oi+1, r.Text,
				vote.Bar(r.Percent, e.Style.BarWidth, e.Style.Fill, e.Style.Pad),
				r.Label(), count(r.Votes, "vote", "votes"))
		}
	}
}
