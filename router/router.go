// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jeung1234/community/handlers"
)

var ErrUnknownCommand = errors.New("unknown command")

// CommandFunc runs one command with the arguments that follow its name.
type CommandFunc func(ctx context.Context, args []string) error

type route struct {
	name    string
	handler CommandFunc
	usage   string
}

// Router maps command names ("polls", "poll vote") to handlers.
type Router struct {
	routes map[string]route
	order  []string
}

func New() *Router {
	return &Router{routes: make(map[string]route)}
}

// Handle registers a command. Names have one or two words.
func (r *Router) Handle(name, usage string, h CommandFunc) {
	if _, dup := r.routes[name]; !dup {
		r.order = append(r.order, name)
	}
	r.routes[name] = route{name: name, handler: WithLogging(name, h), usage: usage}
}

// WithLogging wraps a command with start and completion logging.
func WithLogging(name string, next CommandFunc) CommandFunc {
	return func(ctx context.Context, args []string) error {
		start := time.Now()
		slog.Debug("command started", "command", name, "args", len(args))

		err := next(ctx, args)

		if err != nil {
			slog.Debug("command failed",
				"command", name,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			return err
		}
		slog.Debug("command completed",
			"command", name,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}

// Dispatch finds the longest registered name at the start of args and runs
// it with the rest.
func (r *Router) Dispatch(ctx context.Context, args []string) error {
	if len(args) >= 2 {
		if rt, ok := r.routes[args[0]+" "+args[1]]; ok {
			return rt.handler(ctx, args[2:])
		}
	}
	if len(args) >= 1 {
		if rt, ok := r.routes[args[0]]; ok {
			return rt.handler(ctx, args[1:])
		}
		return fmt.Errorf("%w: %s", ErrUnknownCommand, strings.Join(args[:min(2, len(args))], " "))
	}
	return fmt.Errorf("%w: none given", ErrUnknownCommand)
}

// Usage lists every command in registration order.
func (r *Router) Usage(w io.Writer) {
	fmt.Fprintln(w, "usage: community [-b URL] [-t sqlite|postgres|redis] [-d STORE] [-v LEVEL] COMMAND [ARGS]")
	fmt.Fprintln(w)
	for _, name := range r.order {
		fmt.Fprintf(w, "  %s\n", r.routes[name].usage)
	}
}

func NewRouter(env *handlers.Env) *Router {
	r := New()

	// Initialize handlers
	account := handlers.NewAccountHandler(env)
	board := handlers.NewBoardHandler(env)
	polls := handlers.NewPollHandler(env)
	surveys := handlers.NewSurveyHandler(env)
	dashboard := handlers.NewDashboardHandler(env)

	r.Handle("dashboard", "dashboard", dashboard.Show)

	// Account
	r.Handle("register", "register -name NAME -email EMAIL -password PASSWORD", account.Register)
	r.Handle("login", "login -email EMAIL -password PASSWORD", account.Login)
	r.Handle("logout", "logout", account.Logout)
	r.Handle("mypage", "mypage", account.MyPage)
	r.Handle("profile", "profile [-name NAME] [-email EMAIL] [-password PASSWORD]", account.Profile)

	// Board
	r.Handle("board list", "board list [-mine]", board.List)
	r.Handle("board show", "board show ID", board.Show)
	r.Handle("board create", "board create -title TITLE -body BODY", board.Create)
	r.Handle("board edit", "board edit ID [-title TITLE] [-body BODY]", board.Edit)
	r.Handle("board delete", "board delete ID", board.Delete)
	r.Handle("reply add", "reply add POST_ID TEXT", board.Reply)
	r.Handle("reply edit", "reply edit REPLY_ID TEXT", board.EditReply)
	r.Handle("reply delete", "reply delete REPLY_ID", board.DeleteReply)

	// Polls
	r.Handle("polls", "polls", polls.List)
	r.Handle("poll show", "poll show ID", polls.Show)
	r.Handle("poll vote", "poll vote ID N [N...]", polls.Vote)
	r.Handle("poll create", "poll create -title TITLE [-description TEXT] [-type single|multi] -option A -option B ...", polls.Create)
	r.Handle("poll edit", "poll edit ID [-title TITLE] [-description TEXT] [-type single|multi] [-option A ...]", polls.Edit)
	r.Handle("poll delete", "poll delete ID", polls.Delete)

	// Surveys
	r.Handle("surveys", "surveys", surveys.List)
	r.Handle("survey show", "survey show ID", surveys.Show)
	r.Handle("survey submit", "survey submit ID -a 1=N[,N] -a 2=TEXT ...", surveys.Submit)
	r.Handle("survey results", "survey results ID", surveys.Results)
	r.Handle("survey create", "survey create -title TITLE [-description TEXT] -q TYPE[!]:TEXT[:A|B] ... | -f FILE", surveys.Create)
	r.Handle("survey edit", "survey edit ID [-title TITLE] [-description TEXT] [-q TYPE[!]:TEXT[:A|B] ...]", surveys.Edit)
	r.Handle("survey delete", "survey delete ID", surveys.Delete)

	return r
}
