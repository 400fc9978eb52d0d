// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"fmt"
	"io"
	"sync"
)

type Level int

const (
	LevelSuccess Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "ok"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// Notifier shows transient messages to the user. Notices are not kept
// for telemetry.
type Notifier interface {
	Notify(level Level, message string)
}

// Navigator moves the user to another page, e.g. "/login" or "/polls".
type Navigator interface {
	Navigate(path string)
}

// WriterNotifier prints notices as "[level] message" lines.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(level Level, message string) {
	fmt.Fprintf(n.W, "[%s] %s\n", level, message)
}

type Notice struct {
	Level   Level
	Message string
}

// Recorder collects notices and navigation targets. It implements both
// Notifier and Navigator.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
	paths   []string
}

func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Level: level, Message: message})
}

func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice, or a zero Notice.
func (r *Recorder) Last() Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}

// Path returns the last navigation target, or "" if none.
func (r *Recorder) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}
