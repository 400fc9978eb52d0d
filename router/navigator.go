// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"io"
	"strings"
)

// CommandFor translates a page path into the command that shows it, or
// "" for unknown paths.
func CommandFor(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case path == "/" || path == "":
		return "dashboard"
	case len(parts) == 1:
		switch parts[0] {
		case "login":
			return "login -email EMAIL -password PASSWORD"
		case "register":
			return "register -name NAME -email EMAIL -password PASSWORD"
		case "boards":
			return "board list"
		case "polls":
			return "polls"
		case "surveys":
			return "surveys"
		case "mypage":
			return "mypage"
		}
	case len(parts) == 2:
		switch parts[0] {
		case "boards":
			return "board show " + parts[1]
		case "polls":
			return "poll show " + parts[1]
		case "surveys":
			return "survey show " + parts[1]
		}
	case len(parts) == 3 && parts[0] == "surveys" && parts[2] == "results":
		return "survey results " + parts[1]
	}
	return ""
}

// Navigator prints where to go next as a command suggestion.
type Navigator struct {
	W io.Writer
}

func (n Navigator) Navigate(path string) {
	cmd := CommandFor(path)
	if cmd == "" {
		return
	}
	fmt.Fprintf(n.W, "→ next: community %s\n", cmd)
}
