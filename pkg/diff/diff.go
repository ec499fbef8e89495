// Package diff renders readable differences between expected and actual slices in
// test failures.
package diff

import (
	"fmt"
	"strings"

	"github.com/kylelemons/godebug/diff"
)

// Lines prints want and got one element per line and returns what it takes to turn
// got into want, or "" when both print the same
func Lines[T any](want, got []T) string {
	w, g := render(want), render(got)
	if w == g {
		return ""
	}

	str := "\n\n"
	str += "to convert ACTUAL ⏩️ EXPECTED:\n\n"
	str += "add:    ➕\n"
	str += "remove: ➖\n"
	str += "\n"
	str += decorate(diff.Diff(g, w))

	return str
}

func render[T any](items []T) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprint(item))
	}
	return strings.Join(lines, "\n")
}

func decorate(d string) string {
	lines := strings.Split(d, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = "➕" + line[1:]
		case strings.HasPrefix(line, "-"):
			lines[i] = "➖" + line[1:]
		}
	}
	return strings.Join(lines, "\n")
}
