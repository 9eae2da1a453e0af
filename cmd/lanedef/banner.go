package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const bannerWidth = 48

// banner prints the startup summary shown before the first tick. The same
// facts reach the log as part of "simulation ready".
type banner struct {
	w     io.Writer
	color bool
}

func newBanner(w io.Writer, color bool) *banner {
	return &banner{w: w, color: color}
}

// startupBanner writes to stdout for headless runs and discards output
// when the terminal host owns the screen.
func startupBanner(terminal bool, stdout io.Writer) *banner {
	if terminal {
		return newBanner(io.Discard, false)
	}
	return newBanner(stdout, true)
}

func (b *banner) paint(code, s string) string {
	if !b.color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// fill pads between left and right to bannerWidth columns, at least floor.
func fill(left, right string, floor int) int {
	n := bannerWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if n < floor {
		return floor
	}
	return n
}

func (b *banner) section(title string) {
	rule := strings.Repeat("─", fill("── "+title+" ", "", 3))
	fmt.Fprintf(b.w, "  %s\n", b.paint("33", "── "+title+" "+rule))
}

func (b *banner) stat(label string, v int) {
	val := fmt.Sprint(v)
	dots := strings.Repeat("·", fill(label+"  ", val, 3))
	fmt.Fprintf(b.w, "  %s %s %s\n", label, b.paint("90", dots), b.paint("32", val))
}

func (b *banner) ok(format string, args ...any) {
	fmt.Fprintf(b.w, "  %s %s\n", b.paint("32", "✓"), fmt.Sprintf(format, args...))
}
