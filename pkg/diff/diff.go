// Package diff computes line-level edit scripts between a baseline text and a local text.
//
// Lines runs a Myers diff (github.com/sergi/go-diff) over whole lines: every distinct
// line is mapped to a single rune, the rune sequences are diffed, and the result is
// mapped back to lines. Each line keeps its trailing newline, so concatenating the
// blocks of one side reproduces that side byte for byte.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Tag classifies a block of lines in an edit script
type Tag int

const (
	Unchanged Tag = iota
	Added
	Removed
)

func (t Tag) String() string {
	switch t {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Block is a run of one or more consecutive lines sharing a tag
type Block struct {
	Tag   Tag
	Lines []string
}

// Text returns the block's lines concatenated, newlines included
func (b Block) Text() string {
	return strings.Join(b.Lines, "")
}

// Lines returns the edit script turning baseline into local.
// Removed blocks always precede the Added block they pair with.
func Lines(baseline, local string) []Block {
	if baseline == local {
		if baseline == "" {
			return nil
		}
		return []Block{{Tag: Unchanged, Lines: SplitLines(baseline)}}
	}

	index := newLineIndex()
	a := index.encode(SplitLines(baseline))
	b := index.encode(SplitLines(local))

	dmp := diffmatchpatch.New()
	// No deadline: a timed-out bisect falls back to a non-minimal script.
	dmp.DiffTimeout = 0

	var blocks []Block
	for _, d := range dmp.DiffMainRunes(a, b, false) {
		lines := index.decode(d.Text)
		if len(lines) == 0 {
			continue
		}
		tag := Unchanged
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			tag = Added
		case diffmatchpatch.DiffDelete:
			tag = Removed
		}
		if n := len(blocks); n > 0 && blocks[n-1].Tag == tag {
			blocks[n-1].Lines = append(blocks[n-1].Lines, lines...)
			continue
		}
		blocks = append(blocks, Block{Tag: tag, Lines: lines})
	}
	return blocks
}

// Reconstruct concatenates the blocks whose tag is in keep
func Reconstruct(blocks []Block, keep ...Tag) string {
	var b strings.Builder
	for _, block := range blocks {
		for _, t := range keep {
			if block.Tag == t {
				b.WriteString(block.Text())
				break
			}
		}
	}
	return b.String()
}

// Baseline rebuilds the baseline side of an edit script
func Baseline(blocks []Block) string {
	return Reconstruct(blocks, Unchanged, Removed)
}

// Local rebuilds the local side of an edit script
func Local(blocks []Block) string {
	return Reconstruct(blocks, Unchanged, Added)
}

// SplitLines splits s into physical lines, each keeping its "\n".
// The final line has no newline when s does not end with one.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lineIndex assigns each distinct line a rune outside the surrogate range
type lineIndex struct {
	runes map[string]rune
	lines []string
}

func newLineIndex() *lineIndex {
	return &lineIndex{runes: make(map[string]rune)}
}

func (x *lineIndex) encode(lines []string) []rune {
	out := make([]rune, len(lines))
	for i, line := range lines {
		r, ok := x.runes[line]
		if !ok {
			r = runeFor(len(x.lines))
			x.runes[line] = r
			x.lines = append(x.lines, line)
		}
		out[i] = r
	}
	return out
}

func (x *lineIndex) decode(text string) []string {
	var lines []string
	for _, r := range text {
		lines = append(lines, x.lines[indexFor(r)])
	}
	return lines
}

const surrogateStart, surrogateSize = 0xD800, 0x800

func runeFor(i int) rune {
	r := rune(i + 1)
	if r >= surrogateStart {
		r += surrogateSize
	}
	return r
}

func indexFor(r rune) int {
	if r >= surrogateStart+surrogateSize {
		r -= surrogateSize
	}
	return int(r) - 1
}
