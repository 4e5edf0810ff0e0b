// Package textdiff renders human-readable diffs between two content
// snapshots. The history inspector and the tidy command both present
// transitions with it.
package textdiff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Pretty returns an ANSI-colored inline diff from before to after.
func Pretty(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

// Stats reports how many runes a transition inserts and deletes.
func Stats(before, after string) (int, int) {
	dmp := diffmatchpatch.New()
	inserted, deleted := 0, 0
	for _, d := range dmp.DiffMain(before, after, false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			deleted += utf8.RuneCountInString(d.Text)
		}
	}
	return inserted, deleted
}

// Changed reports whether the two snapshots differ at all.
func Changed(before, after string) bool {
	return before != after
}
