package savestate

import "github.com/davecgh/go-spew/spew"

// Dump renders a State as a human-readable, deeply nested struct dump for
// manual inspection, independent of the compact binary encoding.
func Dump(s *State) string {
	return spew.Sdump(s)
}
