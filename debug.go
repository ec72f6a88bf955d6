package nature

import (
	"fmt"
	"os"
	"time"
)

// globalDebug enables tree sanity checks, atlas miss logging and per-tick
// stats on stderr. Entity operations lack a World pointer, so the flag is
// package-wide.
var globalDebug bool

// SetDebug enables or disables debug mode.
func SetDebug(enabled bool) { globalDebug = enabled }

// Debug reports whether debug mode is on.
func Debug() bool { return globalDebug }

// tickStats holds per-tick metrics. Only populated in debug mode.
type tickStats struct {
	tick       int
	updateTime time.Duration
	entities   int
	candidates int
	status     UpdateStatus
}

func debugLogTick(s tickStats) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[nature] tick %d | update: %v | entities: %d | candidates: %d | status: %v\n",
		s.tick, s.updateTime, s.entities, s.candidates, s.status)
}

func debugLogRender(commands int, elapsed time.Duration) {
	_, _ = fmt.Fprintf(os.Stderr, "[nature] render: %v | commands: %d\n", elapsed, commands)
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Entity) {
	depth := 0
	for p := e; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[nature] warning: tree depth %d exceeds %d (entity %q %d)\n",
			depth, debugMaxTreeDepth, e.kind, e.handle)
	}
}

// debugCheckChildCount warns on stderr if an entity has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(e *Entity) {
	if len(e.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[nature] warning: entity %q %d has %d children (threshold %d)\n",
			e.kind, e.handle, len(e.children), debugMaxChildCount)
	}
}

// debugCheckBounds panics if any entity's bounds are not the union of its
// current images, bodies and children.
func debugCheckBounds(e *Entity) {
	for _, c := range e.children {
		debugCheckBounds(c)
	}
	want := e.bounds
	e.computeBounds()
	if e.bounds != want {
		panic(fmt.Sprintf("nature debug: entity %q %d bounds %+v, want %+v", e.kind, e.handle, want, e.bounds))
	}
}

// countEntities counts e and its descendants.
func countEntities(e *Entity) int {
	n := 1
	for _, c := range e.children {
		n += countEntities(c)
	}
	return n
}
