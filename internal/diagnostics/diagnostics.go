// Package diagnostics formats match statistics and expression dumps for the
// demo CLI and for tests that want a human-readable failure message.
package diagnostics

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"
)

// MatchStats summarizes one matching run, suitable for printing after a
// batch of subjects has been matched against a discrimination net.
type MatchStats struct {
	Subjects   int
	Matches    int
	Patterns   int
	Candidates int
	Elapsed    float64 // seconds
}

func (s MatchStats) String() string {
	rate := 0.0
	if s.Elapsed > 0 {
		rate = float64(s.Candidates) / s.Elapsed
	}
	return fmt.Sprintf(
		"%s subjects, %s patterns, %s matches, %s candidates considered (%s/s)",
		humanize.Comma(int64(s.Subjects)),
		humanize.Comma(int64(s.Patterns)),
		humanize.Comma(int64(s.Matches)),
		humanize.Comma(int64(s.Candidates)),
		humanize.Comma(int64(rate)),
	)
}

// Dump renders v with field names for CLI and debug-log output; it uses
// kr/pretty rather than fmt's %#v so unexported fields on expression types
// still show up legibly.
func Dump(v interface{}) string {
	return pretty.Sprint(v)
}
