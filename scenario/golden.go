package scenario

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares its rendered report
// against the golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./scenario -update
//
// Golden files are the source of truth for expected report output; a
// passing scenario has an empty golden file. Report text is
// NFC-normalized by the engine, so comparisons are byte-stable.
func RunWithGolden(t *testing.T, s *Scenario) {
	t.Helper()

	rep := Run(s)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, []byte(rep.Render()))
}
