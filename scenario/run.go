package scenario

import (
	"github.com/behaviorkit/behave/behavior"
	"github.com/behaviorkit/behave/match"
	"github.com/behaviorkit/behave/record"
)

// Run builds the scenario's logs and expectations and executes one
// verification pass, returning its report.
//
// Logs use the scenario names as identities and the file's explicit
// timestamps, so the merge order - and therefore the report - is fully
// deterministic for a given scenario file. Expectations carry no source
// location: a caller-captured position would point into this runner,
// not at anything the scenario author wrote.
func Run(s *Scenario) *behavior.Report {
	clock := record.NewClock()

	logs := make(map[string]*record.Log[any], len(s.Logs))
	for _, ls := range s.Logs {
		l := record.NewLogWithID[any](clock, ls.Name)
		for _, in := range ls.Interactions {
			l.AppendAt(in.Value, in.At)
		}
		logs[ls.Name] = l
	}

	var opts []behavior.Option
	if s.Behavior.Strict != nil && !*s.Behavior.Strict {
		opts = append(opts, behavior.Nice())
	}
	if s.Behavior.Ordered != nil && !*s.Behavior.Ordered {
		opts = append(opts, behavior.Unordered())
	}

	b := behavior.New(opts...)
	for _, es := range s.Expectations {
		m := match.Eq[any](es.Equals)
		if es.Negative {
			behavior.NeverAt(b, logs[es.Log], m, behavior.Location{})
		} else {
			behavior.ExpectAt(b, logs[es.Log], m, behavior.Location{})
		}
	}

	return b.Verify()
}
