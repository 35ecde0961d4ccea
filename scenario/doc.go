// Package scenario runs declarative verification scenarios: YAML files
// describing interaction logs with explicit timestamps plus the
// expectations to register against them, executed through the behavior
// engine with deterministic log identities.
//
// # Scenario format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario exercises"
//	behavior:
//	  strict: true     # default true
//	  ordered: true    # default true
//	logs:
//	  - name: A
//	    interactions:
//	      - { value: 2, at: 1 }
//	      - { value: 4, at: 3 }
//	  - name: B
//	    interactions:
//	      - { value: "foo", at: 2 }
//	expectations:
//	  - { log: A, equals: 2 }
//	  - { log: B, equals: "foo" }
//	  - { log: A, equals: 4 }
//	  - { log: B, equals: "bar", negative: true }
//
// Expectation order in the file is registration order, which is the
// matching order in ordered mode. Matching is deep equality against the
// decoded YAML value.
//
// # Golden reports
//
// RunWithGolden renders the verification report and compares it against
// testdata/golden/{name}.golden. Timestamps, log identities, and report
// text are all deterministic, so golden files are stable across runs.
package scenario
