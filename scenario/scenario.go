package scenario

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a declarative verification scenario: a set of named
// interaction logs with pre-recorded timestamped values, plus the
// expectations to register against them.
type Scenario struct {
	// Name uniquely identifies this scenario. Also the golden file name
	// when the scenario is used with RunWithGolden.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description,omitempty"`

	// Behavior selects the strictness/ordering mode. Absent switches
	// default to true (strict, ordered).
	Behavior BehaviorConfig `yaml:"behavior,omitempty"`

	// Logs are the interaction logs, with explicit timestamps so merge
	// order is fully determined by the file.
	Logs []LogSpec `yaml:"logs"`

	// Expectations are registered in file order - order is significant
	// for the ordered mode.
	Expectations []ExpectationSpec `yaml:"expectations"`
}

// BehaviorConfig mirrors the behavior.New options. Pointers distinguish
// "absent" (default true) from an explicit false.
type BehaviorConfig struct {
	Strict  *bool `yaml:"strict,omitempty"`
	Ordered *bool `yaml:"ordered,omitempty"`
}

// LogSpec is one named interaction log. The name doubles as the log's
// identity, keeping diagnostics and merge tie-breaks deterministic.
type LogSpec struct {
	Name         string            `yaml:"name"`
	Interactions []InteractionSpec `yaml:"interactions"`
}

// InteractionSpec is one recorded value with its ordering key.
type InteractionSpec struct {
	Value any   `yaml:"value"`
	At    int64 `yaml:"at"`
}

// ExpectationSpec registers one expectation against a named log.
// Matching is deep equality against the decoded YAML value.
type ExpectationSpec struct {
	Log      string `yaml:"log"`
	Equals   any    `yaml:"equals"`
	Negative bool   `yaml:"negative,omitempty"`
}

// Load parses a scenario from r and validates it.
func Load(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile parses and validates the scenario at path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// validate checks structural invariants the runner relies on.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario: name is required")
	}

	logs := make(map[string]bool, len(s.Logs))
	for i, l := range s.Logs {
		if l.Name == "" {
			return fmt.Errorf("scenario %s: logs[%d]: name is required", s.Name, i)
		}
		if logs[l.Name] {
			return fmt.Errorf("scenario %s: duplicate log name %q", s.Name, l.Name)
		}
		logs[l.Name] = true

		// Timestamps must be non-decreasing within one log, or the
		// chronological merge's ordering guarantee breaks.
		for j := 1; j < len(l.Interactions); j++ {
			if l.Interactions[j].At < l.Interactions[j-1].At {
				return fmt.Errorf("scenario %s: log %q: interactions[%d] timestamp %d decreases",
					s.Name, l.Name, j, l.Interactions[j].At)
			}
		}
	}

	for i, e := range s.Expectations {
		if !logs[e.Log] {
			return fmt.Errorf("scenario %s: expectations[%d]: unknown log %q", s.Name, i, e.Log)
		}
	}
	return nil
}
