package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sqlcond/internal/filterir"
)

// Scenario defines a set of condition cases, optionally run against seed rows.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Rows are inserted into the customers table before any case runs.
	// Required when a case expects ids.
	Rows []map[string]any `yaml:"rows,omitempty"`

	// Cases are run in order.
	Cases []Case `yaml:"cases"`
}

// Case is one builder call, or one filter tree, and its expected outcome.
type Case struct {
	Name string `yaml:"name"`

	// Op, Column and Value describe a single builder call.
	// Op defaults to maybe_find.
	Op     string `yaml:"op,omitempty"`
	Column string `yaml:"column,omitempty"`
	Value  any    `yaml:"value,omitempty"`

	// Filter is a tree in the same shape as CUE filter documents.
	// Mutually exclusive with Op, Column and Value.
	Filter *FilterNode `yaml:"filter,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect lists what a case must produce. Unset fields are not checked.
type Expect struct {
	Template      *string `yaml:"template,omitempty"`
	Args          []any   `yaml:"args,omitempty"`
	ArgsUnordered []any   `yaml:"args_unordered,omitempty"`
	Absent        *bool   `yaml:"absent,omitempty"`
	Error         string  `yaml:"error,omitempty"`
	IDs           []int64 `yaml:"ids,omitempty"`
}

// ErrorInvalidArgument is the Expect.Error value matching cond.ErrInvalidArgument.
const ErrorInvalidArgument = "invalid_argument"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "arg:" vs "args:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i := range s.Cases {
		c := &s.Cases[i]
		if err := validateCase(i, c, len(s.Rows) > 0); err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true
	}

	return nil
}

// validateCase validates a single case.
func validateCase(index int, c *Case, hasRows bool) error {
	if c.Name == "" {
		return fmt.Errorf("cases[%d]: name is required", index)
	}

	if c.Filter != nil {
		if c.Op != "" || c.Column != "" || c.Value != nil {
			return fmt.Errorf("cases[%d]: filter cannot be combined with op, column or value", index)
		}
	} else {
		if c.Column == "" {
			return fmt.Errorf("cases[%d]: column or filter is required", index)
		}
		if c.Op != "" && !filterir.Op(c.Op).Valid() {
			return fmt.Errorf("cases[%d]: unknown op %q", index, c.Op)
		}
	}

	e := c.Expect
	if e.Error != "" {
		if e.Template != nil || e.Args != nil || e.ArgsUnordered != nil || e.Absent != nil || e.IDs != nil {
			return fmt.Errorf("cases[%d].expect: error cannot be combined with other expectations", index)
		}
	}
	if e.Absent != nil && *e.Absent && (e.Template != nil || e.Args != nil || e.ArgsUnordered != nil) {
		return fmt.Errorf("cases[%d].expect: absent cannot be combined with template or args", index)
	}
	if e.Args != nil && e.ArgsUnordered != nil {
		return fmt.Errorf("cases[%d].expect: use args or args_unordered, not both", index)
	}
	if e.IDs != nil && !hasRows {
		return fmt.Errorf("cases[%d].expect: ids requires scenario rows", index)
	}

	return nil
}
