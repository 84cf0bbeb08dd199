package types

import "fmt"

// ValidationIssue is a semantic problem found in a manifest that parsed
// successfully, e.g. a duplicate entry or contradictory pins.
type ValidationIssue struct {
	Source  string
	Line    int
	Message string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s:%d: %s", i.Source, i.Line, i.Message)
}

type LintRule struct {
	Action  LintAction `yaml:"action"`
	Matches []string   `yaml:"matches"`
	Reason  string     `yaml:"reason,omitempty"`
}

type LintViolation struct {
	Action LintAction
	Name   string
	Source string
	Line   int
	Reason string
}

func (v LintViolation) String() string {
	msg := fmt.Sprintf("%s:%d: %s violates %s", v.Source, v.Line, v.Name, v.Action)
	if v.Reason != "" {
		msg += " (" + v.Reason + ")"
	}
	return msg
}
