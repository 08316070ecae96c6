// Package script runs a sequence of note operations, written as YAML, against
// a single in-process service.
//
//	continue_on_error: true
//	steps:
//	  - add: {title: Groceries, content: milk}
//	  - update: {id: 1, title: Groceries, content: milk and eggs}
//	  - delete: 2
//	  - get: 1
//	  - search: groc
//	  - list
package script

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Op names a step operation.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpGet    Op = "get"
	OpList   Op = "list"
	OpSearch Op = "search"
)

// Script is a parsed batch of steps.
type Script struct {
	ContinueOnError *bool  `yaml:"continue_on_error"`
	Steps           []Step `yaml:"steps"`
}

// StopOnError reports whether the runner halts at the first failing step.
func (s *Script) StopOnError() bool {
	return s.ContinueOnError != nil && !*s.ContinueOnError
}

// Step is a single operation. Only the fields relevant to Op are set.
type Step struct {
	Op      Op
	ID      int
	Title   string
	Content string
	Query   string
}

type noteArgs struct {
	ID      int    `yaml:"id"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// UnmarshalYAML accepts either a bare op name ("list") or a single-key
// mapping from op to its arguments.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if Op(node.Value) != OpList {
			return fmt.Errorf("line %d: step %q needs arguments", node.Line, node.Value)
		}
		s.Op = OpList
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("line %d: step must be a mapping", node.Line)
	}

	if len(node.Content) != 2 {
		return fmt.Errorf("line %d: step must have exactly one operation", node.Line)
	}
	key, val := node.Content[0], node.Content[1]
	s.Op = Op(key.Value)

	switch s.Op {
	case OpAdd, OpUpdate:
		allowed := []string{"title", "content"}
		if s.Op == OpUpdate {
			allowed = append(allowed, "id")
		}
		if err := checkFields(val, allowed...); err != nil {
			return fmt.Errorf("line %d: %s: %w", key.Line, s.Op, err)
		}
		var args noteArgs
		if err := val.Decode(&args); err != nil {
			return fmt.Errorf("line %d: %s: %w", key.Line, s.Op, err)
		}
		if s.Op == OpUpdate && args.ID <= 0 {
			return fmt.Errorf("line %d: update needs a positive id", key.Line)
		}
		s.ID, s.Title, s.Content = args.ID, args.Title, args.Content
	case OpDelete, OpGet:
		if err := val.Decode(&s.ID); err != nil {
			return fmt.Errorf("line %d: %s: %w", key.Line, s.Op, err)
		}
	case OpSearch:
		if err := val.Decode(&s.Query); err != nil {
			return fmt.Errorf("line %d: search: %w", key.Line, err)
		}
	case OpList:
	default:
		return fmt.Errorf("line %d: unknown operation %q", key.Line, key.Value)
	}
	return nil
}

// checkFields rejects mapping keys outside allowed. Node.Decode does not
// inherit the decoder's KnownFields setting, so step arguments are checked here.
func checkFields(node *yaml.Node, allowed ...string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		if !slices.Contains(allowed, k.Value) {
			return fmt.Errorf("line %d: field %q not allowed", k.Line, k.Value)
		}
	}
	return nil
}

// Parse decodes a script.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return &s, nil
}
