// Package values reads argument lists and batch jobs for the fmtstr command
// from YAML.
package values

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotSequence = errors.New("expected a YAML sequence")
	ErrNoFormat    = errors.New("job has neither format nor preset")
)

// Job is one format string and the values rendered into it.
type Job struct {
	Name   string `yaml:"name,omitempty"`
	Format string `yaml:"format,omitempty"`
	Preset string `yaml:"preset,omitempty"`
	Values []any  `yaml:"values"`
	// Line is the line of the job in its file.
	Line int `yaml:"-"`
}

// Literal turns a command line argument into a value. Plain YAML scalars
// become integers, floats, booleans or nil; everything else stays a string.
func Literal(s string) any {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(s), &n); err != nil || len(n.Content) != 1 {
		return s
	}
	sc := n.Content[0]
	if sc.Kind != yaml.ScalarNode || sc.Style != 0 || sc.LineComment != "" {
		return s
	}
	var v any
	if err := sc.Decode(&v); err != nil {
		return s
	}
	if _, ok := v.(string); ok {
		return s
	}
	return v
}

// Decode reads a list of values. A document holding a single non-sequence
// value yields that one value; an empty document yields none.
func Decode(r io.Reader) ([]any, error) {
	var n yaml.Node
	if err := yaml.NewDecoder(r).Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding values: %w", err)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	doc := n.Content[0]
	if doc.Kind != yaml.SequenceNode {
		var v any
		if err := doc.Decode(&v); err != nil {
			return nil, fmt.Errorf("decoding values: %w", err)
		}
		return []any{v}, nil
	}
	var out []any
	if err := doc.Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding values: %w", err)
	}
	return out, nil
}

// DecodeJobs reads a sequence of jobs.
func DecodeJobs(r io.Reader) ([]Job, error) {
	var n yaml.Node
	if err := yaml.NewDecoder(r).Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding jobs: %w", err)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	doc := n.Content[0]
	if doc.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: %w", doc.Line, ErrNotSequence)
	}
	jobs := make([]Job, 0, len(doc.Content))
	for i, item := range doc.Content {
		var j Job
		if err := item.Decode(&j); err != nil {
			return nil, fmt.Errorf("job %d: %w", i+1, err)
		}
		if j.Format == "" && j.Preset == "" {
			return nil, fmt.Errorf("job %d (line %d): %w", i+1, item.Line, ErrNoFormat)
		}
		j.Line = item.Line
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// LoadFile reads a list of values from path.
func LoadFile(path string) ([]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// LoadJobs reads a job list from path.
func LoadJobs(path string) ([]Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeJobs(f)
}

// WriteYAML encodes v to w with the given indent.
func WriteYAML(w io.Writer, v any, indent int) error {
	enc := yaml.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
