// Package catalog holds the fixed list of canned analytical questions and
// their SQL. The catalog is pure data: it never executes anything.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultYAML []byte

// Question pairs a display label with the statement it runs.
type Question struct {
	Label string `yaml:"label" json:"label"`
	SQL   string `yaml:"sql" json:"sql"`
}

type document struct {
	Questions []Question `yaml:"questions"`
}

// Catalog is an ordered, read-only set of questions.
type Catalog struct {
	questions []Question
	byLabel   map[string]int
}

// Parse decodes a YAML catalog. Labels must be unique and non-empty and every
// question needs a statement.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	c := &Catalog{
		questions: make([]Question, 0, len(doc.Questions)),
		byLabel:   make(map[string]int, len(doc.Questions)),
	}
	for i, q := range doc.Questions {
		q.Label = strings.TrimSpace(q.Label)
		q.SQL = strings.TrimSpace(q.SQL)
		if q.Label == "" {
			return nil, fmt.Errorf("%w: question %d has no label", ErrInvalidCatalog, i+1)
		}
		if q.SQL == "" {
			return nil, fmt.Errorf("%w: question %q has no sql", ErrInvalidCatalog, q.Label)
		}
		if _, dup := c.byLabel[q.Label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidCatalog, q.Label)
		}
		c.byLabel[q.Label] = len(c.questions)
		c.questions = append(c.questions, q)
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. It panics if the embedded file is
// malformed, which the package tests rule out.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultYAML)
		if err != nil {
			panic(err)
		}
		defaultCat = c
	})
	return defaultCat
}

// Len returns the number of questions.
func (c *Catalog) Len() int { return len(c.questions) }

// Questions returns the labels in display order.
func (c *Catalog) Questions() []string {
	labels := make([]string, len(c.questions))
	for i, q := range c.questions {
		labels[i] = q.Label
	}
	return labels
}

// All returns a copy of every question in display order.
func (c *Catalog) All() []Question {
	return append([]Question(nil), c.questions...)
}

// Lookup finds a question by its exact label.
func (c *Catalog) Lookup(label string) (Question, error) {
	i, ok := c.byLabel[label]
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, label)
	}
	return c.questions[i], nil
}
