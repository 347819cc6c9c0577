package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
//
// History steps are appended to the stream before the engine subscribes, so
// the engine observes them as replay. Live steps run after the threshold.
type Scenario struct {
	// Name uniquely identifies this scenario; the golden file is
	// testdata/{name}.golden.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// History contains append steps applied before subscription.
	History []Step `yaml:"history,omitempty"`

	// Live contains steps applied after historical replay completes.
	Live []Step `yaml:"live,omitempty"`
}

// Step is one scenario action. Exactly one field must be set.
type Step struct {
	// Append writes a raw frame request to the stream.
	Append *AppendStep `yaml:"append,omitempty"`

	// CreateNote issues the create-note command with the given content.
	CreateNote *string `yaml:"create_note,omitempty"`

	// EditNote issues the edit-note command.
	EditNote *EditStep `yaml:"edit_note,omitempty"`

	// SelectYak sets the current yak id.
	SelectYak *string `yaml:"select_yak,omitempty"`

	// SelectNote sets the selected note id.
	SelectNote *string `yaml:"select_note,omitempty"`
}

// AppendStep appends a frame request to the stream.
type AppendStep struct {
	Topic   string    `yaml:"topic"`
	Content string    `yaml:"content,omitempty"`
	Meta    *MetaStep `yaml:"meta,omitempty"`
}

// MetaStep mirrors the frame meta wire keys.
type MetaStep struct {
	ContainerID    string `yaml:"containerId,omitempty"`
	OriginalNoteID string `yaml:"originalNoteId,omitempty"`
}

// EditStep edits the note with the given id.
type EditStep struct {
	ID      string `yaml:"id"`
	Content string `yaml:"content,omitempty"`
}

// Load reads, schema-validates, and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	if err := ValidateScenario(path, data); err != nil {
		return nil, err
	}

	sc := &Scenario{}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := sc.check(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// check enforces the constraints the schema cannot express positionally:
// each step sets exactly one action, and history is append-only.
func (sc *Scenario) check() error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	for i, s := range sc.History {
		if s.Append == nil {
			return fmt.Errorf("history[%d]: only append steps are allowed before the threshold", i)
		}
		if n := s.count(); n != 1 {
			return fmt.Errorf("history[%d]: expected exactly one action, got %d", i, n)
		}
	}
	for i, s := range sc.Live {
		if n := s.count(); n != 1 {
			return fmt.Errorf("live[%d]: expected exactly one action, got %d", i, n)
		}
	}
	return nil
}

func (s Step) count() int {
	n := 0
	if s.Append != nil {
		n++
	}
	if s.CreateNote != nil {
		n++
	}
	if s.EditNote != nil {
		n++
	}
	if s.SelectYak != nil {
		n++
	}
	if s.SelectNote != nil {
		n++
	}
	return n
}
