// Package checklist models the nested task lists used to track submission
// work, along with their YAML/JSON encodings and progress rollup.
package checklist

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TaskNode is a checklist item which can contain nested subtasks.
type TaskNode struct {
	Item     string      `yaml:"item" json:"item"`
	Done     bool        `yaml:"done,omitempty" json:"done,omitempty"`
	Percent  *int        `yaml:"percent,omitempty" json:"percent,omitempty"`
	Subtasks []*TaskNode `yaml:"subtasks,omitempty" json:"subtasks,omitempty"`
}

// NewTask creates a leaf task.
func NewTask(item string) *TaskNode {
	return &TaskNode{Item: item}
}

// AddSubtask appends a child task.
func (t *TaskNode) AddSubtask(sub *TaskNode) {
	t.Subtasks = append(t.Subtasks, sub)
}

// RemoveSubtask deletes the child at index.
func (t *TaskNode) RemoveSubtask(index int) error {
	if index < 0 || index >= len(t.Subtasks) {
		return fmt.Errorf("subtask index %d out of range", index)
	}
	t.Subtasks = append(t.Subtasks[:index], t.Subtasks[index+1:]...)
	return nil
}

// ComputedPercent returns the effective completion percentage of the node:
// 100 when done, the explicit percent when set, otherwise the mean of its
// children (0 for a leaf).
func (t *TaskNode) ComputedPercent() float64 {
	if t.Done {
		return 100
	}
	if t.Percent != nil {
		return float64(*t.Percent)
	}
	if len(t.Subtasks) == 0 {
		return 0
	}
	var sum float64
	for _, s := range t.Subtasks {
		sum += s.ComputedPercent()
	}
	return sum / float64(len(t.Subtasks))
}

// Checklist is the container for the top-level tasks of a project.
type Checklist struct {
	Tasks []*TaskNode `yaml:"tasks" json:"tasks"`
}

// AddTask appends a top-level task.
func (c *Checklist) AddTask(t *TaskNode) {
	c.Tasks = append(c.Tasks, t)
}

// RemoveTask deletes the top-level task at index.
func (c *Checklist) RemoveTask(index int) error {
	if index < 0 || index >= len(c.Tasks) {
		return fmt.Errorf("task index %d out of range", index)
	}
	c.Tasks = append(c.Tasks[:index], c.Tasks[index+1:]...)
	return nil
}

// ComputedPercent returns the mean completion of the top-level tasks.
func (c *Checklist) ComputedPercent() float64 {
	if len(c.Tasks) == 0 {
		return 0
	}
	var sum float64
	for _, t := range c.Tasks {
		sum += t.ComputedPercent()
	}
	return sum / float64(len(c.Tasks))
}

// ToYAML encodes the checklist in the canonical `tasks:` form.
func (c *Checklist) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ToJSON encodes the checklist as indented JSON.
func (c *Checklist) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// FromYAML decodes a checklist in either the `tasks:` form or the
// section-name mapping form accepted by FromMap.
func FromYAML(data []byte) (*Checklist, error) {
	raw, order, err := DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	return fromMap(raw, order)
}

// FromJSON decodes a checklist from JSON.
func FromJSON(data []byte) (*Checklist, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse checklist json: %w", err)
	}
	return FromMap(raw)
}

// DecodeYAML parses a checklist document into generic data plus the
// top-level key order, for callers that validate before building.
func DecodeYAML(data []byte) (map[string]any, []string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse checklist yaml: %w", err)
	}
	order, err := mappingKeys(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse checklist yaml: %w", err)
	}
	return raw, order, nil
}
