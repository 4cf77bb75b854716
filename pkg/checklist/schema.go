package checklist

import (
	"fmt"
)

// SchemaError reports a checklist that does not conform to the task schema.
type SchemaError struct {
	Path string
	Msg  string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return e.Path + ": " + e.Msg
}

func schemaErr(path, format string, args ...any) error {
	return &SchemaError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// Validate checks a decoded checklist document. The root is either a
// `tasks` list or a mapping of section name to task; every task needs an
// `item` string, and may carry a boolean `done`, a `percent` between 0 and
// 100 and a `subtasks` list of tasks.
func Validate(data any) error {
	root, ok := data.(map[string]any)
	if !ok {
		return schemaErr("", "root must be a mapping")
	}
	if tasks, ok := root["tasks"]; ok && len(root) == 1 {
		list, ok := tasks.([]any)
		if !ok {
			return schemaErr("tasks", "'tasks' must be a list")
		}
		for i, t := range list {
			if err := ValidateTask(t, fmt.Sprintf("tasks[%d]", i)); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range sortedKeys(root) {
		if err := ValidateTask(root[name], name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTask recursively validates a single task.
func ValidateTask(task any, path string) error {
	m, ok := task.(map[string]any)
	if !ok {
		return schemaErr(path, "task must be a mapping")
	}
	if item, ok := m["item"].(string); !ok || item == "" {
		return schemaErr(path, "task must have an 'item' string")
	}
	if done, ok := m["done"]; ok {
		if _, isBool := done.(bool); !isBool {
			return schemaErr(path, "'done' must be a boolean if present")
		}
	}
	if percent, ok := m["percent"]; ok {
		p, isNum := asFloat(percent)
		if !isNum {
			return schemaErr(path, "'percent' must be a number")
		}
		if p < 0 || p > 100 {
			return schemaErr(path, "'percent' must be between 0 and 100")
		}
	}
	if subs, ok := m["subtasks"]; ok {
		list, isList := subs.([]any)
		if !isList {
			return schemaErr(path, "'subtasks' must be a list")
		}
		for i, sub := range list {
			if err := ValidateTask(sub, fmt.Sprintf("%s.subtasks[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
