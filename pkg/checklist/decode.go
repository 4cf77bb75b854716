package checklist

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// FromMap builds a checklist from generic decoded data. Two layouts are
// accepted:
//
//	tasks: [{item: ..., subtasks: [...]}]
//
// or a mapping of section name to task body, where each key becomes a
// top-level task:
//
//	Introduction: {done: true}
//	Methods: {tasks: [{item: Protocol}]}
//
// Section keys are visited in sorted order; FromYAML preserves document
// order instead.
func FromMap(data map[string]any) (*Checklist, error) {
	return fromMap(data, sortedKeys(data))
}

func fromMap(data map[string]any, order []string) (*Checklist, error) {
	cl := &Checklist{}
	if data == nil {
		return cl, nil
	}

	if tasks, ok := data["tasks"]; ok {
		list, _ := tasks.([]any)
		for _, t := range list {
			m, _ := t.(map[string]any)
			cl.AddTask(nodeFromMap(m))
		}
		return cl, nil
	}

	for _, name := range order {
		info, ok := data[name].(map[string]any)
		if !ok {
			cl.AddTask(NewTask(name))
			continue
		}
		node := nodeFromMap(info)
		node.Item = name
		cl.AddTask(node)
	}
	return cl, nil
}

func nodeFromMap(m map[string]any) *TaskNode {
	node := &TaskNode{}
	if m == nil {
		return node
	}
	node.Item, _ = m["item"].(string)
	node.Done, _ = m["done"].(bool)
	if p, ok := asInt(m["percent"]); ok {
		node.Percent = &p
	}
	for _, sub := range children(m) {
		sm, _ := sub.(map[string]any)
		node.AddSubtask(nodeFromMap(sm))
	}
	return node
}

// children returns the "tasks" list when present, else "subtasks".
func children(m map[string]any) []any {
	if list, ok := m["tasks"].([]any); ok {
		return list
	}
	list, _ := m["subtasks"].([]any)
	return list
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// mappingKeys returns the top-level keys of a YAML document in source order.
func mappingKeys(data []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil
	}
	keys := make([]string, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	return keys, nil
}
