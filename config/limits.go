package config

import (
	"fmt"
	"iter"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Limits maps a path or path fragment to a token limit. Iteration follows
// declaration order, which decides ties when more than one key matches a
// path. The zero value and a nil *Limits are both empty.
type Limits struct {
	m *orderedmap.OrderedMap[string, int]
}

// NewLimits creates an empty Limits.
func NewLimits() *Limits {
	return &Limits{m: orderedmap.New[string, int]()}
}

// Set adds or replaces the limit for pattern. Replacing keeps the
// original position.
func (l *Limits) Set(pattern string, limit int) {
	if l.m == nil {
		l.m = orderedmap.New[string, int]()
	}
	l.m.Set(pattern, limit)
}

// Get returns the limit configured for exactly pattern.
func (l *Limits) Get(pattern string) (int, bool) {
	if l == nil || l.m == nil {
		return 0, false
	}
	return l.m.Get(pattern)
}

// Len returns the number of configured patterns.
func (l *Limits) Len() int {
	if l == nil || l.m == nil {
		return 0
	}
	return l.m.Len()
}

// All iterates patterns and limits in declaration order.
func (l *Limits) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		if l == nil || l.m == nil {
			return
		}
		for pair := l.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Match returns the limit of the first pattern, in declaration order,
// that appears anywhere in path. Exact keys are not preferred here; see
// Config.Limit for the full resolution order.
func (l *Limits) Match(path string) (int, bool) {
	for pattern, limit := range l.All() {
		// A suffix of path is also a substring of it.
		if strings.Contains(path, pattern) {
			return limit, true
		}
	}
	return 0, false
}

// Clone returns an independent copy.
func (l *Limits) Clone() *Limits {
	out := NewLimits()
	for pattern, limit := range l.All() {
		out.Set(pattern, limit)
	}
	return out
}

// ToMap returns the limits as a plain map. Order is lost.
func (l *Limits) ToMap() map[string]int {
	out := make(map[string]int, l.Len())
	for pattern, limit := range l.All() {
		out[pattern] = limit
	}
	return out
}

// String renders the limits in declaration order.
func (l *Limits) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for pattern, limit := range l.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%q: %d", pattern, limit)
	}
	b.WriteByte('}')
	return b.String()
}

// UnmarshalYAML implements yaml.Unmarshaler, keeping mapping order.
func (l *Limits) UnmarshalYAML(value *yaml.Node) error {
	l.m = orderedmap.New[string, int]()
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("limits must be a mapping, got: %s", nodeKind(value))
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		var limit int
		if err := valNode.Decode(&limit); err != nil {
			return fmt.Errorf("limit for pattern '%s' must be a positive integer, got: %s", keyNode.Value, valNode.Value)
		}
		l.m.Set(keyNode.Value, limit)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler, keeping mapping order.
func (l *Limits) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for pattern, limit := range l.All() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pattern},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(limit)},
		)
	}
	return node, nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!str":
			return "str"
		case "!!int":
			return "int"
		case "!!float":
			return "float"
		case "!!bool":
			return "bool"
		case "!!null":
			return "null"
		}
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
