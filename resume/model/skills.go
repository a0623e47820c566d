package model

import (
	"encoding/json"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillList is the structured skills list. It decodes from either an array of
// strings or a single comma-separated string.
type SkillList []string

// SplitSkills splits free-text skills on commas, trimming each token and
// dropping empty ones.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// UnmarshalJSON accepts `["Go","Rust"]` or `"Go, Rust"`.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = nil
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = SkillList(SplitSkills(raw))
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.New("skills must be a string or an array of strings")
	}
	*s = SkillList(items)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML input.
func (s *SkillList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = SkillList(SplitSkills(node.Value))
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*s = SkillList(items)
		return nil
	default:
		return errors.New("skills must be a string or a list of strings")
	}
}
