package completion

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed prompts.json
var promptsJSON []byte

const promptPlaceholder = "{{prompt}}"

// Type 是生成请求的类型。
type Type string

const (
	TypeSummary    Type = "summary"
	TypeExperience Type = "experience"
	TypeSkills     Type = "skills"
	TypeImprove    Type = "improve"
)

// Prompt is the system/user pair sent upstream.
type Prompt struct {
	System string `json:"system"`
	User   string `json:"user"`
}

var loadPrompts = sync.OnceValues(func() (map[Type]Prompt, error) {
	var table map[Type]Prompt
	if err := json.Unmarshal(promptsJSON, &table); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	for t, p := range table {
		if p.System == "" || !strings.Contains(p.User, promptPlaceholder) {
			return nil, fmt.Errorf("prompt %q is incomplete", t)
		}
	}
	return table, nil
})

// BuildPrompt fills the template for t with the caller's prompt text.
func BuildPrompt(t Type, prompt string) (Prompt, error) {
	table, err := loadPrompts()
	if err != nil {
		return Prompt{}, err
	}
	tmpl, ok := table[t]
	if !ok {
		return Prompt{}, ErrUnknownType
	}
	return Prompt{
		System: tmpl.System,
		User:   strings.ReplaceAll(tmpl.User, promptPlaceholder, prompt),
	}, nil
}
