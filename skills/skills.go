// Package skills loads markdown skill files for injection into agent
// prompts. Skills are plain .md files resolved through doublestar glob
// patterns, so a definition can reference "skills/**/*.md" or a single file.
package skills

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Skill is one loaded skill file.
type Skill struct {
	Name    string // Derived from filename (without extension)
	Content string // Raw markdown content
}

// Load resolves the given glob patterns and reads every matching .md file.
// Missing or unreadable files are skipped; the returned skills are sorted
// by name so prompt injection is deterministic.
func Load(patterns ...string) ([]Skill, error) {
	seen := make(map[string]bool)
	var loaded []Skill

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, err
		}
		for _, path := range matches {
			if !strings.HasSuffix(path, ".md") || seen[path] {
				continue
			}
			content, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			seen[path] = true
			name := strings.TrimSuffix(filepath.Base(path), ".md")
			loaded = append(loaded, Skill{Name: name, Content: string(content)})
		}
	}

	sort.Slice(loaded, func(i, j int) bool { return loaded[i].Name < loaded[j].Name })
	return loaded, nil
}

// FormatPrompt formats loaded skills into a block suitable for prepending
// to an agent's system prompt.
func FormatPrompt(loaded []Skill) string {
	if len(loaded) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("# Available Skills\n\n")
	for _, skill := range loaded {
		sb.WriteString("## ")
		sb.WriteString(skill.Name)
		sb.WriteString("\n\n")
		sb.WriteString(skill.Content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
