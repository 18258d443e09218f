// Package docs embeds the help topics of the msim command.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var topics embed.FS

// Topic returns the markdown content of a help topic.
//
// "*" expands to every topic.
func Topic(name string) (string, error) {
	if name == "*" {
		names, err := All()
		if err != nil {
			return "", err
		}
		return Topics(names...)
	}
	content, err := topics.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics returns several topics, concatenated.
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// All lists the available topics, except the readme, in alphabetical order.
func All() ([]string, error) {
	entries, err := fs.ReadDir(topics, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if e.IsDir() || name == "readme" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
