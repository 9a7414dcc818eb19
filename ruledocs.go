// Package osemf exposes the documentation of the built-in validation
// rules for CLI help output.
package osemf

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed docs/rules/*.md
var ruleDocs embed.FS

// RuleDoc summarizes one rule documentation page.
type RuleDoc struct {
	ID          string
	Name        string
	Description string
	Path        string
}

// ListRules returns all rule docs sorted by ID. Each doc's first heading
// must have the form "RMnnn: rule-name"; the first paragraph after it is
// used as the description.
func ListRules() ([]RuleDoc, error) {
	return listRulesFS(ruleDocs)
}

func listRulesFS(fsys fs.FS) ([]RuleDoc, error) {
	entries, err := fs.Glob(fsys, "docs/rules/*.md")
	if err != nil {
		return nil, fmt.Errorf("globbing rule docs: %w", err)
	}

	var docs []RuleDoc
	for _, path := range entries {
		source, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		doc, err := parseRuleDoc(path, source)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// LookupRule returns the full documentation content for a rule,
// addressed by ID (case-insensitive) or name.
func LookupRule(query string) (string, error) {
	return lookupRuleFS(ruleDocs, query)
}

func lookupRuleFS(fsys fs.FS, query string) (string, error) {
	docs, err := listRulesFS(fsys)
	if err != nil {
		return "", err
	}

	q := strings.TrimSpace(query)
	for _, d := range docs {
		if strings.EqualFold(d.ID, q) || d.Name == strings.ToLower(q) {
			content, err := fs.ReadFile(fsys, d.Path)
			if err != nil {
				return "", fmt.Errorf("reading %q: %w", d.Path, err)
			}
			return string(content), nil
		}
	}
	return "", fmt.Errorf("unknown rule %q", query)
}

// parseRuleDoc extracts ID, name and description from a doc page.
func parseRuleDoc(path string, source []byte) (RuleDoc, error) {
	reader := text.NewReader(source)
	root := goldmark.DefaultParser().Parse(reader)

	var title, description string
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Heading:
			if title == "" && v.Level == 1 {
				title = string(nodeText(v, source))
			}
		case *ast.Paragraph:
			if title != "" && description == "" {
				description = string(nodeText(v, source))
			}
		}
		if title != "" && description != "" {
			break
		}
	}

	id, name, found := strings.Cut(title, ":")
	if !found || title == "" {
		return RuleDoc{}, fmt.Errorf("%s: first heading must look like \"RMnnn: rule-name\", got %q", path, title)
	}

	return RuleDoc{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Path:        path,
	}, nil
}

// nodeText collects the raw text of a block node's segments.
func nodeText(n ast.Node, source []byte) []byte {
	var out []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, seg.Value(source)...)
	}
	return []byte(strings.TrimSpace(strings.ReplaceAll(string(out), "\n", " ")))
}
