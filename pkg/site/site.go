// Package site generates a static site from a directory of Markdown documents.
//
// Each document is converted with [md.DocumentToTree] and substituted into a
// page template. The first line of each document supplies the page title.
package site

import (
	"errors"
	"os"
	"strings"

	"src.mdsite.sh/pkg/logutil"
	"src.mdsite.sh/pkg/md"
)

var logger = logutil.GetLogger("[site] ")

// Errors returned by ExtractTitle.
var (
	ErrEmptyDocument = errors.New("markdown is empty")
	ErrNoTitle       = errors.New("first line is not a title")
	ErrEmptyTitle    = errors.New("title is empty")
)

// Placeholders substituted in page templates.
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// ExtractTitle returns the title of a document, which is its first line with
// leading and trailing whitespace and one leading "#" removed.
func ExtractTitle(markdown string) (string, error) {
	if markdown == "" {
		return "", ErrEmptyDocument
	}
	first, _, _ := strings.Cut(markdown, "\n")
	title, ok := strings.CutPrefix(strings.TrimSpace(first), "#")
	if !ok {
		return "", ErrNoTitle
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}

// RenderPage converts a document and substitutes its title and content into
// the template.
func RenderPage(markdown, template string) (string, error) {
	markdown = md.NormalizeNewlines(markdown)
	tree, err := md.DocumentToTree(markdown)
	if err != nil {
		return "", err
	}
	content, err := tree.Render()
	if err != nil {
		return "", err
	}
	title, err := ExtractTitle(markdown)
	if err != nil {
		return "", err
	}
	return strings.NewReplacer(
		TitlePlaceholder, title, ContentPlaceholder, content).Replace(template), nil
}

// GeneratePage reads the document at from and the template at template, and
// writes the rendered page to dest, creating its parent directories as
// needed.
func GeneratePage(from, template, dest string) error {
	logger.Printf("generating page from %s to %s using %s", from, dest, template)
	markdown, err := os.ReadFile(from)
	if err != nil {
		return err
	}
	tmpl, err := os.ReadFile(template)
	if err != nil {
		return err
	}
	page, err := RenderPage(string(markdown), string(tmpl))
	if err != nil {
		return &PageError{from, string(markdown), err}
	}
	return writePage(dest, page)
}

// PageError wraps an error converting a document.
type PageError struct {
	Path   string
	Source string
	Err    error
}

func (e *PageError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *PageError) Unwrap() error { return e.Err }
