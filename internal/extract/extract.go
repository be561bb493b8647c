// Package extract provides content extraction utilities for the limber CLI
// tool. It turns HTML transcript pages into plain text for scoring and
// session description HTML into Markdown for display.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// LooksLikeHTML is a cheap sniff so plain-text transcripts bypass extraction
// entirely. It only needs to catch transcript pages saved as full documents.
func LooksLikeHTML(s string) bool {
	head := strings.ToLower(strings.TrimSpace(s))
	if len(head) > 256 {
		head = head[:256]
	}
	return strings.HasPrefix(head, "<!doctype") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<body")
}

// ToText extracts plain text from an HTML document.
//
// Parameters:
//   - content: io.Reader containing HTML
//   - selector: optional CSS selector isolating the transcript element; when
//     empty, go-readability picks the main content
//
// Returns whitespace-normalized plain text, or an error when nothing could
// be extracted.
func ToText(content io.Reader, selector string) (string, error) {
	if selector != "" {
		return textWithSelector(content, selector)
	}
	return mainContentText(content)
}

// mainContentText uses go-readability to isolate the main content and
// returns its text.
func mainContentText(content io.Reader) (string, error) {
	article, err := readability.FromReader(content, &url.URL{})
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}
	return normalizeSpace(article.TextContent), nil
}

// textWithSelector uses a CSS selector to pull text from specific elements
func textWithSelector(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var parts []string
	selection.Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	if len(parts) == 0 {
		return "", fmt.Errorf("selector %q matched only empty elements", selector)
	}

	return normalizeSpace(strings.Join(parts, "\n")), nil
}

// ToMarkdown converts an HTML fragment (a session description) to clean
// Markdown for terminal display.
func ToMarkdown(htmlString string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	cleaned := strings.TrimSpace(markdown)
	// collapse runs of blank lines left over from block elements
	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}
	return cleaned, nil
}

// normalizeSpace collapses runs of spaces and tabs while preserving line
// structure, then trims the result.
func normalizeSpace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) > 0 {
			out = append(out, strings.Join(fields, " "))
		}
	}
	return strings.Join(out, "\n")
}
