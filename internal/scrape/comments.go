package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// ExtractComments pulls the visible comment bodies from a discussion page.
// Anything inside an element whose class mentions "comment" counts; nested
// comment containers yield only the outermost text.
func ExtractComments(r io.Reader) ([]string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	var out []string
	var rec func(n *html.Node, inside bool)
	rec = func(n *html.Node, inside bool) {
		if n.Type == html.ElementNode && !inside && isCommentNode(n) {
			if text := innerText(n); text != "" {
				out = append(out, text)
			}
			inside = true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c, inside)
		}
	}
	rec(root, false)
	return out, nil
}

func isCommentNode(n *html.Node) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if strings.Contains(strings.ToLower(f), "comment") {
			return true
		}
	}
	return false
}

// FetchDiscussionComments downloads a question's discussion page and returns
// its comment bodies.
func (s *Service) FetchDiscussionComments(ctx context.Context, pageURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "athena-quiz/1.0")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return ExtractComments(resp.Body)
}
