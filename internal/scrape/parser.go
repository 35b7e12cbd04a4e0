package scrape

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
)

// ExtractQuestions walks an exam-bank page and pulls out its question
// blocks. The recognized markup is the indiabix-style layout: a container
// div per question holding the prompt, an option list, a hidden
// correct-answer letter and an optional explanation block.
//
//	<div class="bix-div-container">
//	  <td class="bix-td-qtxt">prompt...</td>
//	  <div class="bix-td-option">option text</div> (one per option)
//	  <input class="jq-hdnakq" value="B">
//	  <div class="bix-ans-description">explanation...</div>
//	</div>
func ExtractQuestions(r io.Reader) ([]quiz.Question, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var out []quiz.Question
	walk(root, func(n *html.Node) {
		if !hasClass(n, "bix-div-container") {
			return
		}
		q := parseBlock(n)
		if q.Text != "" && len(q.Options) >= 2 && q.Answer != "" {
			out = append(out, q)
		}
	})
	return out, nil
}

func parseBlock(block *html.Node) quiz.Question {
	var q quiz.Question
	walk(block, func(n *html.Node) {
		switch {
		case hasClass(n, "bix-td-qtxt"):
			q.Text = innerText(n)
		case hasClass(n, "bix-td-option"):
			if opt := innerText(n); opt != "" {
				q.Options = append(q.Options, opt)
			}
		case hasClass(n, "jq-hdnakq"):
			if letter := strings.ToUpper(strings.TrimSpace(attr(n, "value"))); len(letter) == 1 {
				q.Answer = "Option " + letter
			}
		case hasClass(n, "bix-ans-description"):
			q.Explanation = innerText(n)
		}
	})
	if q.Explanation == "" {
		q.Explanation = "Explanation not found."
	}
	q.HasMathContent = hasMath(q.Text) || hasMathAny(q.Options)
	return q
}

func hasMath(s string) bool {
	return strings.Contains(s, `\(`) || strings.Contains(s, "$$") || strings.Contains(s, "<math")
}

func hasMathAny(ss []string) bool {
	for _, s := range ss {
		if hasMath(s) {
			return true
		}
	}
	return false
}

// walk visits every element node under n, n included.
func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func innerText(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
