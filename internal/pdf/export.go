// Package pdf renders a quiz set to a printable PDF: title, numbered
// questions with their lettered options, and the answer letter under each.
package pdf

import (
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/net/html"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
)

// Export writes the PDF for a quiz set to w. Question text and options are
// stripped of embedded HTML before rendering.
func Export(w io.Writer, title string, questions []quiz.Question) error {
	doc := gofpdf.New("P", "mm", "Letter", "")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("") // core fonts are cp1252

	doc.SetFont("Helvetica", "B", 14)
	doc.MultiCell(0, 8, tr("Quiz: "+title), "", "L", false)
	doc.Ln(2)

	for i, q := range questions {
		doc.SetFont("Helvetica", "B", 11)
		doc.MultiCell(0, 6, tr("Question No. "+strconv.Itoa(i+1)+": "+StripTags(q.Text)), "", "L", false)

		doc.SetFont("Helvetica", "", 11)
		for j, opt := range q.Options {
			letter := string(rune('A' + j))
			doc.MultiCell(0, 6, tr(letter+". "+StripTags(opt)), "", "L", false)
		}

		answer := strings.TrimPrefix(q.Answer, "Option ")
		doc.MultiCell(0, 6, "Answer: "+answer, "", "L", false)
		doc.Ln(4)
	}

	return doc.Output(w)
}

// StripTags drops markup and returns the concatenated text content. Invalid
// fragments degrade gracefully: the tokenizer never fails, it just stops.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
