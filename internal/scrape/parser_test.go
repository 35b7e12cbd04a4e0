package scrape

import (
	"strings"
	"testing"
)

const samplePage = `
<html><body>
<div class="bix-div-container">
  <table><tr><td class="bix-td-qtxt">Which gas is most abundant in Earth's atmosphere?</td></tr></table>
  <div class="bix-td-option">Oxygen</div>
  <div class="bix-td-option">Nitrogen</div>
  <div class="bix-td-option">Argon</div>
  <div class="bix-td-option">Carbon dioxide</div>
  <input type="hidden" class="jq-hdnakq" value="B">
  <div class="bix-ans-description">Nitrogen makes up about 78% of the atmosphere.</div>
</div>
<div class="bix-div-container">
  <table><tr><td class="bix-td-qtxt">Evaluate \(x^2\) for x = 3.</td></tr></table>
  <div class="bix-td-option">6</div>
  <div class="bix-td-option">9</div>
  <input type="hidden" class="jq-hdnakq" value="b">
</div>
<div class="bix-div-container">
  <table><tr><td class="bix-td-qtxt">Broken block with one option only</td></tr></table>
  <div class="bix-td-option">lonely</div>
  <input type="hidden" class="jq-hdnakq" value="A">
</div>
</body></html>`

func TestExtractQuestions(t *testing.T) {
	qs, err := ExtractQuestions(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("ExtractQuestions: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("extracted %d questions, want 2 (broken block dropped)", len(qs))
	}

	q := qs[0]
	if q.Text != "Which gas is most abundant in Earth's atmosphere?" {
		t.Errorf("text = %q", q.Text)
	}
	if len(q.Options) != 4 || q.Options[1] != "Nitrogen" {
		t.Errorf("options = %v", q.Options)
	}
	if q.Answer != "Option B" {
		t.Errorf("answer = %q, want Option B", q.Answer)
	}
	if !strings.Contains(q.Explanation, "78%") {
		t.Errorf("explanation = %q", q.Explanation)
	}
	if q.HasMathContent {
		t.Error("question 1 flagged as math")
	}

	if qs[1].Answer != "Option B" {
		t.Errorf("lowercase answer letter not normalized: %q", qs[1].Answer)
	}
	if !qs[1].HasMathContent {
		t.Error("LaTeX fragment not flagged as math")
	}
	if qs[1].Explanation != "Explanation not found." {
		t.Errorf("missing explanation placeholder: %q", qs[1].Explanation)
	}
}

func TestExpand(t *testing.T) {
	cases := []struct {
		name string
		spec URLSpec
		want []string
	}{
		{
			name: "bare url",
			spec: URLSpec{BaseURL: "https://example.com/quiz"},
			want: []string{"https://example.com/quiz"},
		},
		{
			name: "numbered range",
			spec: URLSpec{BaseURL: "https://example.com/sets/", StartURL: 2, EndURL: 4},
			want: []string{"https://example.com/sets/2", "https://example.com/sets/3", "https://example.com/sets/4"},
		},
		{
			name: "page range",
			spec: URLSpec{BaseURL: "https://example.com/topic", StartPage: 1, EndPage: 2},
			want: []string{"https://example.com/topic?page=1", "https://example.com/topic?page=2"},
		},
		{
			name: "inverted range collapses to start",
			spec: URLSpec{BaseURL: "https://example.com/sets", StartURL: 5, EndURL: 1},
			want: []string{"https://example.com/sets/5"},
		},
		{
			name: "empty",
			spec: URLSpec{},
			want: nil,
		},
	}
	for _, c := range cases {
		got := expand(c.spec)
		if len(got) != len(c.want) {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("%s: got %v, want %v", c.name, got, c.want)
				break
			}
		}
	}
}
