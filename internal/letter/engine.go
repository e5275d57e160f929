// Package letter fills the offer letter template with record values.
package letter

import (
	"strings"

	"github.com/pratham13103/OfferLetter-Verification/internal/docx"
)

// Плейсхолдеры шаблона.
const (
	TokenName        = "<name>"
	TokenDuration    = "<duration>"
	TokenStartDate   = "<start_date>"
	TokenEndDate     = "<end_date>"
	TokenCurrentDate = "<current_date>"
)

type Replacement struct {
	Token string
	Value string
}

// Replacements is applied in a single pass: a value that happens to contain a
// token is not substituted again.
type Replacements []Replacement

func (r Replacements) replacer() *strings.Replacer {
	pairs := make([]string, 0, len(r)*2)
	for _, x := range r {
		if x.Token == "" {
			continue
		}
		pairs = append(pairs, x.Token, x.Value)
	}

	return strings.NewReplacer(pairs...)
}

func (r Replacements) matches(text string) bool {
	for _, x := range r {
		if x.Token != "" && strings.Contains(text, x.Token) {
			return true
		}
	}

	return false
}

// Render substitutes tokens in body, header and footer paragraphs, removes
// manual breaks, zeroes paragraph spacing and empties the headers.
// Tokens without a replacement stay as they are. Rendering an already
// rendered document changes nothing. Returns the number of paragraphs in
// which tokens were replaced.
func Render(doc *docx.Document, repl Replacements) int {
	rp := repl.replacer()
	replaced := 0

	groups := [][]*docx.Paragraph{doc.Body(), doc.Headers(), doc.Footers()}
	for _, ps := range groups {
		for _, p := range ps {
			if substitute(p, repl, rp) {
				replaced++
			}
			blankBreaks(p)
			p.SetSpacing(0, 0)
		}
	}

	for _, p := range doc.Headers() {
		p.Clear()
	}

	return replaced
}

// substitute переписывает текст абзаца в первый run, остальные очищает.
func substitute(p *docx.Paragraph, repl Replacements, rp *strings.Replacer) bool {
	text := p.Text()
	if !repl.matches(text) {
		return false
	}

	out := rp.Replace(text)
	if out == text {
		return false
	}

	runs := p.Runs()
	runs[0].SetText(out)
	for _, r := range runs[1:] {
		r.SetText("")
	}

	return true
}

func blankBreaks(p *docx.Paragraph) {
	for _, r := range p.Runs() {
		if r.Text() == "\n" {
			r.SetText("")
		}
	}
}
