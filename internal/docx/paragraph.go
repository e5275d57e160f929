package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Paragraph wraps a <w:p> element.
type Paragraph struct {
	el *etree.Element
}

// Run wraps a <w:r> element, the smallest span of uniformly formatted text.
type Run struct {
	el *etree.Element
}

// Runs returns the direct runs of the paragraph. Runs inside hyperlinks or
// fields are not included.
func (p *Paragraph) Runs() []*Run {
	els := p.el.SelectElements("w:r")

	runs := make([]*Run, 0, len(els))
	for _, e := range els {
		runs = append(runs, &Run{el: e})
	}

	return runs
}

func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}

	return sb.String()
}

// Clear removes all content from the paragraph but keeps its properties.
func (p *Paragraph) Clear() {
	for _, c := range p.el.ChildElements() {
		if c.Space == "w" && c.Tag == "pPr" {
			continue
		}
		p.el.RemoveChild(c)
	}
}

// SetSpacing sets the space before and after the paragraph, in twentieths of
// a point. Automatic spacing is switched off so the values take effect.
func (p *Paragraph) SetSpacing(before, after int) {
	spacing := p.properties().SelectElement("w:spacing")
	if spacing == nil {
		spacing = insertSpacing(p.properties())
	}

	spacing.CreateAttr("w:before", strconv.Itoa(before))
	spacing.CreateAttr("w:after", strconv.Itoa(after))
	spacing.RemoveAttr("w:beforeAutospacing")
	spacing.RemoveAttr("w:afterAutospacing")
	spacing.RemoveAttr("w:beforeLines")
	spacing.RemoveAttr("w:afterLines")
}

// Spacing returns the explicit before/after values, -1 when unset.
func (p *Paragraph) Spacing() (before, after int) {
	before, after = -1, -1

	pPr := p.el.SelectElement("w:pPr")
	if pPr == nil {
		return before, after
	}
	spacing := pPr.SelectElement("w:spacing")
	if spacing == nil {
		return before, after
	}

	if v, err := strconv.Atoi(spacing.SelectAttrValue("w:before", "")); err == nil {
		before = v
	}
	if v, err := strconv.Atoi(spacing.SelectAttrValue("w:after", "")); err == nil {
		after = v
	}

	return before, after
}

func (p *Paragraph) properties() *etree.Element {
	if pPr := p.el.SelectElement("w:pPr"); pPr != nil {
		return pPr
	}

	pPr := etree.NewElement("w:pPr")
	p.el.InsertChildAt(0, pPr)

	return pPr
}

// элементы pPr, которые по схеме идут после w:spacing
var afterSpacing = map[string]struct{}{
	"ind": {}, "contextualSpacing": {}, "mirrorIndents": {}, "suppressOverlap": {},
	"jc": {}, "textDirection": {}, "textAlignment": {}, "textboxTightWrap": {},
	"outlineLvl": {}, "divId": {}, "cnfStyle": {}, "rPr": {}, "sectPr": {}, "pPrChange": {},
}

func insertSpacing(pPr *etree.Element) *etree.Element {
	spacing := etree.NewElement("w:spacing")

	for _, c := range pPr.ChildElements() {
		if _, ok := afterSpacing[c.Tag]; ok && c.Space == "w" {
			pPr.InsertChildAt(c.Index(), spacing)
			return spacing
		}
	}

	pPr.AddChild(spacing)

	return spacing
}

// Text returns the run's text: <w:t> content, tabs as "\t", breaks as "\n".
func (r *Run) Text() string {
	var sb strings.Builder

	for _, c := range r.el.ChildElements() {
		if c.Space != "w" {
			continue
		}

		switch c.Tag {
		case "t":
			sb.WriteString(c.Text())
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// SetText replaces the run's content, keeping its formatting (<w:rPr>).
// "\t" and "\n" become <w:tab/> and <w:br/>.
func (r *Run) SetText(s string) {
	for _, c := range r.el.ChildElements() {
		if c.Space == "w" && c.Tag == "rPr" {
			continue
		}
		r.el.RemoveChild(c)
	}

	var chunk strings.Builder
	flush := func() {
		if chunk.Len() == 0 {
			return
		}

		t := r.el.CreateElement("w:t")
		text := chunk.String()
		if strings.TrimSpace(text) != text {
			t.CreateAttr("xml:space", "preserve")
		}
		t.SetText(text)
		chunk.Reset()
	}

	for _, ch := range s {
		switch ch {
		case '\t':
			flush()
			r.el.CreateElement("w:tab")
		case '\n':
			flush()
			r.el.CreateElement("w:br")
		default:
			chunk.WriteRune(ch)
		}
	}
	flush()
}
