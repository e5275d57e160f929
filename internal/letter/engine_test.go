package letter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratham13103/OfferLetter-Verification/assets"
	"github.com/pratham13103/OfferLetter-Verification/internal/docx"
	"github.com/pratham13103/OfferLetter-Verification/internal/docx/docxtest"
	"github.com/pratham13103/OfferLetter-Verification/internal/letter"
)

var janeDoe = letter.Replacements{
	{Token: letter.TokenName, Value: "Jane Doe"},
	{Token: letter.TokenDuration, Value: "3 months"},
	{Token: letter.TokenStartDate, Value: "January 15, 2025"},
	{Token: letter.TokenEndDate, Value: "April 15, 2025"},
	{Token: letter.TokenCurrentDate, Value: "January 10, 2025"},
}

func openPackage(t *testing.T, body, header, footer string) *docx.Document {
	t.Helper()

	doc, err := docx.Open(docxtest.Package(t, body, header, footer))
	require.NoError(t, err)

	return doc
}

func TestRenderTokenSplitAcrossRuns(t *testing.T) {
	doc := openPackage(t, docxtest.P("Dear ", "<na", "me>", ","), "", "")

	n := letter.Render(doc, janeDoe)
	assert.Equal(t, 1, n)

	runs := doc.Body()[0].Runs()
	require.Len(t, runs, 4)
	assert.Equal(t, "Dear Jane Doe,", runs[0].Text())
	for _, r := range runs[1:] {
		assert.Equal(t, "", r.Text())
	}
}

func TestRenderReplacesAllOccurrences(t *testing.T) {
	doc := openPackage(t, docxtest.P("<start_date> to <end_date>, again <start_date>"), "", "")

	letter.Render(doc, janeDoe)

	assert.Equal(t, "January 15, 2025 to April 15, 2025, again January 15, 2025", doc.Text())
}

func TestRenderKeepsUnmappedTokens(t *testing.T) {
	doc := openPackage(t,
		docxtest.P("Signed: ", "<signature>")+docxtest.P("<name> / <signature>"),
		"", "")

	n := letter.Render(doc, janeDoe)
	assert.Equal(t, 1, n)

	ps := doc.Body()
	assert.Equal(t, "Signed: <signature>", ps[0].Text())
	assert.Len(t, ps[0].Runs(), 2, "paragraph without mapped tokens must keep its runs")
	assert.Equal(t, "Jane Doe / <signature>", ps[1].Text())
}

func TestRenderBlanksPageBreaks(t *testing.T) {
	doc := openPackage(t, docxtest.P("before")+docxtest.P("\n")+docxtest.P("after"), "", "")

	letter.Render(doc, janeDoe)

	assert.Equal(t, "before\n\nafter", doc.Text())

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.NotContains(t, string(out), `w:type="page"`)
}

func TestRenderHeadersClearedFootersFilled(t *testing.T) {
	doc := openPackage(t,
		docxtest.P("body"),
		docxtest.P("ACME Corp")+docxtest.P("Ref ", "<name>"),
		docxtest.P("Issued ", "<current_date>"),
	)

	letter.Render(doc, janeDoe)

	for _, p := range doc.Headers() {
		assert.Empty(t, p.Runs())
	}
	assert.Equal(t, "\n", doc.HeaderText())
	assert.Equal(t, "Issued January 10, 2025", doc.FooterText())
}

func TestRenderZeroesSpacing(t *testing.T) {
	spaced := `<w:p><w:pPr><w:spacing w:before="240" w:after="240"/></w:pPr>` + docxtest.R("x") + `</w:p>`
	doc := openPackage(t, spaced+docxtest.P("y"), spaced, spaced)

	letter.Render(doc, janeDoe)

	all := append(append(doc.Body(), doc.Headers()...), doc.Footers()...)
	for _, p := range all {
		before, after := p.Spacing()
		assert.Equal(t, 0, before)
		assert.Equal(t, 0, after)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	doc, err := docx.Open(assets.Template)
	require.NoError(t, err)

	letter.Render(doc, janeDoe)
	first, err := doc.Bytes()
	require.NoError(t, err)

	n := letter.Render(doc, janeDoe)
	assert.Zero(t, n)
	second, err := doc.Bytes()
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}

func TestRenderTemplate(t *testing.T) {
	doc, err := docx.Open(assets.Template)
	require.NoError(t, err)

	letter.Render(doc, janeDoe)

	text := doc.Text() + doc.FooterText()
	for _, r := range janeDoe {
		assert.NotContains(t, text, r.Token)
	}
	assert.Contains(t, text, "Dear Jane Doe,")
	assert.Contains(t, text, "commencing on January 15, 2025 and concluding on April 15, 2025")
	assert.Contains(t, text, "<signature>")
	assert.Empty(t, bytes.TrimSpace([]byte(doc.HeaderText())))
}
