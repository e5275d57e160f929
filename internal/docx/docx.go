// Package docx reads and writes the parts of a WordprocessingML package that
// carry visible text: the main document body plus header and footer parts.
// Every other part of the archive is copied through untouched.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/beevik/etree"
)

const documentPart = "word/document.xml"

var ErrNotDocument = errors.New("docx: word/document.xml not found")

type partKind int

const (
	partBody partKind = iota
	partHeader
	partFooter
)

type part struct {
	name string
	kind partKind
	xml  *etree.Document
}

type Document struct {
	files []*zip.File
	parts map[string]*part
	// порядок частей: body, затем header/footer в порядке архива
	order []*part
}

func OpenFile(name string) (*Document, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	return Open(data)
}

// Open parses a .docx held in memory. The slice must stay unmodified while the
// Document is in use: untouched parts are copied from it on write.
func Open(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("zip.NewReader: %w", err)
	}

	d := &Document{
		files: zr.File,
		parts: make(map[string]*part),
	}

	var body *part
	var extra []*part

	for _, f := range zr.File {
		kind, ok := classify(f.Name)
		if !ok {
			continue
		}

		x, err := readXML(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}

		p := &part{name: f.Name, kind: kind, xml: x}
		d.parts[f.Name] = p

		if kind == partBody {
			body = p
		} else {
			extra = append(extra, p)
		}
	}

	if body == nil {
		return nil, ErrNotDocument
	}

	d.order = append([]*part{body}, extra...)

	return d, nil
}

func classify(name string) (partKind, bool) {
	if name == documentPart {
		return partBody, true
	}

	dir, file := path.Split(name)
	if dir != "word/" || !strings.HasSuffix(file, ".xml") {
		return 0, false
	}

	switch {
	case strings.HasPrefix(file, "header"):
		return partHeader, true
	case strings.HasPrefix(file, "footer"):
		return partFooter, true
	}

	return 0, false
}

func readXML(f *zip.File) (*etree.Document, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	x := etree.NewDocument()
	if _, err := x.ReadFrom(rc); err != nil {
		return nil, err
	}

	return x, nil
}

// Body returns every paragraph of the main document, including paragraphs
// nested in tables.
func (d *Document) Body() []*Paragraph {
	return d.paragraphs(partBody)
}

// Headers returns paragraphs of all header parts.
func (d *Document) Headers() []*Paragraph {
	return d.paragraphs(partHeader)
}

// Footers returns paragraphs of all footer parts.
func (d *Document) Footers() []*Paragraph {
	return d.paragraphs(partFooter)
}

func (d *Document) paragraphs(kind partKind) []*Paragraph {
	var out []*Paragraph

	for _, p := range d.order {
		if p.kind != kind || p.xml.Root() == nil {
			continue
		}

		collectParagraphs(p.xml.Root(), &out)
	}

	return out
}

func collectParagraphs(e *etree.Element, out *[]*Paragraph) {
	for _, c := range e.ChildElements() {
		if c.Space == "w" && c.Tag == "p" {
			*out = append(*out, &Paragraph{el: c})
		}
		collectParagraphs(c, out)
	}
}

// Text joins body paragraph texts with newlines.
func (d *Document) Text() string {
	return joinText(d.Body())
}

func (d *Document) HeaderText() string {
	return joinText(d.Headers())
}

func (d *Document) FooterText() string {
	return joinText(d.Footers())
}

func joinText(ps []*Paragraph) string {
	lines := make([]string, 0, len(ps))
	for _, p := range ps {
		lines = append(lines, p.Text())
	}

	return strings.Join(lines, "\n")
}

// WriteTo writes the package, re-serializing the text parts and copying the
// rest verbatim. Entry order and modification times are preserved so the
// output is stable for identical content.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	for _, f := range d.files {
		p, ok := d.parts[f.Name]
		if !ok {
			if err := zw.Copy(f); err != nil {
				return cw.n, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}

		body, err := p.xml.WriteToBytes()
		if err != nil {
			return cw.n, fmt.Errorf("serialize %s: %w", f.Name, err)
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return cw.n, fmt.Errorf("create %s: %w", f.Name, err)
		}

		if _, err := fw.Write(body); err != nil {
			return cw.n, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("zip.Close: %w", err)
	}

	return cw.n, nil
}

func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}
