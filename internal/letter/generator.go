package letter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pratham13103/OfferLetter-Verification/assets"
	"github.com/pratham13103/OfferLetter-Verification/internal/dates"
	"github.com/pratham13103/OfferLetter-Verification/internal/docx"
	"github.com/pratham13103/OfferLetter-Verification/internal/dto"
)

const (
	FilePrefix = "updated_offer_letter_"
	FileExt    = ".docx"
	MediaType  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type Config struct {
	// TemplatePath: пустой путь означает встроенный шаблон.
	TemplatePath string
	OutputDir    string
}

type Result struct {
	FileName string
	Path     string
	Content  []byte
}

type Option func(*Generator)

// WithClock подменяет источник текущей даты для <current_date>.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// Generator renders offer letters from a template held in memory. Each call
// parses its own copy of the template, so concurrent calls share nothing but
// the output directory.
type Generator struct {
	template  []byte
	outputDir string
	now       func() time.Time
	log       zerolog.Logger
}

func NewGenerator(cfg Config, log zerolog.Logger, opts ...Option) (*Generator, error) {
	tpl := assets.Template
	if cfg.TemplatePath != "" {
		data, err := os.ReadFile(cfg.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile: %w", err)
		}
		tpl = data
	}

	// шаблон проверяется один раз при старте
	if _, err := docx.Open(tpl); err != nil {
		return nil, fmt.Errorf("template %q: %w", cfg.TemplatePath, err)
	}

	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	g := &Generator{
		template:  tpl,
		outputDir: dir,
		now:       time.Now,
		log:       log.With().Str("component", "letter").Logger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// FileName derives the output file name from the recipient name. Spaces become
// underscores; path separators are replaced too so the file stays inside the
// output directory.
func FileName(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", `\`, "_")
	return FilePrefix + r.Replace(name) + FileExt
}

// BuildReplacements maps record fields to template tokens. Stored dates are
// re-read (long form, then ISO) and rendered in the long form.
func BuildReplacements(rec dto.OfferLetter, now time.Time) (Replacements, error) {
	start, err := dates.NormalizeStored(rec.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}

	end, err := dates.NormalizeStored(rec.EndDate)
	if err != nil {
		return nil, fmt.Errorf("end_date: %w", err)
	}

	return Replacements{
		{Token: TokenName, Value: rec.Name},
		{Token: TokenDuration, Value: rec.Duration},
		{Token: TokenStartDate, Value: start},
		{Token: TokenEndDate, Value: end},
		{Token: TokenCurrentDate, Value: dates.Long(now)},
	}, nil
}

// Generate fills the template for rec and writes it to the output directory.
// An existing file with the same name is replaced atomically.
func (g *Generator) Generate(ctx context.Context, rec dto.OfferLetter) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repl, err := BuildReplacements(rec, g.now())
	if err != nil {
		return nil, err
	}

	doc, err := docx.Open(g.template)
	if err != nil {
		return nil, fmt.Errorf("docx.Open: %w", err)
	}

	n := Render(doc, repl)

	content, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("doc.Bytes: %w", err)
	}

	name := FileName(rec.Name)
	path := filepath.Join(g.outputDir, name)

	if err := writeAtomic(g.outputDir, path, content); err != nil {
		return nil, err
	}

	g.log.Info().
		Int64("offer_letter_id", rec.ID).
		Str("file", path).
		Int("paragraphs", n).
		Msg("offer letter generated")

	return &Result{FileName: name, Path: path, Content: content}, nil
}

func writeAtomic(dir, path string, content []byte) error {
	tmp, err := os.CreateTemp(dir, ".offer-letter-*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("tmp.Chmod: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
