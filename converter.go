package simtex

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-simtex/internal/assets"
	"github.com/alnah/go-simtex/internal/fileutil"
	"github.com/alnah/go-simtex/internal/pipeline"
)

// Converter turns a plain-text note into a LaTeX document.
// Create with NewConverter and call Convert for each note. A Converter holds
// no per-conversion state and may be reused.
type Converter struct {
	cfg      converterConfig
	loader   AssetLoader
	doc      Document
	table    *pipeline.Table
	preamble *template.Template
	listings string
}

// Result describes a finished conversion.
type Result struct {
	OutputPath    string
	Assets        []string // image paths as written in the note, in order
	AssetsCopied  int
	PreambleLines int
	Duration      time.Duration
}

// NewConverter validates rules and doc, loads the listings style and the
// preamble template, and returns a ready Converter.
func NewConverter(rules Rules, doc Document, opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			logger: zerolog.Nop(),
			now:    time.Now,
		},
		doc: doc,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		loader, err := NewAssetLoader("")
		if err != nil {
			return nil, err
		}
		c.loader = loader
	}

	if err := c.doc.Validate(); err != nil {
		return nil, err
	}

	var compileOpts []pipeline.CompileOption
	if c.cfg.normalizeLanguage {
		compileOpts = append(compileOpts, pipeline.WithLanguageNormalizer(pipeline.NormalizeLanguage))
	}
	table, err := rules.compile(compileOpts...)
	if err != nil {
		return nil, err
	}
	c.table = table

	if err := c.resolveListings(); err != nil {
		return nil, err
	}

	text, err := c.loader.LoadTemplate(assets.PreambleTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading preamble template: %w", err)
	}
	c.preamble, err = pipeline.ParsePreamble(text)
	if err != nil {
		return nil, convertPipelineError(err)
	}

	return c, nil
}

// resolveListings loads the listings style named by WithListings, then
// Document.Listings, then the built-in default.
func (c *Converter) resolveListings() error {
	input := c.cfg.listings
	if input == "" {
		input = c.doc.Listings
	}
	if input == "" {
		input = DefaultListings
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: loading listings file %q: %w", ErrListingsNotFound, input, err)
		}
		c.listings = string(content)
		return nil
	}

	content, err := c.loader.LoadListings(input)
	if err != nil {
		return fmt.Errorf("loading listings %q: %w", input, err)
	}
	c.listings = content
	return nil
}

// Convert writes the LaTeX document for the note at inPath. An empty title
// is derived from the input file name.
//
// The preamble and the body are streamed into the output file, which is then
// wrapped in a document environment. Referenced images are copied next to it
// when asset copying is enabled. Recovers from internal panics to prevent
// crashes from propagating to callers.
func (c *Converter) Convert(inPath, title string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()
	log := c.cfg.logger

	info, err := os.Stat(inPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrReadInput, inPath)
	}

	outPath := c.doc.OutputPath(inPath)
	if samePath(inPath, outPath) {
		return nil, fmt.Errorf("%w: output %s would overwrite the input", ErrWriteOutput, outPath)
	}
	if title == "" {
		title = TitleFromPath(inPath)
	}

	date, err := ResolveDate(c.doc.Date, c.cfg.now())
	if err != nil {
		return nil, err
	}

	log.Info().Str("input", inPath).Str("output", outPath).Msg("converting")

	lines, refs, err := c.writeDocument(inPath, outPath, title, date)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("lines", lines).Msg("preamble written")
	log.Debug().Int("assets", len(refs)).Msg("body written")

	rewritten, err := pipeline.FormatFile(outPath, lines, c.doc.MakeTitle)
	if err != nil {
		return nil, convertPipelineError(err)
	}
	log.Debug().Bool("rewritten", rewritten).Msg("document formatted")

	res := &Result{
		OutputPath:    outPath,
		Assets:        refs,
		PreambleLines: lines,
	}

	if c.cfg.copyAssets && len(refs) > 0 {
		res.AssetsCopied = c.copyAssets(filepath.Dir(inPath), filepath.Dir(outPath), refs)
		log.Debug().Int("assets", res.AssetsCopied).Msg("assets copied")
	}

	res.Duration = time.Since(start)
	log.Info().Str("output", outPath).Dur("duration", res.Duration).Msg("converted")
	return res, nil
}

// writeDocument streams the preamble and the body into outPath through one
// handle. A partially written file is removed on failure.
func (c *Converter) writeDocument(inPath, outPath, title, date string) (lines int, refs []string, err error) {
	if err := os.MkdirAll(filepath.Dir(outPath), fileutil.DirPermissions); err != nil {
		return 0, nil, fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err)
	}

	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileutil.FilePermissions) // #nosec G304 -- derived from configured output folder
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrWriteOutput, closeErr)
		}
		if err != nil {
			_ = os.Remove(outPath)
		}
	}()

	w := bufio.NewWriter(f)

	lines, err = pipeline.WritePreamble(w, c.preamble, c.doc.preambleData(title, date, c.listings))
	if err != nil {
		return 0, nil, convertPipelineError(err)
	}

	refs, err = pipeline.TransformFile(c.table, inPath, w)
	if err != nil {
		return 0, nil, convertPipelineError(err)
	}

	if err := w.Flush(); err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return lines, refs, nil
}

// copyAssets copies image references that resolve inside inDir to the same
// relative location under outDir. Failures are logged, not returned.
func (c *Converter) copyAssets(inDir, outDir string, refs []string) int {
	log := c.cfg.logger
	copied := 0
	seen := make(map[string]bool, len(refs))

	for _, ref := range refs {
		rel, ok := localAsset(ref)
		if !ok {
			log.Debug().Str("asset", ref).Msg("asset not copied: not a relative local path")
			continue
		}
		if seen[rel] {
			continue
		}
		seen[rel] = true

		src := filepath.Join(inDir, rel)
		dst := filepath.Join(outDir, rel)
		if samePath(src, dst) {
			continue
		}
		if err := fileutil.CopyFile(src, dst); err != nil {
			log.Warn().Err(err).Str("asset", ref).Msg("asset not copied")
			continue
		}
		copied++
	}
	return copied
}

// localAsset returns the cleaned relative path of ref, or false for URLs,
// absolute paths, and paths escaping the note's directory.
func localAsset(ref string) (string, bool) {
	if ref == "" || fileutil.IsURL(ref) || filepath.IsAbs(ref) || strings.HasPrefix(ref, "/") {
		return "", false
	}
	rel := filepath.Clean(filepath.FromSlash(ref))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// samePath reports whether a and b name the same file, existing or not.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	return fileutil.SameFile(a, b)
}
