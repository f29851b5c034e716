package simtex

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-simtex/internal/fileutil"
	"github.com/alnah/go-simtex/internal/pipeline"
)

// TexExt is the extension of generated documents.
const TexExt = ".tex"

// SectionSizes holds the font sizes, in points, of the sectioning commands.
type SectionSizes struct {
	Section       int `yaml:"section"`
	Subsection    int `yaml:"subsection"`
	Subsubsection int `yaml:"subsubsection"`
}

// Document describes the generated LaTeX document: preamble settings,
// title page, and where the .tex file goes.
type Document struct {
	Class         string       `yaml:"class"`
	Font          string       `yaml:"font"`
	FontSize      int          `yaml:"fontSize"`
	PaperSize     string       `yaml:"paperSize"`
	Margin        float64      `yaml:"margin"`     // inches
	IndentSize    int          `yaml:"indentSize"` // pt, 0 keeps the LaTeX default
	Sloppy        bool         `yaml:"sloppy"`
	CodeFont      string       `yaml:"codeFont"`
	CodeFontScale float64      `yaml:"codeFontScale"`
	Packages      []string     `yaml:"packages"`
	SectionSizes  SectionSizes `yaml:"sectionSizes"`
	LinkColor     string       `yaml:"linkColor"`
	Author        string       `yaml:"author"`
	Date          string       `yaml:"date"`
	MakeTitle     bool         `yaml:"makeTitle"`
	Listings      string       `yaml:"listings"` // style name or path to a .tex file

	// OutputFolder and FileName come from the output section of the
	// configuration. Empty values derive from the input path.
	OutputFolder string `yaml:"-"`
	FileName     string `yaml:"-"`
}

// DefaultDocument returns the settings shipped in the default configuration.
func DefaultDocument() Document {
	return Document{
		Class:         "article",
		Font:          "lmodern",
		FontSize:      12,
		PaperSize:     "a4paper",
		Margin:        1.0,
		Sloppy:        true,
		CodeFont:      "beramono",
		CodeFontScale: 0.85,
		Packages:      []string{"amssymb"},
		SectionSizes:  SectionSizes{Section: 16, Subsection: 14, Subsubsection: 12},
		LinkColor:     "blue",
		Date:          "today",
		MakeTitle:     true,
		Listings:      DefaultListings,
	}
}

// Validate checks that d can render a preamble.
func (d *Document) Validate() error {
	required := []struct {
		name, value string
	}{
		{"class", d.Class},
		{"font", d.Font},
		{"paperSize", d.PaperSize},
		{"codeFont", d.CodeFont},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidDocument, r.name)
		}
	}

	if d.FontSize <= 0 {
		return fmt.Errorf("%w: fontSize must be positive, got %d", ErrInvalidDocument, d.FontSize)
	}
	if d.Margin < 0 {
		return fmt.Errorf("%w: margin cannot be negative, got %.2f", ErrInvalidDocument, d.Margin)
	}
	if d.CodeFontScale <= 0 {
		return fmt.Errorf("%w: codeFontScale must be positive, got %.2f", ErrInvalidDocument, d.CodeFontScale)
	}
	if d.IndentSize < 0 {
		return fmt.Errorf("%w: indentSize cannot be negative, got %d", ErrInvalidDocument, d.IndentSize)
	}

	s := d.SectionSizes
	if s.Section <= 0 || s.Subsection <= 0 || s.Subsubsection <= 0 {
		return fmt.Errorf("%w: section sizes must be positive, got %d/%d/%d",
			ErrInvalidDocument, s.Section, s.Subsection, s.Subsubsection)
	}

	if strings.ContainsAny(d.FileName, `/\`) {
		return fmt.Errorf("%w: fileName %q must not contain a path separator", ErrInvalidDocument, d.FileName)
	}
	return nil
}

// OutputPath returns where the document generated from input is written.
// The folder defaults to the input's directory and the file name to the
// input's base name with a .tex extension.
func (d *Document) OutputPath(input string) string {
	folder := d.OutputFolder
	if folder == "" {
		folder = filepath.Dir(input)
	}

	name := d.FileName
	if name == "" {
		name = fileutil.StripExt(input) + TexExt
	} else if !strings.EqualFold(filepath.Ext(name), TexExt) {
		name += TexExt
	}
	return filepath.Join(folder, name)
}

func (d *Document) preambleData(title, date, listings string) pipeline.PreambleData {
	return pipeline.PreambleData{
		Class:         d.Class,
		FontSize:      d.FontSize,
		PaperSize:     d.PaperSize,
		Font:          d.Font,
		CodeFont:      d.CodeFont,
		CodeFontScale: d.CodeFontScale,
		Margin:        d.Margin,
		IndentSize:    d.IndentSize,
		Sloppy:        d.Sloppy,
		Packages:      d.Packages,
		LinkColor:     d.LinkColor,
		SectionSizes: pipeline.SectionSizes{
			Section:       d.SectionSizes.Section,
			Subsection:    d.SectionSizes.Subsection,
			Subsubsection: d.SectionSizes.Subsubsection,
		},
		Listings: listings,
		Title:    title,
		Author:   d.Author,
		Date:     date,
	}
}
