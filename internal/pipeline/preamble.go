package pipeline

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// Template delimiters. LaTeX braces make the default {{ }} unusable.
const (
	leftDelim  = "<<"
	rightDelim = ">>"
)

// SectionSizes holds the font sizes, in points, of the sectioning commands.
type SectionSizes struct {
	Section       int
	Subsection    int
	Subsubsection int
}

// PreambleData is the input of the preamble template.
type PreambleData struct {
	Class         string
	FontSize      int
	PaperSize     string
	Font          string
	CodeFont      string
	CodeFontScale float64
	Margin        float64
	IndentSize    int
	Sloppy        bool
	Packages      []string
	LinkColor     string
	SectionSizes  SectionSizes
	Listings      string
	Title         string
	Author        string
	Date          string
}

// ParsePreamble parses a preamble template written with << >> delimiters.
func ParsePreamble(text string) (*template.Template, error) {
	tmpl, err := template.New("preamble").Delims(leftDelim, rightDelim).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return tmpl, nil
}

// WritePreamble renders tmpl to w and returns the number of lines written,
// which is the index of the first body line in the same file.
func WritePreamble(w io.Writer, tmpl *template.Template, data PreambleData) (int, error) {
	packages := make([]string, len(data.Packages))
	for i, p := range data.Packages {
		packages[i] = PackageArg(p)
	}
	data.Packages = packages
	data.Listings = strings.TrimRight(data.Listings, " \t\n")

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	text := b.String()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if _, err := io.WriteString(w, text); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return strings.Count(text, "\n"), nil
}

// PackageArg formats a package entry for \usepackage. Bare names are wrapped
// in braces; entries starting with [ or { are used as written.
func PackageArg(p string) string {
	p = strings.TrimSpace(p)
	if strings.HasPrefix(p, "[") || strings.HasPrefix(p, "{") {
		return p
	}
	return "{" + p + "}"
}
