package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// RuleSet holds the raw tokens and patterns of a rule table.
type RuleSet struct {
	Section       string
	Subsection    string
	Subsubsection string
	Paragraph     string
	Subparagraph  string
	Code          string
	ParagraphMath string
	InlineCode    string
	Image         string
	Links         string

	// Literal tokens reserved for inline markup. They take part in the
	// distinctness check but the body transformer does not act on them.
	InlineMath  string
	Bold        string
	Italics     string
	Emph        string
	Strike      string
	Superscript string
	Subscript   string
	Underline   string
	Quote       string
	BlockQuote  string
}

// HeadingKind identifies a sectioning command.
type HeadingKind int

// Heading kinds, in dispatch priority order.
const (
	HeadingSection HeadingKind = iota
	HeadingSubsection
	HeadingSubsubsection
	HeadingParagraph
	HeadingSubparagraph
)

var headingCommands = [...]string{
	HeadingSection:       "section",
	HeadingSubsection:    "subsection",
	HeadingSubsubsection: "subsubsection",
	HeadingParagraph:     "paragraph",
	HeadingSubparagraph:  "subparagraph",
}

// Command returns the LaTeX command name, without the backslash.
func (k HeadingKind) Command() string {
	if k < 0 || int(k) >= len(headingCommands) {
		return ""
	}
	return headingCommands[k]
}

func (k HeadingKind) String() string {
	return k.Command()
}

// Table is a compiled, immutable rule table. It is safe for concurrent use.
type Table struct {
	headings   map[string]HeadingKind
	code       string
	math       string
	image      *regexp.Regexp
	links      *regexp.Regexp
	inlineCode *regexp.Regexp
	language   func(string) string
}

// CompileOption configures Compile.
type CompileOption func(*Table)

// WithLanguageNormalizer rewrites code-fence language tags through fn.
func WithLanguageNormalizer(fn func(string) string) CompileOption {
	return func(t *Table) {
		t.language = fn
	}
}

type field struct {
	name  string
	value string
}

// Compile validates rs and builds a Table.
//
// Every required field must be set, every non-empty literal token must be
// unique, heading tokens must be a single word, and the image and links
// patterns need two capture groups (inlineCode needs one).
func Compile(rs RuleSet, opts ...CompileOption) (*Table, error) {
	headings := []field{
		{"section", rs.Section},
		{"subsection", rs.Subsection},
		{"subsubsection", rs.Subsubsection},
		{"paragraph", rs.Paragraph},
		{"subparagraph", rs.Subparagraph},
	}
	required := append(headings[:len(headings):len(headings)],
		field{"code", rs.Code},
		field{"paragraphMath", rs.ParagraphMath},
		field{"inlineCode", rs.InlineCode},
		field{"image", rs.Image},
		field{"links", rs.Links},
	)

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingRule, strings.Join(missing, ", "))
	}

	for _, f := range headings {
		if strings.IndexFunc(f.value, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: %s token %q contains whitespace", ErrInvalidRule, f.name, f.value)
		}
	}

	literals := append(headings[:len(headings):len(headings)],
		field{"code", rs.Code},
		field{"paragraphMath", rs.ParagraphMath},
		field{"inlineMath", rs.InlineMath},
		field{"bold", rs.Bold},
		field{"italics", rs.Italics},
		field{"emph", rs.Emph},
		field{"strike", rs.Strike},
		field{"superscript", rs.Superscript},
		field{"subscript", rs.Subscript},
		field{"underline", rs.Underline},
		field{"quote", rs.Quote},
		field{"blockQuote", rs.BlockQuote},
	)
	seen := make(map[string]string, len(literals))
	for _, f := range literals {
		if f.value == "" {
			continue
		}
		if other, ok := seen[f.value]; ok {
			return nil, fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateToken, f.value, other, f.name)
		}
		seen[f.value] = f.name
	}

	image, err := compilePattern("image", rs.Image, 2)
	if err != nil {
		return nil, err
	}
	links, err := compilePattern("links", rs.Links, 2)
	if err != nil {
		return nil, err
	}
	inlineCode, err := compilePattern("inlineCode", rs.InlineCode, 1)
	if err != nil {
		return nil, err
	}

	t := &Table{
		headings:   make(map[string]HeadingKind, len(headings)),
		code:       rs.Code,
		math:       rs.ParagraphMath,
		image:      image,
		links:      links,
		inlineCode: inlineCode,
	}
	for i, f := range headings {
		// First registration wins.
		if _, ok := t.headings[f.value]; !ok {
			t.headings[f.value] = HeadingKind(i)
		}
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func compilePattern(name, expr string, groups int) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, name, err)
	}
	if re.NumSubexp() < groups {
		return nil, fmt.Errorf("%w: %s needs %d capture groups, has %d", ErrInvalidPattern, name, groups, re.NumSubexp())
	}
	return re, nil
}

// Heading reports the heading kind registered for token.
func (t *Table) Heading(token string) (HeadingKind, bool) {
	k, ok := t.headings[token]
	return k, ok
}
