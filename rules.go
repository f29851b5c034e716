package simtex

import "github.com/alnah/go-simtex/internal/pipeline"

// Rules maps markup concepts to the tokens that denote them in a note.
//
// Heading, fence and emphasis fields are literal tokens. Image, Links and
// InlineCode are regular expressions: Image and Links capture (text, target),
// InlineCode captures the code.
type Rules struct {
	Section       string `yaml:"section"`
	Subsection    string `yaml:"subsection"`
	Subsubsection string `yaml:"subsubsection"`
	Paragraph     string `yaml:"paragraph"`
	Subparagraph  string `yaml:"subparagraph"`
	Code          string `yaml:"code"`
	ParagraphMath string `yaml:"paragraphMath"`
	InlineMath    string `yaml:"inlineMath"`
	InlineCode    string `yaml:"inlineCode"`
	Image         string `yaml:"image"`
	Links         string `yaml:"links"`
	Bold          string `yaml:"bold"`
	Italics       string `yaml:"italics"`
	Emph          string `yaml:"emph"`
	Strike        string `yaml:"strike"`
	Superscript   string `yaml:"superscript"`
	Subscript     string `yaml:"subscript"`
	Underline     string `yaml:"underline"`
	Quote         string `yaml:"quote"`
	BlockQuote    string `yaml:"blockQuote"`
}

// DefaultRules returns the markdown-like token set shipped with simtex.
func DefaultRules() Rules {
	return Rules{
		Section:       "#",
		Subsection:    "##",
		Subsubsection: "###",
		Paragraph:     "####",
		Subparagraph:  "#####",
		Code:          "```",
		ParagraphMath: "$$",
		InlineMath:    "$",
		InlineCode:    "`([^`]+)`",
		Image:         `!\[([^\]]*)\]\(([^)]+)\)`,
		Links:         `\[([^\]]+)\]\(([^)]+)\)`,
		Bold:          "**",
		Italics:       "//",
		Emph:          "!!",
		Strike:        "~~",
		Superscript:   "^^",
		Subscript:     ",,",
		Underline:     "++",
		Quote:         ">",
		BlockQuote:    ">>",
	}
}

// Validate reports the first problem with r: ErrMissingRule (listing every
// empty required field), ErrDuplicateToken, ErrInvalidRule or
// ErrInvalidPattern.
func (r *Rules) Validate() error {
	_, err := r.compile()
	return err
}

func (r *Rules) compile(opts ...pipeline.CompileOption) (*pipeline.Table, error) {
	table, err := pipeline.Compile(r.ruleSet(), opts...)
	if err != nil {
		return nil, convertPipelineError(err)
	}
	return table, nil
}

func (r *Rules) ruleSet() pipeline.RuleSet {
	return pipeline.RuleSet{
		Section:       r.Section,
		Subsection:    r.Subsection,
		Subsubsection: r.Subsubsection,
		Paragraph:     r.Paragraph,
		Subparagraph:  r.Subparagraph,
		Code:          r.Code,
		ParagraphMath: r.ParagraphMath,
		InlineCode:    r.InlineCode,
		Image:         r.Image,
		Links:         r.Links,
		InlineMath:    r.InlineMath,
		Bold:          r.Bold,
		Italics:       r.Italics,
		Emph:          r.Emph,
		Strike:        r.Strike,
		Superscript:   r.Superscript,
		Subscript:     r.Subscript,
		Underline:     r.Underline,
		Quote:         r.Quote,
		BlockQuote:    r.BlockQuote,
	}
}
