// Package simtex converts plain-text notes written with lightweight markup
// into LaTeX documents.
//
// # Quick Start
//
// Create a converter from a rule table and document settings, then convert
// a note:
//
//	conv, err := simtex.NewConverter(simtex.DefaultRules(), simtex.DefaultDocument())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert("notes/linear_algebra.txt", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OutputPath) // notes/linear_algebra.tex
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Preamble rendering (document class, fonts, packages, listings style)
//  2. Body transformation, one pass over the note's lines
//  3. Post-formatting: the body is wrapped in a document environment
//  4. Optional copy of referenced images into the output folder
//
// The body transformer recognizes headings, display math fences, code fences,
// images, links and inline code. Everything else is emitted as a paragraph.
//
// # Rule Tables
//
// Every markup token is configurable through Rules. Heading and fence tokens
// are literal strings; Image, Links and InlineCode are regular expressions:
//
//	rules := simtex.DefaultRules()
//	rules.Section = "="
//	rules.Code = "~~~"
//	if err := rules.Validate(); err != nil {
//	    log.Fatal(err) // ErrMissingRule, ErrDuplicateToken, ...
//	}
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := simtex.NewConverter(rules, doc,
//	    simtex.WithLogger(logger),
//	    simtex.WithListings("./my-listings.tex"),
//	    simtex.WithAssetCopy(true),
//	)
//
// # Custom Assets
//
// Override the preamble template and listings styles using AssetLoader:
//
//	loader, err := simtex.NewAssetLoader("/path/to/assets")
//	conv, err := simtex.NewConverter(rules, doc, simtex.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── listings/
//	│   └── custom.tex
//	└── templates/
//	    └── preamble.tex
//
// The preamble template uses text/template with << >> delimiters.
//
// # Building PDFs
//
// Builder runs a LaTeX compiler (pdflatex by default) on the generated file:
//
//	b := simtex.NewBuilder("pdflatex", simtex.WithBuildTimeout(time.Minute))
//	pdf, err := b.Build(ctx, result.OutputPath)
//
// The compiler must be installed and on PATH.
package simtex
