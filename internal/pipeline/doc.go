// Package pipeline implements the notes-to-LaTeX conversion stages.
//
// A conversion runs three stages over one output file:
//   - WritePreamble renders the preamble and reports how many lines it wrote
//   - Transform walks the note line by line and writes LaTeX body fragments
//   - FormatFile wraps the body in a document environment and indents it
//
// The stages are driven by a Table compiled from a RuleSet: literal heading
// tokens, the code and display-math fences, and the regular expressions for
// images, links and inline code.
//
// Logging, asset copying and LaTeX compilation are handled by the root simtex
// package. Nothing in this package logs.
package pipeline
