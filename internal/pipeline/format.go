package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-simtex/internal/fileutil"
)

const (
	beginDocument = `\begin{document}`
	endDocument   = `\end{document}`
	beginListing  = `\begin{lstlisting}`
	endListing    = `\end{lstlisting}`
	makeTitle     = `\maketitle`
)

// Format wraps the body of a generated file in a document environment.
//
// lines[:start] is the preamble and is copied unchanged. Every body line is
// indented by one tab, except lstlisting environments which are copied
// verbatim. Format reports false, and returns no content, when the first
// non-blank body line is \begin{document}, which is where a previous run put
// it. The marker anywhere else, such as inside a listing, is body text.
func Format(lines []string, start int, withTitle bool) (string, bool, error) {
	if start < 0 || start > len(lines) {
		return "", false, fmt.Errorf("%w: body start %d outside %d lines", ErrFormat, start, len(lines))
	}

	body := lines[start:]
	if alreadyWrapped(body) {
		return "", false, nil
	}

	var b strings.Builder
	for _, line := range lines[:start] {
		b.WriteString(line)
	}

	b.WriteString("\n" + beginDocument + "\n")
	if withTitle {
		b.WriteString("\t" + makeTitle + "\n")
	}

	verbatim := false
	for _, line := range body {
		switch {
		case verbatim:
			b.WriteString(line)
			verbatim = !strings.HasPrefix(line, endListing)
		case strings.HasPrefix(line, beginListing):
			b.WriteString(line)
			verbatim = true
		default:
			b.WriteString("\t" + line)
		}
	}

	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}
	b.WriteString(endDocument + "\n")

	return b.String(), true, nil
}

func alreadyWrapped(body []string) bool {
	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		return trimmed == beginDocument
	}
	return false
}

// FormatFile applies Format to the file at path and replaces it atomically.
// The whole file is read before anything is written.
func FormatFile(path string, start int, withTitle bool) (bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- generated output file
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	content, rewritten, err := Format(SplitLines(string(data)), start, withTitle)
	if err != nil || !rewritten {
		return false, err
	}

	if err := fileutil.WriteFileAtomic(path, []byte(content)); err != nil {
		return false, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return true, nil
}
