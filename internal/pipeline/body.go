package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// errWriter remembers the first write error so emitters can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) print(parts ...string) {
	for _, s := range parts {
		if ew.err != nil {
			return
		}
		_, ew.err = io.WriteString(ew.w, s)
	}
}

// TransformFile reads the note at path and writes its LaTeX body to w.
// It returns the image paths referenced by the note, in order.
func TransformFile(t *Table, path string, w io.Writer) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-selected input file
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return Transform(t, SplitLines(string(data)), w)
}

// Transform writes the LaTeX body of lines to w in a single pass.
//
// Lines are dispatched in this order: heading token, display-math fence,
// code fence, then inline content. Block handlers consume the lines up to
// their closing fence, or to the end of input when the fence is never closed.
func Transform(t *Table, lines []string, w io.Writer) ([]string, error) {
	ew := &errWriter{w: w}
	var assets []string

	ref := -1
	for i, line := range lines {
		if i <= ref || isBlank(line) {
			continue
		}

		token := strings.Fields(line)[0]
		if kind, ok := t.Heading(token); ok {
			ew.print(heading(kind, line, token))
			continue
		}

		switch {
		case strings.HasPrefix(line, t.math):
			ref = t.displayMath(ew, lines, i)
		case strings.HasPrefix(line, t.code):
			ref = t.codeBlock(ew, lines, i)
		default:
			if path, ok := t.inline(ew, line); ok {
				assets = append(assets, path)
			}
		}

		if ew.err != nil {
			break
		}
	}

	if ew.err != nil {
		return assets, fmt.Errorf("%w: %w", ErrWriteOutput, ew.err)
	}
	return assets, nil
}

func heading(kind HeadingKind, line, token string) string {
	text := strings.TrimPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), token)
	return "\n\\" + kind.Command() + "{" + strings.TrimSpace(text) + "}\n"
}

// displayMath emits an align environment for a fenced block or an equation
// for a one-line fence. It returns the index of the last consumed line.
func (t *Table) displayMath(ew *errWriter, lines []string, i int) int {
	stripped := strings.TrimSpace(lines[i])
	if stripped != t.math {
		inner := strings.TrimSuffix(strings.TrimPrefix(stripped, t.math), t.math)
		ew.print("\\begin{equation}\n\t", strings.TrimSpace(inner), "\n\\end{equation}\n")
		return i
	}

	end := closingFence(lines, i, t.math)
	body := lines[i+1 : min(end, len(lines))]

	ew.print("\\begin{align}\n")
	for k, eq := range body {
		eq = strings.TrimRight(eq, "\n")
		if !strings.Contains(eq, "&") {
			eq = strings.Replace(eq, "=", "&=", 1)
		}
		if k < len(body)-1 {
			eq += `\\`
		}
		ew.print("\t", eq, "\n")
	}
	ew.print("\\end{align}\n")

	return min(end, len(lines)-1)
}

// codeBlock copies the fenced lines verbatim into a lstlisting environment.
// It returns the index of the last consumed line.
func (t *Table) codeBlock(ew *errWriter, lines []string, i int) int {
	lang := strings.TrimSpace(strings.TrimPrefix(lines[i], t.code))
	if lang != "" && t.language != nil {
		lang = t.language(lang)
	}

	if lang != "" {
		ew.print("\n\\begin{lstlisting}[language=", lang, "]\n")
	} else {
		ew.print("\n\\begin{lstlisting}\n")
	}

	end := closingFence(lines, i, t.code)
	body := lines[i+1 : min(end, len(lines))]
	for _, code := range body {
		ew.print(code)
	}
	if n := len(body); n > 0 && !strings.HasSuffix(body[n-1], "\n") {
		ew.print("\n")
	}
	ew.print("\\end{lstlisting}\n")

	return min(end, len(lines)-1)
}

// closingFence returns the index of the first line after i whose trimmed
// content equals fence, or len(lines) when there is none.
func closingFence(lines []string, i int, fence string) int {
	for j := i + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == fence {
			return j
		}
	}
	return len(lines)
}

// inline rewrites links and inline code, or emits a figure when the line
// holds an image. It reports the image path when one was found.
func (t *Table) inline(ew *errWriter, line string) (string, bool) {
	out := strings.TrimRight(line, "\n")

	for _, part := range strings.Split(out, " ") {
		if m := t.image.FindStringSubmatch(part); m != nil {
			ew.print(
				"\\begin{figure}[h]\n",
				"\t\\includegraphics[width=\\textwidth]{", m[2], "}\n",
				"\t\\caption{", m[1], "}\n",
				"\\end{figure}\n",
			)
			return m[2], true
		}

		if links := t.links.FindAllStringSubmatch(part, -1); links != nil {
			for _, m := range links {
				out = strings.ReplaceAll(out, m[0], `\href{`+m[1]+"}{"+m[2]+"}")
			}
			continue
		}

		for _, m := range t.inlineCode.FindAllStringSubmatch(part, -1) {
			out = strings.ReplaceAll(out, m[0], `\texttt{`+m[1]+"}")
		}
	}

	out = strings.ReplaceAll(out, "_", `\_`)
	ew.print("\n", out, "\n\n")
	return "", false
}
