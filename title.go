package simtex

import (
	"strings"

	"github.com/alnah/go-simtex/internal/fileutil"
)

// TitleFromPath derives a document title from the input file name.
func TitleFromPath(path string) string {
	return EscapeTitle(fileutil.StripExt(path))
}

// EscapeTitle escapes underscores so a title compiles outside math mode.
// Already escaped underscores are left alone.
func EscapeTitle(title string) string {
	title = strings.ReplaceAll(title, `\_`, "_")
	return strings.ReplaceAll(title, "_", `\_`)
}
