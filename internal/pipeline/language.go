package pipeline

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// NormalizeLanguage maps a code-fence language tag to the canonical name of
// the matching chroma lexer ("py" becomes "Python"). Unknown tags are
// returned unchanged.
func NormalizeLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tag
	}
	lexer := lexers.Get(tag)
	if lexer == nil {
		return tag
	}
	return lexer.Config().Name
}
