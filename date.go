package simtex

import (
	"time"

	"github.com/alnah/go-simtex/internal/dateutil"
)

// ErrInvalidDateFormat indicates an invalid "auto:FORMAT" date value.
var ErrInvalidDateFormat = dateutil.ErrInvalidDateFormat

// ResolveDate turns a configured date into the text of \date{}:
//   - "today" defers to LaTeX's \today
//   - "auto" formats t as YYYY-MM-DD
//   - "auto:FORMAT" formats t with tokens YYYY, YY, MMMM, MMM, MM, M, DD, D,
//     or one of the presets iso, european, us, long
//   - any other value is used as written
func ResolveDate(value string, t time.Time) (string, error) {
	return dateutil.ResolveDate(value, t)
}
