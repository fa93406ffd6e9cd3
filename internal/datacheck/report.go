package datacheck

import (
	"fmt"
	"io"
	"path/filepath"
)

const (
	markValid   = "✅"
	markInvalid = "❌"
)

// Reporter prints human readable progress lines. Write errors are ignored;
// the exit status is the only machine readable signal.
type Reporter struct {
	w       io.Writer
	started bool
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) Stage(title string) {
	if r.started {
		_, _ = fmt.Fprintln(r.w)
	}
	r.started = true
	_, _ = fmt.Fprintf(r.w, "--- %s ---\n", title)
}

func (r *Reporter) Result(res Result) {
	_, _ = fmt.Fprintln(r.w, FormatResult(res))
}

func (r *Reporter) Summary(ok bool) {
	if ok {
		_, _ = fmt.Fprintln(r.w, "\n✨ All data files are valid!")
		return
	}
	_, _ = fmt.Fprintln(r.w, "\n⚠️ Some data files failed validation.")
}

// FormatResult renders one status line.
func FormatResult(res Result) string {
	switch res.Kind {
	case KindValid:
		return fmt.Sprintf("%s %s is valid.", markValid, res.File)
	case KindNotFound:
		return fmt.Sprintf("%s File not found: %s", markInvalid, res.Path)
	case KindMalformedJSON:
		return fmt.Sprintf("%s Error decoding JSON in %s: %s", markInvalid, filepath.Base(res.Path), res.Message)
	case KindInvalidSchema:
		return fmt.Sprintf("%s Schema %s is not a valid JSON Schema: %s", markInvalid, filepath.Base(res.Path), res.Message)
	default:
		return fmt.Sprintf("%s %s is invalid: %s", markInvalid, res.File, res.Message)
	}
}
