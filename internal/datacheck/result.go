package datacheck

import (
	"errors"
	"path/filepath"

	"github.com/homenavi/barista-data/internal/jsondoc"
	"github.com/homenavi/barista-data/internal/schema"
)

// Kind classifies a check outcome.
type Kind int

const (
	KindValid Kind = iota
	KindNotFound
	KindMalformedJSON
	KindSchemaViolation
	KindInvalidSchema
)

func (k Kind) String() string {
	switch k {
	case KindValid:
		return "valid"
	case KindNotFound:
		return "not-found"
	case KindMalformedJSON:
		return "malformed-json"
	case KindSchemaViolation:
		return "schema-violation"
	case KindInvalidSchema:
		return "invalid-schema"
	}
	return "unknown"
}

// Result is the outcome of checking one data file. On failure Path names the
// file that caused it, which may be a schema rather than the data file.
type Result struct {
	File    string
	Path    string
	Kind    Kind
	Message string
}

func (r Result) Valid() bool {
	return r.Kind == KindValid
}

func valid(path string) Result {
	return Result{File: filepath.Base(path), Path: path, Kind: KindValid}
}

// classify turns a loader or validator error into a failed Result for the
// data file at dataPath.
func classify(dataPath string, err error, allErrors bool) Result {
	r := Result{File: filepath.Base(dataPath), Path: dataPath, Message: err.Error()}

	var le *jsondoc.LoadError
	if errors.As(err, &le) {
		r.Path = le.Path
		r.Message = le.Message()
	}
	var se *schemaError
	if errors.As(err, &se) {
		r.Path = se.path
	}
	var ce *schema.CompileError
	if errors.As(err, &ce) {
		r.Message = ce.Reason
	}
	var ve *schema.ViolationError
	if errors.As(err, &ve) && allErrors {
		r.Message = ve.All()
	}

	switch {
	case errors.Is(err, jsondoc.ErrNotFound):
		r.Kind = KindNotFound
	case errors.Is(err, jsondoc.ErrMalformedJSON):
		r.Kind = KindMalformedJSON
	case errors.Is(err, schema.ErrInvalidSchema):
		r.Kind = KindInvalidSchema
	default:
		r.Kind = KindSchemaViolation
	}
	return r
}
