// Package jsondoc reads JSON documents from disk into generic values
// (nil, bool, json.Number, string, []any, map[string]any).
package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrNotFound      = errors.New("file not found")
	ErrMalformedJSON = errors.New("malformed json")
)

// LoadError reports why a document could not be loaded. Err wraps either
// ErrNotFound or ErrMalformedJSON.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Message is the underlying reason without the path, as shown to users.
func (e *LoadError) Message() string {
	var de *decodeError
	if errors.As(e.Err, &de) {
		return de.msg
	}
	return e.Err.Error()
}

type decodeError struct {
	msg string
}

func (e *decodeError) Error() string { return e.msg }

func (e *decodeError) Is(target error) bool { return target == ErrMalformedJSON }

// Load reads path and decodes its contents. Any failure to open or read the
// file is ErrNotFound; a decode failure is ErrMalformedJSON.
func Load(path string) (any, error) {
	path = filepath.Clean(path)
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from env/config
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
	}
	return Decode(path, data)
}

// Decode parses data as a single JSON value. Numbers are kept as json.Number
// so integers beyond 2^53 are not rounded. path is only used for errors.
func Decode(path string, data []byte) (any, error) {
	if err := json.Unmarshal(data, new(json.RawMessage)); err != nil {
		return nil, &LoadError{Path: path, Err: &decodeError{msg: describe(data, err)}}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &LoadError{Path: path, Err: &decodeError{msg: err.Error()}}
	}
	return v, nil
}

func describe(data []byte, err error) string {
	var se *json.SyntaxError
	if !errors.As(err, &se) {
		return err.Error()
	}
	line, col := position(data, se.Offset)
	return fmt.Sprintf("%s (line %d, column %d)", se.Error(), line, col)
}

// position converts the decoder offset, which points just past the
// offending byte, into a 1-based line and column of that byte.
func position(data []byte, offset int64) (int, int) {
	if offset > 0 {
		offset--
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
