// Package schema compiles JSON Schema documents and checks decoded JSON
// values against them.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrInvalidSchema = errors.New("invalid json schema")

// CompileError reports a schema document that does not compile.
type CompileError struct {
	Reason string
}

func (e *CompileError) Error() string {
	return ErrInvalidSchema.Error() + ": " + e.Reason
}

func (e *CompileError) Is(target error) bool { return target == ErrInvalidSchema }

// Schema is a compiled schema, safe to reuse across many checks.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile compiles an already decoded schema document. path locates the
// document on disk so relative $ref values resolve next to it. Numbers in doc
// should be json.Number so large integer keywords survive re-encoding.
func Compile(path string, doc any) (*Schema, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, &CompileError{Reason: err.Error()}
	}
	loc := resourceURL(path)

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(loc, bytes.NewReader(raw)); err != nil {
		return nil, &CompileError{Reason: reason(err)}
	}
	compiled, err := compiler.Compile(loc)
	if err != nil {
		return nil, &CompileError{Reason: reason(err)}
	}
	return &Schema{compiled: compiled}, nil
}

// resourceURL escapes the path so '#', '%' and '?' in directory names stay
// part of the path instead of becoming a fragment, escape or query.
func resourceURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// reason trims compiler errors down to the metaschema violation when there is one.
func reason(err error) string {
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return describe(ve)[0]
	}
	return err.Error()
}

// ViolationError lists every leaf violation in document order. The first
// entry is the primary one.
type ViolationError struct {
	Messages []string
}

func (e *ViolationError) Error() string {
	return e.Messages[0]
}

// All joins every violation into a single line.
func (e *ViolationError) All() string {
	return strings.Join(e.Messages, "; ")
}

// Check returns nil when data conforms, a *ViolationError otherwise.
func (s *Schema) Check(data any) error {
	err := s.compiled.Validate(data)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ViolationError{Messages: []string{err.Error()}}
	}
	return &ViolationError{Messages: describe(ve)}
}

// Validate compiles schemaDoc and checks data against it in one step.
func Validate(data, schemaDoc any) error {
	s, err := Compile("schema.json", schemaDoc)
	if err != nil {
		return err
	}
	return s.Check(data)
}

func describe(ve *jsonschema.ValidationError) []string {
	leaves := collectLeaves(ve, nil)
	sort.SliceStable(leaves, func(i, j int) bool {
		if c := comparePointers(leaves[i].InstanceLocation, leaves[j].InstanceLocation); c != 0 {
			return c < 0
		}
		return leaves[i].KeywordLocation < leaves[j].KeywordLocation
	})

	out := make([]string, 0, len(leaves))
	seen := map[string]struct{}{}
	for _, leaf := range leaves {
		msg := leaf.Message
		if leaf.InstanceLocation != "" {
			msg = fmt.Sprintf("at '%s': %s", leaf.InstanceLocation, leaf.Message)
		}
		if _, ok := seen[msg]; ok {
			continue
		}
		seen[msg] = struct{}{}
		out = append(out, msg)
	}
	return out
}

func collectLeaves(ve *jsonschema.ValidationError, out []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return append(out, ve)
	}
	for _, cause := range ve.Causes {
		out = collectLeaves(cause, out)
	}
	return out
}

// comparePointers orders JSON pointers segment by segment, comparing array
// indexes numerically so "/2" sorts before "/10".
func comparePointers(a, b string) int {
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		an, aErr := strconv.Atoi(as[i])
		bn, bErr := strconv.Atoi(bs[i])
		if aErr == nil && bErr == nil {
			if an < bn {
				return -1
			}
			return 1
		}
		if as[i] < bs[i] {
			return -1
		}
		return 1
	}
	return len(as) - len(bs)
}
