// Package datacheck validates the data registry and every items file it
// references. The registry gates the run: if it fails, no items file is read.
// Items files are checked independently and all of them are attempted.
package datacheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/homenavi/barista-data/internal/jsondoc"
	"github.com/homenavi/barista-data/internal/schema"
)

var errNotArray = errors.New("expected an array of source entries")

// Summary collects every result of a run in the order it was reported.
type Summary struct {
	Registry Result
	// ItemsSchema is only set to a failure when the shared items schema
	// could not be loaded or compiled.
	ItemsSchema Result
	Items       []Result
}

func (s Summary) OK() bool {
	if !s.Registry.Valid() || !s.ItemsSchema.Valid() {
		return false
	}
	for _, item := range s.Items {
		if !item.Valid() {
			return false
		}
	}
	return true
}

func (s Summary) ExitCode() int {
	if s.OK() {
		return 0
	}
	return 1
}

// SourceEntry is one registry record. Only Filename is consumed.
type SourceEntry struct {
	Filename string
}

// Run performs a full pass over cfg's layout, writing status lines to w.
func Run(cfg Config, w io.Writer) Summary {
	c := &checker{cfg: cfg, report: NewReporter(w)}
	return c.run()
}

type checker struct {
	cfg    Config
	report *Reporter
}

func (c *checker) run() Summary {
	var sum Summary

	c.report.Stage("Validating Registry")
	entries, res := c.checkRegistry()
	c.report.Result(res)
	sum.Registry = res
	if !res.Valid() {
		return sum
	}

	c.report.Stage("Validating Source Files")
	var items *schema.Schema
	for _, entry := range entries {
		if entry.Filename == "" {
			continue
		}
		// The items schema is only read once an entry needs it.
		if items == nil {
			itemsSchemaPath := c.cfg.ItemsSchemaPath()
			s, err := compileFile(itemsSchemaPath)
			if err != nil {
				sum.ItemsSchema = classify(itemsSchemaPath, err, c.cfg.AllErrors)
				c.report.Result(sum.ItemsSchema)
				c.report.Summary(false)
				return sum
			}
			items = s
		}
		res := c.checkFile(c.cfg.ItemPath(entry.Filename), items)
		c.report.Result(res)
		sum.Items = append(sum.Items, res)
	}

	c.report.Summary(sum.OK())
	return sum
}

func (c *checker) checkRegistry() ([]SourceEntry, Result) {
	path := c.cfg.RegistryPath()
	data, err := jsondoc.Load(path)
	if err != nil {
		return nil, classify(path, err, c.cfg.AllErrors)
	}
	registry, err := compileFile(c.cfg.RegistrySchemaPath())
	if err != nil {
		return nil, classify(path, err, c.cfg.AllErrors)
	}
	if err := registry.Check(data); err != nil {
		return nil, classify(path, err, c.cfg.AllErrors)
	}
	entries, err := sourceEntries(data)
	if err != nil {
		return nil, classify(path, err, c.cfg.AllErrors)
	}
	return entries, valid(path)
}

func (c *checker) checkFile(path string, s *schema.Schema) Result {
	data, err := jsondoc.Load(path)
	if err != nil {
		return classify(path, err, c.cfg.AllErrors)
	}
	if err := s.Check(data); err != nil {
		return classify(path, err, c.cfg.AllErrors)
	}
	return valid(path)
}

func compileFile(path string) (*schema.Schema, error) {
	doc, err := jsondoc.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := schema.Compile(path, doc)
	if err != nil {
		return nil, &schemaError{path: path, err: err}
	}
	return s, nil
}

// schemaError attributes a compile failure to the schema file.
type schemaError struct {
	path string
	err  error
}

func (e *schemaError) Error() string { return e.err.Error() }

func (e *schemaError) Unwrap() error { return e.err }

// sourceEntries reads the registry records. Records that are not objects or
// whose filename is not a string yield an entry with an empty Filename.
func sourceEntries(data any) ([]SourceEntry, error) {
	list, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("%w, got %s", errNotArray, typeName(data))
	}
	entries := make([]SourceEntry, 0, len(list))
	for _, v := range list {
		var entry SourceEntry
		if obj, ok := v.(map[string]any); ok {
			entry.Filename, _ = obj["filename"].(string)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
