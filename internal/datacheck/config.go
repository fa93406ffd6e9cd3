package datacheck

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	RegistryFile       = "sources.json"
	RegistrySchemaFile = "sources.schema.json"
	ItemsSchemaFile    = "items.schema.json"
)

// Config locates the data tree. DataDir is relative to Root and SchemasDir is
// relative to DataDir unless either is absolute.
type Config struct {
	Root       string
	DataDir    string
	SchemasDir string

	// AllErrors reports every violation instead of only the primary one.
	AllErrors bool
}

func DefaultConfig() Config {
	return Config{Root: ".", DataDir: "data", SchemasDir: "schemas"}
}

// ConfigFromEnv reads DATA_ROOT, DATA_DIR, SCHEMAS_DIR and VALIDATE_ALL_ERRORS
// on top of DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Root = getenv("DATA_ROOT", cfg.Root)
	cfg.DataDir = getenv("DATA_DIR", cfg.DataDir)
	cfg.SchemasDir = getenv("SCHEMAS_DIR", cfg.SchemasDir)
	switch strings.ToLower(getenv("VALIDATE_ALL_ERRORS", "")) {
	case "1", "true", "yes":
		cfg.AllErrors = true
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (c Config) DataPath() string {
	return join(c.Root, c.DataDir)
}

func (c Config) SchemasPath() string {
	return join(c.DataPath(), c.SchemasDir)
}

func (c Config) RegistryPath() string {
	return filepath.Join(c.DataPath(), RegistryFile)
}

func (c Config) RegistrySchemaPath() string {
	return filepath.Join(c.SchemasPath(), RegistrySchemaFile)
}

func (c Config) ItemsSchemaPath() string {
	return filepath.Join(c.SchemasPath(), ItemsSchemaFile)
}

// ItemPath resolves a registry filename under the data directory. An
// absolute filename is used as is.
func (c Config) ItemPath(filename string) string {
	return join(c.DataPath(), filename)
}

func join(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
