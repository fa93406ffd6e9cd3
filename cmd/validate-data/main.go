package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/homenavi/barista-data/internal/datacheck"
)

func main() {
	cfg := datacheck.ConfigFromEnv()

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		log.Fatalf("resolve data root: %v", err)
	}
	cfg.Root = root

	sum := datacheck.Run(cfg, os.Stdout)
	os.Exit(sum.ExitCode())
}
