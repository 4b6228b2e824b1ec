//go:build mage

// Package main contains Mage build targets for scoreid-export developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "scoreid-export"
	cmdPkg  = "./cmd/scoreid-export"

	sampleFixture = "testdata/sample-documents.yaml"
	localDB       = "local/documents.db"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests. Set SCOREID_EXPORT_TEST_MONGO_URI to include
// the MongoDB round-trip test.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Seed loads the sample fixture into a local SQLite store.
func Seed() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "seed", sampleFixture,
		"--driver", "sqlite", "--store-path", localDB)
}

// Local exports score IDs from the local SQLite store. Run Seed first.
func Local() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName),
		"--driver", "sqlite", "--store-path", localDB)
}

// Clean removes build output and the local store.
func Clean() error {
	for _, p := range []string{binDir, filepath.Dir(localDB)} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}
