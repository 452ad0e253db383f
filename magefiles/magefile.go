//go:build mage

// Package main contains Mage build targets for pukisync developer tooling.
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
	binName = "pukisync"
	cmdPkg  = "./cmd/pukisync"
)

// Default target when mage is run without arguments.
var Default = Build

// Build compiles the CLI binary into bin/, stamping the version from
// PUKISYNC_VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)

	args := []string{"build", "-o", out}
	if v := os.Getenv("PUKISYNC_VERSION"); v != "" {
		args = append(args, "-ldflags", "-X main.version="+v)
	}
	args = append(args, cmdPkg)

	if err := sh.RunV("go", args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Install builds and copies the binary into GOBIN (or GOPATH/bin).
func Install() error {
	mg.Deps(Build)
	return sh.RunV("go", "install", cmdPkg)
}

// Clean removes build output.
func Clean() error {
	fmt.Println("removing", binDir)
	return sh.Rm(binDir)
}

// Env writes a .env template for WIKI_ENDPOINT, WIKI_USER and WIKI_PASS
// unless one already exists.
func Env() error {
	if _, err := os.Stat(".env"); err == nil {
		fmt.Println(".env already exists")
		return nil
	}
	tmpl := "WIKI_ENDPOINT=https://wiki.example.org/index.php\nWIKI_USER=RecentChanges\nWIKI_PASS=\n"
	if err := os.WriteFile(".env", []byte(tmpl), 0o600); err != nil {
		return fmt.Errorf("writing .env: %w", err)
	}
	fmt.Println("Wrote .env template.")
	return nil
}
