//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/dkoosis/gradekit/internal/logging"
	"github.com/dkoosis/gradekit/pkg/mapper"
	"github.com/dkoosis/gradekit/pkg/render"
	"github.com/dkoosis/gradekit/pkg/rubric"
	"github.com/dkoosis/gradekit/pkg/testjson"
)

// Default target - run the quality checks
var Default = QA

// Build compiles every package
func Build() error {
	return sh.RunV("go", "build", "./...")
}

// QA runs format, vet, build and the test suite
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Build, Test.All)
}

// Lint namespace for linting commands
type Lint mg.Namespace

// Format checks code formatting
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Golangci runs golangci-lint
func (Lint) Golangci() error {
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs tests with the race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Grade scores this module's own test suite against RUBRIC (a rubric file,
// default: the simple two-group rubric) and prints the summary. LOG_LEVEL
// sets the scoring log level.
func (Test) Grade() error {
	logging.Init(logging.ParseLevel(os.Getenv("LOG_LEVEL")), "text")

	r := rubric.SimpleRubric()
	if path := os.Getenv("RUBRIC"); path != "" {
		var err error
		if r, err = rubric.ReadFile(path); err != nil {
			return err
		}
	}

	// go test exits non-zero on failures; the stream still carries them.
	out, _ := sh.Output("go", "test", "-json", "./...")
	records, malformed, err := testjson.ParseBytes([]byte(out))
	if err != nil {
		return err
	}
	if malformed > 0 {
		fmt.Fprintf(os.Stderr, "skipped %d malformed lines\n", malformed)
	}
	res, err := rubric.Score(records, r)
	if err != nil {
		return err
	}

	rd, err := render.ForWriter(render.FormatAuto, os.Getenv("THEME"), os.Stdout)
	if err != nil {
		return err
	}
	return render.Write(os.Stdout, rd, mapper.FromResult(res))
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("coverage.out")
}
