package testjson

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dkoosis/gradekit/pkg/rubric"
)

const maxLine = 1024 * 1024

// ParseStream reads go test -json output and returns one rubric record per
// test in first-seen order, plus the number of malformed lines skipped.
func ParseStream(r io.Reader) ([]rubric.TestRecord, int, error) {
	c := NewCollector()
	malformed, err := Stream(context.Background(), r, c.Add)
	if err != nil {
		return nil, malformed, err
	}
	return c.Records(), malformed, nil
}

// ParseBytes is a convenience for parsing from a byte slice.
func ParseBytes(data []byte) ([]rubric.TestRecord, int, error) {
	return ParseStream(bytes.NewReader(data))
}

// scanResult carries a scanned line or terminal error from the scanner goroutine.
type scanResult struct {
	line []byte
	err  error
}

// Stream decodes go test -json events line by line and calls fn for each
// one. It stops on EOF or when ctx is cancelled and returns the number of
// malformed lines skipped.
//
// On cancellation Stream closes r if it implements io.Closer so the scanner
// goroutine can exit. Otherwise the caller must close the underlying reader.
func Stream(ctx context.Context, r io.Reader, fn ProcessFunc) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	lines := make(chan scanResult)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			cp := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- scanResult{line: cp}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- scanResult{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	var malformed int
	for {
		select {
		case <-ctx.Done():
			if c, ok := r.(io.Closer); ok {
				_ = c.Close()
			}
			return malformed, ctx.Err()
		case res, ok := <-lines:
			if !ok {
				return malformed, nil
			}
			if res.err != nil {
				return malformed, fmt.Errorf("testjson: scanning test output: %w", res.err)
			}
			if len(bytes.TrimSpace(res.line)) == 0 {
				continue
			}
			var event TestEvent
			if err := json.Unmarshal(res.line, &event); err != nil {
				malformed++
				continue
			}
			fn(event)
		}
	}
}

// Collector folds events into test cases. The last terminal action seen for
// a test wins, so a rerun test reports its final outcome.
type Collector struct {
	cases   map[string]*TestCase
	order   []string
	pkgs    map[string]*pkgState
	pkgList []string
}

type pkgState struct {
	tests  int
	failed bool
	output []string
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{
		cases: make(map[string]*TestCase),
		pkgs:  make(map[string]*pkgState),
	}
}

// Add folds one event into the collector.
func (c *Collector) Add(e TestEvent) {
	pkg := c.pkg(e.Package)
	if e.Test == "" {
		switch e.Action {
		case ActionFail:
			pkg.failed = true
		case ActionOutput:
			if out := strings.TrimRight(e.Output, "\n"); out != "" {
				pkg.output = append(pkg.output, out)
			}
		}
		return
	}

	tc := c.test(e.Package, e.Test)
	switch e.Action {
	case ActionPass, ActionFail, ActionSkip:
		tc.Action = e.Action
		tc.Duration = time.Duration(e.Elapsed * float64(time.Second))
	case ActionOutput:
		if out := strings.TrimRight(e.Output, "\n"); out != "" {
			tc.Output = append(tc.Output, out)
		}
	}
}

func (c *Collector) pkg(name string) *pkgState {
	if p, ok := c.pkgs[name]; ok {
		return p
	}
	p := &pkgState{}
	c.pkgs[name] = p
	c.pkgList = append(c.pkgList, name)
	return p
}

func (c *Collector) test(pkg, name string) *TestCase {
	key := pkg + "\x00" + name
	if tc, ok := c.cases[key]; ok {
		return tc
	}
	tc := &TestCase{Package: pkg, Name: name}
	c.cases[key] = tc
	c.order = append(c.order, key)
	c.pkgs[pkg].tests++
	return tc
}

// Cases returns the collected tests in first-seen order.
func (c *Collector) Cases() []TestCase {
	out := make([]TestCase, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, *c.cases[key])
	}
	return out
}

// Records returns the collected tests as rubric records.
func (c *Collector) Records() []rubric.TestRecord {
	out := make([]rubric.TestRecord, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.cases[key].Record())
	}
	return out
}

// BuildErrors returns, per package that failed without running any test,
// its joined package-level output.
func (c *Collector) BuildErrors() map[string]string {
	out := map[string]string{}
	for _, name := range c.pkgList {
		p := c.pkgs[name]
		if p.failed && p.tests == 0 {
			out[name] = strings.Join(p.output, "\n")
		}
	}
	return out
}

// Stats summarises the collected tests and build failures.
func (c *Collector) Stats() Stats {
	s := ComputeStats(c.Cases())
	for _, name := range c.pkgList {
		p := c.pkgs[name]
		if p.failed && p.tests == 0 {
			s.BuildErrors = append(s.BuildErrors, name)
		}
	}
	s.Packages += len(s.BuildErrors)
	return s
}
