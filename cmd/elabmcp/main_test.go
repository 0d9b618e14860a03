package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunVersionFlag(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"--version"}, &out)
	if code != 0 {
		t.Fatalf("run(--version) = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "elabmcp version") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunHelpFlag(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"--help"}, &out)
	if code != 0 {
		t.Fatalf("run(--help) = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "ELABFTW_API_URL") {
		t.Error("help does not document environment variables")
	}
}

func TestRunBadFlag(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"--no-such-flag"}, &out); code != 2 {
		t.Errorf("run(bad flag) = %d, want 2", code)
	}
}

func TestRunMissingConfig(t *testing.T) {
	t.Setenv("ELABFTW_API_URL", "")
	t.Setenv("ELABFTW_API_KEY", "")

	var out bytes.Buffer
	if code := run(nil, &out); code != 1 {
		t.Errorf("run() without configuration = %d, want 1", code)
	}
}
