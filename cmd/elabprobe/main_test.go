package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunMissingConfig(t *testing.T) {
	t.Setenv("ELABFTW_API_URL", "")
	t.Setenv("ELABFTW_API_KEY", "")

	var out bytes.Buffer
	if code := run(nil, &out); code != 1 {
		t.Fatalf("run() without configuration = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunBadFlag(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"--bogus"}, &out); code != 2 {
		t.Errorf("run(bad flag) = %d, want 2", code)
	}
}
