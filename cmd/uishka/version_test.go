package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintCodes(t *testing.T) {
	var out bytes.Buffer
	if err := printCodes(&out); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if !strings.HasPrefix(lines[0], "CODE") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "E001") {
		t.Errorf("first row = %q, want E001 first", lines[1])
	}
	for _, want := range []string{"E010", "Instance destroyed during construction", "E142"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
