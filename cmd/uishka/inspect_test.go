package main

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/uishka/internal/config"
	"github.com/vango-dev/uishka/internal/errors"
)

const page = `<!DOCTYPE html>
<html><body>
  <button class="uishka-btn" id="buy">Buy</button>
  <div class="uishka-card">
    <h3 class="uishka-card__title">Hello</h3>
    <div class="uishka-card__body">Body</div>
  </div>
  <div class="uishka-card" id="empty"></div>
</body></html>`

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunInspect_Table(t *testing.T) {
	var out, logs bytes.Buffer
	if err := runInspect(&out, &logs, writePage(t), config.New(), false); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	for _, want := range []string{
		"KIND",
		`button#buy.uishka-btn`,
		`text="Buy"`,
		`title="Hello"`,
		"1 buttons, 2 cards mounted",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if !strings.Contains(logs.String(), "code=E004") {
		t.Errorf("binding warning for the empty card not logged: %s", logs.String())
	}
}

func TestRunInspect_JSON(t *testing.T) {
	var out bytes.Buffer
	if err := runInspect(&out, &bytes.Buffer{}, writePage(t), config.New(), true); err != nil {
		t.Fatal(err)
	}
	var report inspectReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if report.Mounted.Buttons != 1 || report.Mounted.Cards != 2 || len(report.Instances) != 3 {
		t.Errorf("report = %+v", report)
	}
}

func TestRunInspect_MissingFile(t *testing.T) {
	err := runInspect(&bytes.Buffer{}, &bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.html"), config.New(), false)
	if !stderrors.Is(err, errors.New("E140")) {
		t.Errorf("error = %v, want E140", err)
	}
}
