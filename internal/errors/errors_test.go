package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "abstract kind",
			code:    "E001",
			wantMsg: "Abstract component kind cannot be instantiated",
			wantCat: CategoryUsage,
		},
		{
			name:    "binding warning",
			code:    "E004",
			wantMsg: "Element not found for locator",
			wantCat: CategoryBinding,
		},
		{
			name:    "config error",
			code:    "E120",
			wantMsg: "Invalid uishka.json",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryConfig, "file %q not found", "uishka.json")
	if err.Message != `file "uishka.json" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "uishka.json" not found`)
	}
	if err.Category != CategoryConfig {
		t.Errorf("Category = %q, want %q", err.Category, CategoryConfig)
	}
}

func TestUishkaError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *UishkaError
		want string
	}{
		{"code only", New("E001"), "E001: Abstract component kind cannot be instantiated"},
		{"kind", New("E002").WithKind("Button"), "E002: Node already bound to a live instance (Button)"},
		{"kind and subject", New("E006").WithKind("Card").WithSubject("title"), `E006: Reactive property not declared (Card "title")`},
		{"subject", New("E005").WithSubject("div["), `E005: Invalid selector ("div[")`},
		{"no code", &UishkaError{Message: "test error"}, "test error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUishkaError_Is(t *testing.T) {
	sentinel := New("E002")
	err := fmt.Errorf("construct: %w", New("E002").WithKind("Button"))

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should match by code through wrapping")
	}
	if stderrors.Is(err, New("E001")) {
		t.Error("errors.Is should not match a different code")
	}
	if stderrors.Is(New("E002"), &UishkaError{Message: "no code"}) {
		t.Error("errors.Is should not match a codeless target")
	}
}

func TestUishkaError_Wrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := New("E120").Wrap(cause)

	if err.Unwrap() != cause {
		t.Error("Unwrap should return the wrapped error")
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should return nil")
	}

	ue := New("E001")
	if FromError(ue, "E120") != ue {
		t.Error("FromError should return existing UishkaError unchanged")
	}

	wrapped := FromError(stderrors.New("boom"), "E140")
	if wrapped.Code != "E140" {
		t.Errorf("Code = %q, want E140", wrapped.Code)
	}
	if wrapped.Wrapped == nil || wrapped.Wrapped.Error() != "boom" {
		t.Error("FromError should wrap the original error")
	}

	inner := New("E005").WithSubject("div[")
	if got := FromError(fmt.Errorf("query: %w", inner), "E141"); got != inner {
		t.Errorf("FromError should find a wrapped UishkaError, got %v", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E002").
		WithKind("Button").
		WithSubject("#buy").
		WithSuggestion("Call Destroy on the existing instance first").
		Wrap(stderrors.New("duplicate"))

	formatted := err.Format()

	for _, want := range []string{
		"E002",
		"Node already bound to a live instance",
		"Button › #buy",
		"Cause: duplicate",
		"Hint:",
		"Learn more:",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q in:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E004").WithKind("Card").WithSubject(".card__title")
	want := `E004: Element not found for locator (Card ".card__title")`
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	out := New("E004").WithKind("Card").WithSubject(".title").FormatJSON()

	for _, want := range []string{
		`"code":"E004"`,
		`"category":"binding"`,
		`"message":"Element not found for locator"`,
		`"kind":"Card"`,
		`"subject":".title"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatJSON() missing %s in %s", want, out)
		}
	}
}

func TestFormatJSON_ControlCharacters(t *testing.T) {
	subject := "div\x00[\t\"<b>\u2028"
	out := New("E005").WithSubject(subject).FormatJSON()

	var decoded map[string]string
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("FormatJSON() is not valid JSON: %v\n%s", err, out)
	}
	if decoded["subject"] != subject {
		t.Errorf("subject = %q, want %q", decoded["subject"], subject)
	}
	if decoded["code"] != "E005" {
		t.Errorf("code = %q, want E005", decoded["code"])
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("FormatJSON() should not end with a newline")
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if !sort.StringsAreSorted(codes) {
		t.Errorf("codes not sorted: %v", codes)
	}
	if len(codes) == 0 || codes[0] != "E001" {
		t.Errorf("first code = %v, want E001", codes)
	}
	for _, code := range codes {
		if _, ok := GetTemplate(code); !ok {
			t.Errorf("%s has no template", code)
		}
	}
}

func TestGetTemplate(t *testing.T) {
	template, ok := GetTemplate("E001")
	if !ok {
		t.Fatal("E001 should exist")
	}
	if template.Category != CategoryUsage {
		t.Errorf("Category = %q, want %q", template.Category, CategoryUsage)
	}

	if _, ok := GetTemplate("E999"); ok {
		t.Error("E999 should not exist")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
