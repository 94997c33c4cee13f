package snapshot

import (
	"context"
	stderrors "errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/uishka/internal/config"
	"github.com/vango-dev/uishka/internal/errors"
	"github.com/vango-dev/uishka/pkg/uitest"
)

const page = `<button class="uishka-btn" id="buy">Buy</button>
<div class="uishka-card" id="greeting">
  <h3 class="uishka-card__title">Hello</h3>
  <p class="uishka-card__body">Body</p>
</div>`

func TestTake(t *testing.T) {
	h := uitest.New(t, page).Build()

	snap, err := Take(h.Env, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := time.Parse(nameLayout, snap.Name); err != nil {
		t.Errorf("default name %q is not a timestamp: %v", snap.Name, err)
	}
	if diff := cmp.Diff(map[string]int{"Button": 1, "Card": 1}, snap.Kinds); diff != "" {
		t.Errorf("Kinds mismatch (-want +got):\n%s", diff)
	}
	if len(snap.Instances) != 2 || snap.Instances[0].Kind != "Button" {
		t.Errorf("Instances = %+v", snap.Instances)
	}
	if !strings.Contains(snap.Document, `id="buy"`) {
		t.Errorf("Document missing button:\n%s", snap.Document)
	}
}

func TestTake_CountsEmptyKinds(t *testing.T) {
	h := uitest.New(t, `<p>nothing to mount</p>`).Build()

	snap, err := Take(h.Env, "empty")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]int{"Button": 0, "Card": 0}, snap.Kinds); diff != "" {
		t.Errorf("Kinds mismatch (-want +got):\n%s", diff)
	}
	if snap.Instances == nil {
		t.Error("Instances should be empty, not nil")
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"checkout", true},
		{"2026-10-19.before", true},
		{"", false},
		{".", false},
		{"..", false},
		{"a/b", false},
		{`a\b`, false},
	}
	for _, tt := range tests {
		if got := ValidName(tt.name); got != tt.want {
			t.Errorf("ValidName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTake_InvalidName(t *testing.T) {
	h := uitest.New(t, page).Build()
	_, err := Take(h.Env, "../escape")
	if !stderrors.Is(err, errors.New("E142")) {
		t.Errorf("err = %v, want E142", err)
	}
}

func TestSaveLoad_Disk(t *testing.T) {
	h := uitest.New(t, page).Build()
	if err := h.Card("#greeting").SetTitle("World"); err != nil {
		t.Fatal(err)
	}

	snap, err := Take(h.Env, "greeting")
	if err != nil {
		t.Fatal(err)
	}
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	locations, err := Save(context.Background(), store, snap)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{store.Location("greeting.json"), store.Location("greeting.html")}
	if diff := cmp.Diff(want, locations); diff != "" {
		t.Errorf("locations mismatch (-want +got):\n%s", diff)
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err != nil {
			t.Errorf("%s not written: %v", loc, err)
		}
	}

	loaded, err := Load(context.Background(), store, "greeting")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(snap, loaded); diff != "" {
		t.Errorf("loaded snapshot mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(loaded.Document, "World") {
		t.Errorf("Document does not carry the new title:\n%s", loaded.Document)
	}
}

func TestLoad_Missing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = Load(context.Background(), store, "nope")
	if !stderrors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if !stderrors.Is(err, errors.New("E142")) {
		t.Errorf("err = %v, want E142", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(config.SnapshotConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*DiskStore); !ok {
		t.Errorf("Open without bucket = %T, want *DiskStore", store)
	}

	store, err = Open(config.SnapshotConfig{Bucket: "snaps", Prefix: "ui/", Region: config.DefaultSnapshotRegion})
	if err != nil {
		t.Fatal(err)
	}
	if got := store.Location("a.json"); got != "s3://snaps/ui/a.json" {
		t.Errorf("Location = %q", got)
	}
}
