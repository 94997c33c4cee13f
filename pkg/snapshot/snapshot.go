package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/vango-dev/uishka/internal/errors"
	"github.com/vango-dev/uishka/pkg/component"
)

// nameLayout names snapshots taken without an explicit name.
const nameLayout = "20060102T150405Z"

// Snapshot is the state of one document at TakenAt.
type Snapshot struct {
	Name      string                   `json:"name"`
	TakenAt   time.Time                `json:"takenAt"`
	Kinds     map[string]int           `json:"kinds"`
	Instances []component.InstanceInfo `json:"instances"`

	// Document is the serialized HTML, stored next to the report.
	Document string `json:"-"`
}

// ValidName reports whether name can be used as a snapshot name.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// Take captures env's document and instances. An empty name is replaced by
// the UTC time of the snapshot.
func Take(env *component.Env, name string) (*Snapshot, error) {
	now := time.Now().UTC()
	if name == "" {
		name = now.Format(nameLayout)
	}
	if !ValidName(name) {
		return nil, errors.New("E142").
			WithSubject(name).
			WithDetail("Snapshot names may not be empty or contain path separators")
	}

	var buf bytes.Buffer
	if err := env.Document().Render(&buf); err != nil {
		return nil, errors.New("E142").WithSubject(name).Wrap(err)
	}

	snap := &Snapshot{
		Name:      name,
		TakenAt:   now,
		Kinds:     make(map[string]int),
		Instances: env.Instances(),
		Document:  buf.String(),
	}
	for _, kind := range env.Kinds() {
		if kind != component.AbstractKind {
			snap.Kinds[kind] = 0
		}
	}
	for _, inst := range snap.Instances {
		snap.Kinds[inst.Kind]++
	}
	if snap.Instances == nil {
		snap.Instances = []component.InstanceInfo{}
	}
	return snap, nil
}

func reportKey(name string) string   { return name + ".json" }
func documentKey(name string) string { return name + ".html" }

// Save writes the report and the document to store and returns their locations.
func Save(ctx context.Context, store Store, snap *Snapshot) ([]string, error) {
	report, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, errors.New("E142").WithSubject(snap.Name).Wrap(err)
	}

	objects := []struct {
		key, contentType string
		body             []byte
	}{
		{reportKey(snap.Name), "application/json", append(report, '\n')},
		{documentKey(snap.Name), "text/html; charset=utf-8", []byte(snap.Document)},
	}

	locations := make([]string, 0, len(objects))
	for _, obj := range objects {
		if err := store.Put(ctx, obj.key, obj.contentType, obj.body); err != nil {
			return locations, errors.New("E142").WithSubject(store.Location(obj.key)).Wrap(err)
		}
		locations = append(locations, store.Location(obj.key))
	}
	return locations, nil
}

// Load reads the snapshot called name back from store.
func Load(ctx context.Context, store Store, name string) (*Snapshot, error) {
	if !ValidName(name) {
		return nil, errors.New("E142").WithSubject(name)
	}

	report, err := store.Get(ctx, reportKey(name))
	if err != nil {
		return nil, errors.New("E142").WithSubject(store.Location(reportKey(name))).Wrap(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(report, &snap); err != nil {
		return nil, errors.New("E142").WithSubject(store.Location(reportKey(name))).Wrap(err)
	}

	doc, err := store.Get(ctx, documentKey(name))
	if err != nil {
		return nil, errors.New("E142").WithSubject(store.Location(documentKey(name))).Wrap(err)
	}
	snap.Document = string(doc)
	return &snap, nil
}
