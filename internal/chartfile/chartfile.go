// Package chartfile loads chart documents and feeds them to a scene.
//
// A chart document is the data-producer side of the canvas contract: it
// declares entities (id, title, entries) and connections, with ids assigned
// by the document author. Documents carry no geometry; placement is the
// scene's job. Re-syncing an edited document diffs it against the scene
// into add/update/remove calls so unchanged entities keep their positions.
package chartfile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"charterm/pkg/scene"
)

// Document is a parsed chart file.
type Document struct {
	Entities    []EntityDef     `toml:"entity"`
	Connections []ConnectionDef `toml:"connection"`
}

// EntityDef declares one entity.
type EntityDef struct {
	ID      string     `toml:"id"`
	Title   string     `toml:"title"`
	Entries []EntryDef `toml:"entry"`
}

// EntryDef declares one row of an entity.
type EntryDef struct {
	ID    string `toml:"id"`
	Left  string `toml:"left"`
	Right string `toml:"right"`
}

// ConnectionDef declares a link between two endpoints.
type ConnectionDef struct {
	A EndpointDef `toml:"a"`
	B EndpointDef `toml:"b"`
}

// EndpointDef names an entity, or one of its entries when Entry is set.
// Endpoints may reference ids that no such entity declares; the scene
// renders those via its dangling fallback.
type EndpointDef struct {
	Rect  string `toml:"rect"`
	Entry string `toml:"entry"`
}

// Load reads and validates a chart document.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chartfile: %w", err)
	}
	var doc Document
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("chartfile: parse %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("chartfile: %s: %w", path, err)
	}
	return &doc, nil
}

// Validate checks id integrity: entity ids must be present and unique, and
// entry ids unique within their entity. Connection endpoints are not
// required to resolve.
func (d *Document) Validate() error {
	ids := make(map[string]bool, len(d.Entities))
	for _, e := range d.Entities {
		if e.ID == "" {
			return fmt.Errorf("entity %q has no id", e.Title)
		}
		if ids[e.ID] {
			return fmt.Errorf("duplicate entity id %q", e.ID)
		}
		ids[e.ID] = true

		entryIDs := make(map[string]bool, len(e.Entries))
		for _, en := range e.Entries {
			if en.ID == "" {
				return fmt.Errorf("entity %q: entry %q has no id", e.ID, en.Left)
			}
			if entryIDs[en.ID] {
				return fmt.Errorf("entity %q: duplicate entry id %q", e.ID, en.ID)
			}
			entryIDs[en.ID] = true
		}
	}
	for i, c := range d.Connections {
		if c.A.Rect == "" || c.B.Rect == "" {
			return fmt.Errorf("connection %d: both sides need a rect id", i)
		}
	}
	return nil
}

// Sync diffs the document against the scene: new entities are added,
// existing ones get their data replaced in place (geometry untouched),
// entities absent from the document are removed, and the connection set is
// reconciled by endpoint pair. Callers redraw afterwards.
func (d *Document) Sync(s *scene.Scene) {
	inDoc := make(map[string]bool, len(d.Entities))
	for _, def := range d.Entities {
		inDoc[def.ID] = true
		data := scene.RectData{ID: def.ID, Title: def.Title}
		for _, en := range def.Entries {
			data.Entries = append(data.Entries, scene.Entry{ID: en.ID, Left: en.Left, Right: en.Right})
		}
		if !s.UpdateEntity(def.ID, data) {
			s.AddEntity(data)
		}
	}
	for _, id := range s.EntityIDs() {
		if !inDoc[id] {
			s.RemoveEntity(id)
		}
	}

	want := make(map[string]ConnectionDef, len(d.Connections))
	for _, c := range d.Connections {
		want[pairKey(endpoint(c.A), endpoint(c.B))] = c
	}
	have := make(map[string]bool)
	for _, c := range s.Connections() {
		key := pairKey(c.A, c.B)
		if _, ok := want[key]; !ok {
			s.RemoveConnection(c.ID)
			continue
		}
		have[key] = true
	}
	for key, c := range want {
		if !have[key] {
			s.AddConnection(endpoint(c.A), endpoint(c.B))
		}
	}
}

func endpoint(d EndpointDef) scene.Endpoint {
	return scene.Endpoint{RectID: d.Rect, EntryID: d.Entry}
}

// pairKey builds an order-independent identity for a connection's endpoint
// pair, since connections are unordered.
func pairKey(a, b scene.Endpoint) string {
	ka := a.RectID + "\x00" + a.EntryID
	kb := b.RectID + "\x00" + b.EntryID
	if kb < ka {
		ka, kb = kb, ka
	}
	return ka + "\x01" + kb
}
