// Command migrateoverrides reshapes legacy client override documents
// into the current sparse format. Legacy documents carried flat
// key→bool maps ({"fieldOverrides": {"supplier": false}}); the current
// format wraps each toggle in an object ({"supplier": {"enabled":
// false}}) so a full definition body can take the same slot. Run once
// over a directory of per-client JSON files.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"invana/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: migrateoverrides <overrides-dir>")
		os.Exit(1)
	}
	dir := os.Args[1]

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("reading overrides directory: %v", err)
	}

	migrated := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		changed, err := migrateFile(path)
		if err != nil {
			log.Fatalf("migrating %s: %v", entry.Name(), err)
		}
		if changed {
			migrated++
			log.Printf("migrated %s", entry.Name())
		}
	}
	log.Printf("done: %d document(s) migrated", migrated)
}

// legacyOverrides is the pre-migration document shape.
type legacyOverrides struct {
	FieldOverrides map[string]json.RawMessage `json:"fieldOverrides"`
	TagOverrides   map[string]json.RawMessage `json:"tagOverrides"`
}

func migrateFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var legacy legacyOverrides
	if err := json.Unmarshal(data, &legacy); err != nil {
		return false, fmt.Errorf("unmarshaling: %w", err)
	}

	out := domain.ClientOverrides{}
	changed := false

	if len(legacy.FieldOverrides) > 0 {
		out.FieldOverrides = make(map[string]domain.FieldOverride, len(legacy.FieldOverrides))
		for key, raw := range legacy.FieldOverrides {
			ov, c, err := migrateFieldEntry(raw)
			if err != nil {
				return false, fmt.Errorf("field %q: %w", key, err)
			}
			out.FieldOverrides[key] = ov
			changed = changed || c
		}
	}
	if len(legacy.TagOverrides) > 0 {
		out.TagOverrides = make(map[string]domain.TagOverride, len(legacy.TagOverrides))
		for id, raw := range legacy.TagOverrides {
			ov, c, err := migrateTagEntry(raw)
			if err != nil {
				return false, fmt.Errorf("tag %q: %w", id, err)
			}
			out.TagOverrides[id] = ov
			changed = changed || c
		}
	}

	if !changed {
		return false, nil
	}

	migrated, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, migrated, 0o644)
}

// migrateFieldEntry converts one override value. A bare boolean is the
// legacy toggle shape; objects are already in the current format and
// pass through the regular decoder unchanged.
func migrateFieldEntry(raw json.RawMessage) (domain.FieldOverride, bool, error) {
	var enabled bool
	if err := json.Unmarshal(raw, &enabled); err == nil {
		return domain.FieldOverride{Enabled: &enabled}, true, nil
	}
	var ov domain.FieldOverride
	if err := json.Unmarshal(raw, &ov); err != nil {
		return domain.FieldOverride{}, false, err
	}
	return ov, false, nil
}

func migrateTagEntry(raw json.RawMessage) (domain.TagOverride, bool, error) {
	var enabled bool
	if err := json.Unmarshal(raw, &enabled); err == nil {
		return domain.TagOverride{Enabled: &enabled}, true, nil
	}
	var ov domain.TagOverride
	if err := json.Unmarshal(raw, &ov); err != nil {
		return domain.TagOverride{}, false, err
	}
	return ov, false, nil
}
