// Package catalog loads the canonical menu catalog from the offline JSONL
// build and serves it read-only to the matching pipeline.
package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/menulens/menulens/internal/domain"
	domcat "github.com/menulens/menulens/internal/domain/catalog"
	"github.com/menulens/menulens/internal/normalize"
)

// Repo holds the catalog in memory. It is immutable after Load and safe
// for concurrent readers.
type Repo struct {
	entries []domcat.Entry
	names   []string // compact names aligned with entries by index
	byID    map[string]int
	exact   map[string]int // compact name or variant -> entry index, first wins
}

// Load reads a JSONL catalog file. Records with an empty id or menu name
// are rejected, blank lines are skipped.
func Load(path string) (*Repo, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	r := &Repo{
		byID:  make(map[string]int),
		exact: make(map[string]int),
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", line, err)
		}
		if err := r.add(rec); err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	if len(r.entries) == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	return r, nil
}

func (r *Repo) add(rec record) error {
	if rec.ID == "" {
		return fmt.Errorf("missing id")
	}
	if rec.Menu == "" {
		return fmt.Errorf("entry %s: missing menu name", rec.ID)
	}
	if _, dup := r.byID[rec.ID]; dup {
		return fmt.Errorf("duplicate id %s", rec.ID)
	}

	compact := rec.MenuNorm
	if compact == "" {
		compact = normalize.Compact(rec.Menu)
	}

	variants := make([]string, 0, len(rec.Variants))
	for _, v := range rec.Variants {
		if cv := normalize.Compact(v); cv != "" {
			variants = append(variants, cv)
		}
	}

	entry := domcat.New(
		rec.ID,
		rec.Menu,
		compact,
		normalize.JamoKey(rec.Menu),
		variants,
		rec.Ingredients,
		rec.Allergens,
		rec.Category,
		rec.CategoryConf,
	)

	idx := len(r.entries)
	r.entries = append(r.entries, entry)
	r.names = append(r.names, compact)
	r.byID[rec.ID] = idx

	// first entry wins on alias collisions
	if _, taken := r.exact[compact]; !taken && compact != "" {
		r.exact[compact] = idx
	}
	for _, v := range variants {
		if _, taken := r.exact[v]; !taken {
			r.exact[v] = idx
		}
	}
	return nil
}

// Len returns the number of catalog entries.
func (r *Repo) Len() int { return len(r.entries) }

// Entries returns all entries in file order. Callers must not mutate.
func (r *Repo) Entries() []domcat.Entry { return r.entries }

// Names returns the compact names aligned with Entries by index.
func (r *Repo) Names() []string { return r.names }

// At returns the entry at the given index.
func (r *Repo) At(i int) domcat.Entry { return r.entries[i] }

// ByID returns an entry by its identifier.
func (r *Repo) ByID(id string) (domcat.Entry, error) {
	idx, ok := r.byID[id]
	if !ok {
		return domcat.Entry{}, domain.ErrEntryNotFound
	}
	return r.entries[idx], nil
}

// ExactMatch looks up a compact-normalized name against canonical names
// and known variants.
func (r *Repo) ExactMatch(compact string) (domcat.Entry, bool) {
	idx, ok := r.exact[compact]
	if !ok {
		return domcat.Entry{}, false
	}
	return r.entries[idx], true
}

// IDs returns all entry identifiers in file order.
func (r *Repo) IDs() []string {
	ids := make([]string, len(r.entries))
	for i := range r.entries {
		ids[i] = r.entries[i].ID()
	}
	return ids
}
