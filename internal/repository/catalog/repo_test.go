package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/menulens/menulens/internal/domain"
)

func writeCatalog(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.jsonl")
	if err := os.WriteFile(path, []byte(lines), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

const sampleCatalog = `{"id":"m1","menu":"김치찌개","menu_norm":"김치찌개","variants":["김치찌게"],"ingredients_ko":["김치","돼지고기"],"alg_tags":["대두"],"category_lv1":"국/탕/찌개","category_conf":0.95}

{"id":"m2","menu":"된장찌개","variants":[],"ingredients_ko":["된장"],"alg_tags":["대두"],"category_lv1":"국/탕/찌개","category_conf":0.95}
{"id":"m3","menu":"제육볶음","menu_norm":"제육볶음","category_lv1":"볶음/구이","category_conf":0.9}
`

func TestLoad(t *testing.T) {
	repo, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", repo.Len())
	}

	// file order preserved, names aligned with entries
	names := repo.Names()
	if names[0] != "김치찌개" || names[1] != "된장찌개" || names[2] != "제육볶음" {
		t.Errorf("unexpected names order: %v", names)
	}
	for i, e := range repo.Entries() {
		if e.NameCompact() != names[i] {
			t.Errorf("names[%d]=%q misaligned with entry %q", i, names[i], e.NameCompact())
		}
	}

	// positional accessor chains through value entries
	if got := repo.At(0).ID(); got != "m1" {
		t.Errorf("At(0).ID() = %q, want m1", got)
	}
	if got := repo.At(2).Category(); got != "볶음/구이" {
		t.Errorf("At(2).Category() = %q, want 볶음/구이", got)
	}
}

func TestLoad_ComputesCompactWhenMissing(t *testing.T) {
	repo, err := Load(writeCatalog(t, `{"id":"m1","menu":"물 냉면"}`+"\n"+`{"id":"m2","menu":"물 냉면 8,000원"}`+"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, err := repo.ByID("m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.NameCompact() != "물냉면" {
		t.Errorf("expected compact 물냉면, got %q", e.NameCompact())
	}

	// digits are dropped but Hangul currency words survive; price lines
	// are the pre-filter's job, not the normalizer's
	e, err = repo.ByID("m2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.NameCompact() != "물냉면원" {
		t.Errorf("expected compact 물냉면원, got %q", e.NameCompact())
	}
}

func TestByID_NotFound(t *testing.T) {
	repo, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = repo.ByID("nope")
	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestExactMatch_NameAndVariant(t *testing.T) {
	repo, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		query  string
		wantID string
		found  bool
	}{
		{"김치찌개", "m1", true},
		{"김치찌게", "m1", true}, // known variant
		{"된장찌개", "m2", true},
		{"부대찌개", "", false},
	}
	for _, tc := range tests {
		e, ok := repo.ExactMatch(tc.query)
		if ok != tc.found {
			t.Errorf("ExactMatch(%q) found=%v, want %v", tc.query, ok, tc.found)
			continue
		}
		if ok && e.ID() != tc.wantID {
			t.Errorf("ExactMatch(%q) = %s, want %s", tc.query, e.ID(), tc.wantID)
		}
	}
}

func TestExactMatch_FirstEntryWinsOnCollision(t *testing.T) {
	lines := `{"id":"a","menu":"비빔밥"}
{"id":"b","menu":"돌솥비빔밥","variants":["비빔밥"]}
`
	repo, err := Load(writeCatalog(t, lines))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, ok := repo.ExactMatch("비빔밥")
	if !ok || e.ID() != "a" {
		t.Errorf("expected first entry a to win, got %v ok=%v", e.ID(), ok)
	}
}

func TestLoad_EmptyCatalog(t *testing.T) {
	_, err := Load(writeCatalog(t, "\n\n"))
	if !errors.Is(err, domain.ErrCatalogEmpty) {
		t.Fatalf("expected ErrCatalogEmpty, got %v", err)
	}
}

func TestLoad_RejectsDuplicateID(t *testing.T) {
	lines := `{"id":"m1","menu":"김치찌개"}
{"id":"m1","menu":"된장찌개"}
`
	if _, err := Load(writeCatalog(t, lines)); err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestLoad_RejectsMalformedLine(t *testing.T) {
	if _, err := Load(writeCatalog(t, "{not json}\n")); err == nil {
		t.Fatal("expected error for malformed line")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
