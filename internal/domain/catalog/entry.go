// Package catalog defines the canonical menu entry records the engine
// matches against. Entries are built offline, loaded once at start-up and
// shared read-only across concurrent match requests.
package catalog

// Entry is one canonical menu item.
type Entry struct {
	id           string
	name         string
	nameCompact  string
	jamoKey      string
	variants     []string
	ingredients  []string
	allergens    []string
	category     string
	categoryConf float64
}

// New creates a catalog entry. nameCompact and jamoKey are precomputed by
// the loader with the same normalizer the query side uses; variants hold
// the compact-normalized known alternate names.
func New(
	id, name, nameCompact, jamoKey string,
	variants, ingredients, allergens []string,
	category string, categoryConf float64,
) Entry {
	return Entry{
		id:           id,
		name:         name,
		nameCompact:  nameCompact,
		jamoKey:      jamoKey,
		variants:     variants,
		ingredients:  ingredients,
		allergens:    allergens,
		category:     category,
		categoryConf: categoryConf,
	}
}

// ID returns the stable entry identifier.
func (e Entry) ID() string { return e.id }

// Name returns the canonical display name.
func (e Entry) Name() string { return e.name }

// NameCompact returns the compact-normalized display name.
func (e Entry) NameCompact() string { return e.nameCompact }

// JamoKey returns the suffix-stripped compact form used for jamo similarity.
func (e Entry) JamoKey() string { return e.jamoKey }

// Variants returns the compact-normalized known name variants.
func (e Entry) Variants() []string { return e.variants }

// Ingredients returns the ingredient tokens.
func (e Entry) Ingredients() []string { return e.ingredients }

// Allergens returns the allergen tags.
func (e Entry) Allergens() []string { return e.allergens }

// Category returns the coarse category label.
func (e Entry) Category() string { return e.category }

// CategoryConf returns the offline category-assignment confidence.
func (e Entry) CategoryConf() float64 { return e.categoryConf }
