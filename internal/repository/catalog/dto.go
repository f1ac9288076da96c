package catalog

// record mirrors one line of the offline catalog build (JSONL).
type record struct {
	ID           string   `json:"id"`
	Menu         string   `json:"menu"`
	MenuNorm     string   `json:"menu_norm"`
	Variants     []string `json:"variants"`
	Ingredients  []string `json:"ingredients_ko"`
	Allergens    []string `json:"alg_tags"`
	Category     string   `json:"category_lv1"`
	CategoryConf float64  `json:"category_conf"`
}
