package search

import "strings"

// DefaultCategories канонические названия категорий услуг.
// Украинские метки из каталога плюс английские теги направлений.
var DefaultCategories = []string{
	"манікюр",
	"брови",
	"вії",
	"педикюр",
	"manicure",
	"brows",
	"lashes",
	"pedicure",
}

// Taxonomy набор канонических категорий.
// Запрос, совпадающий с категорией, ищется только по названиям услуг.
type Taxonomy struct {
	labels map[string]struct{}
}

// NewTaxonomy создает таксономию. Пустой список означает DefaultCategories.
func NewTaxonomy(labels []string) *Taxonomy {
	if len(labels) == 0 {
		labels = DefaultCategories
	}

	t := &Taxonomy{labels: make(map[string]struct{}, len(labels))}
	for _, label := range labels {
		normalized := normalize(label)
		if normalized == "" {
			continue
		}
		t.labels[normalized] = struct{}{}
	}
	return t
}

// IsCategory returns true if the normalized term is a canonical category label
func (t *Taxonomy) IsCategory(term string) bool {
	_, ok := t.labels[normalize(term)]
	return ok
}

// Len количество категорий
func (t *Taxonomy) Len() int {
	return len(t.labels)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
