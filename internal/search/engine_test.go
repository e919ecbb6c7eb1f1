package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/geo"
)

func ptr(v float64) *float64 { return &v }

// catalog четыре мастера, каждый оказывает только услуги своей категории
func catalog() []*domain.Provider {
	return []*domain.Provider{
		{
			ID:             1,
			Name:           "Олена Коваль",
			Specialization: domain.SpecializationManicure,
			Services:       []domain.ProviderService{{Name: "Класичний манікюр"}, {Name: "Покриття гель-лак"}},
			Location:       geo.Point{Lat: 50.4501, Lng: 30.5234},
			LocationLabel:  "Київ, Хрещатик",
			Description:    "Акуратний манікюр та догляд за нігтями",
		},
		{
			ID:             2,
			Name:           "Anna Brow Studio",
			Specialization: domain.SpecializationBrows,
			Services:       []domain.ProviderService{{Name: "Корекція брів"}, {Name: "Ламінування брів"}},
			Location:       geo.Point{Lat: 50.4547, Lng: 30.5038},
			LocationLabel:  "Київ, Золоті ворота",
			Description:    "Брови будь-якої складності, також консультую щодо манікюр",
		},
		{
			ID:             3,
			Name:           "Марія Лисенко",
			Specialization: domain.SpecializationLashes,
			Services:       []domain.ProviderService{{Name: "Нарощування вій"}, {Name: "Ламінування вій"}},
			Location:       geo.Point{Lat: 50.4016, Lng: 30.6521},
			LocationLabel:  "Київ, Позняки",
			Description:    "Вії 2D та 3D",
		},
		{
			ID:             4,
			Name:           "Ірина Бондар",
			Specialization: domain.SpecializationPedicure,
			Services:       []domain.ProviderService{{Name: "Апаратний педикюр"}},
			Location:       geo.Point{Lat: 50.5129, Lng: 30.4983},
			LocationLabel:  "Київ, Оболонь",
			Description:    "Педикюр та SPA для ніг",
		},
	}
}

func ids(providers []*domain.Provider) []int64 {
	out := make([]int64, len(providers))
	for i, p := range providers {
		out[i] = p.ID
	}
	return out
}

func neverTaken(int64, string, string) bool { return false }

func TestSearch_ExactCategoryMatchesServicesOnly(t *testing.T) {
	engine := NewEngine(nil)

	result := engine.Search(catalog(), domain.SearchFilters{Query: "манікюр"}, neverTaken)

	// мастер по бровям упоминает манікюр в описании, но не оказывает эту услугу
	assert.Equal(t, []int64{1}, ids(result.Providers))
	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, "манікюр", result.Query)
}

func TestSearch_CategoryNeverMatchesOnSpecialization(t *testing.T) {
	engine := NewEngine(nil)
	providers := []*domain.Provider{
		{ID: 1, Specialization: domain.SpecializationBrows, Services: []domain.ProviderService{{Name: "Classic Manicure"}}},
		{ID: 2, Specialization: domain.SpecializationManicure, Services: []domain.ProviderService{{Name: "Brow shaping"}}},
		{ID: 3, Specialization: domain.SpecializationBrows, Services: []domain.ProviderService{{Name: "Brow tint"}}, Description: "manicure friendly"},
	}

	result := engine.Search(providers, domain.SearchFilters{Query: "Manicure"}, neverTaken)

	assert.Equal(t, []int64{1}, ids(result.Providers))
}

func TestSearch_BroadQueryMatchesAnyField(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "display name", query: "Anna", want: []int64{2}},
		{name: "display name case-insensitive", query: "  aNNa  ", want: []int64{2}},
		{name: "service substring", query: "ламінування", want: []int64{2, 3}},
		{name: "location label", query: "оболонь", want: []int64{4}},
		{name: "description", query: "spa", want: []int64{4}},
		{name: "specialization tag", query: "lash", want: []int64{3}},
		{name: "location shared by all", query: "київ", want: []int64{1, 2, 3, 4}},
		{name: "no match", query: "барбер", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Search(catalog(), domain.SearchFilters{Query: tt.query}, neverTaken)
			assert.Equal(t, tt.want, ids(result.Providers))
			assert.Equal(t, len(tt.want), result.TotalCount)
		})
	}
}

func TestSearch_EmptyQueryKeepsCatalog(t *testing.T) {
	engine := NewEngine(nil)

	result := engine.Search(catalog(), domain.SearchFilters{Query: "   "}, neverTaken)

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(result.Providers))
	assert.Equal(t, "", result.Query)
}

func TestSearch_EmptyCatalog(t *testing.T) {
	lat, lng := 50.0, 30.0
	result := NewEngine(nil).Search(nil, domain.SearchFilters{
		Query: "манікюр", Date: "2025-10-01", Time: "13:00", RequesterLat: &lat, RequesterLng: &lng,
	}, neverTaken)

	assert.Empty(t, result.Providers)
	assert.Equal(t, 0, result.TotalCount)
}

func TestSearch_AvailabilityDropsTakenProviders(t *testing.T) {
	engine := NewEngine(nil)

	var calls []int64
	isTaken := func(providerID int64, date, timeSlot string) bool {
		calls = append(calls, providerID)
		return providerID == 2 && date == "2025-10-01" && timeSlot == "13:00"
	}

	result := engine.Search(catalog(), domain.SearchFilters{Date: "2025-10-01", Time: "13:00"}, isTaken)

	assert.Equal(t, []int64{1, 3, 4}, ids(result.Providers))
	assert.Equal(t, []int64{1, 2, 3, 4}, calls, "predicate is consulted once per candidate")
}

func TestSearch_AvailabilityInactiveWithoutDate(t *testing.T) {
	engine := NewEngine(nil)
	allTaken := func(int64, string, string) bool { return true }

	result := engine.Search(catalog(), domain.SearchFilters{Time: "13:00"}, allTaken)
	assert.Equal(t, 4, result.TotalCount)

	result = engine.Search(catalog(), domain.SearchFilters{Date: "2025-10-01"}, allTaken)
	assert.Equal(t, 4, result.TotalCount)
}

func TestSearch_AvailabilityNeverIncreasesCount(t *testing.T) {
	engine := NewEngine(nil)
	takenOdd := func(id int64, _, _ string) bool { return id%2 == 1 }

	for _, q := range []string{"", "київ", "манікюр", "ламінування", "anna"} {
		without := engine.Search(catalog(), domain.SearchFilters{Query: q}, takenOdd)
		with := engine.Search(catalog(), domain.SearchFilters{Query: q, Date: "2025-10-01", Time: "10:00"}, takenOdd)
		assert.LessOrEqual(t, with.TotalCount, without.TotalCount, q)
	}
}

func TestSearch_DistanceSort(t *testing.T) {
	engine := NewEngine(nil)
	providers := catalog()

	// Позиция клиента совпадает с мастером маникюра
	result := engine.Search(providers, domain.SearchFilters{
		RequesterLat: ptr(50.4501),
		RequesterLng: ptr(30.5234),
	}, neverTaken)

	require.Len(t, result.Providers, 4)
	assert.Equal(t, int64(1), result.Providers[0].ID)

	from := geo.Point{Lat: 50.4501, Lng: 30.5234}
	for i := 1; i < len(result.Providers); i++ {
		prev := geo.Distance(from, result.Providers[i-1].Location)
		cur := geo.Distance(from, result.Providers[i].Location)
		assert.LessOrEqual(t, prev, cur)
	}
}

func TestSearch_DistanceSortIsStable(t *testing.T) {
	engine := NewEngine(nil)
	same := geo.Point{Lat: 48.0, Lng: 24.0}
	providers := []*domain.Provider{
		{ID: 10, Location: geo.Point{Lat: 49.0, Lng: 24.0}},
		{ID: 11, Location: same},
		{ID: 12, Location: geo.Point{Lat: 49.0, Lng: 24.0}},
		{ID: 13, Location: same},
	}

	result := engine.Search(providers, domain.SearchFilters{RequesterLat: ptr(48.0), RequesterLng: ptr(24.0)}, neverTaken)

	assert.Equal(t, []int64{11, 13, 10, 12}, ids(result.Providers))
}

func TestSearch_DistanceRequiresBothCoordinates(t *testing.T) {
	engine := NewEngine(nil)
	providers := catalog()

	result := engine.Search(providers, domain.SearchFilters{RequesterLat: ptr(50.5129)}, neverTaken)

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(result.Providers))
}

func TestSearch_IsIdempotentAndDoesNotMutateInput(t *testing.T) {
	engine := NewEngine(nil)
	providers := catalog()
	filters := domain.SearchFilters{
		Query:        "київ",
		Date:         "2025-10-01",
		Time:         "13:00",
		RequesterLat: ptr(50.5129),
		RequesterLng: ptr(30.4983),
	}
	isTaken := func(id int64, _, _ string) bool { return id == 3 }

	first := engine.Search(providers, filters, isTaken)
	second := engine.Search(providers, filters, isTaken)

	assert.Equal(t, ids(first.Providers), ids(second.Providers))
	assert.Equal(t, first.TotalCount, second.TotalCount)
	assert.Equal(t, []int64{4, 2, 1}, ids(first.Providers))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(providers))
}

func TestSearch_CustomTaxonomy(t *testing.T) {
	engine := NewEngine(NewTaxonomy([]string{"ламінування"}))

	// "ламінування" теперь категория: совпадения только по услугам
	result := engine.Search(catalog(), domain.SearchFilters{Query: "ламінування"}, neverTaken)
	assert.Equal(t, []int64{2, 3}, ids(result.Providers))

	// "манікюр" больше не категория: совпадает и по описанию мастера бровей
	result = engine.Search(catalog(), domain.SearchFilters{Query: "манікюр"}, neverTaken)
	assert.Equal(t, []int64{1, 2}, ids(result.Providers))
}

func TestEngine_Stages(t *testing.T) {
	engine := NewEngine(nil)

	assert.Empty(t, engine.Stages(domain.SearchFilters{Query: " ", Time: "13:00"}))
	assert.Equal(t,
		[]string{StageText, StageAvailability, StageDistance},
		engine.Stages(domain.SearchFilters{
			Query: "вії", Date: "2025-10-01", Time: "13:00", RequesterLat: ptr(1), RequesterLng: ptr(2),
		}),
	)
}
