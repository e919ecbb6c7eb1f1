package search

import (
	"slices"
	"strings"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/geo"
)

// Stage names reported by Stages
const (
	StageText         = "text"
	StageAvailability = "availability"
	StageDistance     = "distance"
)

// Engine поиск мастеров по каталогу.
// Не хранит состояния кроме неизменяемой таксономии, безопасен для конкурентных вызовов.
type Engine struct {
	taxonomy *Taxonomy
}

// NewEngine создает движок поиска. nil taxonomy означает таксономию по умолчанию.
func NewEngine(taxonomy *Taxonomy) *Engine {
	if taxonomy == nil {
		taxonomy = NewTaxonomy(nil)
	}
	return &Engine{taxonomy: taxonomy}
}

// Search фильтрует и упорядочивает мастеров в три стадии:
//  1. текстовый фильтр (строгий для канонических категорий, широкий для остального)
//  2. фильтр занятости слота (только если заданы и дата, и время)
//  3. стабильная сортировка по расстоянию (только если заданы обе координаты)
//
// Входной слайс не изменяется. Пустой результат не является ошибкой.
func (e *Engine) Search(providers []*domain.Provider, filters domain.SearchFilters, isSlotTaken domain.SlotTakenFunc) domain.SearchResult {
	query := normalize(filters.Query)

	result := make([]*domain.Provider, 0, len(providers))
	for _, p := range providers {
		if query != "" && !e.matchesQuery(p, query) {
			continue
		}
		result = append(result, p)
	}

	if filters.HasAvailability() && isSlotTaken != nil {
		result = filterAvailable(result, filters.Date, filters.Time, isSlotTaken)
	}

	if filters.HasRequesterPosition() {
		result = sortByDistance(result, geo.Point{Lat: *filters.RequesterLat, Lng: *filters.RequesterLng})
	}

	return domain.SearchResult{
		Providers:  result,
		TotalCount: len(result),
		Query:      query,
	}
}

// Stages список стадий, которые будут применены для фильтров
func (e *Engine) Stages(filters domain.SearchFilters) []string {
	stages := make([]string, 0, 3)
	if normalize(filters.Query) != "" {
		stages = append(stages, StageText)
	}
	if filters.HasAvailability() {
		stages = append(stages, StageAvailability)
	}
	if filters.HasRequesterPosition() {
		stages = append(stages, StageDistance)
	}
	return stages
}

// matchesQuery query уже нормализован
func (e *Engine) matchesQuery(p *domain.Provider, query string) bool {
	if e.taxonomy.IsCategory(query) {
		return matchesServices(p, query)
	}

	if matchesServices(p, query) {
		return true
	}

	fields := []string{
		string(p.Specialization),
		p.Name,
		p.LocationLabel,
		p.Description,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func matchesServices(p *domain.Provider, query string) bool {
	for _, s := range p.Services {
		if strings.Contains(strings.ToLower(s.Name), query) {
			return true
		}
	}
	return false
}

func filterAvailable(providers []*domain.Provider, date, timeSlot string, isSlotTaken domain.SlotTakenFunc) []*domain.Provider {
	available := providers[:0]
	for _, p := range providers {
		if isSlotTaken(p.ID, date, timeSlot) {
			continue
		}
		available = append(available, p)
	}
	return available
}

type rankedProvider struct {
	provider *domain.Provider
	distance float64
}

func sortByDistance(providers []*domain.Provider, from geo.Point) []*domain.Provider {
	ranked := make([]rankedProvider, len(providers))
	for i, p := range providers {
		ranked[i] = rankedProvider{provider: p, distance: geo.Distance(from, p.Location)}
	}

	// Стабильная сортировка: при равном расстоянии сохраняется исходный порядок
	slices.SortStableFunc(ranked, func(a, b rankedProvider) int {
		switch {
		case a.distance < b.distance:
			return -1
		case a.distance > b.distance:
			return 1
		default:
			return 0
		}
	})

	for i, r := range ranked {
		providers[i] = r.provider
	}
	return providers
}
