package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/freshconnect/api/internal/core/domain"
	"github.com/freshconnect/api/internal/core/ports"
	"github.com/freshconnect/api/internal/pkg/geospatial"
	"github.com/freshconnect/api/internal/pkg/metrics"
)

// DiscoveryResult is the outcome of a vendor search: the ordered,
// filtered vendor list and the distance (km) for every surviving vendor
// when a user location was available.
type DiscoveryResult struct {
	Vendors   []domain.Vendor    `json:"vendors"`
	Distances map[string]float64 `json:"distances"`
}

// RankVendors runs the filter-rank pipeline over snapshots of the
// vendor and item collections. It is pure: no storage access, no
// mutation of its inputs beyond copying.
//
// Stages, in strict order: active filter, search-term filter, category
// filter, distance computation, distance filter, stable sort.
func RankVendors(vendors []domain.Vendor, items []domain.ProduceItem, loc *domain.GeoPoint, filters domain.FilterOptions) DiscoveryResult {
	itemsByVendor := make(map[string][]domain.ProduceItem, len(vendors))
	for _, item := range items {
		itemsByVendor[item.VendorID] = append(itemsByVendor[item.VendorID], item)
	}

	// Inactive vendors are dropped unconditionally, before any
	// user-supplied criteria apply.
	filtered := make([]domain.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if v.IsActive {
			filtered = append(filtered, v)
		}
	}

	if term := strings.ToLower(filters.SearchTerm); term != "" {
		kept := filtered[:0]
		for _, v := range filtered {
			if vendorMatchesSearch(v, itemsByVendor[v.ID], term) {
				kept = append(kept, v)
			}
		}
		filtered = kept
	}

	if len(filters.Categories) > 0 {
		kept := filtered[:0]
		for _, v := range filtered {
			if vendorMatchesCategories(v, itemsByVendor[v.ID], filters.Categories) {
				kept = append(kept, v)
			}
		}
		filtered = kept
	}

	distances := make(map[string]float64)
	if loc != nil {
		for _, v := range filtered {
			distances[v.ID] = geospatial.Distance(*loc, v.Location)
		}

		// MaxDistance of zero means no distance filtering at all, and an
		// undefined distance never excludes a vendor.
		if filters.MaxDistance > 0 {
			kept := filtered[:0]
			for _, v := range filtered {
				d, ok := distances[v.ID]
				if !ok || math.IsNaN(d) || d <= filters.MaxDistance {
					kept = append(kept, v)
				} else {
					delete(distances, v.ID)
				}
			}
			filtered = kept
		}
	}

	sortVendors(filtered, distances, loc, filters.SortBy)

	// Annotate survivors with their computed distance.
	if loc != nil {
		for i := range filtered {
			if d, ok := distances[filtered[i].ID]; ok && !math.IsNaN(d) {
				dist := d
				filtered[i].Distance = &dist
			}
		}
	}

	return DiscoveryResult{Vendors: filtered, Distances: distances}
}

func vendorMatchesSearch(v domain.Vendor, vendorItems []domain.ProduceItem, term string) bool {
	if strings.Contains(strings.ToLower(v.Name), term) {
		return true
	}
	for _, s := range v.Specialties {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	// Association is by vendor ID regardless of availability.
	for _, item := range vendorItems {
		if strings.Contains(strings.ToLower(item.Name), term) {
			return true
		}
	}
	return false
}

func vendorMatchesCategories(v domain.Vendor, vendorItems []domain.ProduceItem, categories []domain.Category) bool {
	for _, item := range vendorItems {
		for _, c := range categories {
			if item.Category == c {
				return true
			}
		}
	}
	// Specialty matching is deliberately loose: substring containment,
	// so "Organic Vegetables" matches the "Organic" category.
	for _, s := range v.Specialties {
		for _, c := range categories {
			if strings.Contains(s, string(c)) {
				return true
			}
		}
	}
	return false
}

func sortVendors(vendors []domain.Vendor, distances map[string]float64, loc *domain.GeoPoint, mode domain.SortMode) {
	switch mode {
	case domain.SortByDistance:
		if loc == nil {
			return // no location, order left unchanged
		}
		sort.SliceStable(vendors, func(i, j int) bool {
			return sortDistance(distances, vendors[i].ID) < sortDistance(distances, vendors[j].ID)
		})
	case domain.SortByRating:
		sort.SliceStable(vendors, func(i, j int) bool {
			return vendors[i].Rating > vendors[j].Rating
		})
	case domain.SortByName:
		coll := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(vendors, func(i, j int) bool {
			return coll.CompareString(vendors[i].Name, vendors[j].Name) < 0
		})
	}
}

// sortDistance treats a missing or undefined distance as zero for
// ordering purposes; it never causes exclusion.
func sortDistance(distances map[string]float64, id string) float64 {
	d, ok := distances[id]
	if !ok || math.IsNaN(d) {
		return 0
	}
	return d
}

// DiscoveryService loads vendor/item snapshots, runs the ranking
// pipeline, and caches results.
type DiscoveryService struct {
	vendors ports.VendorRepository
	items   ports.ItemRepository
	cache   ports.CacheService
}

// NewDiscoveryService creates a new DiscoveryService.
func NewDiscoveryService(vendors ports.VendorRepository, items ports.ItemRepository, cache ports.CacheService) *DiscoveryService {
	return &DiscoveryService{vendors: vendors, items: items, cache: cache}
}

// Discover returns the ranked vendor view for the given location and
// filter criteria. loc may be nil; vendors are then equidistant.
func (s *DiscoveryService) Discover(ctx context.Context, loc *domain.GeoPoint, filters domain.FilterOptions) (*DiscoveryResult, error) {
	cacheKey := discoveryCacheKey(loc, filters)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var result DiscoveryResult
			if err := json.Unmarshal(data, &result); err == nil {
				metrics.CacheHits.WithLabelValues("discovery").Inc()
				return &result, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("discovery").Inc()
	}

	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	result := RankVendors(vendors, items, loc, filters)

	// Short TTL: inventory changes should surface quickly on the map.
	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 60)
		}
	}

	return &result, nil
}

// GetVendor returns a single vendor.
func (s *DiscoveryService) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	return s.vendors.GetByID(ctx, id)
}

// VendorItems returns the items offered by one vendor, including
// currently unavailable ones.
func (s *DiscoveryService) VendorItems(ctx context.Context, vendorID string) ([]domain.ProduceItem, error) {
	return s.items.ListByVendor(ctx, vendorID)
}

// ListItems returns the full produce catalog.
func (s *DiscoveryService) ListItems(ctx context.Context) ([]domain.ProduceItem, error) {
	return s.items.List(ctx)
}

func discoveryCacheKey(loc *domain.GeoPoint, f domain.FilterOptions) string {
	locPart := "none"
	if loc != nil {
		locPart = fmt.Sprintf("%.4f:%.4f", loc.Lat, loc.Lon)
	}
	cats := make([]string, 0, len(f.Categories))
	for _, c := range f.Categories {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	return fmt.Sprintf("discovery:%s:%s:%.1f:%s:%s",
		locPart, strings.Join(cats, ","), f.MaxDistance, strings.ToLower(f.SearchTerm), f.SortBy)
}
