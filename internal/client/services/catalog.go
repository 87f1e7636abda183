package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/sweetshop/internal/client/client"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sweetshop/internal/common"
	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

// AllCategories is the category filter that matches every sweet.
const AllCategories = "All"

// Listing is a fetched catalog. Offline is set when the API could not be
// reached and the sweets come from the local cache.
type Listing struct {
	Sweets  []models.Sweet
	Offline bool
}

type CatalogService interface {
	List(ctx context.Context) (Listing, error)
	Create(ctx context.Context, in models.SweetInput) (*models.Sweet, error)
	Delete(ctx context.Context, id models.ID) error
	Purchase(ctx context.Context, sweet models.Sweet) (*models.Sweet, error)
	Restock(ctx context.Context, sweet models.Sweet, amount int) (*models.Sweet, error)
}

type catalogService struct {
	client client.Client
	cache  metadata.Repository
	log    logging.Logger
}

// NewCatalogService returns a CatalogService over c. cache may be nil, in
// which case nothing is served offline.
func NewCatalogService(c client.Client, cache metadata.Repository, log logging.Logger) CatalogService {
	if log == nil {
		log = logging.Nop()
	}
	return &catalogService{client: c, cache: cache, log: log.With("component", "catalog")}
}

func (s *catalogService) List(ctx context.Context) (Listing, error) {
	sweets, err := s.client.ListSweets(ctx)
	if err == nil {
		s.remember(ctx, sweets)
		return Listing{Sweets: sweets}, nil
	}

	if !errors.Is(err, client.ErrUnavailable) || s.cache == nil {
		return Listing{}, fmt.Errorf("error fetching sweets: %w", err)
	}

	cached, cacheErr := s.cache.Get(ctx, common.CatalogMetadataKey)
	if cacheErr != nil || cached == nil {
		return Listing{}, fmt.Errorf("error fetching sweets: %w", err)
	}
	var offline []models.Sweet
	if jsonErr := json.Unmarshal(cached, &offline); jsonErr != nil {
		s.log.Warn(ctx, "cached catalog is unreadable", "error", jsonErr)
		return Listing{}, fmt.Errorf("error fetching sweets: %w", err)
	}
	s.log.Info(ctx, "serving cached catalog", "count", len(offline))
	return Listing{Sweets: offline, Offline: true}, nil
}

func (s *catalogService) remember(ctx context.Context, sweets []models.Sweet) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(sweets)
	if err != nil {
		s.log.Warn(ctx, "encoding catalog failed", "error", err)
		return
	}
	if err := s.cache.Set(ctx, common.CatalogMetadataKey, data); err != nil {
		s.log.Warn(ctx, "caching catalog failed", "error", err)
	}
}

func (s *catalogService) Create(ctx context.Context, in models.SweetInput) (*models.Sweet, error) {
	sweet, err := s.client.CreateSweet(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("error adding sweet: %w", err)
	}
	return sweet, nil
}

func (s *catalogService) Delete(ctx context.Context, id models.ID) error {
	if err := s.client.DeleteSweet(ctx, id); err != nil {
		return fmt.Errorf("error deleting sweet: %w", err)
	}
	return nil
}

// Purchase buys one unit of sweet. Sold-out sweets are refused without a
// round trip.
func (s *catalogService) Purchase(ctx context.Context, sweet models.Sweet) (*models.Sweet, error) {
	if sweet.Quantity <= 0 {
		return nil, fmt.Errorf("%s: %w", sweet.Name, common.ErrorOutOfStock)
	}
	updated, err := s.client.PurchaseSweet(ctx, sweet.ID, 1)
	if err != nil {
		return nil, fmt.Errorf("error purchasing sweet: %w", err)
	}
	return updated, nil
}

// Restock adds amount units on top of the sweet's current quantity.
func (s *catalogService) Restock(ctx context.Context, sweet models.Sweet, amount int) (*models.Sweet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("restock amount must be positive: %w", common.ErrorInvalidInput)
	}
	quantity := sweet.Quantity + amount
	updated, err := s.client.UpdateSweet(ctx, sweet.ID, models.SweetUpdate{Quantity: &quantity})
	if err != nil {
		return nil, fmt.Errorf("error restocking sweet: %w", err)
	}
	return updated, nil
}

// Filter keeps the sweets whose name, category or description contains term
// (case-insensitively) and whose category equals category. An empty category
// or AllCategories matches everything.
func Filter(sweets []models.Sweet, term, category string) []models.Sweet {
	term = strings.ToLower(strings.TrimSpace(term))
	result := make([]models.Sweet, 0, len(sweets))
	for _, sw := range sweets {
		if term != "" &&
			!strings.Contains(strings.ToLower(sw.Name), term) &&
			!strings.Contains(strings.ToLower(sw.Category), term) &&
			!strings.Contains(strings.ToLower(sw.Description), term) {
			continue
		}
		if category != "" && category != AllCategories && sw.Category != category {
			continue
		}
		result = append(result, sw)
	}
	return result
}

// Categories returns AllCategories followed by every distinct category in
// order of first appearance.
func Categories(sweets []models.Sweet) []string {
	seen := make(map[string]struct{}, len(sweets))
	result := []string{AllCategories}
	for _, sw := range sweets {
		if _, ok := seen[sw.Category]; ok {
			continue
		}
		seen[sw.Category] = struct{}{}
		result = append(result, sw.Category)
	}
	return result
}

// Find returns the sweet with id.
func Find(sweets []models.Sweet, id models.ID) (models.Sweet, error) {
	for _, sw := range sweets {
		if sw.ID == id {
			return sw, nil
		}
	}
	return models.Sweet{}, fmt.Errorf("sweet %s: %w", id, common.ErrorNotFound)
}
