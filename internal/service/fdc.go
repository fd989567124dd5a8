package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pageza/macrotrack/backend/internal/metrics"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

var (
	ErrEmptyQuery     = errors.New("search query is required")
	ErrLookupUpstream = errors.New("food lookup failed")
)

const (
	fdcDataTypes = "Branded,Foundation,Survey (FNDDS),SR Legacy"
	fdcPageSize  = "200"
)

// FoodLookupService searches USDA FoodData Central.
type FoodLookupService struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	cache    LookupCache
	cacheTTL time.Duration
}

var _ IFoodLookupService = (*FoodLookupService)(nil)

// NewFoodLookupService creates a lookup client. cache may be nil.
func NewFoodLookupService(baseURL, apiKey string, cache LookupCache, cacheTTL time.Duration) *FoodLookupService {
	return &FoodLookupService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Search returns the raw records matching query. Results are served from the
// cache when possible; cache failures only cost a remote call.
func (s *FoodLookupService) Search(ctx context.Context, query string) ([]nutrition.FoodRecord, error) {
	query = NormalizeQuery(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if s.cache != nil {
		records, ok, err := s.cache.Get(ctx, query)
		if err != nil {
			log.Printf("[FoodLookupService] Cache read failed for %q: %v", query, err)
		} else if ok {
			metrics.IncFoodLookup("hit")
			return records, nil
		}
	}

	start := time.Now()
	records, err := s.fetch(ctx, query)
	metrics.ObserveFoodLookup(time.Since(start).Seconds())
	if err != nil {
		metrics.IncFoodLookup("error")
		return nil, err
	}
	metrics.IncFoodLookup("miss")

	if s.cache != nil {
		if err := s.cache.Set(ctx, query, records, s.cacheTTL); err != nil {
			log.Printf("[FoodLookupService] Cache write failed for %q: %v", query, err)
		}
	}
	return records, nil
}

func (s *FoodLookupService) fetch(ctx context.Context, query string) ([]nutrition.FoodRecord, error) {
	reqURL, err := url.Parse(s.baseURL + "/foods/search")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("query", query)
	params.Set("dataType", fdcDataTypes)
	params.Set("pageSize", fdcPageSize)
	params.Set("sortBy", "lowercaseDescription.keyword")
	params.Set("sortOrder", "asc")
	params.Set("api_key", s.apiKey)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("[FoodLookupService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", ErrLookupUpstream, resp.StatusCode)
	}

	var result struct {
		Foods []nutrition.FoodRecord `json:"foods"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrLookupUpstream, err)
	}
	if result.Foods == nil {
		result.Foods = []nutrition.FoodRecord{}
	}
	return result.Foods, nil
}
