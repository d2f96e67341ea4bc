package revalidate

import (
	"context"
	"crypto/subtle"
	"encoding/json"

	"go.uber.org/multierr"

	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
	"github.com/zenskecarape/storefront-api/pkg/logger"
	"github.com/zenskecarape/storefront-api/pkg/metrics"
)

// Payload is the content platform's publish webhook body. Only the document
// type and slug matter; the rest of the document is ignored.
type Payload struct {
	Type string    `json:"_type"`
	Slug SlugValue `json:"slug,omitempty"`
}

// SlugValue accepts both the platform's {"current": ...} slug object and a
// bare string.
type SlugValue string

func (s *SlugValue) UnmarshalJSON(data []byte) error {
	var obj struct {
		Current string `json:"current"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Current != "" {
		*s = SlugValue(obj.Current)
		return nil
	}
	var plain string
	if err := json.Unmarshal(data, &plain); err != nil {
		*s = ""
		return nil
	}
	*s = SlugValue(plain)
	return nil
}

// Purger is the slice of the cache client the webhook needs.
type Purger interface {
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// Service purges cached catalog reads when the content platform publishes a
// change. A product publish cannot know which categories reference it, so
// per-slug category entries are left to expire on their own TTL; the
// category list itself is purged.
type Service struct {
	secret  string
	cache   Purger
	metrics *metrics.StorefrontMetrics
	logg    *logger.Logger
}

func NewService(secret string, cache Purger, m *metrics.StorefrontMetrics, logg *logger.Logger) *Service {
	return &Service{secret: secret, cache: cache, metrics: m, logg: logg}
}

// Authorize checks the shared webhook secret in constant time.
func (s *Service) Authorize(provided string) error {
	if s.secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(s.secret)) != 1 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid revalidation secret")
	}
	return nil
}

// Revalidate purges the cache keys affected by the published document and
// returns them. Facet documents (colors, sizes, deniers) have no keyed
// entry of their own, so they fall back to the broad list purge.
func (s *Service) Revalidate(ctx context.Context, payload Payload) ([]string, error) {
	if s.cache == nil {
		return nil, nil
	}
	keys := s.keysFor(payload)

	var errs error
	for _, key := range keys {
		if err := s.cache.Del(ctx, key); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if errs != nil {
		return keys, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "purging catalog cache")
	}

	s.metrics.IncCachePurge()
	s.logg.Info(ctx, "catalog cache purged")
	return keys, nil
}

func (s *Service) keysFor(payload Payload) []string {
	if s.cache == nil {
		return nil
	}
	key := func(parts ...string) string {
		return s.cache.CacheKey(append([]string{"catalog"}, parts...)...)
	}

	slug := string(payload.Slug)
	switch payload.Type {
	case "product":
		keys := []string{key("products"), key("categories"), key("homepage")}
		if slug != "" {
			keys = append(keys, key("product", slug))
		}
		return keys
	case "category":
		// Homepage renders category tiles, so it goes stale too.
		keys := []string{key("categories"), key("products"), key("homepage")}
		if slug != "" {
			keys = append(keys, key("category", slug))
		}
		return keys
	case "homepage":
		return []string{key("homepage")}
	}
	// Facet and other document edits show up inside product and category
	// reads, so both lists go.
	return []string{key("products"), key("categories")}
}
