package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/giftlink/giftlink-api/internal/domain/entity"
	repo "github.com/giftlink/giftlink-api/internal/domain/repository"
	"github.com/giftlink/giftlink-api/pkg/helpers"
)

// GiftService serves the gift catalogue: filtered search backed by Postgres
// with a short-TTL Redis cache, creation with an Elasticsearch mirror, and
// image uploads to GCS. Redis, ES and GCS are all optional; nil clients
// disable the corresponding feature.
type GiftService struct {
	Repo         repo.GiftRepository
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESGiftsIndex string
	GCS          *storage.Client
	GCSBucket    string
	CacheTTL     time.Duration
}

func NewGiftService(giftRepo repo.GiftRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esGiftsIndex string, gcs *storage.Client, gcsBucket string, cacheTTL time.Duration) *GiftService {
	return &GiftService{
		Repo:         giftRepo,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESGiftsIndex: esGiftsIndex,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		CacheTTL:     cacheTTL,
	}
}

var errStorageNotConfigured = errors.New("object storage is not configured")

// ErrStorageNotConfigured reports whether err means image uploads are
// unavailable because no bucket client was wired.
func ErrStorageNotConfigured(err error) bool { return errors.Is(err, errStorageNotConfigured) }

// SearchQuery carries the raw query-string filters.
type SearchQuery struct {
	Name      string
	Category  string
	Condition string
	AgeYears  string
}

// Filter normalizes the raw query into a repository filter: surrounding
// whitespace is dropped, empty params are ignored, and an unparsable
// age_years is ignored rather than rejected.
func (q SearchQuery) Filter() repo.GiftFilter {
	f := repo.GiftFilter{
		Name:      strings.TrimSpace(q.Name),
		Category:  strings.TrimSpace(q.Category),
		Condition: strings.TrimSpace(q.Condition),
	}
	if q.AgeYears != "" {
		if age, err := strconv.Atoi(strings.TrimSpace(q.AgeYears)); err == nil {
			f.MaxAge = &age
		}
	}
	return f
}

// searchCacheKeySet tracks every live search cache key so catalogue writes
// can drop them all at once.
const searchCacheKeySet = "gifts:search:keys"

func (q SearchQuery) cacheKey() string {
	f := q.Filter()
	key := "gifts:search:n=" + f.Name + ":c=" + f.Category + ":cond=" + f.Condition
	if f.MaxAge != nil {
		key += ":age=" + strconv.Itoa(*f.MaxAge)
	}
	return key
}

// Search returns every gift matching the filters, newest first.
func (s *GiftService) Search(ctx context.Context, q SearchQuery) ([]entity.Gift, error) {
	key := q.cacheKey()
	if s.Redis != nil {
		var cached []entity.Gift
		if hit, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	gifts, err := s.Repo.Search(ctx, q.Filter())
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, gifts, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("search cache write failed")
		}
		if err := s.Redis.SAdd(ctx, searchCacheKeySet, key).Err(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("search cache key tracking failed")
		}
	}
	return gifts, nil
}

// invalidateSearchCache drops every cached search result. Called after any
// catalogue write so a new gift is never masked by a stale result.
func (s *GiftService) invalidateSearchCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	keys, err := s.Redis.SMembers(ctx, searchCacheKeySet).Result()
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("search cache invalidation failed")
		}
		return
	}
	for _, key := range keys {
		if err := helpers.RedisDel(ctx, s.Redis, key); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("search cache delete failed")
		}
	}
	if err := helpers.RedisDel(ctx, s.Redis, searchCacheKeySet); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("search cache key set delete failed")
	}
}

// Create stores a new gift and mirrors it into the Elasticsearch index.
func (s *GiftService) Create(ctx context.Context, g *entity.Gift) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Category = strings.TrimSpace(g.Category)
	g.Condition = strings.TrimSpace(g.Condition)
	if err := s.Repo.Create(ctx, g); err != nil {
		return err
	}
	s.invalidateSearchCache(ctx)
	_ = s.indexGift(ctx, g)
	return nil
}

// UploadImage stores an image for an existing gift in GCS and records its
// public URL on the gift.
func (s *GiftService) UploadImage(ctx context.Context, giftID string, r io.Reader, filename, contentType string) (string, error) {
	g, err := s.Repo.GetByID(ctx, giftID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errStorageNotConfigured
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("gifts", g.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateImageURL(ctx, g.ID, url); err != nil {
		return "", err
	}
	g.ImageURL = url
	s.invalidateSearchCache(ctx)
	_ = s.indexGift(ctx, g)
	return url, nil
}

func (s *GiftService) indexGift(ctx context.Context, g *entity.Gift) error {
	if s.ES == nil || s.ESGiftsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          g.ID,
		"name":        g.Name,
		"category":    g.Category,
		"condition":   g.Condition,
		"age_years":   g.AgeYears,
		"description": g.Description,
		"image_url":   g.ImageURL,
		"created_at":  g.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESGiftsIndex, DocumentID: g.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("gift_id", g.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("gift_id", g.ID).Warn("es index response error")
	}
	return nil
}

// Suggest performs a multi_match search on gift name and description.
func (s *GiftService) Suggest(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESGiftsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESGiftsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
