package application

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftlink/giftlink-api/internal/domain/entity"
	repo "github.com/giftlink/giftlink-api/internal/domain/repository"
)

// recordingRedisHook captures command names and answers GET with a cache
// miss, letting the service's redis paths run without a server.
type recordingRedisHook struct {
	commands []string
}

func (h *recordingRedisHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *recordingRedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.commands = append(h.commands, cmd.Name())
		if cmd.Name() == "get" {
			return redis.Nil
		}
		return nil
	}
}

func (h *recordingRedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error { return nil }
}

func recordingRedis() (*redis.Client, *recordingRedisHook) {
	hook := &recordingRedisHook{}
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	rdb.AddHook(hook)
	return rdb, hook
}

type memGiftRepo struct {
	gifts      []entity.Gift
	lastFilter repo.GiftFilter
}

func (r *memGiftRepo) Create(_ context.Context, g *entity.Gift) error {
	g.ID = "gift-1"
	g.CreatedAt = time.Now()
	r.gifts = append(r.gifts, *g)
	return nil
}

func (r *memGiftRepo) GetByID(_ context.Context, id string) (*entity.Gift, error) {
	for _, g := range r.gifts {
		if g.ID == id {
			cp := g
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memGiftRepo) Search(_ context.Context, f repo.GiftFilter) ([]entity.Gift, error) {
	r.lastFilter = f
	return r.gifts, nil
}

func (r *memGiftRepo) UpdateImageURL(_ context.Context, id, url string) error {
	for i := range r.gifts {
		if r.gifts[i].ID == id {
			r.gifts[i].ImageURL = url
			return nil
		}
	}
	return repo.ErrNotFound
}

var _ repo.GiftRepository = (*memGiftRepo)(nil)

func TestSearchQueryFilterNormalization(t *testing.T) {
	q := SearchQuery{
		Name:      "  chair ",
		Category:  " Furniture ",
		Condition: "Good",
		AgeYears:  " 5 ",
	}
	f := q.Filter()

	assert.Equal(t, "chair", f.Name)
	assert.Equal(t, "Furniture", f.Category)
	assert.Equal(t, "Good", f.Condition)
	require.NotNil(t, f.MaxAge)
	assert.Equal(t, 5, *f.MaxAge)
}

func TestSearchQueryFilterIgnoresUnparsableAge(t *testing.T) {
	f := SearchQuery{AgeYears: "five"}.Filter()
	assert.Nil(t, f.MaxAge)

	f = SearchQuery{AgeYears: ""}.Filter()
	assert.Nil(t, f.MaxAge)
}

func TestSearchQueryFilterEmptyParams(t *testing.T) {
	f := SearchQuery{}.Filter()
	assert.Equal(t, repo.GiftFilter{}, f)
}

func TestGiftSearchWithoutRedis(t *testing.T) {
	r := &memGiftRepo{gifts: []entity.Gift{{ID: "gift-1", Name: "Chair"}}}
	svc := NewGiftService(r, nil, nil, nil, "", nil, "", 0)

	gifts, err := svc.Search(context.Background(), SearchQuery{Name: "chair", AgeYears: "3"})
	require.NoError(t, err)
	assert.Len(t, gifts, 1)

	assert.Equal(t, "chair", r.lastFilter.Name)
	require.NotNil(t, r.lastFilter.MaxAge)
	assert.Equal(t, 3, *r.lastFilter.MaxAge)
}

func TestGiftSearchTracksCacheKeys(t *testing.T) {
	rdb, hook := recordingRedis()
	r := &memGiftRepo{gifts: []entity.Gift{{ID: "gift-1", Name: "Chair"}}}
	svc := NewGiftService(r, rdb, nil, nil, "", nil, "", time.Minute)

	_, err := svc.Search(context.Background(), SearchQuery{Name: "chair"})
	require.NoError(t, err)

	assert.Contains(t, hook.commands, "get")
	assert.Contains(t, hook.commands, "set")
	assert.Contains(t, hook.commands, "sadd")
}

func TestGiftCreateInvalidatesSearchCache(t *testing.T) {
	rdb, hook := recordingRedis()
	svc := NewGiftService(&memGiftRepo{}, rdb, nil, nil, "", nil, "", time.Minute)

	require.NoError(t, svc.Create(context.Background(), &entity.Gift{Name: "Chair"}))

	assert.Contains(t, hook.commands, "smembers")
	assert.Contains(t, hook.commands, "del")
}

func TestGiftCreateTrimsFields(t *testing.T) {
	r := &memGiftRepo{}
	svc := NewGiftService(r, nil, nil, nil, "", nil, "", 0)

	g := &entity.Gift{Name: " Chair ", Category: " Furniture ", Condition: " Good "}
	require.NoError(t, svc.Create(context.Background(), g))

	assert.Equal(t, "Chair", g.Name)
	assert.Equal(t, "Furniture", g.Category)
	assert.Equal(t, "Good", g.Condition)
	assert.NotEmpty(t, g.ID)
}

func TestGiftSuggestWithoutES(t *testing.T) {
	svc := NewGiftService(&memGiftRepo{}, nil, nil, nil, "", nil, "", 0)

	hits, err := svc.Suggest(context.Background(), "chair", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestGiftUploadImageWithoutStorage(t *testing.T) {
	r := &memGiftRepo{gifts: []entity.Gift{{ID: "gift-1", Name: "Chair"}}}
	svc := NewGiftService(r, nil, nil, nil, "", nil, "", 0)

	_, err := svc.UploadImage(context.Background(), "gift-1", nil, "photo.jpg", "image/jpeg")
	require.Error(t, err)
	assert.True(t, ErrStorageNotConfigured(err))
}

func TestGiftUploadImageUnknownGift(t *testing.T) {
	svc := NewGiftService(&memGiftRepo{}, nil, nil, nil, "", nil, "", 0)

	_, err := svc.UploadImage(context.Background(), "missing", nil, "photo.jpg", "image/jpeg")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
