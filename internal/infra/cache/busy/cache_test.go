package busy

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

func TestKey(t *testing.T) {
	id := uuid.MustParse("3f2b8e0c-1a7d-4c55-9e2a-0b7c6d5e4f31")
	brt := time.FixedZone("BRT", -3*60*60)

	assert.Equal(t,
		"busy:resource:3f2b8e0c-1a7d-4c55-9e2a-0b7c6d5e4f31:date:2025-06-01",
		Key(id, time.Date(2025, 6, 1, 0, 0, 0, 0, brt)))
}

func TestEncodeDecode_PreservesInstants(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	in := []domain.Interval{
		{Start: time.Date(2025, 6, 1, 9, 0, 0, 0, brt), End: time.Date(2025, 6, 1, 10, 0, 0, 0, brt)},
	}

	data, err := encode(in)
	require.NoError(t, err)

	out, err := decode(data)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Start.Equal(in[0].Start))
	assert.True(t, out[0].End.Equal(in[0].End))
}

func TestEncode_EmptyListIsCacheable(t *testing.T) {
	data, err := encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	out, err := decode(data)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := decode([]byte("not json"))
	assert.Error(t, err)
}

func TestNop_AlwaysMisses(t *testing.T) {
	var c Nop
	ctx := context.Background()
	id := uuid.New()
	date := time.Now()

	require.NoError(t, c.Set(ctx, id, date, 0, []domain.Interval{}))
	_, _, found, err := c.Get(ctx, id, date)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Invalidate(ctx, id, date))
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), mr
}

func busyAt(hour int) []domain.Interval {
	start := time.Date(2025, 6, 1, hour, 0, 0, 0, time.UTC)
	return []domain.Interval{{Start: start, End: start.Add(time.Hour)}}
}

func TestCache_MissThenFill(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	id := uuid.New()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, version, found, err := c.Get(ctx, id, date)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int64(0), version)

	require.NoError(t, c.Set(ctx, id, date, version, busyAt(9)))

	got, _, found, err := c.Get(ctx, id, date)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got, 1)
	assert.True(t, got[0].Start.Equal(busyAt(9)[0].Start))
	assert.True(t, mr.TTL(Key(id, date)) > 0)
}

func TestCache_InvalidateBetweenReadAndFillDropsStaleWrite(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	id := uuid.New()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// читатель промахнулся и пошёл в БД
	_, version, found, err := c.Get(ctx, id, date)
	require.NoError(t, err)
	require.False(t, found)

	// тем временем бронирование закоммичено и день инвалидирован
	require.NoError(t, c.Invalidate(ctx, id, date))

	// читатель кладёт интервалы, прочитанные до коммита
	require.NoError(t, c.Set(ctx, id, date, version, []domain.Interval{}))

	_, current, found, err := c.Get(ctx, id, date)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int64(1), current)

	// следующий читатель видит новую версию и заполняет кэш
	require.NoError(t, c.Set(ctx, id, date, current, busyAt(9)))
	got, _, found, err := c.Get(ctx, id, date)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, got, 1)
}

func TestCache_InvalidateRemovesEveryDate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	id := uuid.New()
	first := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	second := first.AddDate(0, 0, 1)

	require.NoError(t, c.Set(ctx, id, first, 0, busyAt(9)))
	require.NoError(t, c.Set(ctx, id, second, 0, busyAt(10)))

	require.NoError(t, c.Invalidate(ctx, id, first, second))

	assert.False(t, mr.Exists(Key(id, first)))
	assert.False(t, mr.Exists(Key(id, second)))
	assert.True(t, mr.TTL(VersionKey(id, first)) > 0)
}

func TestCache_RedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, _, _, err := c.Get(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrCache)
}
