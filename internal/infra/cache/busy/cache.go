// Package busy кэширует занятые интервалы ресурса по календарным дням в Redis.
//
// Кэшируются интервалы, а не слоты: слоты зависят от текущего момента и
// вычисляются при каждом запросе.
package busy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

// ErrCache возвращается при ошибках Redis или повреждённых данных
var ErrCache = errors.New("busy.cache: redis error")

const (
	// DefaultTTL время жизни интервалов, если в конфигурации не задано
	DefaultTTL = 5 * time.Minute

	// versionTTL переживает любое чтение из БД, начатое до инвалидации
	versionTTL = 24 * time.Hour
)

// setIfVersion пишет интервалы, только если версия дня не изменилась с момента чтения.
// KEYS[1] ключ интервалов, KEYS[2] ключ версии; ARGV: версия, данные, TTL в мс.
var setIfVersion = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if (current or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Cache кэш занятых интервалов.
//
// У каждого дня ресурса есть версия: Invalidate увеличивает её и удаляет интервалы.
// Set принимает версию, прочитанную Get до обращения к БД, и ничего не пишет, если
// между чтением и записью прошла инвалидация.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создает кэш поверх клиента Redis
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

type interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Get возвращает интервалы на дату и текущую версию дня. found == false означает промах кэша.
func (c *Cache) Get(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]domain.Interval, int64, bool, error) {
	pipe := c.client.Pipeline()
	dataCmd := pipe.Get(ctx, Key(resourceID, date))
	versionCmd := pipe.Get(ctx, VersionKey(resourceID, date))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	version, err := versionCmd.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("%w: version: %v", ErrCache, err)
	}

	data, err := dataCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, version, false, nil
		}
		return nil, 0, false, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	intervals, err := decode(data)
	if err != nil {
		return nil, 0, false, fmt.Errorf("%w: decode: %v", ErrCache, err)
	}
	return intervals, version, true, nil
}

// Set сохраняет интервалы на дату (в том числе пустой список), если версия дня
// всё ещё равна version
func (c *Cache) Set(ctx context.Context, resourceID uuid.UUID, date time.Time, version int64, intervals []domain.Interval) error {
	payload, err := encode(intervals)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCache, err)
	}

	keys := []string{Key(resourceID, date), VersionKey(resourceID, date)}
	if err := setIfVersion.Run(ctx, c.client, keys, version, payload, c.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет интервалы ресурса на перечисленные даты и увеличивает их версии
func (c *Cache) Invalidate(ctx context.Context, resourceID uuid.UUID, dates ...time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	pipe := c.client.TxPipeline()
	for _, d := range dates {
		versionKey := VersionKey(resourceID, d)
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, versionTTL)
		pipe.Del(ctx, Key(resourceID, d))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: invalidate: %v", ErrCache, err)
	}
	return nil
}

// Key ключ кэша: дата берётся в часовом поясе самого date
func Key(resourceID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("busy:resource:%s:date:%s", resourceID, date.Format(domain.DateFormat))
}

// VersionKey ключ версии дня
func VersionKey(resourceID uuid.UUID, date time.Time) string {
	return Key(resourceID, date) + ":version"
}

func encode(intervals []domain.Interval) ([]byte, error) {
	out := make([]interval, len(intervals))
	for i, iv := range intervals {
		out[i] = interval{Start: iv.Start.UTC(), End: iv.End.UTC()}
	}
	return json.Marshal(out)
}

func decode(data []byte) ([]domain.Interval, error) {
	var in []interval
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}

	out := make([]domain.Interval, len(in))
	for i, iv := range in {
		out[i] = domain.Interval{Start: iv.Start, End: iv.End}
	}
	return out, nil
}

// Nop кэш-заглушка, когда Redis выключен: всегда промах
type Nop struct{}

func (Nop) Get(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]domain.Interval, int64, bool, error) {
	return nil, 0, false, nil
}

func (Nop) Set(ctx context.Context, resourceID uuid.UUID, date time.Time, version int64, intervals []domain.Interval) error {
	return nil
}

func (Nop) Invalidate(ctx context.Context, resourceID uuid.UUID, dates ...time.Time) error {
	return nil
}
