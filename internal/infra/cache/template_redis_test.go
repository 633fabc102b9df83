package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-booking/internal/config"
	"github.com/BruksfildServices01/campus-booking/internal/domain/availability"
)

type memoryStore struct {
	templates map[uint]availability.Template
	gets      int
	err       error
}

func (m *memoryStore) Get(_ context.Context, teacherID uint) (availability.Template, error) {
	m.gets++
	if m.err != nil {
		return availability.Template{}, m.err
	}
	if t, ok := m.templates[teacherID]; ok {
		return t, nil
	}
	return availability.EmptyTemplate(teacherID), nil
}

func (m *memoryStore) Save(_ context.Context, t availability.Template) error {
	if m.err != nil {
		return m.err
	}
	m.templates[t.TeacherID] = t
	return nil
}

func liveClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// nothing listens on port 1, so every redis call fails fast
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewRedisClient_DisabledWithoutAddr(t *testing.T) {
	assert.Nil(t, NewRedisClient(&config.Config{}))

	client := NewRedisClient(&config.Config{RedisAddr: "localhost:6379", RedisDB: 2})
	require.NotNil(t, client)
	assert.Equal(t, 2, client.Options().DB)
	_ = client.Close()
}

func TestKey(t *testing.T) {
	assert.Equal(t, "teacher_slots:42", key(42))
}

func TestTemplateCache_FallsBackWhenRedisDown(t *testing.T) {
	inner := &memoryStore{templates: map[uint]availability.Template{
		7: {TeacherID: 7, ChamberNo: "B-204", Schedule: availability.Schedule{availability.Monday: {"09:00"}}},
	}}
	c := NewTemplateCache(inner, unreachableClient(t), time.Minute, zap.NewNop())
	ctx := context.Background()

	got, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "B-204", got.ChamberNo)
	assert.Equal(t, 1, inner.gets)

	require.NoError(t, c.Save(ctx, availability.Template{TeacherID: 7, ChamberNo: "C-101", Schedule: availability.Schedule{}}))

	got, err = c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "C-101", got.ChamberNo)
}

func TestTemplateCache_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("db down")
	c := NewTemplateCache(&memoryStore{err: boom}, unreachableClient(t), time.Minute, zap.NewNop())

	_, err := c.Get(context.Background(), 1)
	assert.ErrorIs(t, err, boom)

	err = c.Save(context.Background(), availability.EmptyTemplate(1))
	assert.ErrorIs(t, err, boom)
}

func TestTemplateCache_ServesHits(t *testing.T) {
	mr, client := liveClient(t)
	inner := &memoryStore{templates: map[uint]availability.Template{
		7: {TeacherID: 7, ChamberNo: "B-204", Bio: "Optics", Schedule: availability.Schedule{availability.Monday: {"09:00-09:30"}}},
	}}
	c := NewTemplateCache(inner, client, time.Minute, zap.NewNop())
	ctx := context.Background()

	first, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets)
	assert.True(t, mr.Exists("teacher_slots:7"))
	assert.Equal(t, time.Minute, mr.TTL("teacher_slots:7"))

	second, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets, "second read must come from redis")
	assert.Equal(t, first, second)
}

func TestTemplateCache_SaveInvalidates(t *testing.T) {
	mr, client := liveClient(t)
	inner := &memoryStore{templates: map[uint]availability.Template{
		7: {TeacherID: 7, ChamberNo: "B-204", Schedule: availability.Schedule{availability.Monday: {"09:00-09:30"}}},
	}}
	c := NewTemplateCache(inner, client, time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := c.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, mr.Exists("teacher_slots:7"))

	require.NoError(t, c.Save(ctx, availability.Template{
		TeacherID: 7,
		ChamberNo: "C-101",
		Schedule:  availability.Schedule{availability.Friday: {"14:00-14:30"}},
	}))
	assert.False(t, mr.Exists("teacher_slots:7"))

	got, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.gets)
	assert.Equal(t, "C-101", got.ChamberNo)
	assert.Equal(t, availability.Schedule{availability.Friday: {"14:00-14:30"}}, got.Schedule)
}

func TestTemplateCache_HitKeepsLabelsVerbatim(t *testing.T) {
	_, client := liveClient(t)
	stored := availability.Schedule{
		availability.Monday:  {" 10:00 ", "", "10:30-11:00"},
		availability.Tuesday: {},
	}
	inner := &memoryStore{templates: map[uint]availability.Template{
		3: {TeacherID: 3, ChamberNo: "A-1", Schedule: stored},
	}}
	c := NewTemplateCache(inner, client, time.Minute, zap.NewNop())
	ctx := context.Background()

	// 2026-10-19 is a Monday.
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	miss, err := c.Get(ctx, 3)
	require.NoError(t, err)

	hit, err := c.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets)

	assert.Equal(t, stored, hit.Schedule)
	assert.Equal(t, miss.Schedule.SlotsFor(monday), hit.Schedule.SlotsFor(monday))
	assert.True(t, hit.Schedule.Offers(monday, " 10:00 "))
	assert.False(t, hit.Schedule.Offers(monday, "10:00"))
}

func TestTemplateCache_ReplacesUnreadableEntry(t *testing.T) {
	mr, client := liveClient(t)
	inner := &memoryStore{templates: map[uint]availability.Template{
		7: {TeacherID: 7, ChamberNo: "B-204", Schedule: availability.Schedule{}},
	}}
	c := NewTemplateCache(inner, client, time.Minute, zap.NewNop())
	require.NoError(t, mr.Set("teacher_slots:7", "not json"))

	got, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "B-204", got.ChamberNo)
	assert.Equal(t, 1, inner.gets)

	raw, err := mr.Get("teacher_slots:7")
	require.NoError(t, err)
	assert.Contains(t, raw, `"chamber_no":"B-204"`)
}

func TestTemplateCache_Decode(t *testing.T) {
	c := NewTemplateCache(nil, nil, time.Minute, zap.NewNop())

	got, ok := c.decode(3, []byte(`{"teacher_id":3,"chamber_no":"A-1","bio":"x","available_slots":{"tuesday":["10:00"," 11:00 "],"funday":["12:00"]}}`))
	require.True(t, ok)
	assert.Equal(t, "A-1", got.ChamberNo)
	assert.Equal(t, availability.Schedule{availability.Tuesday: {"10:00", " 11:00 "}}, got.Schedule)

	_, ok = c.decode(3, []byte(`not json`))
	assert.False(t, ok)
}
