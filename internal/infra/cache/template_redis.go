package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-booking/internal/config"
	"github.com/BruksfildServices01/campus-booking/internal/domain/availability"
)

const keyPrefix = "teacher_slots:"

// NewRedisClient builds a client from config. It returns nil when no
// address is configured.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// TemplateCache is a read-through cache in front of a TemplateStore. Redis
// failures are logged and the inner store answers instead.
type TemplateCache struct {
	inner  availability.TemplateStore
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewTemplateCache(
	inner availability.TemplateStore,
	client *redis.Client,
	ttl time.Duration,
	logger *zap.Logger,
) *TemplateCache {
	return &TemplateCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

type cachedTemplate struct {
	TeacherID uint                `json:"teacher_id"`
	ChamberNo string              `json:"chamber_no"`
	Bio       string              `json:"bio"`
	Slots     map[string][]string `json:"available_slots"`
}

func key(teacherID uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, teacherID)
}

func (c *TemplateCache) Get(ctx context.Context, teacherID uint) (availability.Template, error) {
	raw, err := c.client.Get(ctx, key(teacherID)).Bytes()
	switch {
	case err == nil:
		if t, ok := c.decode(teacherID, raw); ok {
			return t, nil
		}
	case errors.Is(err, redis.Nil):
		// miss
	default:
		c.logger.Warn("Template cache read failed",
			zap.Uint("teacher_id", teacherID),
			zap.Error(err))
	}

	t, err := c.inner.Get(ctx, teacherID)
	if err != nil {
		return availability.Template{}, err
	}

	c.store(ctx, t)
	return t, nil
}

func (c *TemplateCache) Save(ctx context.Context, t availability.Template) error {
	if err := c.inner.Save(ctx, t); err != nil {
		return err
	}

	if err := c.client.Del(ctx, key(t.TeacherID)).Err(); err != nil {
		c.logger.Warn("Template cache invalidation failed",
			zap.Uint("teacher_id", t.TeacherID),
			zap.Error(err))
	}
	return nil
}

func (c *TemplateCache) store(ctx context.Context, t availability.Template) {
	slots := make(map[string][]string, len(t.Schedule))
	for day, labels := range t.Schedule {
		slots[string(day)] = labels
	}

	payload, err := json.Marshal(cachedTemplate{
		TeacherID: t.TeacherID,
		ChamberNo: t.ChamberNo,
		Bio:       t.Bio,
		Slots:     slots,
	})
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key(t.TeacherID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Template cache write failed",
			zap.Uint("teacher_id", t.TeacherID),
			zap.Error(err))
	}
}

func (c *TemplateCache) decode(teacherID uint, raw []byte) (availability.Template, bool) {
	var ct cachedTemplate
	if err := json.Unmarshal(raw, &ct); err != nil {
		c.logger.Warn("Discarding unreadable cached template",
			zap.Uint("teacher_id", teacherID),
			zap.Error(err))
		return availability.Template{}, false
	}

	return availability.Template{
		TeacherID: ct.TeacherID,
		ChamberNo: ct.ChamberNo,
		Bio:       ct.Bio,
		Schedule:  availability.ScheduleFromMap(ct.Slots),
	}, true
}

var _ availability.TemplateStore = (*TemplateCache)(nil)
