package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/config"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/domain/schedule"
)

// AvailabilityCache mémorise les réponses de disponibilité par
// (médecin, date, type). Toutes les erreurs redis sont silencieuses :
// le cache ne doit jamais faire échouer une requête.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(cfg *config.Config) *AvailabilityCache {
	if cfg.RedisAddr == "" || cfg.AvailabilityCacheTTL <= 0 {
		return &AvailabilityCache{}
	}

	return &AvailabilityCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}),
		ttl: time.Duration(cfg.AvailabilityCacheTTL) * time.Second,
	}
}

func (c *AvailabilityCache) Enabled() bool {
	return c != nil && c.client != nil
}

func key(doctorID uint, date string, typeID uint) string {
	return fmt.Sprintf("avail:%d:%s:%d", doctorID, date, typeID)
}

func daySetKey(doctorID uint, date string) string {
	return fmt.Sprintf("avail-keys:%d:%s", doctorID, date)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	doctorID uint,
	date string,
	typeID uint,
) ([]schedule.Slot, bool) {

	if !c.Enabled() {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key(doctorID, date, typeID)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []schedule.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	doctorID uint,
	date string,
	typeID uint,
	slots []schedule.Slot,
) {

	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	k := key(doctorID, date, typeID)
	c.client.Set(ctx, k, raw, c.ttl)

	// On garde la trace des clés du jour pour pouvoir invalider sans SCAN.
	set := daySetKey(doctorID, date)
	c.client.SAdd(ctx, set, k)
	c.client.Expire(ctx, set, c.ttl)
}

// InvalidateDay purge toutes les entrées d'un médecin pour une date, quel que
// soit le type de consultation. Appelé après toute écriture qui change la
// disponibilité (rendez-vous, absence, événement).
func (c *AvailabilityCache) InvalidateDay(
	ctx context.Context,
	doctorID uint,
	date string,
) {

	if !c.Enabled() {
		return
	}

	set := daySetKey(doctorID, date)
	keys, err := c.client.SMembers(ctx, set).Result()
	if err == nil && len(keys) > 0 {
		c.client.Del(ctx, keys...)
	}
	c.client.Del(ctx, set)
}
