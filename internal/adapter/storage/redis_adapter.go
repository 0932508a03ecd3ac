package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/b-it-bots/datahub/internal/core/domain"
	"github.com/b-it-bots/datahub/internal/port"
)

const (
	itemKeyPrefix = "datahub:item:"
	itemIDsKey    = "datahub:item-ids"
	seededKey     = "datahub:seeded"
)

// upsertScript stores an item and appends its id to the ordering list only
// on first insert. Returns 1 when the item was created.
var upsertScript = redis.NewScript(`
local existed = redis.call('EXISTS', KEYS[1])
redis.call('SET', KEYS[1], ARGV[1])
if existed == 0 then
	redis.call('RPUSH', KEYS[2], ARGV[2])
	return 1
end
return 0
`)

// patchScript stores an item only if it already exists. Returns 0 when the
// item was absent.
var patchScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1])
return 1
`)

// RedisAdapter keeps the inventory in Redis so several hub replicas can
// share one volatile store. It implements the same port as MemoryAdapter;
// upsert and patch are atomic server side.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

// ApplySeed replaces the stored inventory with the seed's items. A seed
// without the inventoryItems key clears the seeded marker so the store
// reports itself uninitialized.
func (r *RedisAdapter) ApplySeed(ctx context.Context, seed *Seed) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, itemIDsKey, seededKey)

	if seed.Items != nil {
		for _, item := range *seed.Items {
			payload, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("encoding seed item %s: %w", item.ID, err)
			}
			pipe.Set(ctx, itemKeyPrefix+item.ID, payload, 0)
			pipe.RPush(ctx, itemIDsKey, item.ID)
		}
		pipe.Set(ctx, seededKey, 1, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("applying seed: %w", err)
	}
	return nil
}

func (r *RedisAdapter) checkSeeded(ctx context.Context) error {
	n, err := r.client.Exists(ctx, seededKey).Result()
	if err != nil {
		return fmt.Errorf("checking seed marker: %w", err)
	}
	if n == 0 {
		return port.ErrStoreUninitialized
	}
	return nil
}

func (r *RedisAdapter) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	if err := r.checkSeeded(ctx); err != nil {
		return nil, err
	}

	ids, err := r.client.LRange(ctx, itemIDsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing item ids: %w", err)
	}

	items := make([]domain.InventoryItem, 0, len(ids))
	for _, id := range ids {
		payload, err := r.client.Get(ctx, itemKeyPrefix+id).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading item %s: %w", id, err)
		}
		var item domain.InventoryItem
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, fmt.Errorf("decoding item %s: %w", id, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *RedisAdapter) GetItem(ctx context.Context, id string) (domain.InventoryItem, error) {
	if err := r.checkSeeded(ctx); err != nil {
		return domain.InventoryItem{}, err
	}

	payload, err := r.client.Get(ctx, itemKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.InventoryItem{}, port.ErrNotFound
	}
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("reading item %s: %w", id, err)
	}

	var item domain.InventoryItem
	if err := json.Unmarshal(payload, &item); err != nil {
		return domain.InventoryItem{}, fmt.Errorf("decoding item %s: %w", id, err)
	}
	return item, nil
}

func (r *RedisAdapter) UpsertItem(ctx context.Context, id string, item domain.InventoryItem) (domain.InventoryItem, bool, error) {
	if err := r.checkSeeded(ctx); err != nil {
		return domain.InventoryItem{}, false, err
	}

	item.ID = id
	payload, err := json.Marshal(item)
	if err != nil {
		return domain.InventoryItem{}, false, fmt.Errorf("encoding item %s: %w", id, err)
	}

	created, err := upsertScript.Run(ctx, r.client,
		[]string{itemKeyPrefix + id, itemIDsKey}, payload, id).Int()
	if err != nil {
		return domain.InventoryItem{}, false, fmt.Errorf("upserting item %s: %w", id, err)
	}
	return item, created == 1, nil
}

func (r *RedisAdapter) PatchItem(ctx context.Context, id string, item domain.InventoryItem) (domain.InventoryItem, error) {
	if err := r.checkSeeded(ctx); err != nil {
		return domain.InventoryItem{}, err
	}

	item.ID = id
	payload, err := json.Marshal(item)
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("encoding item %s: %w", id, err)
	}

	updated, err := patchScript.Run(ctx, r.client,
		[]string{itemKeyPrefix + id}, payload).Int()
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("patching item %s: %w", id, err)
	}
	if updated == 0 {
		return domain.InventoryItem{}, port.ErrNotFound
	}
	return item, nil
}
