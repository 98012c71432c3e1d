// Package queue implements asynchronous search-index maintenance on top of
// asynq. Jobs are fenced by a per-shop monotonic stamp issued at enqueue
// time, so a slow retry of an old job can never overwrite newer state.
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeUpdateShopIndex = "shop:index:update"
	TypeDeleteShopIndex = "shop:index:delete"
)

// IndexPayload is the payload of both index maintenance tasks
type IndexPayload struct {
	ShopID uuid.UUID `json:"shop_id"`
	Stamp  int64     `json:"stamp"`
}

// NewUpdateShopIndexTask builds an update-index task for a shop
func NewUpdateShopIndexTask(shopID uuid.UUID, stamp int64) (*asynq.Task, error) {
	payload, err := json.Marshal(IndexPayload{ShopID: shopID, Stamp: stamp})
	if err != nil {
		return nil, fmt.Errorf("marshal index payload: %w", err)
	}
	return asynq.NewTask(TypeUpdateShopIndex, payload), nil
}

// NewDeleteShopIndexTask builds a delete-index task for a shop
func NewDeleteShopIndexTask(shopID uuid.UUID, stamp int64) (*asynq.Task, error) {
	payload, err := json.Marshal(IndexPayload{ShopID: shopID, Stamp: stamp})
	if err != nil {
		return nil, fmt.Errorf("marshal index payload: %w", err)
	}
	return asynq.NewTask(TypeDeleteShopIndex, payload), nil
}

// ParseIndexPayload decodes a task payload
func ParseIndexPayload(task *asynq.Task) (IndexPayload, error) {
	var payload IndexPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return IndexPayload{}, fmt.Errorf("unmarshal index payload: %w", err)
	}
	return payload, nil
}
