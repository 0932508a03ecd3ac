package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/b-it-bots/datahub/internal/config"
	"github.com/b-it-bots/datahub/internal/core/domain"
)

// timestampLayout matches the hub's wire format for timestamps.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// DataHub exposes the domain operations a robot performs against the hub.
// Each operation is one dispatch with computed arguments.
type DataHub struct {
	dispatcher *Dispatcher
	profile    *config.Profile

	// Overridable for tests.
	now       func() time.Time
	newSuffix func() string
}

// NewDataHub wraps a dispatcher with the domain operations. The profile
// must be the one the dispatcher was built from.
func NewDataHub(dispatcher *Dispatcher, profile *config.Profile) *DataHub {
	return &DataHub{
		dispatcher: dispatcher,
		profile:    profile,
		now:        time.Now,
		newSuffix:  uuid.NewString,
	}
}

// UpdateLocation reports the robot's position to the hub. The record id is
// stable per robot, so each report replaces the previous one.
func (h *DataHub) UpdateLocation(ctx context.Context, x, y float64) error {
	const requestName = "set_robot_location"
	rt, ok := h.dispatcher.Catalog().Describe(requestName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRequestType, requestName)
	}

	locationID := h.profile.TeamName + "-" + h.profile.RobotName

	args := make(map[string]any, len(rt.SchemaKeys))
	for _, key := range rt.SchemaKeys {
		args[key] = nil
	}
	args["@id"] = locationID
	args["@type"] = rt.SchemaName
	args["episode"] = h.profile.EpisodeName
	args["team"] = h.profile.TeamName
	args["timestamp"] = h.timestamp()
	args["x"] = x
	args["y"] = y
	args["z"] = 0.0

	_, err := h.dispatcher.Dispatch(ctx, requestName, h.profile.TeamName, args, locationID)
	return err
}

// UpdateStatus reports a status message, optionally with the position it
// was issued from. Every call gets a fresh record id.
func (h *DataHub) UpdateStatus(ctx context.Context, message string, x, y float64) error {
	const requestName = "add_status"
	rt, ok := h.dispatcher.Catalog().Describe(requestName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRequestType, requestName)
	}

	statusID := h.profile.TeamName + "-" + h.profile.RobotName + "-" + h.newSuffix()

	args := make(map[string]any, len(rt.SchemaKeys))
	for _, key := range rt.SchemaKeys {
		args[key] = nil
	}
	args["@id"] = statusID
	args["@type"] = rt.SchemaName
	args["message"] = message
	args["episode"] = h.profile.EpisodeName
	args["team"] = h.profile.TeamName
	args["timestamp"] = h.timestamp()
	args["x"] = x
	args["y"] = y
	args["z"] = 0.0

	_, err := h.dispatcher.Dispatch(ctx, requestName, h.profile.TeamName, args, statusID)
	return err
}

// Goal fetches the open orders and maps them to order id -> item id ->
// requested quantity.
func (h *DataHub) Goal(ctx context.Context) (map[string]map[string]int, error) {
	raw, err := h.dispatcher.Dispatch(ctx, "list_inventory_orders", h.profile.TeamName, nil, "")
	if err != nil {
		return nil, err
	}

	var orders []domain.Order
	if raw != nil {
		if err := json.Unmarshal(raw, &orders); err != nil {
			return nil, fmt.Errorf("decoding orders: %w", err)
		}
	}

	goal := make(map[string]map[string]int, len(orders))
	for _, order := range orders {
		items := make(map[string]int, len(order.Items))
		for _, item := range order.Items {
			items[item.InventoryItemID] = item.Quantity
		}
		goal[order.ID] = items
	}
	return goal, nil
}

// ItemInfo fetches one inventory item. The hub may answer with the bare
// item or with a one-element list wrapping it; both shapes are handled.
func (h *DataHub) ItemInfo(ctx context.Context, itemID string) (domain.InventoryItem, error) {
	raw, err := h.fetchItem(ctx, itemID)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	var item domain.InventoryItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return domain.InventoryItem{}, fmt.Errorf("decoding item %s: %w", itemID, err)
	}
	if item.ID == "" {
		return domain.InventoryItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	return item, nil
}

// LocationOf returns the shelf and slot holding an item.
func (h *DataHub) LocationOf(ctx context.Context, itemID string) (shelf, slot string, err error) {
	item, err := h.ItemInfo(ctx, itemID)
	if err != nil {
		return "", "", err
	}
	return item.Shelf, item.Slot, nil
}

// UpdateAfterPick decrements an item's quantity by one after a successful
// pick. Fetch and write are two separate HTTP calls; a concurrent pick on
// the same item between them can lose an update, as the hub has no
// compare-and-swap.
func (h *DataHub) UpdateAfterPick(ctx context.Context, itemID string) error {
	raw, err := h.fetchItem(ctx, itemID)
	if err != nil {
		return err
	}

	// Work on the raw record so fields the schema does not know about
	// pass through unchanged.
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return fmt.Errorf("decoding item %s: %w", itemID, err)
	}
	quantity, ok := record["quantity"].(float64)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	record["quantity"] = quantity - 1

	_, err = h.dispatcher.Dispatch(ctx, "set_shop", h.profile.TeamName, record, itemID)
	return err
}

// fetchItem dispatches get_shop_info and unwraps the legacy one-element
// list when the hub uses it. An empty list, an empty payload, or a hub-side
// not-found status all surface as ErrItemNotFound.
func (h *DataHub) fetchItem(ctx context.Context, itemID string) (json.RawMessage, error) {
	raw, err := h.dispatcher.Dispatch(ctx, "get_shop_info", h.profile.TeamName, nil, itemID)
	if err != nil {
		var remote *RemoteError
		if errors.As(err, &remote) && (remote.StatusCode == 400 || remote.StatusCode == 404) {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, fmt.Errorf("decoding item %s: %w", itemID, err)
		}
		if len(elems) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}
		return elems[0], nil
	}
	return raw, nil
}

func (h *DataHub) timestamp() string {
	return h.now().UTC().Format(timestampLayout)
}
