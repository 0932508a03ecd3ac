package domain

// InventoryItem is a single stocked item in the hub. The JSON shape matches
// the hub wire format: `@`-prefixed identity keys, everything string-typed
// except quantity.
type InventoryItem struct {
	ID          string `json:"@id"`
	Type        string `json:"@type"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Shelf       string `json:"shelf"`
	Slot        string `json:"slot"`
	Quantity    int    `json:"quantity"`
	Timestamp   string `json:"timestamp"`
}
