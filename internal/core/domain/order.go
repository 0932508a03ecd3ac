package domain

// Order is a pick/fulfillment order served by the hub. Orders are sourced
// from the seed file and are read-only: nothing in this repository mutates
// them.
type Order struct {
	ID    string      `json:"@id"`
	Items []OrderItem `json:"items"`
}

// OrderItem references an inventory item and the quantity requested of it.
type OrderItem struct {
	InventoryItemID string `json:"inventory-item-id"`
	Quantity        int    `json:"quantity"`
}
