// Package handler exposes the hub's REST surface. Resource paths are
// team-scoped; the team segment partitions URLs only, all teams share one
// store.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/b-it-bots/datahub/internal/core/domain"
	"github.com/b-it-bots/datahub/internal/port"
)

type HTTPHandler struct {
	store     port.InventoryStore
	orders    port.OrderSource
	telemetry port.TelemetryStore
	logger    *zap.Logger
}

type messageResponse struct {
	Message string `json:"message"`
}

func NewHTTPHandler(store port.InventoryStore, orders port.OrderSource, telemetry port.TelemetryStore, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		store:     store,
		orders:    orders,
		telemetry: telemetry,
		logger:    logger,
	}
}

// ListItems handles GET /{team}/inventory-item.
func (h *HTTPHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListItems(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetItem handles GET /{team}/inventory-item/{itemID}. A missing item is a
// 400, which the original hub used instead of 404 on this route.
func (h *HTTPHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	item, err := h.store.GetItem(r.Context(), itemID)
	if errors.Is(err, port.ErrNotFound) {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "item not found"})
		return
	}
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// PutItem handles PUT /{team}/inventory-item/{itemID}: full replace, or
// create when absent.
func (h *HTTPHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var item domain.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
		return
	}

	stored, created, err := h.store.UpsertItem(r.Context(), itemID, item)
	if err != nil {
		h.storeError(w, err)
		return
	}
	if created {
		writeJSON(w, http.StatusCreated, stored)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostItem handles POST /{team}/inventory-item/{itemID}: update-only, 404
// when the item does not exist.
func (h *HTTPHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var item domain.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
		return
	}

	if _, err := h.store.PatchItem(r.Context(), itemID, item); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse{Message: "item not found"})
			return
		}
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrders handles GET /{team}/inventory-order.
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// PutLocation handles PUT /{team}/robot-location/{locationID}.
func (h *HTTPHandler) PutLocation(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	var loc domain.RobotLocation
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
		return
	}

	created, err := h.telemetry.PutLocation(r.Context(), locationID, loc)
	if err != nil {
		h.storeError(w, err)
		return
	}
	if created {
		writeJSON(w, http.StatusCreated, loc)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostStatus handles POST /{team}/robot-status/{statusID}.
func (h *HTTPHandler) PostStatus(w http.ResponseWriter, r *http.Request) {
	statusID := chi.URLParam(r, "statusID")

	var status domain.RobotStatus
	if err := json.NewDecoder(r.Body).Decode(&status); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
		return
	}
	status.ID = statusID

	if err := h.telemetry.AppendStatus(r.Context(), status); err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, status)
}

// HealthCheck handles GET /health.
func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, port.ErrStoreUninitialized) {
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
		return
	}
	h.logger.Error("store operation failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
