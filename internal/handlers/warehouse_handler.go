package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wms-backend/internal/models"
	"wms-backend/internal/services"
	"wms-backend/pkg/utils"
)

type WarehouseHandler struct {
	warehouses *services.WarehouseService
	ledger     *services.SectionLedgerService
}

func NewWarehouseHandler(warehouses *services.WarehouseService, ledger *services.SectionLedgerService) *WarehouseHandler {
	return &WarehouseHandler{warehouses: warehouses, ledger: ledger}
}

func (h *WarehouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWarehouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	wh, err := h.warehouses.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, wh)
}

func (h *WarehouseHandler) List(w http.ResponseWriter, r *http.Request) {
	if clientParam := r.URL.Query().Get("client_id"); clientParam != "" {
		clientID, err := strconv.Atoi(clientParam)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid client_id")
			return
		}
		list, err := h.warehouses.ListByClient(r.Context(), clientID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "failed to list warehouses")
			return
		}
		utils.JSON(w, http.StatusOK, list)
		return
	}

	list, err := h.warehouses.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list warehouses")
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *WarehouseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	wh, err := h.warehouses.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, wh)
}

func (h *WarehouseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.warehouses.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *WarehouseHandler) CreateLayout(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	layout, err := h.warehouses.CreateLayout(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, layout)
}

func (h *WarehouseHandler) ListLayouts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	layouts, err := h.warehouses.ListLayouts(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list layouts")
		return
	}
	utils.JSON(w, http.StatusOK, layouts)
}

func (h *WarehouseHandler) DeleteLayout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.warehouses.DeleteLayout(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *WarehouseHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	section, err := h.warehouses.CreateSection(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, section)
}

func (h *WarehouseHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	section, err := h.warehouses.GetSection(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, section)
}

func (h *WarehouseHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.UpdateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	section, err := h.warehouses.UpdateSection(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, section)
}

func (h *WarehouseHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.warehouses.DeleteSection(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SectionInventory lists the stock currently placed in a section.
func (h *WarehouseHandler) SectionInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rows, err := h.warehouses.SectionInventory(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to load section inventory")
		return
	}
	utils.JSON(w, http.StatusOK, rows)
}

// SectionUsage reports how much of a section's capacity is taken.
func (h *WarehouseHandler) SectionUsage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	usage, err := h.ledger.GetUsage(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, usage)
}

type capacityAdjustRequest struct {
	Quantity int `json:"quantity"`
}

// ReserveCapacity claims capacity in a section ahead of a manual placement.
func (h *WarehouseHandler) ReserveCapacity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req capacityAdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	usage, err := h.ledger.Reserve(r.Context(), id, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int{"current_usage": usage})
}

// ReleaseCapacity returns previously claimed capacity to a section.
func (h *WarehouseHandler) ReleaseCapacity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req capacityAdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	usage, err := h.ledger.Release(r.Context(), id, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int{"current_usage": usage})
}

// OccupancyStats serves the dashboard aggregate.
func (h *WarehouseHandler) OccupancyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.warehouses.OccupancyStats(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to compute occupancy")
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

// LayoutOccupancy serves one layout's section grid.
func (h *WarehouseHandler) LayoutOccupancy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sections, err := h.warehouses.LayoutOccupancy(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to load layout occupancy")
		return
	}
	utils.JSON(w, http.StatusOK, sections)
}
