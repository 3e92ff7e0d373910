package handlers

import (
	"encoding/json"
	"net/http"

	"wms-backend/internal/models"
	"wms-backend/internal/services"
	"wms-backend/pkg/utils"
)

type DeliveryHandler struct {
	deliveries *services.DeliveryService
}

func NewDeliveryHandler(deliveries *services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries}
}

func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := h.deliveries.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, d)
}

func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.deliveries.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list deliveries")
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.deliveries.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, d)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.deliveries.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

type positionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdatePosition is called by the driver app; watchers get the update over
// the delivery WebSocket.
func (h *DeliveryHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.deliveries.UpdatePosition(r.Context(), id, req.Lat, req.Lng); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DeliveryHandler) UpdateStopStatus(w http.ResponseWriter, r *http.Request) {
	stopID, ok := pathID(w, r, "stopID")
	if !ok {
		return
	}
	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.deliveries.UpdateStopStatus(r.Context(), stopID, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
