package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wms-backend/internal/middleware"
	"wms-backend/internal/models"
	"wms-backend/internal/services"
	"wms-backend/internal/storage"
	"wms-backend/pkg/utils"
)

// ArrivalHandler serves the intake workflow: registration, unloading,
// quality checks, and putaway.
type ArrivalHandler struct {
	workflow *services.PutawayWorkflowService
	arrivals *services.TruckArrivalService
	storage  *storage.Client
}

func NewArrivalHandler(workflow *services.PutawayWorkflowService, arrivals *services.TruckArrivalService, storage *storage.Client) *ArrivalHandler {
	return &ArrivalHandler{workflow: workflow, arrivals: arrivals, storage: storage}
}

func (h *ArrivalHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	var req models.CreateTruckArrivalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	arrival, err := h.workflow.RegisterArrival(r.Context(), &req, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, arrival)
}

func (h *ArrivalHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	arrivals, err := h.arrivals.List(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list arrivals")
		return
	}
	utils.JSON(w, http.StatusOK, arrivals)
}

func (h *ArrivalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	arrival, err := h.arrivals.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, arrival)
}

// Timeline returns the event history for an arrival.
func (h *ArrivalHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	events, err := h.arrivals.Timeline(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to load timeline")
		return
	}
	utils.JSON(w, http.StatusOK, events)
}

// Session returns the persisted workflow stage so a reloaded client resumes.
func (h *ArrivalHandler) Session(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	session, err := h.workflow.GetSession(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, session)
}

func (h *ArrivalHandler) ActiveSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.workflow.ListActiveSessions(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	utils.JSON(w, http.StatusOK, sessions)
}

func (h *ArrivalHandler) StartUnloading(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.workflow.StartUnloading(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"stage": models.StageUnloading})
}

func (h *ArrivalHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.CreateTruckItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := h.workflow.AddItem(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, item)
}

func (h *ArrivalHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.workflow.ListItems(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	utils.JSON(w, http.StatusOK, items)
}

func (h *ArrivalHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	if err := h.workflow.RemoveItem(r.Context(), id, itemID); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *ArrivalHandler) CompleteUnloading(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.workflow.CompleteUnloading(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"stage": models.StageQualityCheck})
}

func (h *ArrivalHandler) SubmitQualityChecks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	var req models.SubmitQualityChecksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.workflow.CompleteQualityCheck(r.Context(), id, &req, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"stage": models.StagePutaway})
}

func (h *ArrivalHandler) ListQualityChecks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	checks, err := h.workflow.ListChecks(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list quality checks")
		return
	}
	utils.JSON(w, http.StatusOK, checks)
}

// DamagePhotoUploadURL hands the client a presigned PUT URL for one damage
// photo taken during quality check.
func (h *ArrivalHandler) DamagePhotoUploadURL(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	contentType := r.URL.Query().Get("content_type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	uploadURL, objectURL, err := h.storage.PresignDamagePhoto(r.Context(), id, itemID, contentType)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{
		"upload_url": uploadURL,
		"object_url": objectURL,
	})
}

func (h *ArrivalHandler) CompletePutaway(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	var req models.PutawayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.workflow.CompletePutaway(r.Context(), id, req.Assignments, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"stage": models.StageComplete})
}
