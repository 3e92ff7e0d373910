package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wms-backend/internal/models"
	"wms-backend/internal/services"
	"wms-backend/pkg/utils"
)

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.products.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if clientParam := r.URL.Query().Get("client_id"); clientParam != "" {
		clientID, err := strconv.Atoi(clientParam)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid client_id")
			return
		}
		list, err := h.products.ListByClient(r.Context(), clientID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "failed to list products")
			return
		}
		utils.JSON(w, http.StatusOK, list)
		return
	}

	list, err := h.products.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.products.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MoveToSection places unallocated stock into a section.
func (h *ProductHandler) MoveToSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.MoveStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.products.MoveToSection(r.Context(), id, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "moved"})
}

// Transfer moves placed stock between sections.
func (h *ProductHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.products.Transfer(r.Context(), &req); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "transferred"})
}

// Placements lists which sections hold a product's stock.
func (h *ProductHandler) Placements(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rows, err := h.products.Placements(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to load placements")
		return
	}
	utils.JSON(w, http.StatusOK, rows)
}
