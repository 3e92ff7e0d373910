package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"wms-backend/internal/services"
	"wms-backend/pkg/utils"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.Write(data)
}

func (h *ReportHandler) Occupancy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	data, err := h.reports.OccupancyCSV(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to build occupancy report")
		return
	}
	writeCSV(w, services.ReportFilename("occupancy", id), data)
}

func (h *ReportHandler) SectionInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	data, err := h.reports.SectionInventoryCSV(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to build inventory report")
		return
	}
	writeCSV(w, services.ReportFilename("section-inventory", id), data)
}

func (h *ReportHandler) Arrivals(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	data, err := h.reports.ArrivalsCSV(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to build arrivals report")
		return
	}
	writeCSV(w, services.ReportFilename("arrivals", 0), data)
}
