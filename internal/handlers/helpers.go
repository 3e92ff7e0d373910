package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"wms-backend/internal/models"
	"wms-backend/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
)

// pathID extracts a numeric path variable; writes a 400 and returns false on
// garbage input.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// writeServiceError maps domain errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, models.ErrSectionNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrCapacityExceeded),
		errors.Is(err, models.ErrSectionBlocked),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrStageMismatch):
		utils.Error(w, http.StatusConflict, err.Error())
	default:
		utils.Error(w, http.StatusBadRequest, err.Error())
	}
}
