package handlers

import (
	"net/http"

	"github.com/Dosada05/doubles-tournament/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(es services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: es}
}

// Export godoc
// @Summary Выгрузить турнир в Excel
// @Description Книга с расписанием, таблицей и листом на каждую команду загружается в R2.
// @Tags export
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 201 {object} storage.UploadResult
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/export [post]
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.exportService.Export(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
