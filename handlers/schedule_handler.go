package handlers

import (
	"net/http"

	"github.com/Dosada05/doubles-tournament/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(ss services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: ss}
}

// Regenerate godoc
// @Summary Сгенерировать расписание
// @Description Круговая система, даты по вместимости дней недели. Все существующие матчи турнира заменяются.
// @Tags schedule
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param schedule body services.GenerateScheduleInput true "start_date и matches_per_day (ключи 0..6, 0 = воскресенье)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Некорректная вместимость или дата"
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string "Меньше двух команд или нет свободного дня"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/schedule [post]
func (h *ScheduleHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.scheduleService.Regenerate(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
