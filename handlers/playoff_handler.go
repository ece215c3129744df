package handlers

import (
	"net/http"

	"github.com/Dosada05/doubles-tournament/services"
)

type PlayoffHandler struct {
	playoffService services.PlayoffService
}

func NewPlayoffHandler(ps services.PlayoffService) *PlayoffHandler {
	return &PlayoffHandler{playoffService: ps}
}

// SeedSemifinals godoc
// @Summary Посеять полуфиналы
// @Description 1 против 4, 2 против 3 по текущей таблице. Существующие матчи плей-офф удаляются.
// @Tags playoffs
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param body body services.SeedPlayoffInput true "Дата полуфиналов"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string "Меньше четырёх команд"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/playoffs/semifinals [post]
func (h *PlayoffHandler) SeedSemifinals(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SeedPlayoffInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.playoffService.SeedSemifinals(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SeedFinal godoc
// @Summary Посеять финал
// @Tags playoffs
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param body body services.SeedPlayoffInput true "Дата финала"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string "Полуфинал без победителя"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/playoffs/final [post]
func (h *PlayoffHandler) SeedFinal(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SeedPlayoffInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.playoffService.SeedFinal(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
