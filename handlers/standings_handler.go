package handlers

import (
	"net/http"

	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// GetStandings godoc
// @Summary Турнирная таблица
// @Description По умолчанию учитываются все матчи турнира. Порядок: очки, разница, забитые, пропущенные.
// @Tags standings
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param type query string false "ROUNDROBIN, SEMIFINAL, FINAL или список через запятую; пусто = все"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/standings [get]
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var types []models.MatchType
	if raw := r.URL.Query().Get("type"); raw != "" {
		if types, err = parseMatchTypes(raw); err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
	}

	table, err := h.standingsService.Standings(r.Context(), tournamentID, types)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
