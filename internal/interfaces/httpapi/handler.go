package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Dawichi/hexastats/internal/domain/match"
	"github.com/Dawichi/hexastats/internal/platform/logging"
	"github.com/Dawichi/hexastats/internal/usecase"
)

type Handler struct {
	summonerService *usecase.SummonerService
	matchService    *usecase.MatchService
	championService *usecase.ChampionService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	summonerService *usecase.SummonerService,
	matchService *usecase.MatchService,
	championService *usecase.ChampionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		summonerService: summonerService,
		matchService:    matchService,
		championService: championService,
		logger:          logger,
		validator:       newValidator(),
	}
}

type gameOutcomeDTO struct {
	MatchID string        `json:"matchId"`
	Game    *match.Game   `json:"game,omitempty"`
	Error   *gameErrorDTO `json:"error,omitempty"`
}

type gameErrorDTO struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVersion")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.championService.Version())
}

func (h *Handler) SearchChampions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchChampions")
	defer span.End()

	limit, err := queryInt(r.URL.Query().Get("limit"), "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	params := championSearchParams{Query: strings.TrimSpace(r.URL.Query().Get("q")), Limit: limit}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.championService.Search(ctx, params.Query, params.Limit))
}

func (h *Handler) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerProfile")
	defer span.End()

	params := playerParamsFrom(r)
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}
	refresh, err := queryBool(r.URL.Query().Get("refresh"), "refresh")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.summonerService.Profile(ctx, params.Server, params.Name, params.Tag, refresh)
	if err != nil {
		h.logger.WarnContext(ctx, "get player profile failed", "server", params.Server, "name", params.Name, "tag", params.Tag, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profile)
}

func (h *Handler) ListPlayerMasteries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerMasteries")
	defer span.End()

	params := playerParamsFrom(r)
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r.URL.Query().Get("limit"), "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	views, err := h.summonerService.Masteries(ctx, params.Server, params.Name, params.Tag, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list player masteries failed", "server", params.Server, "name", params.Name, "tag", params.Tag, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, views)
}

func (h *Handler) GetPlayerOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerOverview")
	defer span.End()

	params := playerParamsFrom(r)
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r.URL.Query().Get("limit"), "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	overview, err := h.summonerService.Overview(ctx, params.Server, params.Name, params.Tag, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get player overview failed", "server", params.Server, "name", params.Name, "tag", params.Tag, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overview)
}

func (h *Handler) ListMatchIDs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchIDs")
	defer span.End()

	summoner, history, ok := h.historyRequest(w, r)
	if !ok {
		return
	}

	ids, err := h.matchService.MatchIDs(ctx, summoner.Server, summoner.PUUID, history.query())
	if err != nil {
		h.logger.WarnContext(ctx, "list match ids failed", "server", summoner.Server, "puuid", summoner.PUUID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ids)
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	summoner, history, ok := h.historyRequest(w, r)
	if !ok {
		return
	}

	outcomes, err := h.matchService.Games(ctx, summoner.Server, summoner.PUUID, history.query())
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "server", summoner.Server, "puuid", summoner.PUUID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameOutcomeDTO, 0, len(outcomes))
	for _, outcome := range outcomes {
		items = append(items, gameOutcomeToDTO(outcome))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStats")
	defer span.End()

	summoner, history, ok := h.historyRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.matchService.Stats(ctx, summoner.Server, summoner.PUUID, history.query(), history.ChampsLimit)
	if err != nil {
		h.logger.WarnContext(ctx, "get stats failed", "server", summoner.Server, "puuid", summoner.PUUID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) GetIsLastGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetIsLastGame")
	defer span.End()

	summoner := summonerParamsFrom(r)
	if err := h.validateRequest(ctx, summoner); err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID := strings.TrimSpace(r.PathValue("matchID"))

	last, err := h.matchService.IsLastGame(ctx, summoner.Server, summoner.PUUID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "is last game failed", "server", summoner.Server, "puuid", summoner.PUUID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, last)
}

func (h *Handler) GetGameDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameDetail")
	defer span.End()

	params := matchParams{
		Server:  strings.TrimSpace(r.PathValue("server")),
		MatchID: strings.TrimSpace(r.PathValue("matchID")),
		PUUID:   strings.TrimSpace(r.URL.Query().Get("puuid")),
	}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.matchService.GameDetail(ctx, params.Server, params.MatchID, params.PUUID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game detail failed", "server", params.Server, "match_id", params.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detail)
}

// historyRequest parses and validates the path and query shared by the match history routes.
// It writes the error response itself and reports ok=false when the request is rejected.
func (h *Handler) historyRequest(w http.ResponseWriter, r *http.Request) (summonerParams, historyParams, bool) {
	ctx := r.Context()

	summoner := summonerParamsFrom(r)
	if err := h.validateRequest(ctx, summoner); err != nil {
		writeError(ctx, w, err)
		return summonerParams{}, historyParams{}, false
	}
	history, err := historyParamsFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return summonerParams{}, historyParams{}, false
	}
	if err := h.validateRequest(ctx, history); err != nil {
		writeError(ctx, w, err)
		return summonerParams{}, historyParams{}, false
	}
	return summoner, history, true
}

func gameOutcomeToDTO(outcome usecase.GameOutcome) gameOutcomeDTO {
	if outcome.Err != nil {
		return gameOutcomeDTO{
			MatchID: outcome.MatchID,
			Error: &gameErrorDTO{
				Reason:  mapError(outcome.Err).Reason,
				Message: outcome.Err.Error(),
			},
		}
	}
	return gameOutcomeDTO{MatchID: outcome.MatchID, Game: outcome.Game}
}
