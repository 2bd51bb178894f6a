package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/version", handler.GetVersion)
	mux.HandleFunc("GET /v1/champions", handler.SearchChampions)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players/{server}/{name}/{tag}", handler.GetPlayerProfile)
	mux.HandleFunc("GET /v1/players/{server}/{name}/{tag}/masteries", handler.ListPlayerMasteries)
	mux.HandleFunc("GET /v1/players/{server}/{name}/{tag}/overview", handler.GetPlayerOverview)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/summoners/{server}/{puuid}/matches", handler.ListMatchIDs)
	mux.HandleFunc("GET /v1/summoners/{server}/{puuid}/games", handler.ListGames)
	mux.HandleFunc("GET /v1/summoners/{server}/{puuid}/stats", handler.GetStats)
	mux.HandleFunc("GET /v1/summoners/{server}/{puuid}/last/{matchID}", handler.GetIsLastGame)
	mux.HandleFunc("GET /v1/matches/{server}/{matchID}", handler.GetGameDetail)
}
