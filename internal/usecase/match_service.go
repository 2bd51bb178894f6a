package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/Dawichi/hexastats/internal/domain/match"
	"github.com/Dawichi/hexastats/internal/domain/region"
	"github.com/Dawichi/hexastats/internal/platform/cache"
	"github.com/Dawichi/hexastats/internal/platform/logging"
	"github.com/Dawichi/hexastats/internal/validation"
)

const (
	defaultGamesLimit    = 10
	defaultGamesMaxLimit = 20
	defaultFetchWorkers  = 10
)

type MatchServiceConfig struct {
	DefaultCount int
	MaxCount     int
	MatchIDsTTL  time.Duration
	// FetchWorkers bounds the concurrent match fetches of one batch.
	FetchWorkers int
}

// GameOutcome is one entry of a batch: a normalized game or the reason that match failed.
type GameOutcome struct {
	MatchID string
	Game    *match.Game
	Err     error
}

type LastGame struct {
	IsLast     bool   `json:"isLast"`
	LastGameID string `json:"lastGameId"`
}

// Stats is the summary of a batch. Failed counts the matches that could not be normalized.
type Stats struct {
	match.Summary
	Failed int `json:"failed"`
}

type MatchService struct {
	provider   RiotProvider
	cache      *cache.FrontDoor
	normalizer *match.Normalizer
	cfg        MatchServiceConfig
	logger     *logging.Logger
}

func NewMatchService(
	provider RiotProvider,
	frontDoor *cache.FrontDoor,
	normalizer *match.Normalizer,
	cfg MatchServiceConfig,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = defaultGamesMaxLimit
	}
	if cfg.DefaultCount <= 0 || cfg.DefaultCount > cfg.MaxCount {
		cfg.DefaultCount = min(defaultGamesLimit, cfg.MaxCount)
	}
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = defaultFetchWorkers
	}
	return &MatchService{
		provider:   provider,
		cache:      frontDoor,
		normalizer: normalizer,
		cfg:        cfg,
		logger:     logger,
	}
}

// NormalizeQuery applies the defaults and bounds: count in [1, MaxCount], start >= 0,
// empty type means all.
func (s *MatchService) NormalizeQuery(query MatchIDQuery) (MatchIDQuery, error) {
	if query.Start < 0 {
		return MatchIDQuery{}, fmt.Errorf("%w: start must be >= 0", ErrInvalidInput)
	}
	switch {
	case query.Count == 0:
		query.Count = s.cfg.DefaultCount
	case query.Count < 1:
		query.Count = 1
	case query.Count > s.cfg.MaxCount:
		query.Count = s.cfg.MaxCount
	}

	query.Type = QueueType(strings.ToLower(strings.TrimSpace(string(query.Type))))
	switch query.Type {
	case "":
		query.Type = QueueTypeAll
	case QueueTypeAll, QueueTypeRanked, QueueTypeNormal:
	default:
		return MatchIDQuery{}, fmt.Errorf("%w: unknown queue type %q", ErrInvalidInput, query.Type)
	}
	return query, nil
}

func (s *MatchService) MatchIDs(ctx context.Context, server, puuid string, query MatchIDQuery) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.MatchIDs")
	defer span.End()

	platform, puuid, query, err := s.parseHistoryRequest(server, puuid, query)
	if err != nil {
		return nil, err
	}
	return s.matchIDs(ctx, platform, puuid, query)
}

// Games fetches the page of matches concurrently, validates the whole batch and normalizes
// each match for puuid. A failed fetch or an invalid payload fails the batch; a match that
// cannot be normalized only fails its own entry. Output order follows the match ids.
func (s *MatchService) Games(ctx context.Context, server, puuid string, query MatchIDQuery) ([]GameOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Games")
	defer span.End()

	platform, puuid, query, err := s.parseHistoryRequest(server, puuid, query)
	if err != nil {
		return nil, err
	}
	ids, err := s.matchIDs(ctx, platform, puuid, query)
	if err != nil {
		return nil, err
	}
	return s.games(ctx, platform, puuid, ids)
}

func (s *MatchService) GameDetail(ctx context.Context, server, matchID, puuid string) (match.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GameDetail")
	defer span.End()

	platform, err := parsePlatform(server)
	if err != nil {
		return match.Detail{}, err
	}
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Detail{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	payload, err := s.provider.FetchMatch(ctx, platform, matchID)
	if err != nil {
		return match.Detail{}, fmt.Errorf("fetch match %s: %w", matchID, err)
	}
	raw, err := validation.Decode[match.Raw](validation.KindMatch, payload)
	if err != nil {
		s.logger.WarnContext(ctx, "match payload failed validation", "match_id", matchID, "error", err)
		return match.Detail{}, fmt.Errorf("validate match %s: %w", matchID, err)
	}

	detail, err := s.normalizer.Detail(&raw, strings.TrimSpace(puuid))
	if err != nil {
		logConfigurationGap(ctx, s.logger, err)
		return match.Detail{}, err
	}
	return detail, nil
}

// IsLastGame compares matchID with the most recent match of puuid. It always asks upstream.
func (s *MatchService) IsLastGame(ctx context.Context, server, puuid, matchID string) (LastGame, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.IsLastGame")
	defer span.End()

	platform, err := parsePlatform(server)
	if err != nil {
		return LastGame{}, err
	}
	puuid = strings.TrimSpace(puuid)
	if puuid == "" {
		return LastGame{}, fmt.Errorf("%w: puuid is required", ErrInvalidInput)
	}

	ids, err := s.provider.FetchMatchIDs(ctx, platform, puuid, MatchIDQuery{Start: 0, Count: 1, Type: QueueTypeAll})
	if err != nil {
		return LastGame{}, fmt.Errorf("fetch last match id: %w", err)
	}
	if len(ids) == 0 {
		return LastGame{}, nil
	}
	return LastGame{IsLast: ids[0] == strings.TrimSpace(matchID), LastGameID: ids[0]}, nil
}

// Stats summarizes the page of games. Matches that fail to normalize are skipped and counted.
func (s *MatchService) Stats(ctx context.Context, server, puuid string, query MatchIDQuery, champsLimit int) (Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Stats")
	defer span.End()

	outcomes, err := s.Games(ctx, server, puuid, query)
	if err != nil {
		return Stats{}, err
	}

	games := make([]match.Game, 0, len(outcomes))
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			continue
		}
		games = append(games, *o.Game)
	}
	return Stats{
		Summary: match.Summarize(games, strings.TrimSpace(puuid), champsLimit),
		Failed:  failed,
	}, nil
}

func (s *MatchService) parseHistoryRequest(server, puuid string, query MatchIDQuery) (region.Platform, string, MatchIDQuery, error) {
	platform, err := parsePlatform(server)
	if err != nil {
		return "", "", MatchIDQuery{}, err
	}
	puuid = strings.TrimSpace(puuid)
	if puuid == "" {
		return "", "", MatchIDQuery{}, fmt.Errorf("%w: puuid is required", ErrInvalidInput)
	}
	query, err = s.NormalizeQuery(query)
	if err != nil {
		return "", "", MatchIDQuery{}, err
	}
	return platform, puuid, query, nil
}

func (s *MatchService) matchIDs(ctx context.Context, platform region.Platform, puuid string, query MatchIDQuery) ([]string, error) {
	key := cache.Key("match-ids", platform.String(), puuid, strconv.Itoa(query.Start), strconv.Itoa(query.Count), string(query.Type))
	ids, err := cache.GetOrCompute(ctx, s.cache, key, s.cfg.MatchIDsTTL, func(ctx context.Context) ([]string, error) {
		return s.provider.FetchMatchIDs(ctx, platform, puuid, query)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch match ids: %w", err)
	}
	return ids, nil
}

func (s *MatchService) games(ctx context.Context, platform region.Platform, puuid string, ids []string) ([]GameOutcome, error) {
	mapper := iter.Mapper[string, []byte]{MaxGoroutines: s.cfg.FetchWorkers}
	payloads, err := mapper.MapErr(ids, func(id *string) ([]byte, error) {
		payload, err := s.provider.FetchMatch(ctx, platform, *id)
		if err != nil {
			return nil, fmt.Errorf("fetch match %s: %w", *id, err)
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	raws, err := validation.DecodeEach[match.Raw](validation.KindMatch, payloads)
	if err != nil {
		s.logger.WarnContext(ctx, "match batch failed validation", "matches", len(ids), "error", err)
		return nil, fmt.Errorf("validate match batch: %w", err)
	}

	out := make([]GameOutcome, len(raws))
	for i := range raws {
		out[i].MatchID = ids[i]
		game, err := s.normalizer.Game(&raws[i], puuid)
		if err != nil {
			if errors.Is(err, match.ErrMalformedMatch) {
				s.logger.WarnContext(ctx, "skipping malformed match", "match_id", ids[i], "error", err)
			}
			logConfigurationGap(ctx, s.logger, err)
			out[i].Err = err
			continue
		}
		out[i].Game = &game
	}
	return out, nil
}
