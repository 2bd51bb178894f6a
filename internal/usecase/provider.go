package usecase

import (
	"context"

	"github.com/Dawichi/hexastats/internal/domain/account"
	"github.com/Dawichi/hexastats/internal/domain/mastery"
	"github.com/Dawichi/hexastats/internal/domain/rank"
	"github.com/Dawichi/hexastats/internal/domain/region"
)

type QueueType string

const (
	QueueTypeAll    QueueType = "all"
	QueueTypeRanked QueueType = "ranked"
	QueueTypeNormal QueueType = "normal"
)

// MatchIDQuery pages through a player's match history, most recent first.
type MatchIDQuery struct {
	Start int       `json:"start"`
	Count int       `json:"count"`
	Type  QueueType `json:"type"`
}

// RiotProvider fetches upstream resources. Every method returns a typed, contract-checked
// record or an error wrapping ErrNotFound, ErrRateLimited or ErrTransient. Match payloads are
// returned raw so a batch can be validated together.
type RiotProvider interface {
	FetchAccount(ctx context.Context, platform region.Platform, id account.RiotID) (account.Account, error)
	FetchSummoner(ctx context.Context, platform region.Platform, puuid string) (account.Summoner, error)
	FetchMasteries(ctx context.Context, platform region.Platform, puuid string) ([]mastery.Entry, error)
	FetchRankEntries(ctx context.Context, platform region.Platform, summonerID string) ([]rank.Entry, error)
	FetchMatchIDs(ctx context.Context, platform region.Platform, puuid string, query MatchIDQuery) ([]string, error)
	FetchMatch(ctx context.Context, platform region.Platform, matchID string) ([]byte, error)
}

// ContentSource serves the versioned static data used to build the version table.
type ContentSource interface {
	LatestVersion(ctx context.Context) (string, error)
	Champions(ctx context.Context, version string) (map[int]string, error)
}
