package cache

import (
	"context"
	"time"

	"github.com/Dawichi/hexastats/internal/domain/account"
	"github.com/Dawichi/hexastats/internal/domain/mastery"
	"github.com/Dawichi/hexastats/internal/domain/rank"
	"github.com/Dawichi/hexastats/internal/domain/region"
	basecache "github.com/Dawichi/hexastats/internal/platform/cache"
	"github.com/Dawichi/hexastats/internal/usecase"
	"github.com/Dawichi/hexastats/internal/validation"
)

type ProviderTTLs struct {
	Account time.Duration
	Match   time.Duration
}

// RiotProvider caches the upstream resources that never change once they exist: the
// riot id to puuid mapping and finished match payloads. Everything else passes through.
type RiotProvider struct {
	next  usecase.RiotProvider
	cache *basecache.FrontDoor
	ttls  ProviderTTLs
}

func NewRiotProvider(next usecase.RiotProvider, cache *basecache.FrontDoor, ttls ProviderTTLs) *RiotProvider {
	return &RiotProvider{next: next, cache: cache, ttls: ttls}
}

func (p *RiotProvider) FetchAccount(ctx context.Context, platform region.Platform, id account.RiotID) (account.Account, error) {
	if p.ttls.Account <= 0 {
		return p.next.FetchAccount(ctx, platform, id)
	}

	// accounts live on the regional cluster, so every platform of a cluster shares the entry
	key := basecache.Key("account", string(platform.Cluster()), id.CacheKey())
	return basecache.GetOrCompute(ctx, p.cache, key, p.ttls.Account, func(ctx context.Context) (account.Account, error) {
		return p.next.FetchAccount(ctx, platform, id)
	})
}

func (p *RiotProvider) FetchMatch(ctx context.Context, platform region.Platform, matchID string) ([]byte, error) {
	if p.ttls.Match <= 0 {
		return p.next.FetchMatch(ctx, platform, matchID)
	}

	// only payloads that honour the match contract are stored; a rejected body is refetched
	key := basecache.Key("match", string(platform.Cluster()), matchID)
	return p.cache.GetOrComputeBytes(ctx, key, p.ttls.Match, func(ctx context.Context) ([]byte, error) {
		body, err := p.next.FetchMatch(ctx, platform, matchID)
		if err != nil {
			return nil, err
		}
		if _, err := validation.Validate(validation.KindMatch, body); err != nil {
			return nil, err
		}
		return body, nil
	})
}

func (p *RiotProvider) FetchSummoner(ctx context.Context, platform region.Platform, puuid string) (account.Summoner, error) {
	return p.next.FetchSummoner(ctx, platform, puuid)
}

func (p *RiotProvider) FetchMasteries(ctx context.Context, platform region.Platform, puuid string) ([]mastery.Entry, error) {
	return p.next.FetchMasteries(ctx, platform, puuid)
}

func (p *RiotProvider) FetchRankEntries(ctx context.Context, platform region.Platform, summonerID string) ([]rank.Entry, error) {
	return p.next.FetchRankEntries(ctx, platform, summonerID)
}

func (p *RiotProvider) FetchMatchIDs(
	ctx context.Context,
	platform region.Platform,
	puuid string,
	query usecase.MatchIDQuery,
) ([]string, error) {
	return p.next.FetchMatchIDs(ctx, platform, puuid, query)
}

var _ usecase.RiotProvider = (*RiotProvider)(nil)
