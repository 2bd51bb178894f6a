package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/Dawichi/hexastats/internal/domain/account"
	"github.com/Dawichi/hexastats/internal/domain/catalog"
	"github.com/Dawichi/hexastats/internal/domain/mastery"
	"github.com/Dawichi/hexastats/internal/domain/rank"
	"github.com/Dawichi/hexastats/internal/domain/region"
	"github.com/Dawichi/hexastats/internal/platform/cache"
	"github.com/Dawichi/hexastats/internal/platform/logging"
)

const defaultMasteriesLimit = 24

type SummonerServiceConfig struct {
	ProfileTTL            time.Duration
	MasteriesDefaultLimit int
}

// Profile is the basic info of a player with the three reconciled ranked slots.
type Profile struct {
	account.BasicInfo
	Ranks rank.Reconciled `json:"ranks"`
}

// Overview is a profile plus the mastery list, fetched in one call.
type Overview struct {
	Profile
	Masteries []mastery.View `json:"masteries"`
}

type SummonerService struct {
	provider RiotProvider
	cache    *cache.FrontDoor
	table    *catalog.VersionTable
	assets   catalog.Assets
	cfg      SummonerServiceConfig
	logger   *logging.Logger
}

func NewSummonerService(
	provider RiotProvider,
	frontDoor *cache.FrontDoor,
	table *catalog.VersionTable,
	static *catalog.Static,
	cfg SummonerServiceConfig,
	logger *logging.Logger,
) *SummonerService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MasteriesDefaultLimit <= 0 {
		cfg.MasteriesDefaultLimit = defaultMasteriesLimit
	}
	return &SummonerService{
		provider: provider,
		cache:    frontDoor,
		table:    table,
		assets:   catalog.NewAssets(table, static),
		cfg:      cfg,
		logger:   logger,
	}
}

// BasicInfo resolves a riot id to its summoner profile on server.
func (s *SummonerService) BasicInfo(ctx context.Context, server, name, tag string) (account.BasicInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SummonerService.BasicInfo")
	defer span.End()

	platform, id, err := parsePlayer(server, name, tag)
	if err != nil {
		return account.BasicInfo{}, err
	}
	return s.basicInfo(ctx, platform, id)
}

// Profile is served from the cache while younger than the profile TTL. refresh drops the
// cached entry first.
func (s *SummonerService) Profile(ctx context.Context, server, name, tag string, refresh bool) (Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SummonerService.Profile")
	defer span.End()

	platform, id, err := parsePlayer(server, name, tag)
	if err != nil {
		return Profile{}, err
	}

	key := cache.Key("profile", platform.String(), id.CacheKey())
	if refresh {
		if err := s.cache.Invalidate(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "invalidate cached profile failed", "key", key, "error", err)
		}
	}

	return cache.GetOrCompute(ctx, s.cache, key, s.cfg.ProfileTTL, func(ctx context.Context) (Profile, error) {
		info, err := s.basicInfo(ctx, platform, id)
		if err != nil {
			return Profile{}, err
		}
		ranks, err := s.ranks(ctx, platform, info.ID)
		if err != nil {
			return Profile{}, err
		}
		return Profile{BasicInfo: info, Ranks: ranks}, nil
	})
}

// Masteries returns the top limit champions ordered by points ascending.
func (s *SummonerService) Masteries(ctx context.Context, server, name, tag string, limit int) ([]mastery.View, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SummonerService.Masteries")
	defer span.End()

	platform, id, err := parsePlayer(server, name, tag)
	if err != nil {
		return nil, err
	}
	acct, err := s.provider.FetchAccount(ctx, platform, id)
	if err != nil {
		return nil, fmt.Errorf("fetch account %s: %w", id, err)
	}
	return s.masteries(ctx, platform, acct.PUUID, limit)
}

// Overview fetches ranks and masteries side by side once the summoner is known.
func (s *SummonerService) Overview(ctx context.Context, server, name, tag string, limit int) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SummonerService.Overview")
	defer span.End()

	platform, id, err := parsePlayer(server, name, tag)
	if err != nil {
		return Overview{}, err
	}
	info, err := s.basicInfo(ctx, platform, id)
	if err != nil {
		return Overview{}, err
	}

	var (
		ranks     rank.Reconciled
		masteries []mastery.View
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		ranks, err = s.ranks(ctx, platform, info.ID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		masteries, err = s.masteries(ctx, platform, info.PUUID, limit)
		return err
	})
	if err := p.Wait(); err != nil {
		return Overview{}, err
	}

	return Overview{
		Profile:   Profile{BasicInfo: info, Ranks: ranks},
		Masteries: masteries,
	}, nil
}

func (s *SummonerService) basicInfo(ctx context.Context, platform region.Platform, id account.RiotID) (account.BasicInfo, error) {
	acct, err := s.provider.FetchAccount(ctx, platform, id)
	if err != nil {
		return account.BasicInfo{}, fmt.Errorf("fetch account %s: %w", id, err)
	}
	summoner, err := s.provider.FetchSummoner(ctx, platform, acct.PUUID)
	if err != nil {
		return account.BasicInfo{}, fmt.Errorf("fetch summoner %s: %w", acct.PUUID, err)
	}

	return account.BasicInfo{
		Summoner:    summoner,
		Server:      platform.String(),
		RiotIDName:  acct.GameName,
		RiotIDTag:   acct.TagLine,
		ProfileIcon: s.assets.ProfileIcon(summoner.ProfileIconID),
	}, nil
}

func (s *SummonerService) ranks(ctx context.Context, platform region.Platform, summonerID string) (rank.Reconciled, error) {
	entries, err := s.provider.FetchRankEntries(ctx, platform, summonerID)
	if err != nil {
		return rank.Reconciled{}, fmt.Errorf("fetch rank entries: %w", err)
	}
	return rank.Reconcile(entries), nil
}

func (s *SummonerService) masteries(ctx context.Context, platform region.Platform, puuid string, limit int) ([]mastery.View, error) {
	entries, err := s.provider.FetchMasteries(ctx, platform, puuid)
	if err != nil {
		return nil, fmt.Errorf("fetch masteries: %w", err)
	}
	views, err := mastery.Select(entries, limit, s.cfg.MasteriesDefaultLimit, championResolver{table: s.table, assets: s.assets})
	if err != nil {
		logConfigurationGap(ctx, s.logger, err)
		return nil, fmt.Errorf("select masteries: %w", err)
	}
	return views, nil
}

type championResolver struct {
	table  *catalog.VersionTable
	assets catalog.Assets
}

func (r championResolver) Champion(id int) (string, error) {
	return r.table.Champion(id)
}

func (r championResolver) ChampionImage(name string) string {
	return r.assets.ChampionImage(name)
}

func parsePlatform(server string) (region.Platform, error) {
	platform, err := region.ParsePlatform(server)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return platform, nil
}

func parsePlayer(server, name, tag string) (region.Platform, account.RiotID, error) {
	platform, err := parsePlatform(server)
	if err != nil {
		return "", account.RiotID{}, err
	}
	id, err := account.NewRiotID(name, tag)
	if err != nil {
		return "", account.RiotID{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return platform, id, nil
}

// logConfigurationGap reports a stale static catalog. It needs an out-of-band data fix.
func logConfigurationGap(ctx context.Context, logger *logging.Logger, err error) {
	var gapErr *catalog.GapError
	if !errors.As(err, &gapErr) {
		return
	}
	logger.ErrorContext(ctx, "static catalog is missing an entry",
		"catalog", gapErr.Catalog,
		"id", gapErr.ID,
		"error", err,
	)
}
