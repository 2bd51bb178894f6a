package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dawichi/hexastats/internal/domain/catalog"
	"github.com/Dawichi/hexastats/internal/platform/logging"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type ChampionHit struct {
	Name   string `json:"name"`
	Image  string `json:"image"`
	Splash string `json:"splash"`
}

type VersionInfo struct {
	Version       string `json:"version"`
	ChampionCount int    `json:"championCount"`
	AugmentCount  int    `json:"augmentCount"`
}

type ChampionService struct {
	table  *catalog.VersionTable
	static *catalog.Static
	assets catalog.Assets
}

func NewChampionService(table *catalog.VersionTable, static *catalog.Static) *ChampionService {
	return &ChampionService{table: table, static: static, assets: catalog.NewAssets(table, static)}
}

// Search ranks champion names by fuzzy match. An empty query lists champions alphabetically.
func (s *ChampionService) Search(ctx context.Context, query string, limit int) []ChampionHit {
	_, span := startUsecaseSpan(ctx, "usecase.ChampionService.Search")
	defer span.End()

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	names := s.table.Search(strings.TrimSpace(query), limit)
	out := make([]ChampionHit, 0, len(names))
	for _, name := range names {
		out = append(out, ChampionHit{
			Name:   name,
			Image:  s.assets.ChampionImage(name),
			Splash: s.assets.ChampionSplash(name),
		})
	}
	return out
}

func (s *ChampionService) Version() VersionInfo {
	return VersionInfo{
		Version:       s.table.Version(),
		ChampionCount: s.table.ChampionCount(),
		AugmentCount:  s.static.AugmentCount(),
	}
}

// LoadVersionTable builds the champion table for the current content version. A failure here
// must stop startup: nothing that resolves champions can be served without it.
func LoadVersionTable(ctx context.Context, source ContentSource, logger *logging.Logger) (*catalog.VersionTable, error) {
	if logger == nil {
		logger = logging.Default()
	}

	version, err := source.LatestVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content version: %w", err)
	}
	champions, err := source.Champions(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("load champion catalog %s: %w", version, err)
	}
	table, err := catalog.NewVersionTable(version, champions)
	if err != nil {
		return nil, fmt.Errorf("build version table: %w", err)
	}

	logger.InfoContext(ctx, "version table loaded", "version", version, "champions", table.ChampionCount())
	return table, nil
}
