package catalog

import (
	"errors"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// VersionTable is the content version and the champion id space for that version.
// It is built once at startup and only read afterwards, so it is safe for concurrent use.
type VersionTable struct {
	version   string
	champions map[int]string
	names     []string
}

func NewVersionTable(version string, champions map[int]string) (*VersionTable, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, errors.New("content version is empty")
	}
	if len(champions) == 0 {
		return nil, errors.New("champion catalog is empty")
	}

	copied := make(map[int]string, len(champions))
	names := make([]string, 0, len(champions))
	for id, name := range champions {
		copied[id] = name
		names = append(names, name)
	}
	sort.Strings(names)

	return &VersionTable{version: version, champions: copied, names: names}, nil
}

func (t *VersionTable) Version() string {
	return t.version
}

func (t *VersionTable) ChampionName(id int) (string, bool) {
	name, ok := t.champions[id]
	return name, ok
}

// Champion is ChampionName with a ConfigurationGap for unknown ids.
func (t *VersionTable) Champion(id int) (string, error) {
	name, ok := t.champions[id]
	if !ok {
		return "", gap(CatalogChampion, id)
	}
	return name, nil
}

func (t *VersionTable) ChampionCount() int {
	return len(t.champions)
}

// Search ranks champion names by fuzzy, case-insensitive match against query.
// An empty query lists names alphabetically.
func (t *VersionTable) Search(query string, limit int) []string {
	query = strings.TrimSpace(query)
	if limit <= 0 || limit > len(t.names) {
		limit = len(t.names)
	}
	if query == "" {
		return append([]string(nil), t.names[:limit]...)
	}

	ranks := fuzzy.RankFindNormalizedFold(query, t.names)
	sort.Sort(ranks)

	out := make([]string, 0, min(limit, len(ranks)))
	for _, r := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, r.Target)
	}
	return out
}
