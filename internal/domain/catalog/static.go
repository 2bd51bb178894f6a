package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed data/*.toml
var embedded embed.FS

const (
	CatalogAugment  = "augment"
	CatalogChampion = "champion"
)

// Augment is one resolved arena augment.
type Augment struct {
	ID     int    `toml:"id" json:"id"`
	Name   string `toml:"name" json:"name"`
	Rarity string `toml:"rarity" json:"rarity"`
	Icon   string `toml:"icon" json:"icon"`
}

type Spell struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
}

type Queue struct {
	ID    int    `toml:"id"`
	Label string `toml:"label"`
}

type Position struct {
	Name string `toml:"name"`
	Icon string `toml:"icon"`
}

type Perk struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
}

type RuneTree struct {
	ID    int    `toml:"id"`
	Name  string `toml:"name"`
	Perks []Perk `toml:"perks"`
}

type staticFile struct {
	Augments  []Augment  `toml:"augment"`
	Spells    []Spell    `toml:"spell"`
	Queues    []Queue    `toml:"queue"`
	Positions []Position `toml:"position"`
	RuneTrees []RuneTree `toml:"rune_tree"`
}

// Static holds the lookup tables that do not depend on the content version.
// It is immutable once loaded.
type Static struct {
	augments  map[int]Augment
	spells    map[int]string
	queues    map[int]string
	positions map[string]string
	runeTrees map[int]RuneTree
	perks     map[int]Perk
}

// LoadStatic reads the embedded catalog and, when overridePath is set, merges that TOML file on top.
// Override entries replace embedded entries with the same id.
func LoadStatic(overridePath string) (*Static, error) {
	s := &Static{
		augments:  make(map[int]Augment),
		spells:    make(map[int]string),
		queues:    make(map[int]string),
		positions: make(map[string]string),
		runeTrees: make(map[int]RuneTree),
		perks:     make(map[int]Perk),
	}

	files, err := fs.Glob(embedded, "data/*.toml")
	if err != nil {
		return nil, fmt.Errorf("list embedded catalog: %w", err)
	}
	sort.Strings(files)
	for _, name := range files {
		raw, err := embedded.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read embedded catalog %s: %w", name, err)
		}
		if err := s.merge(name, raw); err != nil {
			return nil, err
		}
	}

	if path := strings.TrimSpace(overridePath); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog override %s: %w", path, err)
		}
		if err := s.merge(path, raw); err != nil {
			return nil, err
		}
	}

	if _, ok := s.positions[PositionUnselected]; !ok {
		return nil, fmt.Errorf("catalog is missing the %s position", PositionUnselected)
	}
	return s, nil
}

func (s *Static) merge(name string, raw []byte) error {
	var file staticFile
	dec := toml.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return fmt.Errorf("parse catalog %s: %w", name, err)
	}

	for _, a := range file.Augments {
		if a.ID <= 0 || strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("catalog %s: augment entries need a positive id and a name", name)
		}
		s.augments[a.ID] = a
	}
	for _, sp := range file.Spells {
		s.spells[sp.ID] = sp.Name
	}
	for _, q := range file.Queues {
		s.queues[q.ID] = q.Label
	}
	for _, p := range file.Positions {
		s.positions[strings.ToUpper(p.Name)] = p.Icon
	}
	for _, tree := range file.RuneTrees {
		s.runeTrees[tree.ID] = tree
		for _, perk := range tree.Perks {
			s.perks[perk.ID] = perk
		}
	}
	return nil
}

// Augment resolves an augment id. A missing id is a ConfigurationGap.
func (s *Static) Augment(id int) (Augment, error) {
	a, ok := s.augments[id]
	if !ok {
		return Augment{}, gap(CatalogAugment, id)
	}
	return a, nil
}

func (s *Static) SpellName(id int) (string, bool) {
	name, ok := s.spells[id]
	return name, ok
}

func (s *Static) QueueLabel(id int) (string, bool) {
	label, ok := s.queues[id]
	return label, ok
}

// PositionIcon returns the icon file for position, falling back to the unselected icon.
func (s *Static) PositionIcon(position string) string {
	if icon, ok := s.positions[strings.ToUpper(strings.TrimSpace(position))]; ok {
		return icon
	}
	return s.positions[PositionUnselected]
}

func (s *Static) RuneTree(id int) (RuneTree, bool) {
	tree, ok := s.runeTrees[id]
	return tree, ok
}

func (s *Static) Perk(id int) (Perk, bool) {
	perk, ok := s.perks[id]
	return perk, ok
}

func (s *Static) AugmentCount() int {
	return len(s.augments)
}
