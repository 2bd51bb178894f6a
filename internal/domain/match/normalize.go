package match

import (
	"fmt"

	"github.com/Dawichi/hexastats/internal/domain/catalog"
)

// Normalizer turns validated raw matches into Game and Detail records.
// It only reads its catalogs and is safe for concurrent use.
type Normalizer struct {
	static *catalog.Static
	table  *catalog.VersionTable
	assets catalog.Assets
}

func NewNormalizer(static *catalog.Static, table *catalog.VersionTable) *Normalizer {
	return &Normalizer{
		static: static,
		table:  table,
		assets: catalog.NewAssets(table, static),
	}
}

// Game normalizes raw from the point of view of puuid. The queue id picks the extension here
// and nowhere else.
func (n *Normalizer) Game(raw *Raw, puuid string) (Game, error) {
	seats, err := Seats(raw)
	if err != nil {
		return Game{}, err
	}

	idx := SeatOf(seats, puuid)
	if idx < 0 {
		return Game{}, malformed(raw.Metadata.MatchID, "requester %s is not a participant", puuid)
	}
	p := seats[idx].Participant
	if len(p.Perks.Styles) == 0 {
		return Game{}, malformed(raw.Metadata.MatchID, "participant %s has no rune styles", p.PUUID)
	}

	game := Game{Envelope: n.envelope(raw, seats, idx)}
	if raw.Info.QueueID == FreeForAllQueueID {
		ext, err := n.freeForAll(raw.Metadata.MatchID, p)
		if err != nil {
			return Game{}, err
		}
		game.Extension = ext
		return game, nil
	}

	runes, err := n.runes(raw.Metadata.MatchID, p)
	if err != nil {
		return Game{}, err
	}
	game.Extension = StandardExtension{
		Spells:      []int{p.Summoner1ID, p.Summoner2ID},
		SpellImages: n.spellImages(p),
		Perks:       runes,
	}
	return game, nil
}

// GameModeLabel resolves the queue label, falling back to the upstream game mode.
func (n *Normalizer) GameModeLabel(raw *Raw) string {
	if label, ok := n.static.QueueLabel(raw.Info.QueueID); ok {
		return label
	}
	return raw.Info.GameMode
}

func (n *Normalizer) envelope(raw *Raw, seats []Seat, idx int) Envelope {
	p := seats[idx].Participant
	return Envelope{
		MatchID:           raw.Metadata.MatchID,
		QueueID:           raw.Info.QueueID,
		Win:               p.Win,
		ParticipantNumber: idx,
		GameCreation:      raw.Info.GameCreation,
		GameDuration:      raw.Info.GameDuration,
		GameMode:          n.GameModeLabel(raw),
		TeamPosition:      p.TeamPosition,
		PositionIcon:      n.assets.PositionIcon(p.TeamPosition),
		IsEarlySurrender:  p.GameEndedInEarlySurrender,
		VisionScore:       p.VisionScore,
		ChampLevel:        p.ChampLevel,
		ChampionName:      p.ChampionName,
		Kills:             p.Kills,
		Deaths:            p.Deaths,
		Assists:           p.Assists,
		DoubleKills:       p.DoubleKills,
		TripleKills:       p.TripleKills,
		QuadraKills:       p.QuadraKills,
		PentaKills:        p.PentaKills,
		CS:                p.CS(),
		Gold:              p.GoldEarned,
		Ward:              p.Ward(),
		KillParticipation: KillParticipation(p.Kills, p.Assists, TeamKills(seats, idx)),
		DamageDealt:       p.TotalDamageDealtToChampions,
		DamageTaken:       p.TotalDamageTaken,
		Items:             p.Items(),
		ItemImages:        n.itemImages(p),
		Participants:      roster(seats),
	}
}

func roster(seats []Seat) []RosterEntry {
	out := make([]RosterEntry, 0, len(seats))
	for _, s := range seats {
		p := s.Participant
		out = append(out, RosterEntry{
			PUUID:          s.PUUID,
			TeamID:         p.TeamID,
			SummonerName:   p.SummonerName,
			ChampionName:   p.ChampionName,
			RiotIDGameName: p.DisplayName(),
			RiotIDTagLine:  p.RiotIDTagline,
		})
	}
	return out
}

func (n *Normalizer) freeForAll(matchID string, p *Participant) (FreeForAllExtension, error) {
	augments, err := n.augments(matchID, p)
	if err != nil {
		return FreeForAllExtension{}, err
	}
	return FreeForAllExtension{
		Augments:         augments,
		Placement:        p.Placement,
		SubteamPlacement: p.SubteamPlacement,
	}, nil
}

func (n *Normalizer) augments(matchID string, p *Participant) ([]catalog.Augment, error) {
	ids := p.AugmentIDs()
	out := make([]catalog.Augment, 0, len(ids))
	for _, id := range ids {
		a, err := n.static.Augment(id)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", matchID, err)
		}
		a.Icon = n.assets.AugmentIcon(a.Icon)
		out = append(out, a)
	}
	return out, nil
}

func (n *Normalizer) runes(matchID string, p *Participant) (RuneSummary, error) {
	styles := p.Perks.Styles
	if len(styles) < 2 {
		return RuneSummary{}, malformed(matchID, "participant %s has %d rune styles, need 2", p.PUUID, len(styles))
	}
	if len(styles[0].Selections) == 0 {
		return RuneSummary{}, malformed(matchID, "participant %s has no keystone", p.PUUID)
	}

	primary, keystone, secondary := styles[0].Style, styles[0].Selections[0].Perk, styles[1].Style
	summary := RuneSummary{
		PrimaryStyle:   primary,
		Keystone:       keystone,
		SecondaryStyle: secondary,
		Primary:        n.assets.RunePerkImage(keystone),
		Secondary:      n.assets.RuneTreeImage(secondary),
	}
	// names are cosmetic: a tree or perk the catalog does not know yet stays unnamed
	if tree, ok := n.static.RuneTree(primary); ok {
		summary.PrimaryName = tree.Name
	}
	if perk, ok := n.static.Perk(keystone); ok {
		summary.KeystoneName = perk.Name
	}
	if tree, ok := n.static.RuneTree(secondary); ok {
		summary.SecondaryName = tree.Name
	}
	return summary, nil
}

// spellImages follows Spells; unknown spell ids get the Flash icon.
func (n *Normalizer) spellImages(p *Participant) []string {
	return []string{n.assets.SpellImage(p.Summoner1ID), n.assets.SpellImage(p.Summoner2ID)}
}

// itemImages follows Items slot by slot. Empty slots stay empty strings.
func (n *Normalizer) itemImages(p *Participant) []string {
	items := p.Items()
	out := make([]string, len(items))
	for i, id := range items {
		if id != 0 {
			out[i] = n.assets.ItemImage(id)
		}
	}
	return out
}
