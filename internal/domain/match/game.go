package match

import (
	"fmt"

	"github.com/Dawichi/hexastats/internal/domain/catalog"
	"github.com/bytedance/sonic"
)

type Variant string

const (
	VariantStandard   Variant = "standard"
	VariantFreeForAll Variant = "freeForAll"
)

// Game is one match seen from one player: a fixed envelope and exactly one extension.
type Game struct {
	Envelope
	Extension Extension
}

// Envelope is shared by both variants.
type Envelope struct {
	MatchID           string        `json:"matchId"`
	QueueID           int           `json:"queueId"`
	Win               bool          `json:"win"`
	ParticipantNumber int           `json:"participantNumber"`
	GameCreation      int64         `json:"gameCreation"`
	GameDuration      int64         `json:"gameDuration"`
	GameMode          string        `json:"gameMode"`
	TeamPosition      string        `json:"teamPosition"`
	PositionIcon      string        `json:"positionIcon"`
	IsEarlySurrender  bool          `json:"isEarlySurrender"`
	VisionScore       int           `json:"visionScore"`
	ChampLevel        int           `json:"champLevel"`
	ChampionName      string        `json:"championName"`
	Kills             int           `json:"kills"`
	Deaths            int           `json:"deaths"`
	Assists           int           `json:"assists"`
	DoubleKills       int           `json:"doubleKills"`
	TripleKills       int           `json:"tripleKills"`
	QuadraKills       int           `json:"quadraKills"`
	PentaKills        int           `json:"pentaKills"`
	CS                int           `json:"cs"`
	Gold              int           `json:"gold"`
	Ward              int           `json:"ward"`
	KillParticipation float64       `json:"killParticipation"`
	DamageDealt       int           `json:"damageDealt"`
	DamageTaken       int           `json:"damageTaken"`
	Items             []int         `json:"items"`
	ItemImages        []string      `json:"itemImages"`
	Participants      []RosterEntry `json:"participants"`
}

// RosterEntry is the display identity of one lobby member.
type RosterEntry struct {
	PUUID          string `json:"puuid"`
	TeamID         int    `json:"teamId"`
	SummonerName   string `json:"summonerName"`
	ChampionName   string `json:"championName"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagLine  string `json:"riotIdTagLine"`
}

// Extension is implemented only by StandardExtension and FreeForAllExtension.
type Extension interface {
	Variant() Variant
	sealed()
}

// RuneSummary is the primary tree with its keystone and the secondary tree.
type RuneSummary struct {
	PrimaryStyle   int    `json:"primaryStyle"`
	PrimaryName    string `json:"primaryName,omitempty"`
	Keystone       int    `json:"keystone"`
	KeystoneName   string `json:"keystoneName,omitempty"`
	SecondaryStyle int    `json:"secondaryStyle"`
	SecondaryName  string `json:"secondaryName,omitempty"`
	Primary        string `json:"primary"`
	Secondary      string `json:"secondary"`
}

type StandardExtension struct {
	Spells      []int       `json:"spells"`
	SpellImages []string    `json:"spellImages"`
	Perks       RuneSummary `json:"perks"`
}

func (StandardExtension) Variant() Variant { return VariantStandard }
func (StandardExtension) sealed()          {}

type FreeForAllExtension struct {
	Augments         []catalog.Augment `json:"augments"`
	Placement        int               `json:"placement"`
	SubteamPlacement int               `json:"subteamPlacement"`
}

func (FreeForAllExtension) Variant() Variant { return VariantFreeForAll }
func (FreeForAllExtension) sealed()          {}

// Standard returns the standard extension when the game carries one.
func (g Game) Standard() (StandardExtension, bool) {
	ext, ok := g.Extension.(StandardExtension)
	return ext, ok
}

func (g Game) FreeForAll() (FreeForAllExtension, bool) {
	ext, ok := g.Extension.(FreeForAllExtension)
	return ext, ok
}

type gameWire struct {
	Envelope
	Variant Variant `json:"variant"`
	*StandardExtension
	*FreeForAllExtension
}

// MarshalJSON flattens the envelope and the extension into one object tagged with "variant".
func (g Game) MarshalJSON() ([]byte, error) {
	wire := gameWire{Envelope: g.Envelope}
	switch ext := g.Extension.(type) {
	case StandardExtension:
		wire.Variant = VariantStandard
		wire.StandardExtension = &ext
	case FreeForAllExtension:
		wire.Variant = VariantFreeForAll
		wire.FreeForAllExtension = &ext
	default:
		return nil, fmt.Errorf("game %s has no extension", g.MatchID)
	}
	return sonic.Marshal(wire)
}

func (g *Game) UnmarshalJSON(data []byte) error {
	var head struct {
		Envelope
		Variant Variant `json:"variant"`
	}
	if err := sonic.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.Variant {
	case VariantStandard:
		var ext StandardExtension
		if err := sonic.Unmarshal(data, &ext); err != nil {
			return err
		}
		g.Extension = ext
	case VariantFreeForAll:
		var ext FreeForAllExtension
		if err := sonic.Unmarshal(data, &ext); err != nil {
			return err
		}
		g.Extension = ext
	default:
		return fmt.Errorf("unknown game variant %q", head.Variant)
	}
	g.Envelope = head.Envelope
	return nil
}
