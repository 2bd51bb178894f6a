package match

import (
	"fmt"
	"sort"

	"github.com/Dawichi/hexastats/internal/domain/catalog"
)

// Detail is the all-participants view of a match.
type Detail struct {
	MatchID           string              `json:"matchId"`
	QueueID           int                 `json:"queueId"`
	GameCreation      int64               `json:"gameCreation"`
	GameDuration      int64               `json:"gameDuration"`
	ParticipantNumber int                 `json:"participantNumber"`
	GameMode          string              `json:"gameMode"`
	Teams             []DetailTeam        `json:"teams"`
	Participants      []DetailParticipant `json:"participants"`
}

type DetailTeam struct {
	TeamID     int              `json:"teamId"`
	Win        bool             `json:"win"`
	Bans       []DetailBan      `json:"bans"`
	Objectives []ObjectiveState `json:"objectives"`
}

// DetailBan has a nil ChampionImage for an unused ban slot.
type DetailBan struct {
	PickTurn      int     `json:"pickTurn"`
	ChampionImage *string `json:"championImage"`
}

type ObjectiveState struct {
	Type  string `json:"type"`
	First bool   `json:"first"`
	Kills int    `json:"kills"`
}

type ChampStats struct {
	ChampLevel       int    `json:"champLevel"`
	ChampionName     string `json:"championName"`
	LargestMultiKill int    `json:"largestMultiKill"`
	DamageDealt      int    `json:"damageDealt"`
	DamageTaken      int    `json:"damageTaken"`
}

type MultiKill struct {
	Doubles int `json:"doubles"`
	Triples int `json:"triples"`
	Quadras int `json:"quadras"`
	Pentas  int `json:"pentas"`
}

type DetailParticipant struct {
	PUUID             string            `json:"puuid"`
	SummonerName      string            `json:"summonerName"`
	RiotIDGameName    string            `json:"riotIdGameName"`
	RiotIDTagLine     string            `json:"riotIdTagLine"`
	TeamID            int               `json:"teamId"`
	TeamPosition      string            `json:"teamPosition"`
	PositionIcon      string            `json:"positionIcon"`
	IsEarlySurrender  bool              `json:"isEarlySurrender"`
	Win               bool              `json:"win"`
	VisionScore       int               `json:"visionScore"`
	Champ             ChampStats        `json:"champ"`
	Kills             int               `json:"kills"`
	Deaths            int               `json:"deaths"`
	Assists           int               `json:"assists"`
	KillParticipation float64           `json:"killParticipation"`
	MultiKill         MultiKill         `json:"multiKill"`
	Gold              int               `json:"gold"`
	Placement         int               `json:"placement"`
	CS                int               `json:"cs"`
	Ward              int               `json:"ward"`
	Items             []int             `json:"items"`
	ItemImages        []string          `json:"itemImages"`
	Spells            []int             `json:"spells"`
	SpellImages       []string          `json:"spellImages"`
	Perks             *RuneSummary      `json:"perks"`
	Augments          []catalog.Augment `json:"augments"`
}

const noBan = -1

// Detail builds the all-participants view. puuid is optional; participantNumber is -1 when the
// requester is absent or not given. Participants are ordered by ascending placement, ties in
// upstream order.
func (n *Normalizer) Detail(raw *Raw, puuid string) (Detail, error) {
	seats, err := Seats(raw)
	if err != nil {
		return Detail{}, err
	}

	teams, err := n.detailTeams(raw)
	if err != nil {
		return Detail{}, err
	}

	participants := make([]DetailParticipant, 0, len(seats))
	for _, s := range seats {
		dp, err := n.detailParticipant(raw.Metadata.MatchID, seats, s)
		if err != nil {
			return Detail{}, err
		}
		participants = append(participants, dp)
	}
	sort.SliceStable(participants, func(i, j int) bool {
		return participants[i].Placement < participants[j].Placement
	})

	return Detail{
		MatchID:           raw.Metadata.MatchID,
		QueueID:           raw.Info.QueueID,
		GameCreation:      raw.Info.GameCreation,
		GameDuration:      raw.Info.GameDuration,
		ParticipantNumber: SeatOf(seats, puuid),
		GameMode:          raw.Info.GameMode,
		Teams:             teams,
		Participants:      participants,
	}, nil
}

func (n *Normalizer) detailTeams(raw *Raw) ([]DetailTeam, error) {
	out := make([]DetailTeam, 0, len(raw.Info.Teams))
	for _, team := range raw.Info.Teams {
		bans := make([]DetailBan, 0, len(team.Bans))
		for _, ban := range team.Bans {
			db := DetailBan{PickTurn: ban.PickTurn}
			if ban.ChampionID != noBan {
				name, err := n.table.Champion(ban.ChampionID)
				if err != nil {
					return nil, fmt.Errorf("match %s: %w", raw.Metadata.MatchID, err)
				}
				image := n.assets.ChampionImage(name)
				db.ChampionImage = &image
			}
			bans = append(bans, db)
		}

		types := make([]string, 0, len(team.Objectives))
		for t := range team.Objectives {
			types = append(types, t)
		}
		sort.Strings(types)
		objectives := make([]ObjectiveState, 0, len(types))
		for _, t := range types {
			o := team.Objectives[t]
			objectives = append(objectives, ObjectiveState{Type: t, First: o.First, Kills: o.Kills})
		}

		out = append(out, DetailTeam{
			TeamID:     team.TeamID,
			Win:        team.Win,
			Bans:       bans,
			Objectives: objectives,
		})
	}
	return out, nil
}

func (n *Normalizer) detailParticipant(matchID string, seats []Seat, s Seat) (DetailParticipant, error) {
	p := s.Participant
	augments, err := n.augments(matchID, p)
	if err != nil {
		return DetailParticipant{}, err
	}

	// arena pages hold a single style, so incomplete runes are left out instead of failing
	var perks *RuneSummary
	if runes, err := n.runes(matchID, p); err == nil {
		perks = &runes
	}

	return DetailParticipant{
		PUUID:            s.PUUID,
		SummonerName:     p.SummonerName,
		RiotIDGameName:   p.DisplayName(),
		RiotIDTagLine:    p.RiotIDTagline,
		TeamID:           p.TeamID,
		TeamPosition:     p.TeamPosition,
		PositionIcon:     n.assets.PositionIcon(p.TeamPosition),
		IsEarlySurrender: p.GameEndedInEarlySurrender,
		Win:              p.Win,
		VisionScore:      p.VisionScore,
		Champ: ChampStats{
			ChampLevel:       p.ChampLevel,
			ChampionName:     p.ChampionName,
			LargestMultiKill: p.LargestMultiKill,
			DamageDealt:      p.TotalDamageDealtToChampions,
			DamageTaken:      p.TotalDamageTaken,
		},
		Kills:             p.Kills,
		Deaths:            p.Deaths,
		Assists:           p.Assists,
		KillParticipation: KillParticipation(p.Kills, p.Assists, TeamKills(seats, s.Index)),
		MultiKill: MultiKill{
			Doubles: p.DoubleKills,
			Triples: p.TripleKills,
			Quadras: p.QuadraKills,
			Pentas:  p.PentaKills,
		},
		Gold:        p.GoldEarned,
		Placement:   p.Placement,
		CS:          p.CS(),
		Ward:        p.Ward(),
		Items:       p.Items(),
		ItemImages:  n.itemImages(p),
		Spells:      []int{p.Summoner1ID, p.Summoner2ID},
		SpellImages: n.spellImages(p),
		Perks:       perks,
		Augments:    augments,
	}, nil
}
