package match

// Raw is a validated match record as sent upstream. Only the fields the normalizer reads are kept.
type Raw struct {
	Metadata Metadata `json:"metadata"`
	Info     Info     `json:"info"`
}

type Metadata struct {
	DataVersion  string   `json:"dataVersion"`
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type Info struct {
	GameCreation     int64         `json:"gameCreation"`
	GameDuration     int64         `json:"gameDuration"`
	GameEndTimestamp int64         `json:"gameEndTimestamp"`
	GameMode         string        `json:"gameMode"`
	GameVersion      string        `json:"gameVersion"`
	MapID            int           `json:"mapId"`
	PlatformID       string        `json:"platformId"`
	QueueID          int           `json:"queueId"`
	Participants     []Participant `json:"participants"`
	Teams            []Team        `json:"teams"`
}

type Participant struct {
	PUUID          string `json:"puuid"`
	SummonerName   string `json:"summonerName"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline"`
	TeamID         int    `json:"teamId"`
	TeamPosition   string `json:"teamPosition"`

	ChampionID   int    `json:"championId"`
	ChampionName string `json:"championName"`
	ChampLevel   int    `json:"champLevel"`

	Win                       bool `json:"win"`
	GameEndedInEarlySurrender bool `json:"gameEndedInEarlySurrender"`

	Kills            int `json:"kills"`
	Deaths           int `json:"deaths"`
	Assists          int `json:"assists"`
	DoubleKills      int `json:"doubleKills"`
	TripleKills      int `json:"tripleKills"`
	QuadraKills      int `json:"quadraKills"`
	PentaKills       int `json:"pentaKills"`
	LargestMultiKill int `json:"largestMultiKill"`

	GoldEarned                  int `json:"goldEarned"`
	NeutralMinionsKilled        int `json:"neutralMinionsKilled"`
	TotalMinionsKilled          int `json:"totalMinionsKilled"`
	VisionScore                 int `json:"visionScore"`
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int `json:"totalDamageTaken"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"`

	Summoner1ID int   `json:"summoner1Id"`
	Summoner2ID int   `json:"summoner2Id"`
	Perks       Perks `json:"perks"`

	// arena only
	PlayerAugment1   int `json:"playerAugment1"`
	PlayerAugment2   int `json:"playerAugment2"`
	PlayerAugment3   int `json:"playerAugment3"`
	PlayerAugment4   int `json:"playerAugment4"`
	Placement        int `json:"placement"`
	SubteamPlacement int `json:"subteamPlacement"`
	PlayerSubteamID  int `json:"playerSubteamId"`
}

type Perks struct {
	StatPerks StatPerks   `json:"statPerks"`
	Styles    []PerkStyle `json:"styles"`
}

type StatPerks struct {
	Defense int `json:"defense"`
	Flex    int `json:"flex"`
	Offense int `json:"offense"`
}

type PerkStyle struct {
	Description string          `json:"description"`
	Style       int             `json:"style"`
	Selections  []PerkSelection `json:"selections"`
}

type PerkSelection struct {
	Perk int `json:"perk"`
	Var1 int `json:"var1"`
	Var2 int `json:"var2"`
	Var3 int `json:"var3"`
}

type Team struct {
	TeamID     int                  `json:"teamId"`
	Win        bool                 `json:"win"`
	Bans       []Ban                `json:"bans"`
	Objectives map[string]Objective `json:"objectives"`
}

type Ban struct {
	ChampionID int `json:"championId"`
	PickTurn   int `json:"pickTurn"`
}

type Objective struct {
	First bool `json:"first"`
	Kills int  `json:"kills"`
}

// Items returns the six inventory slots. Slot 6 is the trinket and is read through Ward.
func (p *Participant) Items() []int {
	return []int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5}
}

// Ward is the trinket slot with the default ward substituted for an empty slot.
func (p *Participant) Ward() int {
	if p.Item6 == 0 {
		return DefaultWardItemID
	}
	return p.Item6
}

func (p *Participant) CS() int {
	return p.NeutralMinionsKilled + p.TotalMinionsKilled
}

// AugmentIDs returns the non-empty augment slots in slot order. Id 0 means an empty slot.
func (p *Participant) AugmentIDs() []int {
	out := make([]int, 0, 4)
	for _, id := range []int{p.PlayerAugment1, p.PlayerAugment2, p.PlayerAugment3, p.PlayerAugment4} {
		if id != 0 {
			out = append(out, id)
		}
	}
	return out
}

// DisplayName prefers the riot id game name and falls back to the legacy summoner name.
func (p *Participant) DisplayName() string {
	if p.RiotIDGameName != "" {
		return p.RiotIDGameName
	}
	return p.SummonerName
}
