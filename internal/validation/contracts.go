package validation

// Kind names an upstream resource with a declared contract.
type Kind string

const (
	KindAccount         Kind = "account"
	KindSummoner        Kind = "summoner"
	KindMasteryList     Kind = "mastery_list"
	KindRankEntryList   Kind = "rank_entry_list"
	KindMatchIDs        Kind = "match_ids"
	KindMatch           Kind = "match"
	KindVersions        Kind = "versions"
	KindChampionCatalog Kind = "champion_catalog"
)

var accountContract = Object(
	Req("puuid", String),
	Req("gameName", String),
	Req("tagLine", String),
)

var summonerContract = Object(
	Req("id", String),
	Req("puuid", String),
	Req("profileIconId", Number),
	Req("summonerLevel", Number),
	Opt("revisionDate", Number),
)

var masteryContract = Object(
	Req("championId", Number),
	Req("championLevel", Number),
	Req("championPoints", Number),
	Opt("lastPlayTime", Number),
	Opt("championPointsSinceLastLevel", Number),
	Opt("championPointsUntilNextLevel", Number),
)

var rankEntryContract = Object(
	Req("queueType", String),
	Opt("tier", String),
	Opt("rank", String),
	Req("leaguePoints", Number),
	Req("wins", Number),
	Req("losses", Number),
)

var perkSelectionContract = Object(
	Req("perk", Number),
	Opt("var1", Number),
	Opt("var2", Number),
	Opt("var3", Number),
)

var perkStyleContract = Object(
	Req("style", Number),
	Req("selections", ArrayOf(perkSelectionContract)),
	Opt("description", String),
)

var participantContract = Object(
	Req("puuid", String),
	Req("summonerName", String),
	Opt("riotIdGameName", String),
	Opt("riotIdTagline", String),
	Req("teamId", Number),
	Req("teamPosition", String),
	Req("championName", String),
	Opt("championId", Number),
	Req("champLevel", Number),
	Req("win", Bool),
	Req("gameEndedInEarlySurrender", Bool),
	Req("kills", Number),
	Req("deaths", Number),
	Req("assists", Number),
	Req("doubleKills", Number),
	Req("tripleKills", Number),
	Req("quadraKills", Number),
	Req("pentaKills", Number),
	Req("largestMultiKill", Number),
	Req("goldEarned", Number),
	Req("neutralMinionsKilled", Number),
	Req("totalMinionsKilled", Number),
	Req("visionScore", Number),
	Req("totalDamageDealtToChampions", Number),
	Req("totalDamageTaken", Number),
	Req("item0", Number),
	Req("item1", Number),
	Req("item2", Number),
	Req("item3", Number),
	Req("item4", Number),
	Req("item5", Number),
	Req("item6", Number),
	Req("summoner1Id", Number),
	Req("summoner2Id", Number),
	Req("perks", Object(
		Opt("statPerks", Object(
			Req("defense", Number),
			Req("flex", Number),
			Req("offense", Number),
		)),
		Req("styles", ArrayOf(perkStyleContract)),
	)),
	Opt("playerAugment1", Number),
	Opt("playerAugment2", Number),
	Opt("playerAugment3", Number),
	Opt("playerAugment4", Number),
	Opt("placement", Number),
	Opt("subteamPlacement", Number),
	Opt("playerSubteamId", Number),
)

var teamContract = Object(
	Req("teamId", Number),
	Req("win", Bool),
	Req("bans", ArrayOf(Object(
		Req("championId", Number),
		Req("pickTurn", Number),
	))),
	Req("objectives", MapOf(Object(
		Req("first", Bool),
		Req("kills", Number),
	))),
)

var matchContract = Object(
	Req("metadata", Object(
		Opt("dataVersion", String),
		Req("matchId", String),
		Req("participants", ArrayOf(String)),
	)),
	Req("info", Object(
		Req("gameCreation", Number),
		Req("gameDuration", Number),
		Opt("gameEndTimestamp", Number),
		Req("gameMode", String),
		Opt("gameVersion", String),
		Opt("mapId", Number),
		Opt("platformId", String),
		Req("queueId", Number),
		Req("participants", ArrayOf(participantContract)),
		Req("teams", ArrayOf(teamContract)),
	)),
)

var championCatalogContract = Object(
	Opt("version", String),
	Req("data", MapOf(Object(
		Req("id", String),
		Req("key", String),
		Req("name", String),
		Opt("title", String),
	))),
)

var contracts = map[Kind]Shape{
	KindAccount:         accountContract,
	KindSummoner:        summonerContract,
	KindMasteryList:     ArrayOf(masteryContract),
	KindRankEntryList:   ArrayOf(rankEntryContract),
	KindMatchIDs:        ArrayOf(String),
	KindMatch:           matchContract,
	KindVersions:        ArrayOf(String),
	KindChampionCatalog: championCatalogContract,
}

// Contract returns the declared shape for kind.
func Contract(kind Kind) (Shape, bool) {
	s, ok := contracts[kind]
	return s, ok
}
