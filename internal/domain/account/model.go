package account

import (
	"errors"
	"strings"
)

var ErrInvalidRiotID = errors.New("riot id needs a game name and a tag line")

// RiotID is the public "name#tag" identity of a player.
type RiotID struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

func NewRiotID(name, tag string) (RiotID, error) {
	id := RiotID{Name: strings.TrimSpace(name), Tag: strings.TrimPrefix(strings.TrimSpace(tag), "#")}
	if id.Name == "" || id.Tag == "" {
		return RiotID{}, ErrInvalidRiotID
	}
	return id, nil
}

// CacheKey is case-insensitive: riot ids resolve regardless of casing.
func (id RiotID) CacheKey() string {
	return strings.ToLower(id.Name) + "#" + strings.ToLower(id.Tag)
}

func (id RiotID) String() string {
	return id.Name + "#" + id.Tag
}

// Account is the regional identity resolved from a riot id.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner is the platform profile of an account.
type Summoner struct {
	ID            string `json:"id"`
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int    `json:"summonerLevel"`
	RevisionDate  int64  `json:"revisionDate,omitempty"`
}

// BasicInfo joins the summoner profile with the riot id it was resolved from.
type BasicInfo struct {
	Summoner
	Server      string `json:"server"`
	RiotIDName  string `json:"riotIdName"`
	RiotIDTag   string `json:"riotIdTag"`
	ProfileIcon string `json:"profileIcon"`
}
