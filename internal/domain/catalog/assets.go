package catalog

import (
	"strconv"
	"strings"
)

const (
	DDragonBaseURL = "https://ddragon.leagueoflegends.com"

	communityDragonPositions = "https://raw.communitydragon.org/latest/plugins/rcp-fe-lol-clash/global/default/assets/images/position-selector/positions/"
	communityDragonAugments  = "https://raw.communitydragon.org/latest/game/assets/ux/cherry/augments/icons/"
	perkImageBase            = "https://opgg-static.akamaized.net/meta/images/lol/perk/"
	perkStyleImageBase       = "https://opgg-static.akamaized.net/meta/images/lol/perkStyle/"

	PositionUnselected = "UNSELECTED"
	fallbackSpellName  = "Flash"
)

// Assets builds image URLs for one content version.
type Assets struct {
	version string
	static  *Static
}

func NewAssets(table *VersionTable, static *Static) Assets {
	return Assets{version: table.Version(), static: static}
}

func (a Assets) Version() string {
	return a.version
}

func (a Assets) cdn() string {
	return DDragonBaseURL + "/cdn/" + a.version
}

// ChampionImage returns the square portrait. Data Dragon spells one champion differently in its file names.
func (a Assets) ChampionImage(name string) string {
	return a.cdn() + "/img/champion/" + championFileName(name) + ".png"
}

func (a Assets) ChampionSplash(name string) string {
	return DDragonBaseURL + "/cdn/img/champion/splash/" + championFileName(name) + "_0.jpg"
}

func (a Assets) ItemImage(itemID int) string {
	return a.cdn() + "/img/item/" + strconv.Itoa(itemID) + ".png"
}

// SpellImage falls back to Flash for ids missing from the catalog.
func (a Assets) SpellImage(spellID int) string {
	name, ok := a.static.SpellName(spellID)
	if !ok {
		name = fallbackSpellName
	}
	return a.cdn() + "/img/spell/Summoner" + name + ".png"
}

func (a Assets) ProfileIcon(iconID int) string {
	return a.cdn() + "/img/profileicon/" + strconv.Itoa(iconID) + ".png"
}

func (a Assets) PositionIcon(position string) string {
	return communityDragonPositions + a.static.PositionIcon(position)
}

func (a Assets) AugmentIcon(icon string) string {
	return communityDragonAugments + strings.ToLower(icon)
}

func (a Assets) RunePerkImage(perkID int) string {
	return perkImageBase + strconv.Itoa(perkID) + ".png"
}

func (a Assets) RuneTreeImage(styleID int) string {
	return perkStyleImageBase + strconv.Itoa(styleID) + ".png"
}

func championFileName(name string) string {
	if name == "FiddleSticks" {
		return "Fiddlesticks"
	}
	return name
}
