package match

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Dawichi/hexastats/internal/domain/catalog"
	"github.com/bytedance/sonic"
)

func TestNormalizer_GameStandard(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)
	raw := newRaw(420)

	game, err := n.Game(raw, puuidAt(2))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if game.ParticipantNumber != 2 {
		t.Fatalf("participant number=%d, want 2", game.ParticipantNumber)
	}
	if game.GameMode != "Ranked Solo" {
		t.Fatalf("game mode=%q", game.GameMode)
	}
	if game.CS != 180 {
		t.Fatalf("cs=%d, want 180", game.CS)
	}
	if game.Ward != 3340 {
		t.Fatalf("ward=%d, want upstream trinket", game.Ward)
	}
	// team 100 kills: 1+2+3+4+5
	if want := float64(3+3) / 15; game.KillParticipation != want {
		t.Fatalf("kp=%v, want %v", game.KillParticipation, want)
	}
	if len(game.Participants) != 10 {
		t.Fatalf("roster size=%d", len(game.Participants))
	}

	ext, ok := game.Standard()
	if !ok {
		t.Fatalf("expected standard extension, got %T", game.Extension)
	}
	if _, ok := game.FreeForAll(); ok {
		t.Fatalf("standard game must not carry a free-for-all extension")
	}
	if !reflect.DeepEqual(ext.Spells, []int{4, 14}) {
		t.Fatalf("spells=%v", ext.Spells)
	}
	if ext.Perks.Keystone != 8112 || ext.Perks.SecondaryStyle != 8000 {
		t.Fatalf("perks=%+v", ext.Perks)
	}
	if ext.Perks.PrimaryName != "Domination" || ext.Perks.KeystoneName != "Electrocute" || ext.Perks.SecondaryName != "Precision" {
		t.Fatalf("rune names=%+v", ext.Perks)
	}
}

func TestNormalizer_GameAssetURLs(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)
	raw := newRaw(420)
	raw.Info.Participants[2].Summoner1ID = 999

	game, err := n.Game(raw, puuidAt(2))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if want := "https://raw.communitydragon.org/latest/plugins/rcp-fe-lol-clash/global/default/assets/images/position-selector/positions/icon-position-middle.png"; game.PositionIcon != want {
		t.Fatalf("position icon=%q", game.PositionIcon)
	}
	wantItems := []string{"https://ddragon.leagueoflegends.com/cdn/14.20.1/img/item/3089.png", "", "", "", "", ""}
	if !reflect.DeepEqual(game.ItemImages, wantItems) {
		t.Fatalf("item images=%v", game.ItemImages)
	}

	ext, ok := game.Standard()
	if !ok {
		t.Fatalf("expected standard extension, got %T", game.Extension)
	}
	wantSpells := []string{
		"https://ddragon.leagueoflegends.com/cdn/14.20.1/img/spell/SummonerFlash.png",
		"https://ddragon.leagueoflegends.com/cdn/14.20.1/img/spell/SummonerDot.png",
	}
	if !reflect.DeepEqual(ext.SpellImages, wantSpells) {
		t.Fatalf("spell images=%v", ext.SpellImages)
	}
}

func TestNormalizer_GameFreeForAll(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)
	game, err := n.Game(newArenaRaw(), puuidAt(3))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	ext, ok := game.FreeForAll()
	if !ok {
		t.Fatalf("expected free-for-all extension, got %T", game.Extension)
	}
	if _, ok := game.Standard(); ok {
		t.Fatalf("arena game must not carry a standard extension")
	}
	if len(ext.Augments) != 2 || ext.Augments[0].ID != 1 || ext.Augments[1].ID != 2 {
		t.Fatalf("augments=%+v", ext.Augments)
	}
	if ext.Augments[1].Icon != "https://raw.communitydragon.org/latest/game/assets/ux/cherry/augments/icons/vulnerability_large.png" {
		t.Fatalf("augment icon=%q", ext.Augments[1].Icon)
	}
	if ext.Placement != 4 || ext.SubteamPlacement != 4 {
		t.Fatalf("placement=%d subteam=%d", ext.Placement, ext.SubteamPlacement)
	}
	if game.GameMode != "Arena" {
		t.Fatalf("game mode=%q", game.GameMode)
	}
}

func TestNormalizer_GameErrors(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	tests := []struct {
		name   string
		mutate func(*Raw) *Raw
		puuid  string
		want   error
	}{
		{
			name:   "requester absent",
			mutate: func(r *Raw) *Raw { return r },
			puuid:  "someone-else",
			want:   ErrMalformedMatch,
		},
		{
			name: "length mismatch",
			mutate: func(r *Raw) *Raw {
				r.Metadata.Participants = r.Metadata.Participants[:9]
				return r
			},
			puuid: puuidAt(0),
			want:  ErrMalformedMatch,
		},
		{
			name: "identity mismatch",
			mutate: func(r *Raw) *Raw {
				r.Metadata.Participants[4], r.Metadata.Participants[5] = r.Metadata.Participants[5], r.Metadata.Participants[4]
				return r
			},
			puuid: puuidAt(0),
			want:  ErrMalformedMatch,
		},
		{
			name: "single rune style",
			mutate: func(r *Raw) *Raw {
				r.Info.Participants[0].Perks.Styles = r.Info.Participants[0].Perks.Styles[:1]
				return r
			},
			puuid: puuidAt(0),
			want:  ErrMalformedMatch,
		},
		{
			name: "standard participant without rune styles",
			mutate: func(r *Raw) *Raw {
				r.Info.Participants[0].Perks = Perks{}
				return r
			},
			puuid: puuidAt(0),
			want:  ErrMalformedMatch,
		},
		{
			name: "arena participant without rune styles",
			mutate: func(_ *Raw) *Raw {
				r := newArenaRaw()
				r.Info.Participants[0].Perks = Perks{}
				return r
			},
			puuid: puuidAt(0),
			want:  ErrMalformedMatch,
		},
		{
			name: "unknown augment",
			mutate: func(_ *Raw) *Raw {
				r := newArenaRaw()
				r.Info.Participants[0].PlayerAugment4 = 999999
				return r
			},
			puuid: puuidAt(0),
			want:  catalog.ErrConfigurationGap,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := n.Game(tc.mutate(newRaw(420)), tc.puuid)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNormalizer_KillParticipationZeroTeamKills(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)
	raw := newRaw(420)
	for i := 5; i < 10; i++ {
		raw.Info.Participants[i].Kills = 0
	}

	game, err := n.Game(raw, puuidAt(7))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if game.KillParticipation != 0 {
		t.Fatalf("kp=%v, want 0", game.KillParticipation)
	}
}

func TestNormalizer_DefaultWard(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)
	raw := newRaw(420)
	raw.Info.Participants[1].Item6 = 0

	game, err := n.Game(raw, puuidAt(1))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if game.Ward != DefaultWardItemID {
		t.Fatalf("ward=%d, want %d", game.Ward, DefaultWardItemID)
	}
}

func TestNormalizer_UnknownQueueFallsBackToGameMode(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)
	raw := newRaw(4242)
	raw.Info.GameMode = "SWIFTPLAY"

	game, err := n.Game(raw, puuidAt(0))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if game.GameMode != "SWIFTPLAY" {
		t.Fatalf("game mode=%q", game.GameMode)
	}
}

func TestGame_JSONRoundTripKeepsVariant(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)
	for _, raw := range []*Raw{newRaw(420), newArenaRaw()} {
		game, err := n.Game(raw, puuidAt(0))
		if err != nil {
			t.Fatalf("normalize: %v", err)
		}

		data, err := sonic.Marshal(game)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded Game
		if err := sonic.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if decoded.Extension.Variant() != game.Extension.Variant() {
			t.Fatalf("variant=%s, want %s", decoded.Extension.Variant(), game.Extension.Variant())
		}
		if !reflect.DeepEqual(decoded, game) {
			t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, game)
		}
	}
}

func TestGame_MarshalWithoutExtensionFails(t *testing.T) {
	t.Parallel()

	if _, err := (Game{Envelope: Envelope{MatchID: "EUW1_9"}}).MarshalJSON(); err == nil {
		t.Fatalf("expected error for game without extension")
	}
}

func TestTeamSlice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		idx, n     int
		start, end int
	}{
		{idx: 0, n: 10, start: 0, end: 5},
		{idx: 4, n: 10, start: 0, end: 5},
		{idx: 5, n: 10, start: 5, end: 10},
		{idx: 9, n: 10, start: 5, end: 10},
		{idx: 2, n: 3, start: 0, end: 3},
		{idx: 6, n: 8, start: 5, end: 8},
	}
	for _, tc := range tests {
		start, end := TeamSlice(tc.idx, tc.n)
		if start != tc.start || end != tc.end {
			t.Fatalf("TeamSlice(%d,%d)=[%d,%d), want [%d,%d)", tc.idx, tc.n, start, end, tc.start, tc.end)
		}
	}
}
