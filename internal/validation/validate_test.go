package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
)

func participantFixture(puuid string) map[string]any {
	p := map[string]any{
		"puuid":                       puuid,
		"summonerName":                "player-" + puuid,
		"riotIdGameName":              "Player " + puuid,
		"riotIdTagline":               "EUW",
		"teamId":                      100,
		"teamPosition":                "MIDDLE",
		"championName":                "Ahri",
		"championId":                  103,
		"champLevel":                  16,
		"win":                         true,
		"gameEndedInEarlySurrender":   false,
		"kills":                       5,
		"deaths":                      2,
		"assists":                     7,
		"doubleKills":                 1,
		"tripleKills":                 0,
		"quadraKills":                 0,
		"pentaKills":                  0,
		"largestMultiKill":            2,
		"goldEarned":                  12000,
		"neutralMinionsKilled":        10,
		"totalMinionsKilled":          180,
		"visionScore":                 22,
		"totalDamageDealtToChampions": 24000,
		"totalDamageTaken":            15000,
		"summoner1Id":                 4,
		"summoner2Id":                 14,
		"perks": map[string]any{
			"statPerks": map[string]any{"defense": 5001, "flex": 5008, "offense": 5005},
			"styles": []any{
				map[string]any{"description": "primaryStyle", "style": 8100, "selections": []any{
					map[string]any{"perk": 8112, "var1": 1, "var2": 0, "var3": 0},
				}},
				map[string]any{"description": "subStyle", "style": 8300, "selections": []any{
					map[string]any{"perk": 8345},
				}},
			},
		},
	}
	for i := 0; i <= 6; i++ {
		p["item"+string(rune('0'+i))] = 1000 + i
	}
	return p
}

func matchFixture() map[string]any {
	return map[string]any{
		"metadata": map[string]any{
			"dataVersion":  "2",
			"matchId":      "EUW1_100",
			"participants": []any{"a", "b"},
		},
		"info": map[string]any{
			"gameCreation": 1700000000000,
			"gameDuration": 1800,
			"gameMode":     "CLASSIC",
			"queueId":      420,
			"participants": []any{participantFixture("a"), participantFixture("b")},
			"teams": []any{
				map[string]any{
					"teamId": 100,
					"win":    true,
					"bans":   []any{map[string]any{"championId": 157, "pickTurn": 1}},
					"objectives": map[string]any{
						"baron":    map[string]any{"first": true, "kills": 1},
						"champion": map[string]any{"first": false, "kills": 30},
					},
				},
			},
		},
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := sonic.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return raw
}

func TestValidate_ValidMatchHasNoViolations(t *testing.T) {
	t.Parallel()

	if _, err := Validate(KindMatch, mustMarshal(t, matchFixture())); err != nil {
		t.Fatalf("expected valid match, got %v", err)
	}
}

func TestValidate_WrongPrimitiveNamesExactlyThatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(m map[string]any)
		path   string
	}{
		{
			name: "participant kills as string",
			mutate: func(m map[string]any) {
				m["info"].(map[string]any)["participants"].([]any)[1].(map[string]any)["kills"] = "5"
			},
			path: "info.participants[1].kills",
		},
		{
			name: "queue id as boolean",
			mutate: func(m map[string]any) {
				m["info"].(map[string]any)["queueId"] = true
			},
			path: "info.queueId",
		},
		{
			name: "objective kills as string",
			mutate: func(m map[string]any) {
				teams := m["info"].(map[string]any)["teams"].([]any)
				teams[0].(map[string]any)["objectives"].(map[string]any)["baron"].(map[string]any)["kills"] = "1"
			},
			path: "info.teams[0].objectives.baron.kills",
		},
		{
			name: "perk style selection as string",
			mutate: func(m map[string]any) {
				p := m["info"].(map[string]any)["participants"].([]any)[0].(map[string]any)
				styles := p["perks"].(map[string]any)["styles"].([]any)
				styles[0].(map[string]any)["selections"].([]any)[0].(map[string]any)["perk"] = "8112"
			},
			path: "info.participants[0].perks.styles[0].selections[0].perk",
		},
		{
			name: "metadata identity as number",
			mutate: func(m map[string]any) {
				m["metadata"].(map[string]any)["participants"].([]any)[0] = 7
			},
			path: "metadata.participants[0]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := matchFixture()
			tc.mutate(m)
			_, err := Validate(KindMatch, mustMarshal(t, m))
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected validation failure, got %v", err)
			}
			violations := Violations(err)
			if len(violations) != 1 {
				t.Fatalf("expected exactly one violation, got %+v", violations)
			}
			if violations[0].Path != tc.path {
				t.Fatalf("path=%s want=%s", violations[0].Path, tc.path)
			}
		})
	}
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	t.Parallel()

	m := matchFixture()
	info := m["info"].(map[string]any)
	delete(info, "gameDuration")
	info["gameMode"] = nil
	info["participants"].([]any)[0].(map[string]any)["win"] = "yes"

	_, err := Validate(KindMatch, mustMarshal(t, m))
	violations := Violations(err)
	if len(violations) != 3 {
		t.Fatalf("expected three violations, got %+v", violations)
	}

	got := map[string]string{}
	for _, v := range violations {
		got[v.Path] = v.Reason
	}
	if got["info.gameDuration"] != "required field is missing" {
		t.Fatalf("unexpected gameDuration reason: %q", got["info.gameDuration"])
	}
	if got["info.gameMode"] != "required field is null" {
		t.Fatalf("unexpected gameMode reason: %q", got["info.gameMode"])
	}
	if got["info.participants[0].win"] != "expected boolean, got string" {
		t.Fatalf("unexpected win reason: %q", got["info.participants[0].win"])
	}
	if !strings.Contains(err.Error(), "3 violation(s)") {
		t.Fatalf("unexpected error text: %s", err.Error())
	}
}

func TestValidate_OptionalFieldsMayBeNullOrAbsent(t *testing.T) {
	t.Parallel()

	m := matchFixture()
	p := m["info"].(map[string]any)["participants"].([]any)[0].(map[string]any)
	p["playerAugment1"] = nil
	delete(p, "riotIdGameName")
	p["placement"] = 3

	if _, err := Validate(KindMatch, mustMarshal(t, m)); err != nil {
		t.Fatalf("expected optional fields to pass, got %v", err)
	}

	p["placement"] = "third"
	violations := Violations(func() error { _, err := Validate(KindMatch, mustMarshal(t, m)); return err }())
	if len(violations) != 1 || violations[0].Path != "info.participants[0].placement" {
		t.Fatalf("expected optional field type to still be checked, got %+v", violations)
	}
}

func TestValidate_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Validate(KindAccount, []byte(`{"puuid":`))
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestDecode_RankEntries(t *testing.T) {
	t.Parallel()

	type entry struct {
		QueueType    string `json:"queueType"`
		Tier         string `json:"tier"`
		LeaguePoints int    `json:"leaguePoints"`
		Wins         int    `json:"wins"`
		Losses       int    `json:"losses"`
	}

	payload := []byte(`[{"queueType":"RANKED_SOLO_5x5","tier":"GOLD","rank":"II","leaguePoints":40,"wins":3,"losses":1},
		{"queueType":"CHERRY","leaguePoints":0,"wins":1,"losses":2}]`)

	got, err := Decode[[]entry](KindRankEntryList, payload)
	if err != nil {
		t.Fatalf("decode rank entries: %v", err)
	}
	if len(got) != 2 || got[0].Tier != "GOLD" || got[1].QueueType != "CHERRY" {
		t.Fatalf("unexpected decode result: %+v", got)
	}

	_, err = Decode[[]entry](KindRankEntryList, []byte(`[{"queueType":"RANKED_FLEX_SR","wins":1,"losses":1}]`))
	violations := Violations(err)
	if len(violations) != 1 || violations[0].Path != "[0].leaguePoints" {
		t.Fatalf("unexpected violations: %+v", violations)
	}
}

func TestDecodeEach_ReportsIndexedPaths(t *testing.T) {
	t.Parallel()

	type account struct {
		PUUID string `json:"puuid"`
	}

	good := []byte(`{"puuid":"p1","gameName":"Faker","tagLine":"KR1"}`)
	bad := []byte(`{"puuid":"p2","gameName":5,"tagLine":"KR1"}`)

	out, err := DecodeEach[account](KindAccount, [][]byte{good, good})
	if err != nil || len(out) != 2 || out[1].PUUID != "p1" {
		t.Fatalf("unexpected result out=%+v err=%v", out, err)
	}

	_, err = DecodeEach[account](KindAccount, [][]byte{good, bad})
	violations := Violations(err)
	if len(violations) != 1 || violations[0].Path != "[1].gameName" {
		t.Fatalf("unexpected violations: %+v", violations)
	}
}
