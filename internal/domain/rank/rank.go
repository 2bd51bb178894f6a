package rank

import "strings"

const (
	QueueSolo  = "RANKED_SOLO_5x5"
	QueueArena = "CHERRY"

	unrankedLabel = "Unranked"
	unrankedImage = "unranked.png"
)

// Entry is one ranked queue standing as sent upstream. Tier and Rank are empty for
// queues without a ladder.
type Entry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// Slot is the display form of one queue.
type Slot struct {
	Rank    string  `json:"rank"`
	Image   string  `json:"image"`
	LP      int     `json:"lp"`
	Win     int     `json:"win"`
	Lose    int     `json:"lose"`
	Winrate float64 `json:"winrate"`
}

// Reconciled always carries all three slots.
type Reconciled struct {
	Solo  Slot `json:"solo"`
	Flex  Slot `json:"flex"`
	Arena Slot `json:"arena"`
}

func Unranked() Slot {
	return Slot{Rank: unrankedLabel, Image: unrankedImage}
}

// Reconcile sorts an unordered list of entries into the solo, flex and arena slots.
// Every queue type that is neither solo nor arena lands in flex. Later entries win.
func Reconcile(entries []Entry) Reconciled {
	out := Reconciled{Solo: Unranked(), Flex: Unranked(), Arena: Unranked()}
	for _, e := range entries {
		switch e.QueueType {
		case QueueSolo:
			out.Solo = toSlot(e)
		case QueueArena:
			out.Arena = toSlot(e)
		default:
			out.Flex = toSlot(e)
		}
	}
	return out
}

// Winrate is wins/(wins+losses), 0 when no games were played.
func Winrate(wins, losses int) float64 {
	total := wins + losses
	if total <= 0 {
		return 0
	}
	return float64(wins) / float64(total)
}

func toSlot(e Entry) Slot {
	slot := Slot{
		Rank:    unrankedLabel,
		Image:   unrankedImage,
		LP:      e.LeaguePoints,
		Win:     e.Wins,
		Lose:    e.Losses,
		Winrate: Winrate(e.Wins, e.Losses),
	}
	// arena standings map to a cosmetic set, never to a tier
	if e.QueueType != QueueArena && e.Tier != "" {
		slot.Rank = strings.TrimSpace(e.Tier + " " + e.Rank)
		slot.Image = strings.ToLower(e.Tier) + ".png"
	}
	return slot
}
