package match

// Seat pairs a metadata identity with the participant record at the same index.
type Seat struct {
	Index       int
	PUUID       string
	Participant *Participant
}

// Seats checks the index alignment between metadata.participants and info.participants once
// and returns the combined sequence.
func Seats(raw *Raw) ([]Seat, error) {
	ids := raw.Metadata.Participants
	participants := raw.Info.Participants
	if len(ids) != len(participants) {
		return nil, malformed(raw.Metadata.MatchID, "%d identities for %d participants", len(ids), len(participants))
	}
	if len(participants) == 0 {
		return nil, malformed(raw.Metadata.MatchID, "no participants")
	}

	seats := make([]Seat, len(ids))
	for i, id := range ids {
		p := &participants[i]
		if p.PUUID != id {
			return nil, malformed(raw.Metadata.MatchID, "participant %d is %s, metadata says %s", i, p.PUUID, id)
		}
		seats[i] = Seat{Index: i, PUUID: id, Participant: p}
	}
	return seats, nil
}

// SeatOf returns the index of puuid, or -1.
func SeatOf(seats []Seat, puuid string) int {
	if puuid == "" {
		return -1
	}
	for _, s := range seats {
		if s.PUUID == puuid {
			return s.Index
		}
	}
	return -1
}

// TeamSlice returns the [start,end) range of the half that holds idx, clamped to n.
func TeamSlice(idx, n int) (int, int) {
	start := 0
	if idx >= teamSize {
		start = teamSize
	}
	end := start + teamSize
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

// TeamKills sums kills over the half of the lobby that holds idx.
func TeamKills(seats []Seat, idx int) int {
	start, end := TeamSlice(idx, len(seats))
	total := 0
	for _, s := range seats[start:end] {
		total += s.Participant.Kills
	}
	return total
}

// KillParticipation is (kills+assists)/teamKills, defined as 0 when the team has no kills.
func KillParticipation(kills, assists, teamKills int) float64 {
	if teamKills <= 0 {
		return 0
	}
	return float64(kills+assists) / float64(teamKills)
}
