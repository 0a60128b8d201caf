package engine

// Results is the end-game report.
type Results struct {
	// Tally maps each adjacency count 1..8 to how many revealed tiles show
	// it. All eight keys are always present.
	Tally map[int]int `json:"tally"`
	// Silent is true when the game was won: no dragon hatched.
	Silent bool `json:"silent"`
	// Perfect is true when every mine was flagged at the end.
	Perfect bool `json:"perfect"`
}

// CountResults tallies a finished board. victory becomes Results.Silent.
func CountResults(board *Board, victory bool) Results {
	res := Results{
		Tally:   make(map[int]int, MaxAdjacency),
		Silent:  victory,
		Perfect: true,
	}
	for n := 1; n <= MaxAdjacency; n++ {
		res.Tally[n] = 0
	}

	for _, t := range board.tiles {
		if t.Revealed && t.Count > 0 {
			res.Tally[t.Count]++
		}
		if t.Mine && !t.Flagged {
			res.Perfect = false
		}
	}
	return res
}

// Total returns the number of numbered tiles uncovered.
func (r Results) Total() int {
	total := 0
	for _, n := range r.Tally {
		total += n
	}
	return total
}

func (r Results) clone() Results {
	tally := make(map[int]int, len(r.Tally))
	for k, v := range r.Tally {
		tally[k] = v
	}
	r.Tally = tally
	return r
}
