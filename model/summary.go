package model

type ChartNumToPath = map[uint32]string

type ScoreSummary struct {
	Notes          int `json:"notes"`
	HoldNotes      int `json:"hold_notes"`
	TempoChanges   int `json:"tempo_changes"`
	HiSpeedChanges int `json:"hi_speed_changes"`
	Layers         int `json:"layers"`
	LastTick       int `json:"last_tick"`
}

func Summarize(s *Score) ScoreSummary {
	sum := ScoreSummary{
		Notes:          len(s.Notes),
		HoldNotes:      len(s.HoldNotes),
		TempoChanges:   len(s.TempoChanges),
		HiSpeedChanges: len(s.HiSpeedChanges),
		Layers:         len(s.Layers),
	}
	for _, n := range s.Notes {
		if n.Tick > sum.LastTick {
			sum.LastTick = n.Tick
		}
	}
	return sum
}
