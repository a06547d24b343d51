package model

import (
	"sort"

	"github.com/karitora/sonodex/constants"
)

type Tempo struct {
	Tick int     `json:"tick"`
	BPM  float64 `json:"bpm"`
}

type HiSpeedChange struct {
	ID    int     `json:"id"`
	Tick  int     `json:"tick"`
	Speed float64 `json:"speed"`
	Layer int     `json:"layer"`
}

// Layer is a time-scale group, a separate track of hi-speed changes that
// notes may belong to
type Layer struct {
	Name string `json:"name"`
}

type Metadata struct {
	MusicOffsetMs float64 `json:"music_offset_ms"`
}

type Score struct {
	Metadata Metadata `json:"metadata"`

	Notes     map[int]*Note     `json:"notes"`
	HoldNotes map[int]*HoldNote `json:"hold_notes"`

	TempoChanges   []Tempo                `json:"tempo_changes"`
	HiSpeedChanges map[int]*HiSpeedChange `json:"hi_speed_changes"`

	Layers []Layer `json:"layers"`
}

func NewScore() *Score {
	return &Score{
		Notes:          make(map[int]*Note),
		HoldNotes:      make(map[int]*HoldNote),
		HiSpeedChanges: make(map[int]*HiSpeedChange),
		Layers:         []Layer{{Name: "default"}},
	}
}

// SortHoldSteps orders a hold's steps by tick ascending. Ties keep their
// insertion order so equal-tick steps stay as the chart listed them.
func (s *Score) SortHoldSteps(hold *HoldNote) {
	sort.SliceStable(hold.Steps, func(i, j int) bool {
		return s.Notes[hold.Steps[i].ID].Tick < s.Notes[hold.Steps[j].ID].Tick
	})
}

// SortTempoChanges orders tempo changes by tick, keeping document order
// for equal ticks, and guarantees at least one tempo exists.
func (s *Score) SortTempoChanges() {
	if len(s.TempoChanges) == 0 {
		s.TempoChanges = append(s.TempoChanges, Tempo{Tick: 0, BPM: constants.DefaultBPM})
	}
	sort.SliceStable(s.TempoChanges, func(i, j int) bool {
		return s.TempoChanges[i].Tick < s.TempoChanges[j].Tick
	})
}
