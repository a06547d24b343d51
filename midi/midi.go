// Package midi renders a converted score to a Standard MIDI File so a
// chart can be auditioned in any sequencer.
package midi

import (
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/karitora/sonodex/constants"
	"github.com/karitora/sonodex/model"
)

const (
	baseKey          = 48 // C3 for lane 0
	tapGate          = constants.TicksPerBeat / 4
	velocity         = 100
	criticalVelocity = 127
)

const (
	rankTempo = iota
	rankNoteOff
	rankNoteOn
)

type event struct {
	tick int
	rank int
	msg  []byte
}

func keyFor(n *model.Note) uint8 {
	lane := int(n.Lane)
	if lane < constants.MinLane {
		lane = constants.MinLane
	}
	if lane > constants.MaxLane {
		lane = constants.MaxLane
	}
	return uint8(baseKey + lane)
}

func velocityFor(n *model.Note) uint8 {
	if n.Critical {
		return criticalVelocity
	}
	return velocity
}

// Export renders tempo changes and playable notes. Holds sound from
// their start note to their end note; guide slides are decorative and
// stay silent.
func Export(score *model.Score) *smf.SMF {
	var events []event

	for _, tempo := range score.TempoChanges {
		events = append(events, event{
			tick: tempo.Tick,
			rank: rankTempo,
			msg:  smf.MetaTempo(tempo.BPM),
		})
	}

	for _, n := range score.Notes {
		if n.IsHold() {
			continue
		}
		events = append(events, noteEvents(n, n.Tick+tapGate)...)
	}

	for _, hold := range score.HoldNotes {
		if hold.IsGuide() {
			continue
		}
		start := score.Notes[hold.Start.ID]
		end := score.Notes[hold.End]
		events = append(events, noteEvents(start, end.Tick)...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].rank < events[j].rank
	})

	var res smf.SMF
	res.TimeFormat = smf.MetricTicks(constants.TicksPerBeat)

	var track smf.Track
	prev := 0
	for _, ev := range events {
		track = append(track, smf.Event{
			Delta:   uint32(ev.tick - prev),
			Message: smf.Message(ev.msg),
		})
		prev = ev.tick
	}
	track.Close(0)
	res.Tracks = append(res.Tracks, track)
	return &res
}

func noteEvents(n *model.Note, offTick int) []event {
	key := keyFor(n)
	return []event{
		{tick: n.Tick, rank: rankNoteOn, msg: midi.NoteOn(0, key, velocityFor(n))},
		{tick: offTick, rank: rankNoteOff, msg: midi.NoteOff(0, key)},
	}
}

func WriteFile(score *model.Score, path string) error {
	return Export(score).WriteFile(path)
}
