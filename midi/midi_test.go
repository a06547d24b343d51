package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/karitora/sonodex/constants"
	"github.com/karitora/sonodex/model"
)

func TestExportOrdersEventsByTick(t *testing.T) {
	assert := assert.New(t)

	score := model.NewScore()
	score.TempoChanges = []model.Tempo{{Tick: 0, BPM: 120}}
	score.Notes[0] = &model.Note{ID: 0, Type: model.NoteTap, Tick: 960, Lane: 5, Width: 2}
	score.Notes[1] = &model.Note{ID: 1, Type: model.NoteTap, Tick: 0, Lane: 2, Width: 2, Critical: true}

	s := Export(score)
	assert.Equal(smf.MetricTicks(constants.TicksPerBeat), s.TimeFormat)
	assert.Len(s.Tracks, 1)

	// tempo, two on/off pairs, end-of-track
	track := s.Tracks[0]
	assert.Len(track, 6)

	// deltas never rewind
	absolute := 0
	for _, ev := range track {
		absolute += int(ev.Delta)
	}
	assert.Equal(960+tapGate, absolute)
}

func TestExportSustainsHoldsAndSkipsGuides(t *testing.T) {
	assert := assert.New(t)

	score := model.NewScore()
	score.Notes[0] = &model.Note{ID: 0, Type: model.NoteHold, Tick: 0, Lane: 5, Width: 2}
	score.Notes[1] = &model.Note{ID: 1, Type: model.NoteHoldEnd, Tick: 1920, Lane: 5, Width: 2, ParentID: 0}
	score.HoldNotes[0] = &model.HoldNote{Start: model.HoldStep{ID: 0}, End: 1}

	score.Notes[2] = &model.Note{ID: 2, Type: model.NoteHold, Tick: 0, Lane: 0, Width: 2}
	score.Notes[3] = &model.Note{ID: 3, Type: model.NoteHoldEnd, Tick: 960, Lane: 0, Width: 2, ParentID: 2}
	score.HoldNotes[2] = &model.HoldNote{
		Start:     model.HoldStep{ID: 2},
		End:       3,
		StartType: model.HoldGuide,
		EndType:   model.HoldGuide,
	}

	track := Export(score).Tracks[0]
	// one on/off pair for the hold, none for the guide, end-of-track
	assert.Len(track, 3)

	absolute := 0
	for _, ev := range track {
		absolute += int(ev.Delta)
	}
	assert.Equal(1920, absolute)
}

func TestKeyForClampsLanes(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(baseKey), keyFor(&model.Note{Lane: -3}))
	assert.Equal(uint8(baseKey+11), keyFor(&model.Note{Lane: 14}))
	assert.Equal(uint8(baseKey+5), keyFor(&model.Note{Lane: 5}))
}
