package sonolus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karitora/sonodex/model"
)

func TestResolveAttachedLinearRun(t *testing.T) {
	assert := assert.New(t)

	// Three attached ticks between a linear start (0..2) and the end
	// (8..12), at quarters of the segment
	entities := []Entity{
		entity("s", "NormalSlideStart", num("#BEAT", 0), num("lane", -5), num("size", 1)),
		entity("c0", "NormalSlideConnector", ref("head", "s"), num("ease", 0)),
		entity("a0", "NormalAttachedSlideTick", num("#BEAT", 1)),
		entity("a1", "NormalAttachedSlideTick", num("#BEAT", 2)),
		entity("a2", "NormalAttachedSlideTick", num("#BEAT", 3)),
		entity("e", "NormalSlideEnd", num("#BEAT", 4), num("lane", 4), num("size", 2)),
	}
	score, err := Convert(doc(0, entities...))
	assert.NoError(err)

	hold := singleHold(score, t)
	assert.Len(hold.Steps, 3)

	expected := []struct{ lane, width float64 }{
		{2, 3}, // u=0.25: left=2, right=4.5
		{4, 3}, // u=0.50: left=4, right=7
		{6, 4}, // u=0.75: left=6, right=9.5
	}
	for i, e := range expected {
		n := score.Notes[hold.Steps[i].ID]
		assert.Equal(e.lane, n.Lane, "step %v", i)
		assert.Equal(e.width, n.Width, "step %v", i)
	}
}

func TestResolveAttachedWidthNeverBelowOne(t *testing.T) {
	assert := assert.New(t)

	entities := []Entity{
		entity("s", "NormalSlideStart", num("#BEAT", 0), num("lane", -5.5), num("size", 0.5)),
		entity("c0", "NormalSlideConnector", ref("head", "s"), num("ease", 0)),
		entity("a0", "NormalAttachedSlideTick", num("#BEAT", 1)),
		entity("e", "NormalSlideEnd", num("#BEAT", 2), num("lane", -5.5), num("size", 0.5)),
	}
	score, err := Convert(doc(0, entities...))
	assert.NoError(err)

	hold := singleHold(score, t)
	n := score.Notes[hold.Steps[0].ID]
	assert.Equal(1.0, n.Width)

	// The resolved span stays inside the right bracket, up to rounding
	end := score.Notes[hold.End]
	assert.LessOrEqual(n.Lane+n.Width, end.Lane+end.Width+0.5)
}

func TestResolveAttachedIsIdempotent(t *testing.T) {
	assert := assert.New(t)

	score, err := Convert(doc(0, slideEntities()...))
	assert.NoError(err)

	type placement struct{ lane, width float64 }
	before := make(map[int]placement)
	for id, n := range score.Notes {
		before[id] = placement{n.Lane, n.Width}
	}

	assert.NoError(ResolveAttached(score))
	for id, n := range score.Notes {
		assert.Equal(before[id], placement{n.Lane, n.Width}, "note %v", id)
	}
}

func TestDegenerateSegment(t *testing.T) {
	entities := []Entity{
		entity("s", "NormalSlideStart", num("#BEAT", 0), num("lane", 0), num("size", 1)),
		entity("c0", "NormalSlideConnector", ref("head", "s"), num("ease", 0)),
		entity("a0", "NormalAttachedSlideTick", num("#BEAT", 0)),
		entity("e", "NormalSlideEnd", num("#BEAT", 0), num("lane", 0), num("size", 1)),
	}
	_, err := Convert(doc(0, entities...))
	assert.ErrorIs(t, err, ErrDegenerateSegment)
}

func TestReconcileRejectsInnerUndetermined(t *testing.T) {
	score := model.NewScore()
	score.Notes[0] = &model.Note{ID: 0, Type: model.NoteHold, Tick: 0}
	score.Notes[1] = &model.Note{ID: 1, Type: model.NoteHoldMid, Tick: 480, ParentID: 0}
	score.Notes[2] = &model.Note{ID: 2, Type: model.NoteHoldMid, Tick: 960, ParentID: 0}
	score.HoldNotes[0] = &model.HoldNote{
		Start: model.HoldStep{ID: 0, Ease: model.EaseLinear},
		Steps: []model.HoldStep{
			{ID: 1, Type: model.StepNormal, Ease: model.EaseUndetermined},
			{ID: 2, Type: model.StepNormal, Ease: model.EaseLinear},
		},
		End: -1,
	}
	err := reconcileSlideEnds(score)
	assert.ErrorIs(t, err, ErrMalformedSlide)
}
