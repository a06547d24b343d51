package sonolus

import (
	"log"

	pkgerrors "github.com/pkg/errors"

	"github.com/karitora/sonodex/archetype"
	"github.com/karitora/sonodex/model"
)

// converter is the per-document slide assembler state. All entities of
// one slide are assumed to appear consecutively in the document, start
// first and end last; fragments of interleaved slides are undefined
// behavior and only the cheap cases are diagnosed.
type converter struct {
	score *model.Score
	ids   model.IDGen

	// id of the start note of the most recently started slide, -1 until
	// the first slide start; a slide end does not reset it
	currentSlide int

	// symbolic entity names to assigned note ids
	refToID map[string]int
}

// Convert runs the forward pass over the document's entities, resolves
// attached-tick geometry and finalizes ordering. The returned Score owns
// every note; holds reference notes by id only.
func Convert(doc *LevelData) (*model.Score, error) {
	if doc.BgmOffset == nil {
		return nil, pkgerrors.Wrap(ErrStructural, "bgmOffset is not a number")
	}
	if doc.Entities == nil {
		return nil, pkgerrors.Wrap(ErrStructural, "entities is not an array")
	}

	c := converter{
		score:        model.NewScore(),
		currentSlide: -1,
		refToID:      make(map[string]int),
	}
	c.score.Metadata.MusicOffsetMs = -1000 * *doc.BgmOffset

	for i := range doc.Entities {
		if err := c.convertEntity(&doc.Entities[i]); err != nil {
			return nil, err
		}
	}

	if err := reconcileSlideEnds(c.score); err != nil {
		return nil, err
	}
	if err := ResolveAttached(c.score); err != nil {
		return nil, err
	}
	c.score.SortTempoChanges()
	return c.score, nil
}

func (c *converter) convertEntity(e *Entity) error {
	t, err := archetype.FromString(e.Archetype)
	if err != nil {
		return err
	}

	// Entities with no effect on the score
	if t == archetype.SimLine || t == archetype.IgnoredSlideTick {
		return nil
	}

	switch t.GetCategory() {
	case archetype.CategoryInit:
		return nil
	case archetype.CategoryTiming:
		return c.convertTiming(e, t)
	case archetype.CategorySingle:
		return c.convertSingle(e, t)
	case archetype.CategorySlideStart:
		return c.convertSlideStart(e, t)
	case archetype.CategorySlideTick:
		return c.convertSlideTick(e, t)
	case archetype.CategorySlideEnd:
		return c.convertSlideEnd(e, t)
	case archetype.CategoryConnector:
		return c.convertConnector(e, t)
	case archetype.CategoryGuideSlide:
		return c.convertGuide(e)
	default:
		log.Printf("warning: unhandled entity %q (%v)", e.Name, e.Archetype)
		return nil
	}
}

func (c *converter) convertTiming(e *Entity, t archetype.Type) error {
	data := NewDataMap(e.Data)
	switch t {
	case archetype.TimeScaleGroup:
		c.score.Layers = append(c.score.Layers, model.Layer{Name: e.Name})
		return nil
	case archetype.TimeScaleChange:
		tick, err := requireTick(e, data)
		if err != nil {
			return err
		}
		speed, ok := data.Num("timeScale")
		if !ok {
			if speed, ok = data.Num("#TIMESCALE"); !ok {
				return structural(e, "missing timeScale")
			}
		}
		id := c.ids.NextHiSpeedID()
		c.score.HiSpeedChanges[id] = &model.HiSpeedChange{
			ID:    id,
			Tick:  tick,
			Speed: speed,
			Layer: layerFromEntityName(e.Name),
		}
		return nil
	default: // BPMChange
		tick, err := requireTick(e, data)
		if err != nil {
			return err
		}
		bpm, ok := data.Num("#BPM")
		if !ok {
			return structural(e, "missing #BPM")
		}
		c.score.TempoChanges = append(c.score.TempoChanges, model.Tempo{Tick: tick, BPM: bpm})
		return nil
	}
}

func (c *converter) convertSingle(e *Entity, t archetype.Type) error {
	data := NewDataMap(e.Data)
	tick, lane, width, err := requirePlacement(e, data)
	if err != nil {
		return err
	}

	noteType := model.NoteTap
	var critical, friction bool
	if t == archetype.DamageNote {
		noteType = model.NoteDamage
	} else {
		if critical, err = t.Critical(); err != nil {
			return err
		}
		if friction, err = t.Friction(); err != nil {
			return err
		}
	}

	id := c.ids.NextNoteID()
	c.score.Notes[id] = &model.Note{
		ID:       id,
		Type:     noteType,
		ParentID: -1,
		Tick:     tick,
		Lane:     lane,
		Width:    width,
		Critical: critical,
		Friction: friction,
		Flick:    data.Flick(),
		Layer:    data.LayerIndex(),
	}
	return nil
}

func (c *converter) convertSlideStart(e *Entity, t archetype.Type) error {
	data := NewDataMap(e.Data)
	tick, lane, width, err := requirePlacement(e, data)
	if err != nil {
		return err
	}
	critical, err := t.Critical()
	if err != nil {
		return err
	}
	friction, err := t.Friction()
	if err != nil {
		return err
	}

	id := c.ids.NextNoteID()
	c.score.Notes[id] = &model.Note{
		ID:       id,
		Type:     model.NoteHold,
		ParentID: -1,
		Tick:     tick,
		Lane:     lane,
		Width:    width,
		Critical: critical,
		Friction: friction,
		Layer:    data.LayerIndex(),
	}

	// End note and per-segment eases are unknown until the rest of the
	// slide streams in
	hold := &model.HoldNote{
		Start: model.HoldStep{ID: id, Type: model.StepNormal, Ease: model.EaseLinear},
		End:   -1,
	}
	if t == archetype.HiddenSlideStart {
		hold.StartType = model.HoldHidden
	}
	c.score.HoldNotes[id] = hold

	c.refToID[e.Name] = id
	c.currentSlide = id
	return nil
}

func (c *converter) convertSlideTick(e *Entity, t archetype.Type) error {
	if c.currentSlide < 0 {
		return pkgerrors.Wrapf(ErrMalformedSlide, "slide tick %q before any slide start", e.Name)
	}
	data := NewDataMap(e.Data)
	tick, err := requireTick(e, data)
	if err != nil {
		return err
	}
	critical, err := t.Critical()
	if err != nil {
		return err
	}

	attached := t == archetype.NormalAttachedSlideTick || t == archetype.CriticalAttachedSlideTick
	stepType := model.StepNormal
	ease := model.EaseUndetermined
	if attached {
		stepType = model.StepSkip
		ease = model.EaseLinear
	} else if t == archetype.HiddenSlideTick {
		stepType = model.StepHidden
	}

	// Attached ticks carry no geometry of their own; a placeholder is
	// replaced by the curve-interpolation pass
	lane, width := 0.0, 2.0
	if !attached {
		if _, lane, width, err = requirePlacement(e, data); err != nil {
			return err
		}
	}

	id := c.ids.NextNoteID()
	hold := c.score.HoldNotes[c.currentSlide]
	hold.Steps = append(hold.Steps, model.HoldStep{ID: id, Type: stepType, Ease: ease})
	c.score.Notes[id] = &model.Note{
		ID:       id,
		Type:     model.NoteHoldMid,
		ParentID: c.currentSlide,
		Tick:     tick,
		Lane:     lane,
		Width:    width,
		Critical: critical,
		Layer:    data.LayerIndex(),
	}
	if !attached {
		c.refToID[e.Name] = id
	}
	return nil
}

func (c *converter) convertSlideEnd(e *Entity, t archetype.Type) error {
	if c.currentSlide < 0 {
		return pkgerrors.Wrapf(ErrMalformedSlide, "slide end %q before any slide start", e.Name)
	}
	data := NewDataMap(e.Data)
	tick, lane, width, err := requirePlacement(e, data)
	if err != nil {
		return err
	}
	critical, err := t.Critical()
	if err != nil {
		return err
	}
	friction, err := t.Friction()
	if err != nil {
		return err
	}

	id := c.ids.NextNoteID()
	c.score.Notes[id] = &model.Note{
		ID:       id,
		Type:     model.NoteHoldEnd,
		ParentID: c.currentSlide,
		Tick:     tick,
		Lane:     lane,
		Width:    width,
		Critical: critical,
		Friction: friction,
		Flick:    data.Flick(),
		Layer:    data.LayerIndex(),
	}
	hold := c.score.HoldNotes[c.currentSlide]
	hold.End = id
	c.score.SortHoldSteps(hold)
	return nil
}

func (c *converter) convertConnector(e *Entity, t archetype.Type) error {
	if c.currentSlide < 0 {
		return pkgerrors.Wrapf(ErrMalformedSlide, "connector %q before any slide start", e.Name)
	}
	hold := c.score.HoldNotes[c.currentSlide]
	if hold.IsGuide() {
		log.Printf("warning: probably mixing different kinds of connectors in slide %v", c.currentSlide)
	}

	data := NewDataMap(e.Data)
	ease, err := data.Ease()
	if err != nil {
		return pkgerrors.Wrapf(err, "connector %q", e.Name)
	}
	head, ok := data.RefTo("head")
	if !ok {
		return structural(e, "missing head ref")
	}
	targetID, ok := c.refToID[head]
	if !ok {
		return pkgerrors.Wrapf(ErrMalformedSlide, "connector %q: unknown head %q", e.Name, head)
	}
	index, ok := hold.FindStep(targetID)
	if !ok {
		return pkgerrors.Wrapf(ErrMalformedSlide, "connector %q: head %q is not part of the current slide", e.Name, head)
	}
	hold.StepAt(index).Ease = ease

	// Connectors are the authoritative source of criticality for the
	// head of each segment; the last connector wins
	critical, err := t.Critical()
	if err != nil {
		return err
	}
	c.score.Notes[targetID].Critical = critical
	return nil
}

func (c *converter) convertGuide(e *Entity) error {
	data := NewDataMap(e.Data)
	if err := checkGuideGroups(e, data); err != nil {
		return err
	}

	start, err := c.guideAnchor(e, data, "startBeat", "startLane", "startSize", "startTimeScaleGroup")
	if err != nil {
		return err
	}
	end, err := c.guideAnchor(e, data, "endBeat", "endLane", "endSize", "endTimeScaleGroup")
	if err != nil {
		return err
	}

	ease, err := data.Ease()
	if err != nil {
		return pkgerrors.Wrapf(err, "guide %q", e.Name)
	}
	fade, color, err := guideStyle(e, data)
	if err != nil {
		return err
	}

	startID := c.ids.NextNoteID()
	start.ID = startID
	start.Type = model.NoteHold
	start.ParentID = -1
	c.score.Notes[startID] = start

	endID := c.ids.NextNoteID()
	end.ID = endID
	end.Type = model.NoteHoldEnd
	end.ParentID = startID
	c.score.Notes[endID] = end

	c.score.HoldNotes[startID] = &model.HoldNote{
		Start:      model.HoldStep{ID: startID, Type: model.StepNormal, Ease: ease},
		End:        endID,
		StartType:  model.HoldGuide,
		EndType:    model.HoldGuide,
		Fade:       fade,
		GuideColor: color,
	}
	return nil
}

// guideAnchor builds one endpoint note of a guide from its prefixed
// beat/lane/size/group fields.
func (c *converter) guideAnchor(e *Entity, data DataMap, beatKey, laneKey, sizeKey, groupKey string) (*model.Note, error) {
	beat, ok := data.Num(beatKey)
	if !ok {
		return nil, structural(e, "missing "+beatKey)
	}
	lane, ok := data.Num(laneKey)
	if !ok {
		return nil, structural(e, "missing "+laneKey)
	}
	size, ok := data.Num(sizeKey)
	if !ok {
		return nil, structural(e, "missing "+sizeKey)
	}
	layer := 0
	if ref, ok := data.RefTo(groupKey); ok {
		layer = groupIndex(ref) + 1
	}
	return &model.Note{
		Tick:  beatToTick(beat),
		Lane:  lane - size + 6,
		Width: size * 2,
		Layer: layer,
	}, nil
}

// Guides carry the same group twice under start/head and end/tail names;
// a document where the pairs disagree is rejected.
func checkGuideGroups(e *Entity, data DataMap) error {
	pairs := [][2]string{
		{"startTimeScaleGroup", "headTimeScaleGroup"},
		{"endTimeScaleGroup", "tailTimeScaleGroup"},
	}
	for _, pair := range pairs {
		a, okA := data.RefTo(pair[0])
		b, okB := data.RefTo(pair[1])
		if okA && okB && a != b {
			return structural(e, pair[0]+" and "+pair[1]+" disagree")
		}
	}
	return nil
}

func guideStyle(e *Entity, data DataMap) (model.FadeType, model.GuideColor, error) {
	fade := model.FadeOut
	if v, ok := data.Num("fade"); ok {
		if v != 0 && v != 1 && v != 2 {
			return 0, 0, structural(e, "fade out of range")
		}
		fade = model.FadeType(v)
	}
	color := model.ColorGreen
	if v, ok := data.Num("color"); ok {
		if v < 0 || v > 7 || v != float64(int(v)) {
			return 0, 0, structural(e, "color out of range")
		}
		color = model.GuideColor(v)
	}
	return fade, color, nil
}

func structural(e *Entity, msg string) error {
	return pkgerrors.Wrapf(ErrStructural, "entity %q (%v): %v", e.Name, e.Archetype, msg)
}

func requireTick(e *Entity, data DataMap) (int, error) {
	tick, ok := data.Tick()
	if !ok {
		return 0, structural(e, "missing #BEAT")
	}
	return tick, nil
}

func requirePlacement(e *Entity, data DataMap) (tick int, lane, width float64, err error) {
	if tick, err = requireTick(e, data); err != nil {
		return
	}
	var ok bool
	if width, ok = data.Width(); !ok {
		err = structural(e, "missing size")
		return
	}
	if lane, ok = data.Lane(); !ok {
		err = structural(e, "missing lane")
		return
	}
	return
}
