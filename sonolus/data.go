package sonolus

import (
	"math"
	"strconv"
	"strings"

	"github.com/karitora/sonodex/constants"
	"github.com/karitora/sonodex/model"
)

// DataValue is one normalized entry of an entity's data array: either a
// literal number or a symbolic ref to another entity's name.
type DataValue struct {
	Num   float64
	Ref   string
	IsRef bool
}

type DataMap map[string]DataValue

// NewDataMap flattens an entity's data array into a name-keyed lookup.
// Later records win on duplicate names.
func NewDataMap(items []DataItem) DataMap {
	m := make(DataMap, len(items))
	for _, item := range items {
		switch {
		case item.Value != nil:
			m[item.Name] = DataValue{Num: *item.Value}
		case item.Ref != nil:
			m[item.Name] = DataValue{Ref: *item.Ref, IsRef: true}
		default:
			m[item.Name] = DataValue{}
		}
	}
	return m
}

func (d DataMap) Has(name string) bool {
	_, ok := d[name]
	return ok
}

func (d DataMap) Num(name string) (float64, bool) {
	v, ok := d[name]
	if !ok || v.IsRef {
		return 0, false
	}
	return v.Num, true
}

func (d DataMap) RefTo(name string) (string, bool) {
	v, ok := d[name]
	if !ok || !v.IsRef {
		return "", false
	}
	return v.Ref, true
}

func beatToTick(beat float64) int {
	return int(math.Round(beat * constants.TicksPerBeat))
}

// Tick converts the #BEAT field to ticks.
func (d DataMap) Tick() (int, bool) {
	beat, ok := d.Num("#BEAT")
	if !ok {
		return 0, false
	}
	return beatToTick(beat), true
}

// Width doubles the size field; the full playfield is 12 wide while
// sizes in the document are halves.
func (d DataMap) Width() (float64, bool) {
	size, ok := d.Num("size")
	if !ok {
		return 0, false
	}
	return size * 2, true
}

// Lane shifts the document's centered lane to the editor's left-edge
// coordinate in [0, 12).
func (d DataMap) Lane() (float64, bool) {
	lane, ok := d.Num("lane")
	if !ok {
		return 0, false
	}
	size, ok := d.Num("size")
	if !ok {
		return 0, false
	}
	return lane - size + 6, true
}

// LayerIndex resolves the timeScaleGroup ref ("tscg<N>") to a layer table
// index. Notes without a group belong to the default layer 0.
func (d DataMap) LayerIndex() int {
	ref, ok := d.RefTo("timeScaleGroup")
	if !ok {
		return 0
	}
	return groupIndex(ref) + 1
}

func groupIndex(ref string) int {
	if len(ref) <= 4 {
		return -1
	}
	n, err := strconv.Atoi(ref[4:])
	if err != nil {
		return -1
	}
	return n
}

// Flick extracts a flick direction from the direction field.
func (d DataMap) Flick() model.FlickType {
	dir, ok := d.Num("direction")
	if !ok {
		return model.FlickNone
	}
	switch dir {
	case 1:
		return model.FlickRight
	case -1:
		return model.FlickLeft
	default:
		return model.FlickDefault
	}
}

// Ease decodes the tri-valued ease field: +1 ease-in, -1 ease-out,
// 0 linear. Absent counts as linear.
func (d DataMap) Ease() (model.EaseType, error) {
	v, ok := d.Num("ease")
	if !ok {
		return model.EaseLinear, nil
	}
	switch v {
	case 1:
		return model.EaseIn, nil
	case -1:
		return model.EaseOut, nil
	case 0:
		return model.EaseLinear, nil
	default:
		return model.EaseLinear, ErrInvalidEase
	}
}

// layerFromEntityName parses the owning layer of a hi-speed change out of
// its entity name: the trailing digits of the part before the final ':'
// name the time-scale group.
func layerFromEntityName(name string) int {
	s := name
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	j := len(s)
	for j > 0 && s[j-1] >= '0' && s[j-1] <= '9' {
		j--
	}
	if j == len(s) {
		return 0
	}
	n, err := strconv.Atoi(s[j:])
	if err != nil {
		return 0
	}
	return n + 1
}
