package sonolus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karitora/sonodex/model"
)

func num(name string, v float64) DataItem {
	return DataItem{Name: name, Value: &v}
}

func ref(name, target string) DataItem {
	return DataItem{Name: name, Ref: &target}
}

func TestNewDataMapIsIdempotent(t *testing.T) {
	items := []DataItem{
		num("#BEAT", 1.5),
		num("lane", -2),
		ref("timeScaleGroup", "tscg3"),
	}
	assert.Equal(t, NewDataMap(items), NewDataMap(items))
}

func TestCommonAttributeExtraction(t *testing.T) {
	assert := assert.New(t)

	d := NewDataMap([]DataItem{
		num("#BEAT", 1),
		num("lane", -3),
		num("size", 1.5),
		ref("timeScaleGroup", "tscg0"),
	})

	tick, ok := d.Tick()
	assert.True(ok)
	assert.Equal(480, tick)

	width, ok := d.Width()
	assert.True(ok)
	assert.Equal(3.0, width)

	lane, ok := d.Lane()
	assert.True(ok)
	assert.Equal(1.5, lane)

	assert.Equal(1, d.LayerIndex())
}

func TestAbsentAttributes(t *testing.T) {
	assert := assert.New(t)

	d := NewDataMap([]DataItem{num("lane", 2)})
	_, ok := d.Tick()
	assert.False(ok)
	_, ok = d.Width()
	assert.False(ok)
	// lane without size stays unresolved
	_, ok = d.Lane()
	assert.False(ok)
	assert.Equal(0, d.LayerIndex())
}

func TestUnrecognizedValuesPassThrough(t *testing.T) {
	assert := assert.New(t)

	d := NewDataMap([]DataItem{num("#BPM", 120), ref("head", "s")})
	bpm, ok := d.Num("#BPM")
	assert.True(ok)
	assert.Equal(120.0, bpm)

	head, ok := d.RefTo("head")
	assert.True(ok)
	assert.Equal("s", head)

	// refs are not numbers and numbers are not refs
	_, ok = d.Num("head")
	assert.False(ok)
	_, ok = d.RefTo("#BPM")
	assert.False(ok)
}

func TestFlickExtraction(t *testing.T) {
	cases := []struct {
		name     string
		items    []DataItem
		expected model.FlickType
	}{
		{"right", []DataItem{num("direction", 1)}, model.FlickRight},
		{"left", []DataItem{num("direction", -1)}, model.FlickLeft},
		{"default", []DataItem{num("direction", 3)}, model.FlickDefault},
		{"absent", nil, model.FlickNone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, NewDataMap(c.items).Flick())
		})
	}
}

func TestEaseDecoding(t *testing.T) {
	assert := assert.New(t)

	for v, expected := range map[float64]model.EaseType{
		1:  model.EaseIn,
		-1: model.EaseOut,
		0:  model.EaseLinear,
	} {
		ease, err := NewDataMap([]DataItem{num("ease", v)}).Ease()
		assert.NoError(err)
		assert.Equal(expected, ease)
	}

	ease, err := NewDataMap(nil).Ease()
	assert.NoError(err)
	assert.Equal(model.EaseLinear, ease)

	_, err = NewDataMap([]DataItem{num("ease", 2)}).Ease()
	assert.ErrorIs(err, ErrInvalidEase)
}

func TestLayerFromEntityName(t *testing.T) {
	cases := map[string]int{
		"tscg0:0":  1,
		"tscg12:3": 13,
		"tscg4":    5,
		"plain":    0,
	}
	for name, expected := range cases {
		assert.Equal(t, expected, layerFromEntityName(name), name)
	}
}
