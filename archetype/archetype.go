// Package archetype decodes Sonolus entity archetype names into a compact
// coded type. The code values are exploited by the predicates below and
// cannot be changed arbitrarily: the high nibble selects the category and
// the low bits carry the critical/trace variants.
package archetype

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

type Type int

const (
	// Initialization-related
	Initialization Type = iota
	InputManager
	Stage

	// Time scale and BPM changes
	TimeScaleGroup
	TimeScaleChange
	BPMChange
)

const (
	// Single notes
	NormalTap Type = 0x10 + iota
	CriticalTap
	NormalTrace
	CriticalTrace
	NormalFlick
	CriticalFlick
	NormalTraceFlick
	CriticalTraceFlick
)

const (
	// Slide starts
	NormalSlideStart Type = 0x20 + iota
	CriticalSlideStart
	NormalTraceSlideStart
	CriticalTraceSlideStart
	// Used as the start/end of guide slides, can also appear in normal slides
	HiddenSlideStart
)

const (
	// Slide ticks
	NormalSlideTick Type = 0x30 + iota
	CriticalSlideTick
	// Ticks with a diamond that don't control the curve
	NormalAttachedSlideTick
	CriticalAttachedSlideTick
	// Ticks without a diamond that still control the curve
	HiddenSlideTick
	// Ticks automatically added to slides per half-beat
	IgnoredSlideTick
)

const (
	// Slide ends
	NormalSlideEnd Type = 0x40 + iota
	CriticalSlideEnd
	NormalTraceSlideEnd
	CriticalTraceSlideEnd
	NormalSlideEndFlick
	CriticalSlideEndFlick
)

const (
	// Slide connectors (slide bars)
	NormalSlideConnector Type = 0x50 + iota
	CriticalSlideConnector
)

// Guide slides
const Guide Type = 0x60

const (
	// Others
	SimLine Type = 0x70 + iota
	DamageNote
)

type Category uint8

const (
	CategoryInit Category = iota
	CategoryTiming
	CategorySingle
	CategorySlideStart
	CategorySlideTick
	CategorySlideEnd
	CategoryConnector
	CategoryGuideSlide
	CategoryOther
)

var categoryNames = []string{
	"init", "timing", "single", "slide_start", "slide_tick",
	"slide_end", "connector", "guide_slide", "other",
}

func (c Category) String() string { return categoryNames[c] }

var (
	ErrUnknownArchetype = errors.New("unknown archetype")
	ErrNotANote         = errors.New("not a note")
)

var fromString = map[string]Type{
	// Initialization-related
	"Initialization": Initialization,
	"InputManager":   InputManager,
	"Stage":          Stage,

	// Time scale and BPM changes
	"TimeScaleGroup":    TimeScaleGroup,
	"TimeScaleChange":   TimeScaleChange,
	"#TIMESCALE_CHANGE": TimeScaleChange, // Presents in official charts
	"#BPM_CHANGE":       BPMChange,

	// Single notes
	"NormalTapNote":          NormalTap,
	"NormalFlickNote":        NormalFlick,
	"CriticalTapNote":        CriticalTap,
	"CriticalFlickNote":      CriticalFlick,
	"NormalTraceNote":        NormalTrace,
	"NormalTraceFlickNote":   NormalTraceFlick,
	"CriticalTraceNote":      CriticalTrace,
	"CriticalTraceFlickNote": CriticalTraceFlick,

	// Slide starts
	"NormalSlideStartNote":        NormalSlideStart,
	"CriticalSlideStartNote":      CriticalSlideStart,
	"HiddenSlideStartNote":        HiddenSlideStart,
	"NormalTraceSlideStartNote":   NormalTraceSlideStart,
	"CriticalTraceSlideStartNote": CriticalTraceSlideStart,

	// Slide ticks
	"NormalSlideTickNote":           NormalSlideTick,
	"CriticalSlideTickNote":         CriticalSlideTick,
	"NormalAttachedSlideTickNote":   NormalAttachedSlideTick,
	"CriticalAttachedSlideTickNote": CriticalAttachedSlideTick,
	"HiddenSlideTickNote":           HiddenSlideTick,
	"IgnoredSlideTickNote":          IgnoredSlideTick,

	// Slide ends
	"NormalSlideEndNote":        NormalSlideEnd,
	"NormalSlideEndFlickNote":   NormalSlideEndFlick,
	"CriticalSlideEndNote":      CriticalSlideEnd,
	"CriticalSlideEndFlickNote": CriticalSlideEndFlick,
	"NormalTraceSlideEndNote":   NormalTraceSlideEnd,
	"CriticalTraceSlideEndNote": CriticalTraceSlideEnd,

	// Slide connectors
	"NormalSlideConnector":   NormalSlideConnector,
	"CriticalSlideConnector": CriticalSlideConnector,

	// Guides
	"Guide": Guide,

	// Others
	"SimLine":    SimLine,
	"DamageNote": DamageNote,
}

func init() {
	// Some tools emit note archetypes without the "Note" suffix; both
	// spellings decode to the same code.
	aliases := make(map[string]Type, len(fromString))
	for name, t := range fromString {
		if len(name) > 4 && name[len(name)-4:] == "Note" && name != "DamageNote" {
			aliases[name[:len(name)-4]] = t
		}
	}
	for name, t := range aliases {
		if _, taken := fromString[name]; !taken {
			fromString[name] = t
		}
	}
}

// FromString decodes an archetype name as it appears in the document.
func FromString(s string) (Type, error) {
	t, ok := fromString[s]
	if !ok {
		return 0, pkgerrors.Wrap(ErrUnknownArchetype, s)
	}
	return t, nil
}

// IsNote reports whether the code lies in the note range 0x10..0x6F
// (single notes through guides, connectors included). SimLine and
// DamageNote are outside it.
func (t Type) IsNote() bool { return t >= 0x10 && t < 0x70 }

// GetCategory returns the dispatch category for this entity.
func (t Type) GetCategory() Category {
	if t == DamageNote {
		return CategorySingle
	}
	if t < 0x10 {
		if t <= Stage {
			return CategoryInit
		}
		return CategoryTiming
	}
	switch t & 0xF0 {
	case 0x10:
		return CategorySingle
	case 0x20:
		return CategorySlideStart
	case 0x30:
		return CategorySlideTick
	case 0x40:
		return CategorySlideEnd
	case 0x50:
		return CategoryConnector
	case 0x60:
		return CategoryGuideSlide
	default:
		return CategoryOther
	}
}

// Critical reports whether this note is a critical note. Only defined for
// notes; anything else returns ErrNotANote.
func (t Type) Critical() (bool, error) {
	if !t.IsNote() {
		return false, ErrNotANote
	}
	if t == IgnoredSlideTick || t >= 0x60 {
		return false, nil
	}
	return t&1 != 0, nil
}

// Friction reports whether this note is a trace (friction) note. Only
// defined for notes; anything else returns ErrNotANote.
func (t Type) Friction() (bool, error) {
	if !t.IsNote() {
		return false, ErrNotANote
	}
	switch t & 0xF0 {
	case 0x10, 0x20, 0x40:
		return t&2 != 0, nil
	default:
		return false, nil
	}
}
