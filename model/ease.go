package model

import "errors"

type EaseType uint8

const (
	EaseLinear EaseType = iota
	EaseIn
	EaseOut
	EaseInOut
	EaseOutIn
	// EaseUndetermined is only legal while a slide is being assembled.
	// A finalized score never contains it.
	EaseUndetermined
)

var easeNames = []string{"linear", "in", "out", "inout", "outin", "undetermined"}

func (e EaseType) String() string { return easeNames[e] }

var ErrEaseUnresolved = errors.New("ease type is unresolved")

// Apply maps a normalized time u in [0, 1] onto the curve.
func (e EaseType) Apply(u float64) (float64, error) {
	switch e {
	case EaseLinear:
		return u, nil
	case EaseIn:
		return u * u, nil
	case EaseOut:
		return 1 - (1-u)*(1-u), nil
	case EaseInOut:
		if u < 0.5 {
			return 2 * u * u, nil
		}
		return 1 - (1-u)*(1-u)*2, nil
	case EaseOutIn:
		if u < 0.5 {
			return 0.5 + (0.5-u)*(0.5-u)*-2, nil
		}
		return 0.5 + (0.5-u)*(0.5-u)*2, nil
	default:
		return 0, ErrEaseUnresolved
	}
}
