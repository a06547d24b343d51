package sonolus

import (
	"math"

	pkgerrors "github.com/pkg/errors"

	"github.com/karitora/sonodex/model"
	"github.com/karitora/sonodex/util"
)

// reconcileSlideEnds settles steps whose ease was never assigned by a
// connector. A trailing undetermined step on a slide with no explicit end
// is that slide's end (a HiddenSlideTick closing the slide); anything
// else is invalid. Every hold must have an end afterwards.
func reconcileSlideEnds(score *model.Score) error {
	for id, hold := range score.HoldNotes {
		for i := 0; i < len(hold.Steps); i++ {
			if hold.Steps[i].Ease != model.EaseUndetermined {
				continue
			}
			if i != len(hold.Steps)-1 || hold.End != -1 {
				return pkgerrors.Wrapf(ErrMalformedSlide,
					"slide %v: step %v has no connector", id, hold.Steps[i].ID)
			}
			hold.End = hold.Steps[i].ID
			if hold.EndType == model.HoldNormal {
				hold.EndType = model.HoldHidden
			}
			hold.Steps = hold.Steps[:i]
		}
		if hold.End == -1 {
			return pkgerrors.Wrapf(ErrMalformedSlide, "slide %v has no end", id)
		}
	}
	return nil
}

// ResolveAttached computes lane and width for attached (Skip) ticks by
// interpolating along the connector curve spanning them. The walk runs
// right to left so the right bracket of each run is known before its
// Skip ticks are visited. Re-running on a resolved score is a no-op.
func ResolveAttached(score *model.Score) error {
	for id, hold := range score.HoldNotes {
		var segStart, segEnd *model.Note
		ease := model.EaseLinear

		for i := len(hold.Steps); i >= 0; i-- {
			var cur *model.Note
			if i == len(hold.Steps) {
				cur = score.Notes[hold.End]
			} else {
				cur = score.Notes[hold.Steps[i].ID]
			}

			if i == len(hold.Steps) || hold.Steps[i].Type != model.StepSkip {
				// A non-Skip anchor: open the segment that covers the
				// Skip run to its left
				segEnd = cur
				segStart = cur
				for j := i - 1; j >= -1; j-- {
					step := hold.StepAt(j)
					if step.Type != model.StepSkip {
						segStart = score.Notes[step.ID]
						ease = step.Ease
						break
					}
				}
				continue
			}

			span := segEnd.Tick - segStart.Tick
			if span <= 0 {
				return pkgerrors.Wrapf(ErrDegenerateSegment,
					"slide %v: attached tick %v at tick %v", id, cur.ID, cur.Tick)
			}
			u := float64(cur.Tick-segStart.Tick) / float64(span)
			p, err := ease.Apply(u)
			if err != nil {
				return pkgerrors.Wrapf(err, "slide %v", id)
			}
			left := util.Lerp(segStart.Lane, segEnd.Lane, p)
			right := util.Lerp(segStart.Lane+segStart.Width, segEnd.Lane+segEnd.Width, p)
			cur.Lane = math.Round(left)
			cur.Width = math.Max(math.Round(right-left), 1)
		}
	}
	return nil
}
