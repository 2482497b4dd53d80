package twitch

import (
	"time"

	"clipcomp/internal/domain/consts"
	"clipcomp/internal/models"
	"clipcomp/internal/utils/logging"
)

// SelectByDuration walks clips in their given order and accumulates them until
// the cumulative duration reaches target. The first clip is always kept.
//
// transitionOverlap is the per-join crossfade duration in seconds (0 when
// transitions are disabled); each clip after the first contributes its
// duration minus the overlap. Once at least 80% of the target has accumulated,
// a clip that would push the total more than 30 seconds past target is
// skipped and selection stops.
func SelectByDuration(clips []*models.Clip, target time.Duration, transitionOverlap float64) []*models.Clip {
	if len(clips) == 0 {
		return nil
	}

	targetSec := target.Seconds()
	graceSec := consts.OvershootGrace.Seconds()

	selected := make([]*models.Clip, 0, len(clips))
	var total float64

	for _, clip := range clips {
		effective := clip.Duration
		if len(selected) > 0 {
			effective -= transitionOverlap
		}

		if len(selected) > 0 &&
			total >= targetSec*consts.OvershootFloorFraction &&
			total+effective > targetSec+graceSec {
			logging.D(1, "Clip %q would overshoot target by more than %.0fs, stopping selection", clip.ID, graceSec)
			break
		}

		selected = append(selected, clip)
		total += effective

		if total >= targetSec {
			break
		}
	}

	logging.I("Selected %d of %d clips for a planned duration of %.1fs (target %.0fs)",
		len(selected), len(clips), total, targetSec)
	return selected
}
