package twitch

import (
	"testing"
	"time"

	"clipcomp/internal/models"
)

func mkClips(durations ...float64) []*models.Clip {
	clips := make([]*models.Clip, len(durations))
	for i, d := range durations {
		clips[i] = &models.Clip{
			ID:       string(rune('a' + i)),
			Duration: d,
		}
	}
	return clips
}

// TestSelectByDuration tests accumulation against the target duration.
func TestSelectByDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		durations []float64
		target    time.Duration
		overlap   float64
		wantCount int
	}{
		{
			name:      "five two-minute clips fill a ten-minute target",
			durations: []float64{120, 120, 120, 120, 120},
			target:    10 * time.Minute,
			wantCount: 5,
		},
		{
			name:      "stops once target reached",
			durations: []float64{120, 120, 120, 120, 120, 120},
			target:    4 * time.Minute,
			wantCount: 2,
		},
		{
			name:      "first clip kept even when longer than target",
			durations: []float64{300, 60},
			target:    time.Minute,
			wantCount: 1,
		},
		{
			name:      "empty input",
			durations: nil,
			target:    10 * time.Minute,
			wantCount: 0,
		},
		{
			name:      "large overshoot near target is skipped",
			durations: []float64{500, 200},
			target:    10 * time.Minute,
			wantCount: 1,
		},
		{
			name:      "small overshoot near target is kept",
			durations: []float64{500, 120},
			target:    10 * time.Minute,
			wantCount: 2,
		},
		{
			name:      "overlap keeps a clip that would otherwise overshoot",
			durations: []float64{500, 150},
			target:    10 * time.Minute,
			overlap:   25.0,
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectByDuration(mkClips(tt.durations...), tt.target, tt.overlap)
			if len(got) != tt.wantCount {
				t.Errorf("SelectByDuration() selected %d clips, want %d", len(got), tt.wantCount)
			}
		})
	}
}

// TestSelectByDurationOrder checks that selection preserves the input order.
func TestSelectByDurationOrder(t *testing.T) {
	t.Parallel()

	clips := mkClips(60, 60, 60)
	got := SelectByDuration(clips, 3*time.Minute, 0)
	if len(got) != 3 {
		t.Fatalf("selected %d clips, want 3", len(got))
	}
	for i, clip := range got {
		if clip != clips[i] {
			t.Errorf("position %d: selection reordered clips", i)
		}
	}
}
