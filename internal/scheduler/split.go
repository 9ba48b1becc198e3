package scheduler

import (
	"github.com/julianstephens/ballast/internal/constraint"
	"github.com/julianstephens/ballast/internal/logger"
	"github.com/julianstephens/ballast/internal/models"
)

// tentativeChunk is a split chunk held back until the whole group is known
// to cover the task's full duration.
type tentativeChunk struct {
	dayIdx      int
	slotIdx     int
	durationMin int
	score       int
}

// splitTask divides a task across windows, walking days in order. A chunk is
// min(remaining, window duration, half the original duration) and never
// smaller than the configured minimum. The group commits only if the chunks
// account for the full duration; otherwise every tentative chunk is discarded
// and the task stays unscheduled (all-or-nothing).
func (s *Scheduler) splitTask(task models.Task, days []*dayState, completed map[string]bool) bool {
	remaining := task.DurationMin
	halfOriginal := task.DurationMin / 2
	var chunks []tentativeChunk

	// Track tentative consumption without touching the real day state until
	// the group is complete.
	shadow := make([]*dayState, len(days))
	for i, d := range days {
		shadow[i] = &dayState{
			date:   d.date,
			free:   append([]models.TimeSlot{}, d.free...),
			placed: append([]models.ScheduledTask{}, d.placed...),
		}
	}

	for di := 0; di < len(shadow) && remaining > 0 && len(chunks) < s.config.MaxSplits; di++ {
		day := shadow[di]
		for si := 0; si < len(day.free) && remaining > 0 && len(chunks) < s.config.MaxSplits; si++ {
			slot := day.free[si]
			size := remaining
			if d := slotMinutes(slot); d < size {
				size = d
			}
			if halfOriginal < size {
				size = halfOriginal
			}
			if size < s.config.MinSplitMin {
				continue
			}

			chunkWeight := chunkTaskWeight(task, size)
			if chunkWeight > s.remainingDayWeight(day) {
				continue
			}

			eval := s.engine.ScoreTask(chunkTask(task, size), slot, day.date, constraint.ScoreContext{
				DayTasks:  day.placed,
				Completed: completed,
			})
			if !eval.CanPlace {
				continue
			}

			chunks = append(chunks, tentativeChunk{dayIdx: di, slotIdx: si, durationMin: size, score: eval.Score})
			remaining -= size

			// Mirror the consumption in the shadow state so later chunks see
			// the reduced windows and day budget.
			day.placed = append(day.placed, models.ScheduledTask{Weight: chunkWeight})
			day.free = consumeSlot(day.free, si, size)
			si--
		}
	}

	if remaining > 0 {
		logger.Debug("Split abandoned", "task", task.ID, "uncovered_min", remaining)
		return false
	}

	s.commitSplitGroup(task, days, chunks)
	return true
}

// commitSplitGroup replays the tentative chunks against the real day state
// and wires up the split metadata, including mergeable sibling ids.
func (s *Scheduler) commitSplitGroup(task models.Task, days []*dayState, chunks []tentativeChunk) {
	total := len(chunks)
	remaining := task.DurationMin
	ids := make([]string, 0, total)

	for i, c := range chunks {
		remaining -= c.durationMin
		info := &models.SplitInfo{
			TaskID:       task.ID,
			Index:        i + 1,
			Total:        total,
			DurationMin:  c.durationMin,
			RemainingMin: remaining,
		}
		st := s.commit(task, days[c.dayIdx], c.slotIdx, c.durationMin, c.score, 0, info)
		ids = append(ids, st.ID)
	}

	// Wire mergeable sibling ids now that every chunk has an identity.
	for _, day := range days {
		for i := range day.placed {
			st := &day.placed[i]
			if st.Split == nil || st.Split.TaskID != task.ID {
				continue
			}
			for _, id := range ids {
				if id != st.ID {
					st.Split.MergeableWith = append(st.Split.MergeableWith, id)
				}
			}
		}
	}
	logger.Debug("Split committed", "task", task.ID, "chunks", total)
}

// chunkTask is the task as seen by the scorer for one chunk: same
// requirements, chunk-sized duration and weight.
func chunkTask(task models.Task, durationMin int) models.Task {
	t := task
	t.DurationMin = durationMin
	w := int(chunkTaskWeight(task, durationMin) + 0.5)
	if w < 1 {
		w = 1
	}
	t.Weight = w
	return t
}

// chunkTaskWeight apportions the task's weight to a chunk by duration share.
func chunkTaskWeight(task models.Task, durationMin int) float64 {
	if task.DurationMin <= 0 {
		return float64(task.Weight)
	}
	return float64(task.Weight) * float64(durationMin) / float64(task.DurationMin)
}
