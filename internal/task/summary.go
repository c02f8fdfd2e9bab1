package task

import (
	"math"
	"sort"
	"time"
)

// Summary partitions a task set into completed and incomplete slices and
// carries their completion rate as a percentage.
type Summary struct {
	Completed      []Task
	Incomplete     []Task
	CompletionRate float64
}

// Summarize partitions tasks by completion status. Completed tasks are
// ordered by due date descending, incomplete ones ascending; tasks without a
// due date sort last in both partitions. The rate is recomputed from scratch
// on every call and rounded to two decimal places; an empty set yields 0.
func Summarize(tasks []Task) Summary {
	s := Summary{
		Completed:  []Task{},
		Incomplete: []Task{},
	}

	for _, t := range tasks {
		if t.Completed {
			s.Completed = append(s.Completed, t)
		} else {
			s.Incomplete = append(s.Incomplete, t)
		}
	}

	sort.SliceStable(s.Completed, func(i, j int) bool {
		return dueAfter(s.Completed[i].DueDate, s.Completed[j].DueDate)
	})
	sort.SliceStable(s.Incomplete, func(i, j int) bool {
		return dueBefore(s.Incomplete[i].DueDate, s.Incomplete[j].DueDate)
	})

	total := len(s.Completed) + len(s.Incomplete)
	if total > 0 {
		rate := float64(len(s.Completed)) / float64(total) * 100
		s.CompletionRate = math.Round(rate*100) / 100
	}

	return s
}

func dueBefore(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

func dueAfter(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
