package world

import (
	"slices"

	"github.com/df-mc/dragonfly/server/block/cube"
)

// scheduledTaskQueue implements a queue for tasks scheduled to run in a later
// tick. Tasks due in the same tick run in the order they were scheduled.
type scheduledTaskQueue struct {
	tasks       []scheduledTask
	currentTick int64
}

type scheduledTask struct {
	pos cube.Pos
	f   Task
	t   int64
}

// newScheduledTaskQueue creates a queue for scheduled tasks.
func newScheduledTaskQueue(tick int64) *scheduledTaskQueue {
	return &scheduledTaskQueue{currentTick: tick}
}

// tick runs all tasks that are scheduled for the tick passed or earlier and
// removes them from the queue. Tasks scheduled while running are kept for a
// later tick.
func (queue *scheduledTaskQueue) tick(tx Tx, tick int64) {
	queue.currentTick = tick

	var due []scheduledTask
	queue.tasks = slices.DeleteFunc(queue.tasks, func(t scheduledTask) bool {
		if t.t <= tick {
			due = append(due, t)
			return true
		}
		return false
	})
	for _, t := range due {
		t.f(tx)
	}
}

// schedule schedules a task at the position passed after a delay in ticks. The
// task runs no earlier than the tick after the current one.
func (queue *scheduledTaskQueue) schedule(pos cube.Pos, delay int64, f Task) {
	queue.tasks = append(queue.tasks, scheduledTask{pos: pos, f: f, t: queue.currentTick + max(delay, 1)})
}

// pending returns the number of tasks scheduled at pos.
func (queue *scheduledTaskQueue) pending(pos cube.Pos) int {
	n := 0
	for _, t := range queue.tasks {
		if t.pos == pos {
			n++
		}
	}
	return n
}
