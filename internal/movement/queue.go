package movement

import "github.com/tickwalk/server/internal/entity"

// MaxSteps bounds the number of queued steps, sentinel included.
const MaxSteps = 100

// step is a queued waypoint: the tile reached and the compass direction
// taken to reach it. dir is entity.NoDirection for the reset sentinel.
type step struct {
	x, y int
	dir  int
}

// stepQueue is a fixed ring buffer of steps.
type stepQueue struct {
	buf  [MaxSteps]step
	head int
	n    int
}

func (q *stepQueue) len() int { return q.n }

func (q *stepQueue) full() bool { return q.n == MaxSteps }

func (q *stepQueue) clear() {
	q.head = 0
	q.n = 0
}

func (q *stepQueue) push(s step) bool {
	if q.full() {
		return false
	}
	q.buf[(q.head+q.n)%MaxSteps] = s
	q.n++
	return true
}

func (q *stepQueue) pop() (step, bool) {
	if q.n == 0 {
		return step{}, false
	}
	s := q.buf[q.head]
	q.head = (q.head + 1) % MaxSteps
	q.n--
	return s, true
}

func (q *stepQueue) peekFront() (step, bool) {
	if q.n == 0 {
		return step{}, false
	}
	return q.buf[q.head], true
}

func (q *stepQueue) peekBack() (step, bool) {
	if q.n == 0 {
		return step{}, false
	}
	return q.buf[(q.head+q.n-1)%MaxSteps], true
}

// at returns the i-th queued step from the front.
func (q *stepQueue) at(i int) step {
	return q.buf[(q.head+i)%MaxSteps]
}

func (s step) point() entity.Point { return entity.Point{X: s.x, Y: s.y} }
