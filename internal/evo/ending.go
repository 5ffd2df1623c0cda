package evo

// Criterion decides, generation over generation, whether evolution
// should stop. Criteria may carry state across generations of a single
// run; the engine calls Reset when a run starts.
type Criterion interface {
	Name() string
	Reset()
	Done(bestScore float64) bool
}

// MaxScore stops once the best chromosome scores at or above Threshold.
type MaxScore struct {
	Threshold float64
}

func (MaxScore) Name() string { return "max_score" }

func (MaxScore) Reset() {}

func (m MaxScore) Done(bestScore float64) bool {
	return bestScore >= m.Threshold
}

// steadyWindow is the number of most recent best-of-generation scores
// BestScore monitors.
const steadyWindow = 10

// BestScore stops once the best score has not improved over the
// monitored window. It needs steadyWindow+1 generations of data before
// it can fire: the buffer must overflow at least once so there is an
// oldest retained score to improve on.
type BestScore struct {
	history []float64
}

func (*BestScore) Name() string { return "best_score" }

func (b *BestScore) Reset() {
	b.history = b.history[:0]
}

func (b *BestScore) Done(bestScore float64) bool {
	b.history = append(b.history, bestScore)
	if len(b.history) <= steadyWindow {
		return false
	}
	b.history = b.history[1:]

	oldest := b.history[0]
	for _, score := range b.history {
		if score > oldest {
			return false
		}
	}
	return true
}

// NeverStop leaves termination entirely to the caller; interactive
// front ends poll Best and call Stop when they are satisfied.
type NeverStop struct{}

func (NeverStop) Name() string { return "never" }

func (NeverStop) Reset() {}

func (NeverStop) Done(float64) bool { return false }
