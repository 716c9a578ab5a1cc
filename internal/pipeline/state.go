package pipeline

import (
	"go.uber.org/zap"

	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

// State is a step of a single pipeline run
type State string

const (
	StateIdle           State = "idle"
	StateDispatched     State = "dispatched"
	StatePartialFailure State = "partial_failure"
	StateAllFulfilled   State = "all_fulfilled"
	StateAggregated     State = "aggregated"
	StateScored         State = "scored"
	StateSelected       State = "selected"
	StateDone           State = "done"
	StateFailed         State = "failed"
)

// execution tracks the states one run passed through
type execution struct {
	symbol string
	state  State
	trail  []State
}

func newExecution(q models.Query) *execution {
	return &execution{
		symbol: q.Symbol,
		state:  StateIdle,
		trail:  []State{StateIdle},
	}
}

func (e *execution) advance(to State) {
	logger.Debug("pipeline transition",
		zap.String("symbol", e.symbol),
		zap.String("from", string(e.state)),
		zap.String("to", string(to)),
	)
	e.state = to
	e.trail = append(e.trail, to)
}
