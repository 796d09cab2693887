package game

import (
	"context"

	"go.uber.org/zap"
)

// Runner is the only goroutine that touches a Game once polling starts.
type Runner struct {
	game *Game
	log  *zap.Logger
}

func NewRunner(g *Game, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{game: g, log: log}
}

// Run applies poll results until ctx is done or results is closed. A failed
// poll is logged and leaves the game untouched.
func (r *Runner) Run(ctx context.Context, results <-chan Result) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				return nil
			}
			if res.Err != nil {
				r.log.Warn("poll gesture", zap.Error(res.Err))
				continue
			}
			r.game.HandleGesture(ctx, res.Gesture)
		}
	}
}
