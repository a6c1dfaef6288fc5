package mock

import (
	"context"

	"github.com/fwojciec/sitewalk"
)

var _ sitewalk.RobotsService = (*RobotsService)(nil)

// RobotsService is a mock implementation of sitewalk.RobotsService.
type RobotsService struct {
	EvaluateFn func(ctx context.Context, seedURL string) (*sitewalk.RobotsPolicy, error)
}

func (s *RobotsService) Evaluate(ctx context.Context, seedURL string) (*sitewalk.RobotsPolicy, error) {
	return s.EvaluateFn(ctx, seedURL)
}
