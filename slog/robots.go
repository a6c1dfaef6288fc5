package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitewalk"
)

// Ensure LoggingRobotsService implements sitewalk.RobotsService.
var _ sitewalk.RobotsService = (*LoggingRobotsService)(nil)

// LoggingRobotsService wraps a RobotsService with logging.
type LoggingRobotsService struct {
	next   sitewalk.RobotsService
	logger *slog.Logger
}

// NewLoggingRobotsService creates a new LoggingRobotsService.
func NewLoggingRobotsService(next sitewalk.RobotsService, logger *slog.Logger) *LoggingRobotsService {
	return &LoggingRobotsService{next: next, logger: logger}
}

// Evaluate delegates to the wrapped service and logs the resulting policy.
func (s *LoggingRobotsService) Evaluate(ctx context.Context, seedURL string) (policy *sitewalk.RobotsPolicy, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", seedURL,
			"duration", time.Since(begin),
		}
		if policy != nil {
			attrs = append(attrs,
				"allowed", policy.SiteAllowed(),
				"mode", policy.Mode().String(),
				"allow_rules", len(policy.Allowed()),
				"disallow_rules", len(policy.Disallowed()),
			)
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		s.logger.Info("robots evaluation", attrs...)
	}(time.Now())
	return s.next.Evaluate(ctx, seedURL)
}
