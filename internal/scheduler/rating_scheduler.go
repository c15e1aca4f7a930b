package scheduler

import (
	"github.com/boranno/University-Canteen-Management-System/internal/app/service"
	"github.com/boranno/University-Canteen-Management-System/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RatingScheduler re-derives every canteen and menu item rating nightly.
// Aggregates are recomputed after each review anyway; this job repairs rows
// left stale by a recompute failure.
type RatingScheduler struct {
	cron          *cron.Cron
	reviewService service.ReviewService
}

func NewRatingScheduler(reviewService service.ReviewService) *RatingScheduler {
	return &RatingScheduler{
		cron:          cron.New(),
		reviewService: reviewService,
	}
}

func (s *RatingScheduler) Start() error {
	// 03:00 every night, when review traffic is lowest.
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled rating repair", nil)

		repaired, err := s.reviewService.RecomputeAllRatings()
		if err != nil {
			logger.Error("Scheduled rating repair failed", err, map[string]interface{}{
				"repaired": repaired,
			})
			return
		}

		logger.Info("Scheduled rating repair finished", map[string]interface{}{
			"repaired": repaired,
		})
	})

	if err != nil {
		logger.Error("Failed to register rating repair job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Rating scheduler started (nightly at 3:00 AM)", nil)

	return nil
}

func (s *RatingScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Rating scheduler stopped", nil)
}
