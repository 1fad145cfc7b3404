package deposit

import (
	"context"
	"log"
	"time"
)

// Sweeper periodically expires registrations whose deposit deadline passed
// without payment. It is a safety net behind the lazy check in the verify
// path; both apply the same predicate, so double-firing is harmless.
type Sweeper struct {
	usecase  *Usecase
	interval time.Duration
}

func NewSweeper(u *Usecase, interval time.Duration) *Sweeper {
	return &Sweeper{usecase: u, interval: interval}
}

// Run blocks until ctx is cancelled. Errors are logged and the loop keeps
// going; a broken sweep pass must not take the process down.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("deposit sweeper: running every %s", s.interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("deposit sweeper: stopped")
			return
		case <-ticker.C:
			n, err := s.usecase.ExpireOverdueDeposits(ctx)
			if err != nil {
				log.Printf("deposit sweeper: %v (expired %d before failing)", err, n)
				continue
			}
			if n > 0 {
				log.Printf("deposit sweeper: expired %d registrations", n)
			}
		}
	}
}
