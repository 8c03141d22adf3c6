package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"wahu-store/internal/services"
)

// ClickReaper deletes click logs past their 30-day retention window.
// Postgres has no native TTL, so expiry is enforced by this periodic
// sweep instead.
type ClickReaper struct {
	service *services.ClickService
}

func NewClickReaper(db *gorm.DB) *ClickReaper {
	return &ClickReaper{
		service: services.NewClickService(db),
	}
}

// Start begins the periodic sweep
func (j *ClickReaper) Start(interval time.Duration) {
	go func() {
		// Run immediately on start
		if deleted, err := j.service.DeleteExpired(); err != nil {
			log.Printf("Click reaper error: %v", err)
		} else if deleted > 0 {
			log.Printf("Click reaper removed %d expired click logs", deleted)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			deleted, err := j.service.DeleteExpired()
			if err != nil {
				log.Printf("Click reaper error: %v", err)
				continue
			}
			if deleted > 0 {
				log.Printf("Click reaper removed %d expired click logs", deleted)
			}
		}
	}()
}
