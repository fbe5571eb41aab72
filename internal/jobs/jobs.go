package jobs

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/akari-dl/hondana/internal/library"
)

// Start launches the background job scheduler. The only scheduled job
// is the warm scan: it rebuilds the merged library listing before the
// cache TTL elapses so the first client request after expiry stays
// cheap. An interval of 0 disables it.
func Start(lib *library.Service, intervalMinutes int) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	startWarmScanJob(s, lib, intervalMinutes)

	log.Println("Starting background job scheduler...")
	s.StartAsync()
	return s
}

func startWarmScanJob(s *gocron.Scheduler, lib *library.Service, intervalMinutes int) {
	if intervalMinutes == 0 {
		log.Println("Warm scan interval is 0, scheduled scan is disabled.")
		return
	}

	log.Printf("Scheduling warm library scan every %d minutes.", intervalMinutes)
	_, err := s.Every(intervalMinutes).Minutes().Do(func() {
		if _, err := lib.Rebuild(); err != nil {
			log.Printf("Warm library scan failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling warm scan job: %v", err)
	}
}
