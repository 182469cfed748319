package api

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PickEm/api/config"
	"PickEm/api/controllers"
	"PickEm/api/jobs"
	"PickEm/api/middlewares"
)

var server = controllers.Server{}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Cannot load configuration: %v", err)
	}

	server.Initialize(cfg)

	scheduler := jobs.NewScheduler(jobs.Tasks{
		SweepSessions: func(now time.Time) int {
			middlewares.SweepVisitors(time.Hour)
			return server.SweepSessions(now)
		},
		WarmScoreboard:    server.WarmScoreboard,
		RefreshLiveScores: server.RefreshLiveScores,
	})
	if err := scheduler.Start(); err != nil {
		log.Printf("warning: background jobs disabled: %v", err)
	} else {
		go func() {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			scheduler.Stop()
			os.Exit(0)
		}()
	}

	addr := ":" + cfg.Port
	fmt.Printf("Listening on %s\n", addr)
	server.Run(addr)
}
