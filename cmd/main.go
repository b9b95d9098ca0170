package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"jobscout/internal/clients/relocateme"
	"jobscout/internal/config"
	"jobscout/internal/events"
	"jobscout/internal/logger"
	"jobscout/internal/metrics"
	"jobscout/internal/profile"
	"jobscout/internal/repositories"
	"jobscout/internal/search"
	"jobscout/internal/services"
	"jobscout/internal/store"
)

func buildPipeline(cfg *config.Config, bus EventBus.Bus, seen *repositories.CachedSeenListings) (*services.Pipeline, error) {

	userProfile, err := profile.Load(cfg.Search.ProfileDir)
	if err != nil {
		return nil, err
	}

	manualStore, err := store.NewManualStore(cfg.Store.BaseDir)
	if err != nil {
		return nil, err
	}

	client := relocateme.NewClient()
	client.SetRateLimit(cfg.Scraper.MaxRequestsPerSecond)
	client.SetTimeout(cfg.Scraper.RequestTimeout)
	client.SetMaxRetries(cfg.Scraper.MaxRetries)

	keywords := cfg.Search.Keywords
	if len(keywords) == 0 {
		keywords = userProfile.Keywords
	}
	locations := cfg.Search.Locations
	if len(locations) == 0 {
		locations = userProfile.Locations
	}

	filters := search.FilterOptions{
		Keywords:  keywords,
		Locations: locations,
	}
	if cfg.Search.MaxAgeDays > 0 {
		days := cfg.Search.MaxAgeDays
		filters.Days = &days
	}

	fetchers := []services.Fetcher{services.NewRelocateMeFetcher(client)}

	return services.NewPipeline(bus, fetchers, seen, manualStore, userProfile, filters, cfg.Store.ReportPath), nil
}

func subscribeNotifications(bus EventBus.Bus) {

	err := bus.Subscribe(events.ManualApplicationTopic, func(event events.ManualApplicationQueued) {
		log.Infof("manual application queued: %v - %v (%v)", event.Company, event.Title, event.Reason)
	})
	if err != nil {
		log.Fatalf("can't subscribe to manual application events: %v", err)
	}

	err = bus.Subscribe(events.RunCompletedTopic, func(event events.RunCompleted) {
		log.Infof("pipeline run completed: fetched %v, scored %v, manual %v",
			event.Fetched, event.Scored, event.Manual)
	})
	if err != nil {
		log.Fatalf("can't subscribe to run events: %v", err)
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Scheduler.MetricsListenAddr)

	dbContext, err := repositories.NewDbContext(cfg.Store.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	seen := repositories.NewCachedSeenListings(repositories.NewSeenListingsRepository(dbContext.DB))

	bus := EventBus.New()
	subscribeNotifications(bus)

	pipeline, err := buildPipeline(cfg, bus, seen)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeConfig).
			Fatalf("can't build pipeline: %v", err)
	}

	cleaner, err := services.NewSeenListingsCleaner(
		repositories.NewSeenListingsRepository(dbContext.DB), cfg.Scheduler.SeenExpirationInDays)
	if err != nil {
		log.Fatalf("can't create seen listings cleaner: %v", err)
	}
	defer cleaner.Stop()

	scheduler, err := services.NewPipelineScheduler(pipeline, cfg.Scheduler.CronSpec)
	if err != nil {
		log.Fatalf("can't create pipeline scheduler: %v", err)
	}
	defer scheduler.Stop()

	pipeline.Run(ctx)

	<-ctx.Done()

	log.Info("Shutting down services...")
}
