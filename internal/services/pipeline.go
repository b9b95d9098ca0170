package services

import (
	"context"
	"sort"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"jobscout/internal/events"
	"jobscout/internal/logger"
	"jobscout/internal/metrics"
	"jobscout/internal/models"
	"jobscout/internal/profile"
	"jobscout/internal/report"
	"jobscout/internal/search"
	"jobscout/internal/store"
)

// ErrManualRequired is returned by an Applier when automatic application
// is infeasible for a listing; the pipeline then routes it to the
// manual-application store.
var ErrManualRequired = errors.New("manual application required")

// Applier attempts an automatic application for a scored listing. The
// implementation lives outside this module.
type Applier interface {
	Apply(ctx context.Context, job models.ScoredListing) error
}

// DocumentGenerator produces tailored application documents for a scored
// listing, keyed by filename. The implementation lives outside this module.
type DocumentGenerator interface {
	Generate(ctx context.Context, job models.ScoredListing) (map[string][]byte, error)
}

type seenRepository interface {
	IsSeen(ctx context.Context, applyURL string) (bool, error)
	MarkSeen(ctx context.Context, applyURL, source string) error
}

type manualApplicationStore interface {
	SaveManualApplication(jobInfo models.Listing, generatedDocs map[string][]byte, reason string) (store.ManualJob, error)
}

// Pipeline runs one full batch: fetch, deduplicate, filter, score, apply
// or queue for manual application, export. It has no internal parallelism;
// the unit of work is always a whole batch.
type Pipeline struct {
	bus         EventBus.Bus
	fetchers    []Fetcher
	seen        seenRepository
	manualStore manualApplicationStore
	applier     Applier
	docs        DocumentGenerator
	userProfile *profile.Profile
	filters     search.FilterOptions
	reportPath  string
}

func NewPipeline(bus EventBus.Bus, fetchers []Fetcher, seen seenRepository, manualStore manualApplicationStore,
	userProfile *profile.Profile, filters search.FilterOptions, reportPath string) *Pipeline {

	return &Pipeline{
		bus:         bus,
		fetchers:    fetchers,
		seen:        seen,
		manualStore: manualStore,
		userProfile: userProfile,
		filters:     filters,
		reportPath:  reportPath,
	}
}

// SetApplier wires the external auto-apply collaborator. Without one,
// every scored listing is routed to the manual store.
func (p *Pipeline) SetApplier(applier Applier) {
	p.applier = applier
}

// SetDocumentGenerator wires the external document-generation collaborator.
func (p *Pipeline) SetDocumentGenerator(docs DocumentGenerator) {
	p.docs = docs
}

// Run executes one batch to completion and returns its summary.
func (p *Pipeline) Run(ctx context.Context) events.RunCompleted {

	start := time.Now()
	log.Infof("running pipeline at %v", start)

	fetched := p.fetchAll(ctx)
	fresh := p.dropSeen(ctx, fetched)
	filtered := search.FilterJobs(fresh, p.filters)
	scored := p.scoreAll(filtered)

	manualCount := 0
	for _, job := range scored {
		if p.handleScoredListing(ctx, job) {
			manualCount++
		}
	}

	if p.reportPath != "" && len(scored) > 0 {
		if err := report.WriteCSV(p.reportPath, scored); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeReport).
				Errorf("failed to export report: %v", err)
		}
	}

	summary := events.RunCompleted{Fetched: len(fetched), Scored: len(scored), Manual: manualCount}
	p.bus.Publish(events.RunCompletedTopic, summary)

	metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	log.Infof("pipeline ended after %v: fetched %v, scored %v, queued %v for manual application",
		time.Since(start), summary.Fetched, summary.Scored, summary.Manual)
	return summary
}

// fetchAll collects listings from every fetcher. A failing source is
// logged and skipped; results from its siblings are preserved.
func (p *Pipeline) fetchAll(ctx context.Context) []models.Listing {

	var all []models.Listing
	for _, fetcher := range p.fetchers {
		listings, err := fetcher.FetchJobs(ctx, "", p.filters)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeFetch).
				Errorf("fetcher %v failed: %v", fetcher.Name(), err)
			continue
		}
		all = append(all, listings...)
	}
	return all
}

// dropSeen removes listings already processed in earlier runs. A dedup
// lookup failure only logs; the listing stays in the batch.
func (p *Pipeline) dropSeen(ctx context.Context, listings []models.Listing) []models.Listing {

	return lo.Filter(listings, func(listing models.Listing, _ int) bool {
		seen, err := p.seen.IsSeen(ctx, listing.ApplyURL)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to check seen listing: %v", err)
			return true
		}
		if seen {
			metrics.DroppedListingsCounter.WithLabelValues("duplicate").Inc()
		}
		return !seen
	})
}

func (p *Pipeline) scoreAll(listings []models.Listing) []models.ScoredListing {

	skills := p.userProfile.SkillSet()

	scored := lo.Map(listings, func(listing models.Listing, _ int) models.ScoredListing {
		score, explanation := search.ScoreJob(listing, skills)
		return models.ScoredListing{Listing: listing, Score: score, Explanation: explanation}
	})

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	metrics.ScoredListingsCounter.Add(float64(len(scored)))
	return scored
}

// handleScoredListing publishes the listing, marks it seen, and attempts
// the auto-apply path. Returns true when the listing was queued for manual
// application.
func (p *Pipeline) handleScoredListing(ctx context.Context, job models.ScoredListing) bool {

	p.bus.Publish(events.ListingScoredTopic, events.ListingScored{
		Title:       job.Title,
		Company:     job.Company,
		Url:         job.ApplyURL,
		Score:       job.Score,
		Explanation: job.Explanation,
	})

	if err := p.seen.MarkSeen(ctx, job.ApplyURL, job.Source); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to mark listing as seen: %v", err)
	}

	reason := "no automatic application path configured"
	if p.applier != nil {
		err := p.applier.Apply(ctx, job)
		if err == nil {
			return false
		}
		if !errors.Is(err, ErrManualRequired) {
			log.Errorf("automatic application for %v - %v failed: %v", job.Company, job.Title, err)
			return false
		}
		reason = err.Error()
	}

	docs := p.generateDocuments(ctx, job)
	if _, err := p.manualStore.SaveManualApplication(job.Listing, docs, reason); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).
			Errorf("failed to save manual application for %v - %v: %v", job.Company, job.Title, err)
		return false
	}

	metrics.ManualApplicationsCounter.Inc()
	p.bus.Publish(events.ManualApplicationTopic, events.ManualApplicationQueued{
		Title:   job.Title,
		Company: job.Company,
		Url:     job.ApplyURL,
		Reason:  reason,
	})
	return true
}

func (p *Pipeline) generateDocuments(ctx context.Context, job models.ScoredListing) map[string][]byte {
	if p.docs == nil {
		return nil
	}

	docs, err := p.docs.Generate(ctx, job)
	if err != nil {
		log.Errorf("document generation for %v - %v failed: %v", job.Company, job.Title, err)
		return nil
	}
	return docs
}
