package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// PipelineScheduler triggers pipeline runs on a cron schedule. Runs never
// overlap: a tick firing while the previous run is still going is skipped.
type PipelineScheduler struct {
	pipeline *Pipeline
	cron     *cron.Cron
}

func NewPipelineScheduler(pipeline *Pipeline, cronSpec string) (*PipelineScheduler, error) {

	if cronSpec == "" {
		return nil, errors.New("cron spec must not be empty")
	}

	s := &PipelineScheduler{
		pipeline: pipeline,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}

	_, err := s.cron.AddFunc(cronSpec, func() {
		s.pipeline.Run(context.Background())
	})
	if err != nil {
		return nil, err
	}

	s.cron.Start()
	log.Infof("pipeline scheduler started with spec %q", cronSpec)
	return s, nil
}

func (s *PipelineScheduler) Stop() {
	s.cron.Stop()
}
