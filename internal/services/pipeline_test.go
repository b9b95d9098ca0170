package services

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"jobscout/internal/events"
	"jobscout/internal/models"
	"jobscout/internal/profile"
	"jobscout/internal/search"
	"jobscout/internal/store"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Name() string {
	return "mock_source"
}

func (m *mockFetcher) FetchJobs(ctx context.Context, query string, filters search.FilterOptions) ([]models.Listing, error) {
	args := m.Called(ctx, query, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

type mockSeenRepository struct {
	mock.Mock
}

func (m *mockSeenRepository) IsSeen(ctx context.Context, applyURL string) (bool, error) {
	args := m.Called(ctx, applyURL)
	return args.Bool(0), args.Error(1)
}

func (m *mockSeenRepository) MarkSeen(ctx context.Context, applyURL, source string) error {
	args := m.Called(ctx, applyURL, source)
	return args.Error(0)
}

type mockManualStore struct {
	mock.Mock
}

func (m *mockManualStore) SaveManualApplication(jobInfo models.Listing, generatedDocs map[string][]byte, reason string) (store.ManualJob, error) {
	args := m.Called(jobInfo, generatedDocs, reason)
	return args.Get(0).(store.ManualJob), args.Error(1)
}

type mockApplier struct {
	mock.Mock
}

func (m *mockApplier) Apply(ctx context.Context, job models.ScoredListing) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

type mockDocumentGenerator struct {
	mock.Mock
}

func (m *mockDocumentGenerator) Generate(ctx context.Context, job models.ScoredListing) (map[string][]byte, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]byte), args.Error(1)
}

func listing(title, applyURL string) models.Listing {
	return models.Listing{
		Title:       title,
		Company:     "Acme GmbH",
		Description: "Java and Docker services",
		Location:    "Berlin, Germany",
		PostingDate: time.Now(),
		ApplyURL:    applyURL,
		Source:      "mock_source",
	}
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Skills: []string{"java", "docker"},
	}
}

func newTestPipeline(fetcher Fetcher, seen *mockSeenRepository, manualStore *mockManualStore) *Pipeline {
	return NewPipeline(EventBus.New(), []Fetcher{fetcher}, seen, manualStore,
		testProfile(), search.FilterOptions{}, "")
}

func Test_Pipeline_NoApplier_RoutesEverythingToManualStore(t *testing.T) {

	assert := assert.New(t)

	fetcher := &mockFetcher{}
	fetcher.On("FetchJobs", mock.Anything, "", mock.Anything).
		Return([]models.Listing{listing("Backend Engineer", "https://example.com/1")}, nil)

	seen := &mockSeenRepository{}
	seen.On("IsSeen", mock.Anything, mock.Anything).Return(false, nil)
	seen.On("MarkSeen", mock.Anything, "https://example.com/1", "mock_source").Return(nil)

	manualStore := &mockManualStore{}
	manualStore.On("SaveManualApplication", mock.Anything, mock.Anything, "no automatic application path configured").
		Return(store.ManualJob{}, nil)

	pipeline := newTestPipeline(fetcher, seen, manualStore)
	summary := pipeline.Run(context.Background())

	assert.Equal(events.RunCompleted{Fetched: 1, Scored: 1, Manual: 1}, summary)
	manualStore.AssertExpectations(t)
	seen.AssertExpectations(t)
}

func Test_Pipeline_SuccessfulAutoApply_SkipsManualStore(t *testing.T) {

	assert := assert.New(t)

	fetcher := &mockFetcher{}
	fetcher.On("FetchJobs", mock.Anything, "", mock.Anything).
		Return([]models.Listing{listing("Backend Engineer", "https://example.com/1")}, nil)

	seen := &mockSeenRepository{}
	seen.On("IsSeen", mock.Anything, mock.Anything).Return(false, nil)
	seen.On("MarkSeen", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	manualStore := &mockManualStore{}

	applier := &mockApplier{}
	applier.On("Apply", mock.Anything, mock.Anything).Return(nil)

	pipeline := newTestPipeline(fetcher, seen, manualStore)
	pipeline.SetApplier(applier)
	summary := pipeline.Run(context.Background())

	assert.Equal(0, summary.Manual)
	manualStore.AssertNotCalled(t, "SaveManualApplication", mock.Anything, mock.Anything, mock.Anything)
}

func Test_Pipeline_ManualRequired_SavesWithGeneratedDocuments(t *testing.T) {

	assert := assert.New(t)

	fetcher := &mockFetcher{}
	fetcher.On("FetchJobs", mock.Anything, "", mock.Anything).
		Return([]models.Listing{listing("Backend Engineer", "https://example.com/1")}, nil)

	seen := &mockSeenRepository{}
	seen.On("IsSeen", mock.Anything, mock.Anything).Return(false, nil)
	seen.On("MarkSeen", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	generated := map[string][]byte{"resume.pdf": []byte("%PDF-1.4")}

	manualStore := &mockManualStore{}
	manualStore.On("SaveManualApplication", mock.Anything, generated, "login wall: manual application required").
		Return(store.ManualJob{}, nil)

	applier := &mockApplier{}
	applier.On("Apply", mock.Anything, mock.Anything).
		Return(errors.Wrap(ErrManualRequired, "login wall"))

	docs := &mockDocumentGenerator{}
	docs.On("Generate", mock.Anything, mock.Anything).Return(generated, nil)

	pipeline := newTestPipeline(fetcher, seen, manualStore)
	pipeline.SetApplier(applier)
	pipeline.SetDocumentGenerator(docs)
	summary := pipeline.Run(context.Background())

	assert.Equal(1, summary.Manual)
	manualStore.AssertExpectations(t)
}

func Test_Pipeline_SeenListings_AreDropped(t *testing.T) {

	assert := assert.New(t)

	fetcher := &mockFetcher{}
	fetcher.On("FetchJobs", mock.Anything, "", mock.Anything).
		Return([]models.Listing{
			listing("Backend Engineer", "https://example.com/1"),
			listing("DevOps Engineer", "https://example.com/2"),
		}, nil)

	seen := &mockSeenRepository{}
	seen.On("IsSeen", mock.Anything, "https://example.com/1").Return(true, nil)
	seen.On("IsSeen", mock.Anything, "https://example.com/2").Return(false, nil)
	seen.On("MarkSeen", mock.Anything, "https://example.com/2", "mock_source").Return(nil)

	manualStore := &mockManualStore{}
	manualStore.On("SaveManualApplication", mock.Anything, mock.Anything, mock.Anything).
		Return(store.ManualJob{}, nil)

	pipeline := newTestPipeline(fetcher, seen, manualStore)
	summary := pipeline.Run(context.Background())

	assert.Equal(events.RunCompleted{Fetched: 2, Scored: 1, Manual: 1}, summary)
	seen.AssertNotCalled(t, "MarkSeen", mock.Anything, "https://example.com/1", mock.Anything)
}

func Test_Pipeline_FailingFetcher_DoesNotStopSiblings(t *testing.T) {

	assert := assert.New(t)

	failing := &mockFetcher{}
	failing.On("FetchJobs", mock.Anything, "", mock.Anything).
		Return(nil, errors.New("connection refused"))

	healthy := &mockFetcher{}
	healthy.On("FetchJobs", mock.Anything, "", mock.Anything).
		Return([]models.Listing{listing("Backend Engineer", "https://example.com/1")}, nil)

	seen := &mockSeenRepository{}
	seen.On("IsSeen", mock.Anything, mock.Anything).Return(false, nil)
	seen.On("MarkSeen", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	manualStore := &mockManualStore{}
	manualStore.On("SaveManualApplication", mock.Anything, mock.Anything, mock.Anything).
		Return(store.ManualJob{}, nil)

	pipeline := NewPipeline(EventBus.New(), []Fetcher{failing, healthy}, seen, manualStore,
		testProfile(), search.FilterOptions{}, "")
	summary := pipeline.Run(context.Background())

	assert.Equal(1, summary.Fetched)
}

func Test_Pipeline_ScoredListings_SortedByScoreDescending(t *testing.T) {

	assert := assert.New(t)

	weak := listing("Receptionist", "https://example.com/1")
	weak.Description = "front desk duties"
	strong := listing("Backend Engineer", "https://example.com/2")

	fetcher := &mockFetcher{}
	fetcher.On("FetchJobs", mock.Anything, "", mock.Anything).
		Return([]models.Listing{weak, strong}, nil)

	seen := &mockSeenRepository{}
	seen.On("IsSeen", mock.Anything, mock.Anything).Return(false, nil)

	manualStore := &mockManualStore{}

	pipeline := newTestPipeline(fetcher, seen, manualStore)

	fetched := pipeline.fetchAll(context.Background())
	scored := pipeline.scoreAll(pipeline.dropSeen(context.Background(), fetched))

	assert.Len(scored, 2)
	assert.Equal("Backend Engineer", scored[0].Title)
	assert.GreaterOrEqual(scored[0].Score, scored[1].Score)
}

func Test_Pipeline_PublishesRunCompletedEvent(t *testing.T) {

	assert := assert.New(t)

	fetcher := &mockFetcher{}
	fetcher.On("FetchJobs", mock.Anything, "", mock.Anything).
		Return([]models.Listing{listing("Backend Engineer", "https://example.com/1")}, nil)

	seen := &mockSeenRepository{}
	seen.On("IsSeen", mock.Anything, mock.Anything).Return(false, nil)
	seen.On("MarkSeen", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	manualStore := &mockManualStore{}
	manualStore.On("SaveManualApplication", mock.Anything, mock.Anything, mock.Anything).
		Return(store.ManualJob{}, nil)

	bus := EventBus.New()
	received := make(chan events.RunCompleted, 1)
	err := bus.Subscribe(events.RunCompletedTopic, func(summary events.RunCompleted) {
		received <- summary
	})
	assert.NoError(err)

	pipeline := NewPipeline(bus, []Fetcher{fetcher}, seen, manualStore,
		testProfile(), search.FilterOptions{}, "")
	pipeline.Run(context.Background())

	select {
	case summary := <-received:
		assert.Equal(events.RunCompleted{Fetched: 1, Scored: 1, Manual: 1}, summary)
	case <-time.After(time.Second):
		assert.Fail("run summary was never published")
	}
}
