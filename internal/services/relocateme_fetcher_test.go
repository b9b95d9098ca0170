package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"jobscout/internal/clients/relocateme"
	"jobscout/internal/search"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

const searchPage = `<html><body>
<div class="job-listing">
  <h2>Backend Engineer</h2>
  <div class="company">Acme GmbH</div>
  <div class="location">Berlin, Germany</div>
  <div class="description">Java services</div>
  <a class="job-link" href="/jobs/backend-engineer">View job</a>
</div>
<div class="job-listing">
  <h2>Nameless Role</h2>
  <div class="location">Berlin, Germany</div>
  <div class="description">No company on the card</div>
</div>
</body></html>`

func pageResponse() *http.Response {
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBufferString(searchPage)),
	}
}

func Test_RelocateMeFetcher_DropsRecordsFailingValidation(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(pageResponse(), nil)

	client := relocateme.NewClient()
	client.SetHTTPClient(mockClient)

	fetcher := NewRelocateMeFetcher(client)
	listings, err := fetcher.FetchJobs(context.Background(), "java", search.FilterOptions{})
	assert.NoError(err)

	assert.Len(listings, 1)
	assert.Equal("Backend Engineer", listings[0].Title)
	assert.Equal("https://relocate.me/jobs/backend-engineer", listings[0].ApplyURL)
	assert.Equal("relocate_me", listings[0].Source)
}

func Test_RelocateMeFetcher_SearchesQueryAndFilterKeywords(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Query().Get("keywords") == "java"
	})).Return(pageResponse(), nil).Once()
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Query().Get("keywords") == "golang"
	})).Return(pageResponse(), nil).Once()

	client := relocateme.NewClient()
	client.SetHTTPClient(mockClient)

	fetcher := NewRelocateMeFetcher(client)
	listings, err := fetcher.FetchJobs(context.Background(), "java",
		search.FilterOptions{Keywords: []string{"golang"}})
	assert.NoError(err)

	assert.Len(listings, 2)
	mockClient.AssertExpectations(t)
}
