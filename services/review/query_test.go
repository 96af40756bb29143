package review

import (
	"testing"
	"time"

	"homeserve/models"
	"homeserve/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newQueryService seeds the review ledger directly, bypassing the submission
// path, to exercise listing and search in isolation.
func newQueryService() *DefaultReviewService {
	repo := newFakeReviewRepo()
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	for _, rv := range []models.Review{
		{ID: "rev-1", ClientID: "cli-1", ProviderID: "prov-1", Rating: 5, Comment: "Spotless kitchen afterwards", ServiceDate: day(1)},
		{ID: "rev-2", ClientID: "cli-2", ProviderID: "prov-1", Rating: 2, Comment: "Left earlier than agreed on", ServiceDate: day(5)},
		{ID: "rev-3", ClientID: "cli-1", ProviderID: "prov-1", Rating: 4, Comment: "Great service, very punctual", ServiceDate: day(9)},
		{ID: "rev-4", ClientID: "cli-2", ProviderID: "prov-2", Rating: 1, Comment: "Never showed up at all", ServiceDate: day(3)},
	} {
		repo.reviews[rv.ID] = rv
	}
	return &DefaultReviewService{
		Repo: repo,
		Clients: &fakeClientRepo{clients: map[string]models.Client{
			"cli-1": {ID: "cli-1", FirstName: "Jean", LastName: "Martin"},
			"cli-2": {ID: "cli-2", FirstName: "Ana", LastName: "Silva"},
		}},
		Providers: &fakeProviderRepo{providers: map[string]models.Provider{
			"prov-1": {ID: "prov-1", FirstName: "Marie", LastName: "Dupont"},
			"prov-2": {ID: "prov-2", FirstName: "Luc", LastName: "Bernard"},
		}},
	}
}

func TestListForProviderScopesAndJoins(t *testing.T) {
	svc := newQueryService()

	listing, err := svc.ListForProvider("prov-1", models.ReviewFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, listing.Total)
	for _, view := range listing.Reviews {
		assert.Equal(t, "prov-1", view.ProviderID)
		assert.NotEmpty(t, view.Client.FirstName)
		assert.Nil(t, view.Provider)
	}
	// (5+2+4)/3 = 3.666... rounds to 3.7.
	assert.Equal(t, 3.7, listing.MeanRating)
}

func TestListForProviderMeanIsOverFilteredSet(t *testing.T) {
	svc := newQueryService()

	listing, err := svc.ListForProvider("prov-1", models.ReviewFilter{MinRating: 4})
	require.NoError(t, err)

	assert.Equal(t, 2, listing.Total)
	assert.Equal(t, 4.5, listing.MeanRating)
}

func TestListForProviderDateRange(t *testing.T) {
	svc := newQueryService()

	listing, err := svc.ListForProvider("prov-1", models.ReviewFilter{
		DateFrom: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Equal(t, 1, listing.Total)
	assert.Equal(t, "rev-2", listing.Reviews[0].ID)
}

func TestListForProviderEmptyResult(t *testing.T) {
	svc := newQueryService()

	listing, err := svc.ListForProvider("prov-3", models.ReviewFilter{})
	require.NoError(t, err)

	assert.Equal(t, 0, listing.Total)
	assert.Equal(t, 0.0, listing.MeanRating)
	assert.Empty(t, listing.Reviews)
}

func TestListForProviderRequiresID(t *testing.T) {
	svc := newQueryService()

	_, err := svc.ListForProvider("", models.ReviewFilter{})
	assertCode(t, err, utils.CodeInvalidInput)
}

func TestSearchJoinsProviderNames(t *testing.T) {
	svc := newQueryService()

	listing, err := svc.Search(models.ReviewFilter{MaxRating: 2})
	require.NoError(t, err)

	require.Equal(t, 2, listing.Total)
	for _, view := range listing.Reviews {
		require.NotNil(t, view.Provider)
		assert.NotEmpty(t, view.Provider.FirstName)
	}
	assert.Equal(t, 1.5, listing.MeanRating)
}

func TestSearchSortByRatingDescending(t *testing.T) {
	svc := newQueryService()

	listing, err := svc.Search(models.ReviewFilter{SortBy: models.SortByRating, Descending: true})
	require.NoError(t, err)

	require.Equal(t, 4, listing.Total)
	prev := listing.Reviews[0].Rating
	for _, view := range listing.Reviews[1:] {
		assert.LessOrEqual(t, view.Rating, prev)
		prev = view.Rating
	}
}

func TestSearchSortByDateAscending(t *testing.T) {
	svc := newQueryService()

	listing, err := svc.Search(models.ReviewFilter{SortBy: models.SortByDate})
	require.NoError(t, err)

	require.Equal(t, 4, listing.Total)
	for i := 1; i < len(listing.Reviews); i++ {
		assert.False(t, listing.Reviews[i].ServiceDate.Before(listing.Reviews[i-1].ServiceDate))
	}
}

func TestFilterValidation(t *testing.T) {
	svc := newQueryService()

	_, err := svc.Search(models.ReviewFilter{SortBy: "comment"})
	assertCode(t, err, utils.CodeInvalidInput)

	_, err = svc.Search(models.ReviewFilter{MinRating: 4, MaxRating: 2})
	assertCode(t, err, utils.CodeInvalidInput)

	_, err = svc.Search(models.ReviewFilter{MinRating: -1})
	assertCode(t, err, utils.CodeInvalidInput)
}
