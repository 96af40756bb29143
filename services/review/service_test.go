package review

import (
	"errors"
	"testing"
	"time"

	"homeserve/models"
	"homeserve/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceDay = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

// newTestService wires a review service over in-memory fakes with one client,
// one provider and one completed reservation between them on serviceDay.
func newTestService() (*DefaultReviewService, *fakeProviderRepo, *fakeReservationRepo) {
	providers := &fakeProviderRepo{providers: map[string]models.Provider{
		"prov-1": {ID: "prov-1", FirstName: "Marie", LastName: "Dupont", ServiceType: models.ServiceCleaning, HourlyRate: 20},
	}}
	clients := &fakeClientRepo{clients: map[string]models.Client{
		"cli-1": {ID: "cli-1", FirstName: "Jean", LastName: "Martin"},
		"cli-2": {ID: "cli-2", FirstName: "Ana", LastName: "Silva"},
	}}
	reservations := &fakeReservationRepo{reservations: []models.Reservation{
		{ID: "res-1", ClientID: "cli-1", ProviderID: "prov-1", ServiceDate: serviceDay, DurationHours: 3, Price: 60, Status: models.StatusDone},
	}}
	svc := &DefaultReviewService{
		Repo:         newFakeReviewRepo(),
		Reservations: reservations,
		Clients:      clients,
		Providers:    providers,
	}
	return svc, providers, reservations
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func clientPrincipal(id string) models.Principal {
	return models.Principal{ID: id, Role: models.RoleClient}
}

func TestSubmitUpdatesProviderRating(t *testing.T) {
	svc, providers, _ := newTestService()

	review, err := svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
		ProviderID:  "prov-1",
		Rating:      4,
		Comment:     "Great service, very punctual",
		ServiceDate: serviceDay,
	})
	require.NoError(t, err)
	require.NotNil(t, review)

	assert.NotEmpty(t, review.ID)
	assert.Equal(t, "cli-1", review.ClientID)
	assert.Equal(t, "prov-1", review.ProviderID)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, 4.0, providers.providers["prov-1"].Rating)
}

func TestSubmitRejectsProviderPrincipal(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Submit(models.Principal{ID: "prov-1", Role: models.RoleProvider}, SubmitRequest{
		ProviderID:  "prov-1",
		Rating:      4,
		Comment:     "Great service, very punctual",
		ServiceDate: serviceDay,
	})
	assertCode(t, err, utils.CodeForbidden)
}

func TestSubmitRequiresCompletedReservation(t *testing.T) {
	svc, _, reservations := newTestService()

	// No reservation at all for this date.
	_, err := svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
		ProviderID:  "prov-1",
		Rating:      5,
		Comment:     "Spotless kitchen afterwards",
		ServiceDate: serviceDay.AddDate(0, 0, 1),
	})
	assertCode(t, err, utils.CodePreconditionFailed)

	// A reservation exists but has not reached done.
	reservations.reservations = append(reservations.reservations, models.Reservation{
		ID: "res-2", ClientID: "cli-1", ProviderID: "prov-1",
		ServiceDate: serviceDay.AddDate(0, 0, 2), Status: models.StatusConfirmed,
	})
	_, err = svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
		ProviderID:  "prov-1",
		Rating:      5,
		Comment:     "Spotless kitchen afterwards",
		ServiceDate: serviceDay.AddDate(0, 0, 2),
	})
	assertCode(t, err, utils.CodePreconditionFailed)
}

func TestSubmitDuplicateTupleConflicts(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
		ProviderID:  "prov-1",
		Rating:      4,
		Comment:     "Great service, very punctual",
		ServiceDate: serviceDay,
	})
	require.NoError(t, err)

	_, err = svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
		ProviderID:  "prov-1",
		Rating:      5,
		Comment:     "Changed my mind, even better",
		ServiceDate: serviceDay,
	})
	assertCode(t, err, utils.CodeConflict)
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name    string
		rating  int
		comment string
	}{
		{"rating below range", 0, "Great service, very punctual"},
		{"rating above range", 6, "Great service, very punctual"},
		{"comment too short", 4, "Too short"},
		{"comment too long", 4, string(make([]byte, models.MaxCommentLength+1))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newTestService()
			_, err := svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
				ProviderID:  "prov-1",
				Rating:      tc.rating,
				Comment:     tc.comment,
				ServiceDate: serviceDay,
			})
			assertCode(t, err, utils.CodeInvalidInput)
		})
	}
}

func TestAggregateIsMeanOverAllReviews(t *testing.T) {
	svc, providers, reservations := newTestService()
	reservations.reservations = append(reservations.reservations, models.Reservation{
		ID: "res-2", ClientID: "cli-2", ProviderID: "prov-1",
		ServiceDate: serviceDay, Status: models.StatusDone,
	})

	_, err := svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
		ProviderID: "prov-1", Rating: 5, Comment: "Spotless kitchen afterwards", ServiceDate: serviceDay,
	})
	require.NoError(t, err)
	_, err = svc.Submit(clientPrincipal("cli-2"), SubmitRequest{
		ProviderID: "prov-1", Rating: 3, Comment: "Fine but arrived quite late", ServiceDate: serviceDay,
	})
	require.NoError(t, err)

	assert.Equal(t, 4.0, providers.providers["prov-1"].Rating)
}

func TestAggregateRoundsToOneDecimal(t *testing.T) {
	svc, providers, reservations := newTestService()
	reservations.reservations = append(reservations.reservations,
		models.Reservation{ID: "res-2", ClientID: "cli-2", ProviderID: "prov-1", ServiceDate: serviceDay, Status: models.StatusDone},
		models.Reservation{ID: "res-3", ClientID: "cli-1", ProviderID: "prov-1", ServiceDate: serviceDay.AddDate(0, 0, 7), Status: models.StatusDone},
	)

	for _, sub := range []struct {
		client string
		rating int
		date   time.Time
	}{
		{"cli-1", 5, serviceDay},
		{"cli-2", 5, serviceDay},
		{"cli-1", 4, serviceDay.AddDate(0, 0, 7)},
	} {
		_, err := svc.Submit(clientPrincipal(sub.client), SubmitRequest{
			ProviderID: "prov-1", Rating: sub.rating, Comment: "Great service, very punctual", ServiceDate: sub.date,
		})
		require.NoError(t, err)
	}

	// 14/3 = 4.666... rounds to 4.7.
	assert.Equal(t, 4.7, providers.providers["prov-1"].Rating)
}

func TestUpdateReaggregates(t *testing.T) {
	svc, providers, _ := newTestService()
	review, err := svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
		ProviderID: "prov-1", Rating: 2, Comment: "Left earlier than agreed on", ServiceDate: serviceDay,
	})
	require.NoError(t, err)

	newRating := 5
	updated, err := svc.Update(review.ID, clientPrincipal("cli-1"), UpdateRequest{Rating: &newRating})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Left earlier than agreed on", updated.Comment)
	assert.Equal(t, 5.0, providers.providers["prov-1"].Rating)
}

func TestUpdateRequiresSomeField(t *testing.T) {
	svc, _, _ := newTestService()
	review, err := svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
		ProviderID: "prov-1", Rating: 4, Comment: "Great service, very punctual", ServiceDate: serviceDay,
	})
	require.NoError(t, err)

	_, err = svc.Update(review.ID, clientPrincipal("cli-1"), UpdateRequest{})
	assertCode(t, err, utils.CodeInvalidInput)
}

func TestUpdateOnlyByAuthor(t *testing.T) {
	svc, _, _ := newTestService()
	review, err := svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
		ProviderID: "prov-1", Rating: 4, Comment: "Great service, very punctual", ServiceDate: serviceDay,
	})
	require.NoError(t, err)

	newRating := 1
	_, err = svc.Update(review.ID, clientPrincipal("cli-2"), UpdateRequest{Rating: &newRating})
	assertCode(t, err, utils.CodeForbidden)

	_, err = svc.Update(review.ID, models.Principal{ID: "prov-1", Role: models.RoleProvider}, UpdateRequest{Rating: &newRating})
	assertCode(t, err, utils.CodeForbidden)

	_, err = svc.Update("no-such-review", clientPrincipal("cli-1"), UpdateRequest{Rating: &newRating})
	assertCode(t, err, utils.CodeNotFound)
}

func TestRemoveLastReviewResetsRating(t *testing.T) {
	svc, providers, _ := newTestService()
	review, err := svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
		ProviderID: "prov-1", Rating: 4, Comment: "Great service, very punctual", ServiceDate: serviceDay,
	})
	require.NoError(t, err)
	require.Equal(t, 4.0, providers.providers["prov-1"].Rating)

	err = svc.Remove(review.ID, clientPrincipal("cli-1"))
	require.NoError(t, err)

	assert.Equal(t, 0.0, providers.providers["prov-1"].Rating)
}

func TestRemoveOnlyByAuthor(t *testing.T) {
	svc, _, _ := newTestService()
	review, err := svc.Submit(clientPrincipal("cli-1"), SubmitRequest{
		ProviderID: "prov-1", Rating: 4, Comment: "Great service, very punctual", ServiceDate: serviceDay,
	})
	require.NoError(t, err)

	err = svc.Remove(review.ID, clientPrincipal("cli-2"))
	assertCode(t, err, utils.CodeForbidden)

	err = svc.Remove("no-such-review", clientPrincipal("cli-1"))
	assertCode(t, err, utils.CodeNotFound)
}
