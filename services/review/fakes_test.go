package review

import (
	"fmt"
	"sort"
	"time"

	providerRepo "homeserve/database/repository/provider"
	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
)

// In-memory fakes over the repository interfaces.

type fakeReviewRepo struct {
	reviews map[string]models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]models.Review)}
}

func (f *fakeReviewRepo) Create(rv *models.Review) error {
	f.reviews[rv.ID] = *rv
	return nil
}

func (f *fakeReviewRepo) GetByID(id string) (*models.Review, error) {
	if rv, ok := f.reviews[id]; ok {
		return &rv, nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) Update(rv *models.Review) error {
	if _, ok := f.reviews[rv.ID]; !ok {
		return fmt.Errorf("review with id %s not found", rv.ID)
	}
	f.reviews[rv.ID] = *rv
	return nil
}

func (f *fakeReviewRepo) Delete(id string) error {
	if _, ok := f.reviews[id]; !ok {
		return fmt.Errorf("review with id %s not found", id)
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) ExistsForTuple(clientID, providerID string, serviceDate time.Time) (bool, error) {
	for _, rv := range f.reviews {
		if rv.ClientID == clientID && rv.ProviderID == providerID && rv.ServiceDate.Equal(serviceDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) AverageRating(providerID string) (float64, error) {
	sum, count := 0, 0
	for _, rv := range f.reviews {
		if rv.ProviderID == providerID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

func (f *fakeReviewRepo) List(filter models.ReviewFilter) ([]models.Review, error) {
	var out []models.Review
	for _, rv := range f.reviews {
		if filter.ProviderID != "" && rv.ProviderID != filter.ProviderID {
			continue
		}
		if filter.MinRating > 0 && rv.Rating < filter.MinRating {
			continue
		}
		if filter.MaxRating > 0 && rv.Rating > filter.MaxRating {
			continue
		}
		if !filter.DateFrom.IsZero() && rv.ServiceDate.Before(filter.DateFrom) {
			continue
		}
		if !filter.DateTo.IsZero() && rv.ServiceDate.After(filter.DateTo) {
			continue
		}
		out = append(out, rv)
	}
	sort.Slice(out, func(i, j int) bool {
		var less bool
		if filter.SortBy == models.SortByRating {
			less = out[i].Rating < out[j].Rating
		} else {
			less = out[i].ServiceDate.Before(out[j].ServiceDate)
		}
		if filter.Descending {
			return !less
		}
		return less
	})
	return out, nil
}

type fakeReservationRepo struct {
	reservations []models.Reservation
}

func (f *fakeReservationRepo) Create(r *models.Reservation) error {
	f.reservations = append(f.reservations, *r)
	return nil
}

func (f *fakeReservationRepo) GetByID(id string) (*models.Reservation, error) {
	for _, r := range f.reservations {
		if r.ID == id {
			res := r
			return &res, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) ListByClient(clientID string) ([]models.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationRepo) ListByProvider(providerID string) ([]models.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationRepo) UpdateStatus(id string, status models.ReservationStatus) error {
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			f.reservations[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("reservation with id %s not found", id)
}

func (f *fakeReservationRepo) ExistsDone(clientID, providerID string, serviceDate time.Time) (bool, error) {
	for _, r := range f.reservations {
		if r.ClientID == clientID && r.ProviderID == providerID &&
			r.ServiceDate.Equal(serviceDate) && r.Status == models.StatusDone {
			return true, nil
		}
	}
	return false, nil
}

type fakeClientRepo struct {
	clients map[string]models.Client
}

func (f *fakeClientRepo) GetByID(id string) (*models.Client, error) {
	if c, ok := f.clients[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeClientRepo) GetByEmail(email string) (*models.Client, error) { return nil, nil }
func (f *fakeClientRepo) Create(client *models.Client) error              { return nil }
func (f *fakeClientRepo) UpdateSetDocument(id string, doc bson.M) error   { return nil }

func (f *fakeClientRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Client, error) {
	return f.GetByID(id)
}

func (f *fakeClientRepo) AppendReservationSummary(id string, summary models.ReservationSummary) error {
	return nil
}

func (f *fakeClientRepo) UpdateReservationSummaryStatus(clientID, reservationID string, status models.ReservationStatus) error {
	return nil
}

func (f *fakeClientRepo) PublicNames(ids []string) (map[string]models.PublicProfile, error) {
	names := make(map[string]models.PublicProfile)
	for _, id := range ids {
		if c, ok := f.clients[id]; ok {
			names[id] = c.PublicName()
		}
	}
	return names, nil
}

type fakeProviderRepo struct {
	providers map[string]models.Provider
}

func (f *fakeProviderRepo) GetByID(id string) (*models.Provider, error) {
	if p, ok := f.providers[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeProviderRepo) GetByEmail(email string) (*models.Provider, error) { return nil, nil }
func (f *fakeProviderRepo) GetAll() ([]models.Provider, error)                { return nil, nil }

func (f *fakeProviderRepo) ListByServiceType(serviceType models.ServiceType) ([]models.Provider, error) {
	return nil, nil
}

func (f *fakeProviderRepo) Search(criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error) {
	return nil, nil
}

func (f *fakeProviderRepo) Create(provider *models.Provider) error        { return nil }
func (f *fakeProviderRepo) UpdateSetDocument(id string, doc bson.M) error { return nil }

func (f *fakeProviderRepo) UpdateRating(id string, rating float64) error {
	p, ok := f.providers[id]
	if !ok {
		return fmt.Errorf("provider with id %s not found", id)
	}
	p.Rating = rating
	f.providers[id] = p
	return nil
}

func (f *fakeProviderRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Provider, error) {
	return f.GetByID(id)
}

func (f *fakeProviderRepo) PublicNames(ids []string) (map[string]models.PublicProfile, error) {
	names := make(map[string]models.PublicProfile)
	for _, id := range ids {
		if p, ok := f.providers[id]; ok {
			names[id] = p.PublicName()
		}
	}
	return names, nil
}
