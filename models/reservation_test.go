package models

import "testing"

func TestReservationStatusTransitions(t *testing.T) {
	statuses := []ReservationStatus{StatusPending, StatusConfirmed, StatusDone, StatusCancelled}
	legal := map[[2]ReservationStatus]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusDone}:      true,
		{StatusConfirmed, StatusCancelled}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			got := from.CanTransitionTo(to)
			want := legal[[2]ReservationStatus{from, to}]
			if got != want {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestReservationStatusValid(t *testing.T) {
	for _, s := range []ReservationStatus{StatusPending, StatusConfirmed, StatusDone, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []ReservationStatus{"", "archived", "Pending"} {
		if s.Valid() {
			t.Errorf("%s should not be valid", s)
		}
	}
}

func TestReservationSummary(t *testing.T) {
	r := Reservation{
		ID:            "res-1",
		ClientID:      "cli-1",
		ProviderID:    "prov-1",
		DurationHours: 3,
		Status:        StatusPending,
	}
	s := r.Summary()
	if s.ReservationID != "res-1" || s.ProviderID != "prov-1" || s.Status != StatusPending {
		t.Errorf("unexpected summary: %+v", s)
	}
}
