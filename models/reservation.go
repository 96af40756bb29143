package models

import "time"

// ReservationStatus is the lifecycle state of a reservation. Transitions are
// forward-only; there is no path back from done or cancelled.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusDone      ReservationStatus = "done"
	StatusCancelled ReservationStatus = "cancelled"
)

// Valid reports whether s is a known status value.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// allowedTransitions is the lifecycle allow-list:
// pending -> confirmed | cancelled, confirmed -> done | cancelled.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusDone, StatusCancelled},
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, n := range allowedTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID            string            `bson:"id" json:"id"`
	ClientID      string            `bson:"clientId" json:"clientId"`
	ProviderID    string            `bson:"providerId" json:"providerId"`
	ServiceDate   time.Time         `bson:"serviceDate" json:"serviceDate"`
	DurationHours float64           `bson:"durationHours" json:"durationHours"`
	Status        ReservationStatus `bson:"status" json:"status"`
	Address       Address           `bson:"address,omitzero" json:"address,omitzero"`
	// Price is hourlyRate x durationHours, fixed at creation time. Later rate
	// changes never touch it.
	Price     float64   `bson:"price" json:"price"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ReservationView is a reservation joined with the counterpart's public name
// for listing endpoints.
type ReservationView struct {
	Reservation `bson:",inline"`
	Counterpart PublicProfile `bson:"counterpart" json:"counterpart"`
}

func (r *Reservation) Summary() ReservationSummary {
	return ReservationSummary{
		ReservationID: r.ID,
		ProviderID:    r.ProviderID,
		ServiceDate:   r.ServiceDate,
		DurationHours: r.DurationHours,
		Status:        r.Status,
	}
}
