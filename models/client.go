package models

import "time"

// Address is the postal address attached to clients and reservations.
type Address struct {
	Street     string `bson:"street" json:"street,omitempty"`
	City       string `bson:"city" json:"city,omitempty"`
	PostalCode string `bson:"postalCode" json:"postalCode,omitempty"`
}

// ReservationSummary is a denormalized snapshot of a reservation kept on the
// client document. Convenience cache only; the reservations collection is
// authoritative.
type ReservationSummary struct {
	ReservationID string            `bson:"reservationId" json:"reservationId"`
	ProviderID    string            `bson:"providerId" json:"providerId"`
	ServiceDate   time.Time         `bson:"serviceDate" json:"serviceDate"`
	DurationHours float64           `bson:"durationHours" json:"durationHours"`
	Status        ReservationStatus `bson:"status" json:"status"`
}

type Client struct {
	ID           string               `bson:"id" json:"id"`
	FirstName    string               `bson:"firstName" json:"firstName"`
	LastName     string               `bson:"lastName" json:"lastName"`
	Email        string               `bson:"email" json:"email"`
	Password     string               `bson:"-" json:"password,omitempty"`
	PasswordHash string               `bson:"passwordHash" json:"-"`
	TokenHash    string               `bson:"tokenHash,omitempty" json:"-"`
	Phone        string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      Address              `bson:"address,omitzero" json:"address,omitzero"`
	Reservations []ReservationSummary `bson:"reservations,omitempty" json:"reservations,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// PublicName carries the only client fields ever joined into review and
// reservation listings.
func (c *Client) PublicName() PublicProfile {
	return PublicProfile{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName}
}

// PublicProfile is the counterpart summary embedded in listings. Never carries
// credentials.
type PublicProfile struct {
	ID        string `bson:"id" json:"id"`
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
}
