package models

import "time"

// ServiceType enumerates the home services a provider can offer.
type ServiceType string

const (
	ServiceCleaning    ServiceType = "cleaning"
	ServiceBabysitting ServiceType = "babysitting"
	ServiceCooking     ServiceType = "cooking"
)

// Valid reports whether t is one of the supported service types.
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceCleaning, ServiceBabysitting, ServiceCooking:
		return true
	}
	return false
}

type Provider struct {
	ID           string      `bson:"id" json:"id"`
	FirstName    string      `bson:"firstName" json:"firstName"`
	LastName     string      `bson:"lastName" json:"lastName"`
	Email        string      `bson:"email" json:"email"`
	Password     string      `bson:"-" json:"password,omitempty"`
	PasswordHash string      `bson:"passwordHash" json:"-"`
	TokenHash    string      `bson:"tokenHash,omitempty" json:"-"`
	ServiceType  ServiceType `bson:"serviceType" json:"serviceType"`
	HourlyRate   float64     `bson:"hourlyRate" json:"hourlyRate"`
	Description  string      `bson:"description,omitempty" json:"description,omitempty"`
	Availability []string    `bson:"availability,omitempty" json:"availability,omitempty"`
	// Rating is the derived mean of all reviews for this provider, rounded to
	// one decimal. 0 when the provider has no reviews. The reviews collection
	// is the source of truth.
	Rating    float64   `bson:"rating" json:"rating"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

func (p *Provider) PublicName() PublicProfile {
	return PublicProfile{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}
}
