package models

import "time"

// Comment length bounds and rating range enforced on review submission.
const (
	MinRating        = 1
	MaxRating        = 5
	MinCommentLength = 10
	MaxCommentLength = 500
)

type Review struct {
	ID         string `bson:"id" json:"id"`
	ClientID   string `bson:"clientId" json:"clientId"`
	ProviderID string `bson:"providerId" json:"providerId"`
	Rating     int    `bson:"rating" json:"rating"`
	Comment    string `bson:"comment" json:"comment"`
	// ServiceDate correlates the review with the completed reservation for the
	// same (client, provider, serviceDate) tuple.
	ServiceDate time.Time `bson:"serviceDate" json:"serviceDate"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ReviewView is a review joined with the author's (and, for unscoped search,
// the provider's) public name.
type ReviewView struct {
	Review   `bson:",inline"`
	Client   PublicProfile  `bson:"client" json:"client"`
	Provider *PublicProfile `bson:"provider,omitempty" json:"provider,omitempty"`
}

// ReviewSortField selects the ordering key for review listings.
type ReviewSortField string

const (
	SortByDate   ReviewSortField = "date"
	SortByRating ReviewSortField = "rating"
)

// ReviewFilter narrows review listings and searches. Zero values mean "no
// constraint".
type ReviewFilter struct {
	ProviderID string          `json:"providerId,omitempty"`
	MinRating  int             `json:"minRating,omitempty"`
	MaxRating  int             `json:"maxRating,omitempty"`
	DateFrom   time.Time       `json:"dateFrom,omitzero"`
	DateTo     time.Time       `json:"dateTo,omitzero"`
	SortBy     ReviewSortField `json:"sortBy,omitempty"`
	Descending bool            `json:"descending,omitempty"`
}

// ReviewListing is the result of a filtered review query. MeanRating is the
// mean over the filtered set, which is not the same thing as the provider's
// stored aggregate over all reviews.
type ReviewListing struct {
	Reviews    []ReviewView `json:"reviews"`
	Total      int          `json:"total"`
	MeanRating float64      `json:"meanRating"`
}
