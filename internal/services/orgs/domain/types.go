// Package domain defines the read-side records of the incubator directory:
// fundraisers, capital providers, partners, and funds
package domain

import "time"

// Fundraiser is an organization seeking capital or a partnership
type Fundraiser struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Address     string
	Stage       string
	Needs       string

	// requested amount range; either bound may be unknown
	AskMin *float64
	AskMax *float64

	Views     int
	Likes     int
	Bookmarks int
	CreatedAt time.Time
}

// Provider is an entity allocating investment capital; owns zero or more funds
type Provider struct {
	ID          int64
	Name        string
	Focus       string // investment focus text
	Description string
	Address     string
}

// Partner is a non-capital collaborator (distribution, integration, pilots)
type Partner struct {
	ID              int64
	Name            string
	PartnershipType string
	Description     string
	Address         string
}

// Fund is one capital pool of a provider
type Fund struct {
	ID         int64
	ProviderID int64
	Name       string

	TicketMin   *float64
	TicketMax   *float64
	Total       *float64
	Uncommitted *float64

	WindowFrom *time.Time
	WindowTo   *time.Time

	SectorFocus []string
	GeoFocus    []string
	StageFocus  []string
}
