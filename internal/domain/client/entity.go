package client

import "time"

// Client is a CRM contact. Name is the contact's own name; ClientName is how the
// business refers to the account, and is what calendar events link to.
type Client struct {
	ID          string
	Name        string
	ClientName  string
	CompanyName string
	PhoneNumber string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
