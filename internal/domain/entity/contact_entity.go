package entity

import "time"

// Contact is a customer contact record captured from the public site.
type Contact struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// Enquiry is a product enquiry; ProductID is optional.
type Enquiry struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	ProductID string
	Message   string
	CreatedAt time.Time
}
