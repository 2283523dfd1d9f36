package models

import "time"

// UnitPrice is the fixed per-lead price in USD. Every total shown to the
// user is requested count × UnitPrice, never derived from batch size.
const UnitPrice = 5.00

// AllowedCounts are the lead counts the results page lets the user pick
var AllowedCounts = []int{10, 25, 50, 100}

// DefaultCount is used when the count query parameter is absent or unparsable
const DefaultCount = 10

// Quote is a derived price breakdown. It is recomputed on every render and
// never persisted.
type Quote struct {
	Count     int
	UnitPrice float64
	Total     float64
}

// NewQuote prices a requested lead count
func NewQuote(count int) Quote {
	return Quote{
		Count:     count,
		UnitPrice: UnitPrice,
		Total:     float64(count) * UnitPrice,
	}
}

// CheckoutForm is the buyer identity submitted on the checkout page
type CheckoutForm struct {
	CompanyName string `form:"company_name"`
	Email       string `form:"email"`
}

// Order is the fulfilled purchase handed from checkout to the success page.
// It lives only in the transient order store and disappears when its
// session expires.
type Order struct {
	Batch       *LeadBatch
	CompanyName string
	Email       string
	Location    string
	Count       int
	CreatedAt   time.Time
}
