package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealStatus is a stage in the acquisition lifecycle.
type DealStatus string

const (
	StatusInitialInterest DealStatus = "initial_interest"
	StatusNDASigned       DealStatus = "nda_signed"
	StatusDueDiligence    DealStatus = "due_diligence"
	StatusNegotiation     DealStatus = "negotiation"
	StatusFinancing       DealStatus = "financing"
	StatusLegalReview     DealStatus = "legal_review"
	StatusClosing         DealStatus = "closing"
	StatusCompleted       DealStatus = "completed"
	StatusCancelled       DealStatus = "cancelled"
	StatusExpired         DealStatus = "expired"
)

// MainSequence is the forward order of non-abort stages.
var MainSequence = []DealStatus{
	StatusInitialInterest,
	StatusNDASigned,
	StatusDueDiligence,
	StatusNegotiation,
	StatusFinancing,
	StatusLegalReview,
	StatusClosing,
	StatusCompleted,
}

// ParseDealStatus returns the status for s and false if s is not a known stage.
func ParseDealStatus(s string) (DealStatus, bool) {
	st := DealStatus(s)
	switch st {
	case StatusInitialInterest, StatusNDASigned, StatusDueDiligence, StatusNegotiation,
		StatusFinancing, StatusLegalReview, StatusClosing,
		StatusCompleted, StatusCancelled, StatusExpired:
		return st, true
	}
	return "", false
}

// IsTerminal reports whether no further transition may leave s.
func (s DealStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusExpired:
		return true
	case StatusInitialInterest, StatusNDASigned, StatusDueDiligence, StatusNegotiation,
		StatusFinancing, StatusLegalReview, StatusClosing:
		return false
	}
	return false
}

type DealPriority string

const (
	PriorityLow    DealPriority = "low"
	PriorityMedium DealPriority = "medium"
	PriorityHigh   DealPriority = "high"
	PriorityUrgent DealPriority = "urgent"
)

func ParseDealPriority(s string) (DealPriority, bool) {
	p := DealPriority(s)
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, true
	}
	return "", false
}

// Deal is one buyer/seller acquisition negotiation.
type Deal struct {
	ID           string          `json:"id"`
	DealNumber   string          `json:"deal_number"`
	BuyerID      string          `json:"buyer_id"`
	SellerID     string          `json:"seller_id"`
	ListingID    string          `json:"listing_id"`
	Status       DealStatus      `json:"status"`
	Priority     DealPriority    `json:"priority"`
	InitialOffer decimal.Decimal `json:"initial_offer"`
	CurrentOffer decimal.Decimal `json:"current_offer"`
	OfferDate    time.Time       `json:"offer_date"`
	ClosingDate  time.Time       `json:"closing_date"`
	AssignedTo   *string         `json:"assigned_to,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int64           `json:"version"`
}

// DealFilter narrows deal listings.
type DealFilter struct {
	UserID     *string
	ActiveOnly bool
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from a to b (negative when b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
