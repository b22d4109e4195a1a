package types

import (
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/samber/lo"
)

// SessionKind distinguishes the two surfaces that drive a checkout session.
// The action vocabulary is identical for both; only persistence differs.
type SessionKind string

const (
	// SessionKindTicket is a point-of-sale ticket or walk-in job
	SessionKindTicket SessionKind = "ticket"
	// SessionKindQuote is an estimate that may later convert to a ticket
	SessionKindQuote SessionKind = "quote"
)

func (k SessionKind) String() string {
	return string(k)
}

func (k SessionKind) Validate() error {
	allowed := []SessionKind{
		SessionKindTicket,
		SessionKindQuote,
	}
	if !lo.Contains(allowed, k) {
		return ierr.NewError("invalid session kind").
			WithHint("Please provide a valid session kind").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// QuoteStatus tracks the lifecycle of a persisted quote
type QuoteStatus string

const (
	// QuoteStatusDraft is an editable quote that has not been sent
	QuoteStatusDraft QuoteStatus = "draft"
	// QuoteStatusSent has been delivered to the customer; edits require a new revision
	QuoteStatusSent QuoteStatus = "sent"
	// QuoteStatusAccepted was approved by the customer
	QuoteStatusAccepted QuoteStatus = "accepted"
	// QuoteStatusConverted has been turned into a ticket
	QuoteStatusConverted QuoteStatus = "converted"
	// QuoteStatusExpired passed its valid-until date
	QuoteStatusExpired QuoteStatus = "expired"
)

func (s QuoteStatus) String() string {
	return string(s)
}

func (s QuoteStatus) Validate() error {
	allowed := []QuoteStatus{
		QuoteStatusDraft,
		QuoteStatusSent,
		QuoteStatusAccepted,
		QuoteStatusConverted,
		QuoteStatusExpired,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid quote status").
			WithHint("Please provide a valid quote status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsTerminal reports whether further edits require an explicit new revision
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusSent || s == QuoteStatusAccepted ||
		s == QuoteStatusConverted || s == QuoteStatusExpired
}

// TicketStatus tracks the lifecycle of a persisted ticket
type TicketStatus string

const (
	// TicketStatusOpen is still being built or worked
	TicketStatusOpen TicketStatus = "open"
	// TicketStatusCompleted has been checked out; totals are snapshotted
	TicketStatusCompleted TicketStatus = "completed"
	// TicketStatusVoided was cancelled before completion
	TicketStatusVoided TicketStatus = "voided"
)

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) Validate() error {
	allowed := []TicketStatus{
		TicketStatusOpen,
		TicketStatusCompleted,
		TicketStatusVoided,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid ticket status").
			WithHint("Please provide a valid ticket status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
