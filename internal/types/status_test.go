package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteStatusIsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status QuoteStatus
		want   bool
	}{
		{name: "draft is editable", status: QuoteStatusDraft, want: false},
		{name: "sent is terminal", status: QuoteStatusSent, want: true},
		{name: "accepted is terminal", status: QuoteStatusAccepted, want: true},
		{name: "converted is terminal", status: QuoteStatusConverted, want: true},
		{name: "expired is terminal", status: QuoteStatusExpired, want: true},
		{name: "zero value is editable", status: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}

func TestSessionKindValidate(t *testing.T) {
	assert.NoError(t, SessionKindTicket.Validate())
	assert.NoError(t, SessionKindQuote.Validate())
	assert.Error(t, SessionKind("invoice").Validate())
	assert.Error(t, SessionKind("").Validate())
}

func TestTicketStatusValidate(t *testing.T) {
	for _, s := range []TicketStatus{TicketStatusOpen, TicketStatusCompleted, TicketStatusVoided} {
		assert.NoError(t, s.Validate())
	}
	assert.Error(t, TicketStatus("paid").Validate())
}
