package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/detailpos/detailpos/internal/domain/checkout"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SessionRegistrySuite struct {
	suite.Suite
	registry *SessionRegistry
}

func TestSessionRegistry(t *testing.T) {
	suite.Run(t, new(SessionRegistrySuite))
}

func (s *SessionRegistrySuite) SetupTest() {
	s.registry = NewSessionRegistry()
}

func (s *SessionRegistrySuite) TestPutAssignsDistinctIDs() {
	first := s.registry.Put(checkout.NewSession(types.SessionKindTicket, decimal.Zero))
	second := s.registry.Put(checkout.NewSession(types.SessionKindQuote, decimal.Zero))

	s.NotEmpty(first)
	s.NotEqual(first, second)
}

func (s *SessionRegistrySuite) TestWithSessionUnknownID() {
	err := s.registry.WithSession("sess_missing", func(session *checkout.Session) error {
		s.Fail("callback must not run for an unknown session")
		return nil
	})
	s.True(ierr.IsNotFound(err))
}

func (s *SessionRegistrySuite) TestWithSessionAfterDelete() {
	id := s.registry.Put(checkout.NewSession(types.SessionKindTicket, decimal.Zero))
	s.registry.Delete(id)

	err := s.registry.WithSession(id, func(session *checkout.Session) error {
		return nil
	})
	s.True(ierr.IsNotFound(err))
}

func (s *SessionRegistrySuite) TestWithSessionPropagatesCallbackError() {
	id := s.registry.Put(checkout.NewSession(types.SessionKindTicket, decimal.Zero))

	wanted := ierr.NewError("line gone").Mark(ierr.ErrNotFound)
	err := s.registry.WithSession(id, func(session *checkout.Session) error {
		return wanted
	})
	s.ErrorIs(err, wanted)
}

// Concurrent requests against one session must serialize through the
// registry; every mutation lands and none are lost to interleaving.
func (s *SessionRegistrySuite) TestWithSessionSerializesConcurrentMutations() {
	id := s.registry.Put(checkout.NewSession(types.SessionKindTicket, decimal.NewFromFloat(0.08)))

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			err := s.registry.WithSession(id, func(session *checkout.Session) error {
				_, err := session.AddItem(checkout.LineItemCandidate{
					ItemType:  types.LineItemTypeCustom,
					ItemName:  fmt.Sprintf("Charge %d", n),
					UnitPrice: decimal.NewFromInt(5),
					Quantity:  1,
					IsTaxable: true,
				})
				return err
			})
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	err := s.registry.WithSession(id, func(session *checkout.Session) error {
		s.Len(session.Items, workers)
		s.True(session.Totals().Subtotal.Equal(decimal.NewFromInt(5*workers)))
		return nil
	})
	s.NoError(err)
}

func (s *SessionRegistrySuite) TestDeleteUnknownIDIsNoOp() {
	s.registry.Delete("sess_missing")
}
