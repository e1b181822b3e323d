package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"unique", &pq.Error{Code: "23505", Constraint: "deal_participants_active_uniq"}, ErrDuplicate},
		{"foreign key", &pq.Error{Code: "23503"}, ErrNotFound},
		{"malformed uuid", &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}, ErrNotFound},
		{"connection", &pq.Error{Code: "08006"}, ErrStoreUnavailable},
		{"shutdown", &pq.Error{Code: "57P01"}, ErrStoreUnavailable},
		{"bad conn", driver.ErrBadConn, ErrStoreUnavailable},
		{"deadline", context.DeadlineExceeded, ErrStoreUnavailable},
	}
	for _, tc := range cases {
		assert.ErrorIs(t, classify(tc.in), tc.want, tc.name)
	}

	other := &pq.Error{Code: "42601"}
	assert.Same(t, other, classify(other))
	assert.NoError(t, classify(nil))
	assert.False(t, errors.Is(classify(other), ErrNotFound))
}

func TestActiveParticipantsSkipsMalformedDealID(t *testing.T) {
	// No query is issued, so the store needs no connection.
	s := &PostgresStore{}
	rows, err := s.ActiveParticipants(context.Background(), "abc", "buyer-1")
	assert.NoError(t, err)
	assert.Empty(t, rows)
}
