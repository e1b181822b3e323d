package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/internal/models"
)

type sent struct {
	exchange, key string
	msg           amqp091.Publishing
}

type fakeChannel struct {
	sent []sent
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{exchange, key, msg})
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestPublishRoutesByType(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisherWithChannel(ch, "deals")
	evt := models.DealEvent{
		ID: "e1", Type: "deal.status_changed", DealID: "d1", ActorID: "u1", Version: 3,
		Data:       map[string]string{"from": "initial_interest", "to": "nda_signed"},
		OccurredAt: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.Publish(context.Background(), evt))
	require.Len(t, ch.sent, 1)
	got := ch.sent[0]
	assert.Equal(t, "deals", got.exchange)
	assert.Equal(t, "deal.status_changed", got.key)
	assert.Equal(t, amqp091.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, "e1", got.msg.MessageId)

	var decoded models.DealEvent
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, evt, decoded)
}

func TestPublishError(t *testing.T) {
	p := newPublisherWithChannel(&fakeChannel{err: errors.New("channel closed")}, "deals")
	err := p.Publish(context.Background(), models.DealEvent{Type: "deal.created"})
	assert.ErrorContains(t, err, "deal.created")
	assert.False(t, p.IsConnected())
}
