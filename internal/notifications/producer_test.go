package notifications

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *BookingEvent {
	return &BookingEvent{
		Type:        EventBookingConfirmed,
		BookingID:   "b7f9c2d0-1234-4abc-9def-000000000001",
		TrainID:     "12301",
		ClassCode:   "2A",
		PNR:         "8812345670",
		PaymentID:   "pay_1700000000_abc123",
		TotalAmount: 5790,
		Email:       "asha@example.com",
	}
}

func TestKafkaPublisherPublish(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(raw []byte) error {
		var event BookingEvent
		return json.Unmarshal(raw, &event)
	})

	publisher := &kafkaPublisher{producer: mockProducer, topic: "booking-events"}

	event := testEvent()
	require.NoError(t, publisher.Publish(context.Background(), event))

	// Publish stamps the event time when the caller left it unset.
	assert.False(t, event.OccurredAt.IsZero())

	require.NoError(t, publisher.Close())
}

func TestKafkaPublisherBrokerFault(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := &kafkaPublisher{producer: mockProducer, topic: "booking-events"}

	err := publisher.Publish(context.Background(), testEvent())
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)

	require.NoError(t, publisher.Close())
}

func TestKafkaPublisherHonorsContext(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	publisher := &kafkaPublisher{producer: mockProducer, topic: "booking-events"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.Publish(ctx, testEvent())
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, publisher.Close())
}
