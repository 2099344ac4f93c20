package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"notifyhub/internal/model"
)

func delivery(channel model.Channel, eventType model.EventType, status model.DeliveryStatus, attempts int) model.Delivery {
	return model.Delivery{
		Channel:      channel,
		EventType:    eventType,
		Status:       status,
		AttemptCount: attempts,
	}
}

func TestAggregate_ComputesPerChannelSuccessRateAndAttempts(t *testing.T) {
	rows := []model.Delivery{
		delivery(model.ChannelEmail, model.EventTypeAccount, model.DeliveryDelivered, 1),
		delivery(model.ChannelEmail, model.EventTypeAccount, model.DeliveryDelivered, 2),
		delivery(model.ChannelEmail, model.EventTypeSecurity, model.DeliveryFailed, 3),
		delivery(model.ChannelSMS, model.EventTypeSecurity, model.DeliverySent, 1),
	}

	report := aggregate(rows, 24)

	require.Equal(t, 4, report.TotalDeliveries)
	require.Len(t, report.ChannelMetrics, 2)

	// Alphabetical order: email before sms.
	email := report.ChannelMetrics[0]
	require.Equal(t, model.ChannelEmail, email.Channel)
	require.Equal(t, 3, email.Total)
	require.Equal(t, 2, email.Delivered)
	require.Equal(t, 1, email.Failed)
	require.Equal(t, round2(float64(2)/float64(3)*100), email.SuccessRate)
	require.Equal(t, round2(float64(1+2+3)/float64(3)), email.AvgAttempts)
}

func TestAggregate_OverallSuccessRateCountsDeliveredAndSentAcrossChannels(t *testing.T) {
	rows := []model.Delivery{
		delivery(model.ChannelEmail, model.EventTypeAccount, model.DeliveryDelivered, 1),
		delivery(model.ChannelSMS, model.EventTypeAccount, model.DeliverySent, 1),
		delivery(model.ChannelPush, model.EventTypeAccount, model.DeliveryFailed, 3),
		delivery(model.ChannelInApp, model.EventTypeAccount, model.DeliveryBounced, 1),
	}

	report := aggregate(rows, 1)

	require.Equal(t, round2(float64(2)/float64(4)*100), report.SuccessRate)
}

func TestAggregate_TopEventTypesSortedByCountDescendingAndCappedAtTen(t *testing.T) {
	var rows []model.Delivery
	for i := 0; i < 5; i++ {
		rows = append(rows, delivery(model.ChannelEmail, model.EventTypeMarketing, model.DeliverySent, 1))
	}
	for i := 0; i < 3; i++ {
		rows = append(rows, delivery(model.ChannelEmail, model.EventTypeAccount, model.DeliverySent, 1))
	}
	rows = append(rows, delivery(model.ChannelEmail, model.EventTypeSecurity, model.DeliverySent, 1))
	rows = append(rows, delivery(model.ChannelEmail, model.EventTypeSystem, model.DeliverySent, 1))

	report := aggregate(rows, 24)

	require.Len(t, report.TopEventTypes, 4)
	require.Equal(t, model.EventTypeMarketing, report.TopEventTypes[0].EventType)
	require.Equal(t, 5, report.TopEventTypes[0].Count)
	require.Equal(t, model.EventTypeAccount, report.TopEventTypes[1].EventType)
	require.Equal(t, 3, report.TopEventTypes[1].Count)
}

func TestAggregate_EmptyWindowProducesZeroedReport(t *testing.T) {
	report := aggregate(nil, 6)

	require.Equal(t, 0, report.TotalDeliveries)
	require.Equal(t, float64(0), report.SuccessRate)
	require.Empty(t, report.ChannelMetrics)
	require.Empty(t, report.TopEventTypes)
	require.Equal(t, 6, report.PeriodHours)
}

func TestRound2_RoundsToTwoDecimalPlaces(t *testing.T) {
	cases := map[float64]float64{
		33.33333: 33.33,
		66.66666: 66.67,
		100.0:    100.0,
		0.0:      0.0,
	}
	for in, want := range cases {
		require.Equal(t, want, round2(in))
	}
}
