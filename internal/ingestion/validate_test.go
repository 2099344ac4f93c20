package ingestion

import (
	"testing"

	"github.com/stretchr/testify/require"

	"notifyhub/internal/model"
)

func validEvent() model.SubmittedEvent {
	return model.SubmittedEvent{
		EventID:   "evt-1",
		EventType: model.EventTypeAccount,
		UserID:    "user-1",
		Channels:  []model.Channel{model.ChannelEmail},
		Priority:  model.PriorityNormal,
	}
}

func TestValidate_AcceptsWellFormedEvent(t *testing.T) {
	require.NoError(t, Validate(validEvent()))
}

func TestValidate_AcceptsEmptyPriority(t *testing.T) {
	e := validEvent()
	e.Priority = ""
	require.NoError(t, Validate(e), "empty priority is defaulted upstream, not rejected here")
}

func TestValidate_RejectsMissingEventID(t *testing.T) {
	e := validEvent()
	e.EventID = ""
	require.Error(t, Validate(e))
}

func TestValidate_RejectsMissingUserID(t *testing.T) {
	e := validEvent()
	e.UserID = ""
	require.Error(t, Validate(e))
}

func TestValidate_RejectsUnknownEventType(t *testing.T) {
	e := validEvent()
	e.EventType = "not-a-real-type"
	require.Error(t, Validate(e))
}

func TestValidate_RejectsEmptyChannels(t *testing.T) {
	e := validEvent()
	e.Channels = nil
	require.Error(t, Validate(e))
}

func TestValidate_RejectsUnknownChannel(t *testing.T) {
	e := validEvent()
	e.Channels = []model.Channel{"carrier-pigeon"}
	require.Error(t, Validate(e))
}

func TestValidate_RejectsUnknownPriority(t *testing.T) {
	e := validEvent()
	e.Priority = "whenever"
	require.Error(t, Validate(e))
}
