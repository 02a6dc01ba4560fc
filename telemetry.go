package legendsauth

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/internal/telemetry"
)

// TelemetryEvent is the structured record emitted for every authentication
// lifecycle operation.
type TelemetryEvent = telemetry.Event

// TelemetrySink receives emitted telemetry events.
type TelemetrySink = telemetry.Sink

// NoOpSink drops telemetry events.
type NoOpSink = telemetry.NoOpSink

// ChannelSink writes telemetry events into a buffered channel.
type ChannelSink = telemetry.ChannelSink

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink = telemetry.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return telemetry.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] writing to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return telemetry.NewJSONWriterSink(w)
}

const (
	telemetryEventLogin    = "session.login"
	telemetryEventRegister = "session.register"
	telemetryEventLogout   = "session.logout"
	telemetryEventRestore  = "session.restore"
)

func (p *Provider) emitTelemetry(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	role string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if p == nil || p.telemetry == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := TelemetryEvent{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Role:      role,
		Success:   success,
		Metadata:  metadata,
	}
	if err != nil {
		event.Error = err.Error()
	}

	p.telemetry.Emit(ctx, event)
}
