// Package consumer reacts to record-refresh events from the export
// pipeline: when a new activity log lands, the store snapshot is swapped.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Lqint/RMBSVolReport/internal/store"
)

// EventRecordsRefreshed signals that a fresh export is ready to load.
const EventRecordsRefreshed = "records.refreshed"

// Reader exposes the minimal kafka.Reader interface needed by the processor.
type Reader interface {
	FetchMessage(context.Context) (kafka.Message, error)
	CommitMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Handler receives decoded refresh events.
type Handler interface {
	Handle(context.Context, Event) error
}

// Event is the decoded representation of a pipeline notification.
type Event struct {
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	EventType string
	Payload   json.RawMessage
}

// Option configures optional behaviour for the Processor.
type Option func(*Processor)

// WithLogger overrides the logger used to report errors.
func WithLogger(logger *log.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// Processor pulls messages from Kafka, decodes them, and dispatches to a
// Handler. Malformed messages are committed so they cannot poison the
// partition; handler failures leave the message uncommitted for redelivery.
type Processor struct {
	reader  Reader
	handler Handler
	logger  *log.Logger
}

// NewProcessor constructs a Processor with the provided reader and handler.
func NewProcessor(reader Reader, handler Handler, opts ...Option) *Processor {
	p := &Processor{
		reader:  reader,
		handler: handler,
		logger:  log.New(log.Writer(), "[consumer] ", log.LstdFlags|log.Lshortfile),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run starts a blocking loop that processes messages until the context is
// cancelled.
func (p *Processor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			p.logger.Printf("fetch error: %v", err)
			continue
		}

		event, decodeErr := decodeEvent(msg)
		if decodeErr != nil {
			p.logger.Printf("decode error (topic=%s, partition=%d, offset=%d): %v", msg.Topic, msg.Partition, msg.Offset, decodeErr)
			recordDecodeError(msg.Topic)
			if commitErr := p.reader.CommitMessages(ctx, msg); commitErr != nil {
				p.logger.Printf("commit error after decode failure: %v", commitErr)
			}
			continue
		}

		if handleErr := p.handler.Handle(ctx, event); handleErr != nil {
			p.logger.Printf("handler error (event_type=%s): %v", event.EventType, handleErr)
			recordHandlerError(event)
			continue
		}

		if commitErr := p.reader.CommitMessages(ctx, msg); commitErr != nil {
			p.logger.Printf("commit error: %v", commitErr)
		} else {
			recordProcessed(event)
		}
	}
}

func decodeEvent(msg kafka.Message) (Event, error) {
	eventType, ok := headerValue(msg, "event_type")
	if !ok {
		return Event{}, errors.New("missing event_type header")
	}
	if len(msg.Value) > 0 && !json.Valid(msg.Value) {
		return Event{}, errors.New("payload is not valid JSON")
	}

	return Event{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		EventType: string(eventType),
		Payload:   json.RawMessage(append([]byte(nil), msg.Value...)),
	}, nil
}

func headerValue(msg kafka.Message, key string) ([]byte, bool) {
	for _, header := range msg.Headers {
		if header.Key == key {
			return header.Value, true
		}
	}
	return nil, false
}

// RefreshHandler reloads the store when a refresh event arrives. Other
// event types on the topic are ignored.
type RefreshHandler struct {
	store  *store.Store
	logger *log.Logger
}

// NewRefreshHandler constructs a RefreshHandler.
func NewRefreshHandler(st *store.Store, logger *log.Logger) *RefreshHandler {
	if logger == nil {
		logger = log.New(log.Writer(), "[refresh] ", log.LstdFlags)
	}
	return &RefreshHandler{store: st, logger: logger}
}

// Handle triggers an atomic snapshot reload.
func (h *RefreshHandler) Handle(ctx context.Context, event Event) error {
	if event.EventType != EventRecordsRefreshed {
		h.logger.Printf("ignoring event_type=%s", event.EventType)
		return nil
	}
	return h.store.Reload(ctx)
}
