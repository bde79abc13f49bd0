package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/segmentio/kafka-go"

	"github.com/Lqint/RMBSVolReport/internal/domain"
	"github.com/Lqint/RMBSVolReport/internal/store"
)

type stubReader struct {
	messages    []kafka.Message
	index       int
	commitCalls []kafka.Message
	commitErr   error
	after       func() error
}

func (r *stubReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if r.index >= len(r.messages) {
		if r.after != nil {
			return kafka.Message{}, r.after()
		}
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.messages[r.index]
	r.index++
	return msg, nil
}

func (r *stubReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if r.commitErr != nil {
		return r.commitErr
	}
	r.commitCalls = append(r.commitCalls, msgs...)
	return nil
}

func (r *stubReader) Close() error { return nil }

type stubHandler struct {
	calls int
	err   error
	last  Event
}

func (h *stubHandler) Handle(ctx context.Context, event Event) error {
	h.calls++
	h.last = event
	return h.err
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func testLogger(t *testing.T) *log.Logger {
	return log.New(testWriter{t}, "", 0)
}

func contextCanceled() func() error {
	return func() error { return context.Canceled }
}

func refreshMessage(offset int64, eventType string, payload []byte) kafka.Message {
	return kafka.Message{
		Topic:     "volunteer_records_refresh",
		Partition: 0,
		Offset:    offset,
		Time:      time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC),
		Headers:   []kafka.Header{{Key: "event_type", Value: []byte(eventType)}},
		Value:     payload,
	}
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		t.Fatalf("read metric: %v", err)
	}
	return out.GetCounter().GetValue()
}

func TestProcessorCommitsAfterSuccessfulHandle(t *testing.T) {
	reader := &stubReader{
		messages: []kafka.Message{refreshMessage(7, EventRecordsRefreshed, []byte(`{"export_id":"2025-01-06"}`))},
		after:    contextCanceled(),
	}
	handler := &stubHandler{}
	p := NewProcessor(reader, handler, WithLogger(testLogger(t)))

	err := p.Run(context.Background())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}

	if handler.calls != 1 {
		t.Fatalf("handler calls = %d, want 1", handler.calls)
	}
	if handler.last.EventType != EventRecordsRefreshed {
		t.Fatalf("event type = %q", handler.last.EventType)
	}
	if handler.last.Offset != 7 {
		t.Fatalf("offset = %d, want 7", handler.last.Offset)
	}
	if len(reader.commitCalls) != 1 {
		t.Fatalf("commits = %d, want 1", len(reader.commitCalls))
	}
}

func TestProcessorLeavesMessageUncommittedOnHandlerError(t *testing.T) {
	reader := &stubReader{
		messages: []kafka.Message{refreshMessage(3, EventRecordsRefreshed, nil)},
		after:    contextCanceled(),
	}
	handler := &stubHandler{err: errors.New("reload failed")}
	p := NewProcessor(reader, handler, WithLogger(testLogger(t)))

	before := counterValue(t, handlerErrorCounter, "volunteer_records_refresh", EventRecordsRefreshed)
	_ = p.Run(context.Background())

	if len(reader.commitCalls) != 0 {
		t.Fatalf("commits = %d, want 0; failed messages must be redelivered", len(reader.commitCalls))
	}
	after := counterValue(t, handlerErrorCounter, "volunteer_records_refresh", EventRecordsRefreshed)
	if after != before+1 {
		t.Fatalf("handler error counter = %v, want %v", after, before+1)
	}
}

func TestProcessorCommitsPoisonMessages(t *testing.T) {
	missingHeader := kafka.Message{
		Topic:  "volunteer_records_refresh",
		Offset: 1,
		Value:  []byte(`{}`),
	}
	badPayload := refreshMessage(2, EventRecordsRefreshed, []byte("{not json"))

	reader := &stubReader{
		messages: []kafka.Message{missingHeader, badPayload},
		after:    contextCanceled(),
	}
	handler := &stubHandler{}
	p := NewProcessor(reader, handler, WithLogger(testLogger(t)))

	before := counterValue(t, decodeErrorCounter, "volunteer_records_refresh")
	_ = p.Run(context.Background())

	if handler.calls != 0 {
		t.Fatalf("handler calls = %d, want 0", handler.calls)
	}
	if len(reader.commitCalls) != 2 {
		t.Fatalf("commits = %d, want 2; poison messages must not block the partition", len(reader.commitCalls))
	}
	after := counterValue(t, decodeErrorCounter, "volunteer_records_refresh")
	if after != before+2 {
		t.Fatalf("decode error counter = %v, want %v", after, before+2)
	}
}

func TestDecodeEventCopiesPayload(t *testing.T) {
	raw := []byte(`{"export_id":"x"}`)
	msg := refreshMessage(5, EventRecordsRefreshed, raw)

	event, err := decodeEvent(msg)
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}

	raw[2] = 'Z'
	var decoded map[string]string
	if err := json.Unmarshal(event.Payload, &decoded); err != nil {
		t.Fatalf("payload mutated with the source buffer: %v", err)
	}
	if decoded["export_id"] != "x" {
		t.Fatalf("export_id = %q", decoded["export_id"])
	}
}

type stubRecordSource struct {
	records []domain.ActivityRecord
	err     error
	loads   int
}

func (s *stubRecordSource) Load(ctx context.Context) ([]domain.ActivityRecord, error) {
	s.loads++
	return s.records, s.err
}

func TestRefreshHandlerReloadsStore(t *testing.T) {
	src := &stubRecordSource{records: []domain.ActivityRecord{{Name: "Li Hua", VolunteerID: "1"}}}
	st := store.New(src, "", store.WithLogger(testLogger(t)))
	h := NewRefreshHandler(st, testLogger(t))

	err := h.Handle(context.Background(), Event{EventType: EventRecordsRefreshed})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if src.loads != 1 {
		t.Fatalf("loads = %d, want 1", src.loads)
	}
	if got := len(st.Snapshot().Records); got != 1 {
		t.Fatalf("snapshot records = %d, want 1", got)
	}
}

func TestRefreshHandlerIgnoresOtherEventTypes(t *testing.T) {
	src := &stubRecordSource{}
	st := store.New(src, "", store.WithLogger(testLogger(t)))
	h := NewRefreshHandler(st, testLogger(t))

	if err := h.Handle(context.Background(), Event{EventType: "records.archived"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if src.loads != 0 {
		t.Fatalf("loads = %d, want 0", src.loads)
	}
}

func TestRefreshHandlerPropagatesReloadError(t *testing.T) {
	src := &stubRecordSource{err: errors.New("backend down")}
	st := store.New(src, "", store.WithLogger(testLogger(t)))
	h := NewRefreshHandler(st, testLogger(t))

	if err := h.Handle(context.Background(), Event{EventType: EventRecordsRefreshed}); err == nil {
		t.Fatal("expected reload error to propagate for redelivery")
	}
}
