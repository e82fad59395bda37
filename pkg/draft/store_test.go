package draft_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-contactform/pkg/draft"
	"github.com/goliatone/go-contactform/pkg/eventloop"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/storage"
)

var epoch = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type fixture struct {
	slots  *storage.Memory
	clock  *eventloop.Manual
	status []string
	logs   *observer.ObservedLogs
	store  *draft.Store
}

func newFixture(t *testing.T, opts ...draft.Option) *fixture {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		slots: storage.NewMemory(),
		clock: eventloop.NewManual(epoch),
		logs:  logs,
	}
	base := []draft.Option{
		draft.WithClock(f.clock),
		draft.WithLogger(zap.New(core)),
		draft.WithStatusSink(draft.StatusFunc(func(text string) {
			f.status = append(f.status, text)
		})),
	}
	store, err := draft.New(f.slots, append(base, opts...)...)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	f.store = store
	return f
}

func (f *fixture) put(t *testing.T, raw string) {
	t.Helper()
	if err := f.slots.Set(draft.DefaultKey, []byte(raw)); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
}

func (f *fixture) slotPresent() bool {
	_, err := f.slots.Get(draft.DefaultKey)
	return err == nil
}

func TestSave_WritesSlotAndStatusSequence(t *testing.T) {
	f := newFixture(t)
	fields := model.Fields{Name: "Ana", Email: "ana@exemplo.com", Interest: "consultoria", Message: "Olá!"}

	if err := f.store.Save(fields); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := f.slots.Get(draft.DefaultKey)
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("slot is not JSON: %v", err)
	}
	want := map[string]any{
		"name":      "Ana",
		"email":     "ana@exemplo.com",
		"interest":  "consultoria",
		"message":   "Olá!",
		"timestamp": float64(epoch.UnixMilli()),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("slot payload mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{draft.StatusSaving}, f.status); diff != "" {
		t.Fatalf("status before delay mismatch (-want +got):\n%s", diff)
	}
	f.clock.Advance(799 * time.Millisecond)
	if len(f.status) != 1 {
		t.Fatalf("saved status fired early: %v", f.status)
	}
	f.clock.Advance(time.Millisecond)
	if diff := cmp.Diff([]string{draft.StatusSaving, draft.StatusSaved}, f.status); diff != "" {
		t.Fatalf("status after delay mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_RapidSavesKeepEveryStatusTimer(t *testing.T) {
	f := newFixture(t)

	_ = f.store.Save(model.Fields{Name: "A"})
	f.clock.Advance(400 * time.Millisecond)
	_ = f.store.Save(model.Fields{Name: "An"})
	f.clock.Advance(2 * time.Second)

	want := []string{draft.StatusSaving, draft.StatusSaving, draft.StatusSaved, draft.StatusSaved}
	if diff := cmp.Diff(want, f.status); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_StorageFailureStillUpdatesStatus(t *testing.T) {
	f := newFixture(t)
	slots := storage.NewMemory(storage.WithQuota(8))
	store, err := draft.New(slots,
		draft.WithClock(f.clock),
		draft.WithStatusSink(draft.StatusFunc(func(text string) { f.status = append(f.status, text) })),
	)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	err = store.Save(model.Fields{Message: "too large for the quota"})
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	f.clock.Advance(time.Second)
	if diff := cmp.Diff([]string{draft.StatusSaving, draft.StatusSaved}, f.status); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	f := newFixture(t)
	fields := model.Fields{Name: "Ana Silva", Email: "ana@exemplo.com", Interest: "automacao", Message: "Quero conversar"}
	if err := f.store.Save(fields); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok := f.store.Load()
	if !ok {
		t.Fatalf("expected draft to load")
	}
	if diff := cmp.Diff(fields, got.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if got.Timestamp != epoch.UnixMilli() {
		t.Fatalf("unexpected timestamp %d", got.Timestamp)
	}
	if f.status[len(f.status)-1] != draft.StatusRecovered {
		t.Fatalf("expected recovered status, got %v", f.status)
	}
}

func TestLoad_Absent(t *testing.T) {
	f := newFixture(t)
	if _, ok := f.store.Load(); ok {
		t.Fatalf("expected no draft")
	}
	if len(f.status) != 0 {
		t.Fatalf("absent draft must not touch the status line: %v", f.status)
	}
}

func TestLoad_RetentionWindow(t *testing.T) {
	cases := []struct {
		name    string
		age     time.Duration
		wantOK  bool
		wantLog bool
	}{
		{name: "fresh", age: 0, wantOK: true},
		{name: "just inside", age: draft.DefaultRetention - time.Millisecond, wantOK: true},
		{name: "exactly seven days", age: draft.DefaultRetention, wantOK: false},
		{name: "ancient", age: 30 * 24 * time.Hour, wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			savedAt := epoch.Add(-tc.age)
			f.put(t, `{"name":"Ana","email":"a@b.com","interest":"outro","message":"olá mundo!","timestamp":`+
				jsonInt(savedAt.UnixMilli())+`}`)

			got, ok := f.store.Load()
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if f.slotPresent() != tc.wantOK {
				t.Fatalf("expected slot present=%v", tc.wantOK)
			}
			if ok && got.Name != "Ana" {
				t.Fatalf("unexpected draft %+v", got)
			}
		})
	}
}

func TestLoad_DefaultsMissingFields(t *testing.T) {
	f := newFixture(t)
	f.put(t, `{"message":"só a mensagem","timestamp":`+jsonInt(epoch.UnixMilli())+`}`)

	got, ok := f.store.Load()
	if !ok {
		t.Fatalf("expected draft to load")
	}
	want := model.Fields{Interest: "ia-geral", Message: "só a mensagem"}
	if diff := cmp.Diff(want, got.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MalformedClearsSlotAndLogs(t *testing.T) {
	payloads := map[string]string{
		"not json":          `{"name":`,
		"null":              `null`,
		"array":             `["Ana"]`,
		"wrong type":        `{"name":42,"timestamp":1}`,
		"missing timestamp": `{"name":"Ana"}`,
		"string timestamp":  `{"name":"Ana","timestamp":"ontem"}`,
	}

	for name, raw := range payloads {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.put(t, raw)

			if _, ok := f.store.Load(); ok {
				t.Fatalf("expected malformed draft to be rejected")
			}
			if f.slotPresent() {
				t.Fatalf("expected slot to be cleared")
			}
			if f.logs.FilterMessage("draft unreadable, discarding").Len() != 1 {
				t.Fatalf("expected a warning, got %v", f.logs.All())
			}
		})
	}
}

func TestClearAndSweep(t *testing.T) {
	f := newFixture(t)
	_ = f.store.Save(model.Fields{Name: "Ana"})

	if f.store.Sweep() {
		t.Fatalf("fresh draft must survive a sweep")
	}
	f.clock.Advance(draft.DefaultRetention)
	if !f.store.Sweep() {
		t.Fatalf("expired draft must be swept")
	}
	if f.slotPresent() {
		t.Fatalf("expected slot cleared by sweep")
	}

	_ = f.store.Save(model.Fields{Name: "Bia"})
	if err := f.store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if f.slotPresent() {
		t.Fatalf("expected slot cleared")
	}
	if err := f.store.Clear(); err != nil {
		t.Fatalf("clearing an empty slot: %v", err)
	}
}

func TestCustomRetentionAndKey(t *testing.T) {
	f := newFixture(t, draft.WithRetention(time.Hour), draft.WithKey("other_draft"))
	_ = f.store.Save(model.Fields{Name: "Ana"})

	if _, err := f.slots.Get("other_draft"); err != nil {
		t.Fatalf("expected custom key to be used: %v", err)
	}
	f.clock.Advance(time.Hour)
	if _, ok := f.store.Load(); ok {
		t.Fatalf("expected draft to expire after custom retention")
	}
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
