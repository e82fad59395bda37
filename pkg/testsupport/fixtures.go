package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-contactform/pkg/draft"
	"github.com/goliatone/go-contactform/pkg/eventloop"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/storage"
	"github.com/goliatone/go-contactform/pkg/toast"
)

// Epoch is the fixed start time of every harness clock.
var Epoch = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

// Harness wires a controller over in-memory slots and a manual clock.
type Harness struct {
	Slots      *storage.Memory
	Clock      *eventloop.Manual
	Logs       *observer.ObservedLogs
	Logger     *zap.Logger
	Form       *form.Form
	Drafts     *draft.Store
	Toasts     *toast.Notifier
	Submitter  *RecordingSubmitter
	Controller *form.Controller
}

// HarnessOption adjusts a harness before the controller is built.
type HarnessOption func(*harnessConfig)

type harnessConfig struct {
	slots       *storage.Memory
	draftOpts   []draft.Option
	controlOpts []form.Option
}

// WithSlots reuses slots, simulating a restart of the host.
func WithSlots(slots *storage.Memory) HarnessOption {
	return func(cfg *harnessConfig) {
		cfg.slots = slots
	}
}

// WithDraftOptions appends draft store options.
func WithDraftOptions(opts ...draft.Option) HarnessOption {
	return func(cfg *harnessConfig) {
		cfg.draftOpts = append(cfg.draftOpts, opts...)
	}
}

// WithControllerOptions appends controller options.
func WithControllerOptions(opts ...form.Option) HarnessOption {
	return func(cfg *harnessConfig) {
		cfg.controlOpts = append(cfg.controlOpts, opts...)
	}
}

// NewHarness builds a Harness. Failures abort the test.
func NewHarness(t *testing.T, options ...HarnessOption) *Harness {
	t.Helper()

	cfg := &harnessConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.slots == nil {
		cfg.slots = storage.NewMemory()
	}

	core, logs := observer.New(zapcore.DebugLevel)
	h := &Harness{
		Slots:     cfg.slots,
		Clock:     eventloop.NewManual(Epoch),
		Logs:      logs,
		Logger:    zap.New(core),
		Form:      form.NewForm(),
		Submitter: &RecordingSubmitter{},
	}

	drafts, err := draft.New(h.Slots, append([]draft.Option{
		draft.WithClock(h.Clock),
		draft.WithStatusSink(h.Form),
		draft.WithLogger(h.Logger),
	}, cfg.draftOpts...)...)
	if err != nil {
		t.Fatalf("new draft store: %v", err)
	}
	h.Drafts = drafts

	h.Toasts = toast.New(
		toast.WithClock(h.Clock),
		toast.WithLogger(h.Logger),
		toast.WithIDGenerator(SequentialIDs("toast")),
	)

	controller, err := form.NewController(h.Form, h.Drafts, h.Toasts, append([]form.Option{
		form.WithSubmitter(h.Submitter),
		form.WithLogger(h.Logger),
	}, cfg.controlOpts...)...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	h.Controller = controller
	return h
}

// Fill edits every field through the controller.
func (h *Harness) Fill(t *testing.T, fields model.Fields) {
	t.Helper()
	for _, name := range model.FieldNames {
		if err := h.Controller.Edit(name, fields.Get(name)); err != nil {
			t.Fatalf("edit %s: %v", name, err)
		}
	}
}

// StoredDraft decodes the raw slot, or returns false when it is empty.
func (h *Harness) StoredDraft(t *testing.T) (model.Draft, bool) {
	t.Helper()
	raw, err := h.Slots.Get(h.Drafts.Key())
	if err != nil {
		return model.Draft{}, false
	}
	var out model.Draft
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode stored draft: %v", err)
	}
	return out, true
}

// ToastMessages lists the messages in the toast container.
func (h *Harness) ToastMessages() []string {
	var out []string
	for _, t := range h.Toasts.Container().Toasts() {
		out = append(out, t.Message)
	}
	return out
}

// RecordingSubmitter captures payloads and optionally fails.
type RecordingSubmitter struct {
	mu       sync.Mutex
	Err      error
	Payloads []model.Fields
}

// Submit records payload and returns Err.
func (r *RecordingSubmitter) Submit(_ context.Context, payload model.Fields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Payloads = append(r.Payloads, payload)
	return r.Err
}

// Calls returns a copy of the recorded payloads.
func (r *RecordingSubmitter) Calls() []model.Fields {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Fields, len(r.Payloads))
	copy(out, r.Payloads)
	return out
}

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
