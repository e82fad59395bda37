package toast_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/eventloop"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/toast"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("toast-%d", n)
	}
}

type snapshot struct {
	ID      string
	Leaving bool
}

func snapshotOf(c *toast.Container) []snapshot {
	var out []snapshot
	for _, t := range c.Toasts() {
		out = append(out, snapshot{ID: t.ID, Leaving: t.Leaving})
	}
	return out
}

func TestNotifier_Lifecycle(t *testing.T) {
	clock := eventloop.NewManual(epoch)
	notifier := toast.New(toast.WithClock(clock), toast.WithIDGenerator(sequentialIDs()))

	var events []toast.EventKind
	notifier.Subscribe(func(evt toast.Event) {
		events = append(events, evt.Kind)
	})

	shown := notifier.Show("x", model.SeverityError)
	if shown.ID != "toast-1" || shown.Message != "x" || shown.Severity != model.SeverityError {
		t.Fatalf("unexpected toast %+v", shown)
	}
	if !shown.CreatedAt.Equal(epoch) {
		t.Fatalf("created at: got %s", shown.CreatedAt)
	}

	container := notifier.Container()
	if diff := cmp.Diff([]snapshot{{ID: "toast-1"}}, snapshotOf(container)); diff != "" {
		t.Fatalf("after show mismatch (-want +got):\n%s", diff)
	}

	clock.Advance(3999 * time.Millisecond)
	if diff := cmp.Diff([]snapshot{{ID: "toast-1"}}, snapshotOf(container)); diff != "" {
		t.Fatalf("before display period mismatch (-want +got):\n%s", diff)
	}

	clock.Advance(time.Millisecond)
	if diff := cmp.Diff([]snapshot{{ID: "toast-1", Leaving: true}}, snapshotOf(container)); diff != "" {
		t.Fatalf("at 4000ms mismatch (-want +got):\n%s", diff)
	}

	clock.Advance(299 * time.Millisecond)
	if container.Len() != 1 {
		t.Fatalf("expected toast attached during exit, got %d", container.Len())
	}

	clock.Advance(time.Millisecond)
	if container.Len() != 0 {
		t.Fatalf("expected toast removed at 4300ms, got %d", container.Len())
	}

	want := []toast.EventKind{toast.EventShown, toast.EventLeaving, toast.EventRemoved}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if clock.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", clock.Pending())
	}
}

func TestNotifier_StacksWithIndependentTimers(t *testing.T) {
	clock := eventloop.NewManual(epoch)
	notifier := toast.New(toast.WithClock(clock), toast.WithIDGenerator(sequentialIDs()))
	container := notifier.Container()

	notifier.Success("primeiro")
	clock.Advance(time.Second)
	notifier.Error("segundo")
	notifier.Error("terceiro")

	want := []snapshot{{ID: "toast-1"}, {ID: "toast-2"}, {ID: "toast-3"}}
	if diff := cmp.Diff(want, snapshotOf(container)); diff != "" {
		t.Fatalf("stack mismatch (-want +got):\n%s", diff)
	}

	clock.Advance(3 * time.Second)
	want = []snapshot{{ID: "toast-1", Leaving: true}, {ID: "toast-2"}, {ID: "toast-3"}}
	if diff := cmp.Diff(want, snapshotOf(container)); diff != "" {
		t.Fatalf("first leaving mismatch (-want +got):\n%s", diff)
	}

	clock.Advance(300 * time.Millisecond)
	want = []snapshot{{ID: "toast-2"}, {ID: "toast-3"}}
	if diff := cmp.Diff(want, snapshotOf(container)); diff != "" {
		t.Fatalf("first removed mismatch (-want +got):\n%s", diff)
	}

	clock.Advance(time.Second)
	if container.Len() != 0 {
		t.Fatalf("expected all toasts removed, got %v", snapshotOf(container))
	}
}

func TestNotifier_CustomDurations(t *testing.T) {
	clock := eventloop.NewManual(epoch)
	notifier := toast.New(
		toast.WithClock(clock),
		toast.WithDisplay(time.Second),
		toast.WithExit(0),
	)

	notifier.Success("ok")
	clock.Advance(time.Second)
	if notifier.Container().Len() != 0 {
		t.Fatalf("expected toast removed after custom display")
	}
}

func TestNotifier_SharedContainer(t *testing.T) {
	clock := eventloop.NewManual(epoch)
	container := toast.NewContainer()
	first := toast.New(toast.WithClock(clock), toast.WithContainer(container))
	second := toast.New(toast.WithClock(clock), toast.WithContainer(container))

	a := first.Success("a")
	b := second.Error("b")
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct generated ids, got %q and %q", a.ID, b.ID)
	}
	if container.Len() != 2 {
		t.Fatalf("expected shared container to hold 2 toasts, got %d", container.Len())
	}
}
