package tui

import "sync"

// outbox buffers lines produced on the event loop (toasts, status changes)
// until the session goroutine prints them between prompts.
type outbox struct {
	mu    sync.Mutex
	lines []string
}

func (o *outbox) push(line string) {
	if line == "" {
		return
	}
	o.mu.Lock()
	o.lines = append(o.lines, line)
	o.mu.Unlock()
}

func (o *outbox) drain() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.lines
	o.lines = nil
	return out
}
