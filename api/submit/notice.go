package submit

import (
	"sync"
	"time"
)

// Notice is a transient message area. Each Show replaces the text and
// restarts the hide timer.
type Notice struct {
	mu      sync.Mutex
	text    string
	visible bool
	timer   *time.Timer
	gen     uint64

	// OnChange, when set, is called after every show or hide.
	OnChange func(text string, visible bool)
}

func (n *Notice) Show(text string, d time.Duration) {
	if d <= 0 {
		d = SuccessDuration
	}

	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.text = text
	n.visible = true
	n.timer = time.AfterFunc(d, func() { n.hide(gen) })
	cb := n.OnChange
	n.mu.Unlock()

	if cb != nil {
		cb(text, true)
	}
}

// hide only acts if no newer message was shown since the timer was armed.
func (n *Notice) hide(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || !n.visible {
		n.mu.Unlock()
		return
	}
	n.visible = false
	n.timer = nil
	text := n.text
	cb := n.OnChange
	n.mu.Unlock()

	if cb != nil {
		cb(text, false)
	}
}

// Current returns the text and whether it is on screen.
func (n *Notice) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text, n.visible
}

func (n *Notice) Notify(out Outcome) {
	n.Show(out.Message, out.Duration)
}
