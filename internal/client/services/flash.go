package services

import (
	"sync"
	"time"
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

type FlashMessage struct {
	Kind FlashKind
	Text string
}

// Flash holds at most one banner message that clears itself after its TTL.
// A newer message replaces the current one and restarts the timer.
type Flash struct {
	mu         sync.Mutex
	successTTL time.Duration
	errorTTL   time.Duration
	msg        *FlashMessage
	timer      *time.Timer
	gen        uint64
	closed     bool
	onChange   func(FlashMessage, bool)
}

func NewFlash(successTTL, errorTTL time.Duration) *Flash {
	return &Flash{successTTL: successTTL, errorTTL: errorTTL}
}

// OnChange registers fn to run whenever the message is set or cleared. fn
// must not call back into the Flash.
func (f *Flash) OnChange(fn func(msg FlashMessage, visible bool)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = fn
}

func (f *Flash) Success(text string) {
	f.set(FlashMessage{Kind: FlashSuccess, Text: text}, f.successTTL)
}

func (f *Flash) Error(text string) {
	f.set(FlashMessage{Kind: FlashError, Text: text}, f.errorTTL)
}

func (f *Flash) set(m FlashMessage, ttl time.Duration) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	f.gen++
	gen := f.gen
	f.msg = &m
	if ttl > 0 {
		f.timer = time.AfterFunc(ttl, func() { f.expire(gen) })
	}
	notify := f.onChange
	f.mu.Unlock()

	if notify != nil {
		notify(m, true)
	}
}

func (f *Flash) expire(gen uint64) {
	f.mu.Lock()
	if f.gen != gen || f.msg == nil {
		f.mu.Unlock()
		return
	}
	m := *f.msg
	f.msg = nil
	notify := f.onChange
	f.mu.Unlock()

	if notify != nil {
		notify(m, false)
	}
}

// Current returns the visible message, if any.
func (f *Flash) Current() (FlashMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.msg == nil {
		return FlashMessage{}, false
	}
	return *f.msg, true
}

// Clear hides the current message.
func (f *Flash) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.gen++
	f.msg = nil
}

// Close stops the expiry timer; later messages are ignored.
func (f *Flash) Close() {
	f.Clear()
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}
