package testutils

import (
	"context"
	"io"
	"sync"

	"lineshell/pkg/shelltypes"
)

type sourceItem struct {
	event shelltypes.KeyEvent
	err   error
}

// ChanSource is an EventSource fed by the test. ReadEvent returns io.EOF after
// Close once every queued item has been consumed.
type ChanSource struct {
	items     chan sourceItem
	closeOnce sync.Once
}

// NewChanSource creates a source with room for size queued items.
func NewChanSource(size int) *ChanSource {
	return &ChanSource{items: make(chan sourceItem, size)}
}

// Send queues events.
func (s *ChanSource) Send(events ...shelltypes.KeyEvent) {
	for _, ev := range events {
		s.items <- sourceItem{event: ev}
	}
}

// SendError queues a read error.
func (s *ChanSource) SendError(err error) {
	s.items <- sourceItem{err: err}
}

// Type queues a press event for every rune of text.
func (s *ChanSource) Type(text string) {
	for _, r := range text {
		s.Send(shelltypes.CharEvent(r))
	}
}

// Line queues text followed by Enter.
func (s *ChanSource) Line(text string) {
	s.Type(text)
	s.Send(shelltypes.SpecialEvent(shelltypes.KeyEnter))
}

// Close ends the stream.
func (s *ChanSource) Close() {
	s.closeOnce.Do(func() { close(s.items) })
}

// ReadEvent implements shelltypes.EventSource.
func (s *ChanSource) ReadEvent(ctx context.Context) (shelltypes.KeyEvent, error) {
	select {
	case item, ok := <-s.items:
		if !ok {
			return shelltypes.KeyEvent{}, io.EOF
		}
		return item.event, item.err
	case <-ctx.Done():
		return shelltypes.KeyEvent{}, io.EOF
	}
}
