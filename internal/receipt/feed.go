package receipt

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// Feed keeps the most recent prints of every game and pushes new ones to
// live subscribers. A subscriber that falls behind misses prints rather
// than blocking the printer.
type Feed struct {
	mu     sync.Mutex
	keep   int
	prints map[string][]Print
	subs   map[string]map[chan Print]struct{}
}

func NewFeed(keep int) *Feed {
	if keep <= 0 {
		keep = 1
	}
	return &Feed{
		keep:   keep,
		prints: make(map[string][]Print),
		subs:   make(map[string]map[chan Print]struct{}),
	}
}

func (f *Feed) Print(ctx context.Context, p Print) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	history := append(f.prints[p.Slug], p)
	if len(history) > f.keep {
		history = append([]Print(nil), history[len(history)-f.keep:]...)
	}
	f.prints[p.Slug] = history

	for ch := range f.subs[p.Slug] {
		select {
		case ch <- p:
		default:
		}
	}
	return nil
}

// History returns the stored prints of slug, oldest first.
func (f *Feed) History(slug string) []Print {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Print(nil), f.prints[slug]...)
}

// Clear drops the stored prints of slug. Subscribers stay attached.
func (f *Feed) Clear(slug string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.prints, slug)
}

// Subscribe returns the current history of slug and a channel of prints
// that arrive afterwards. cancel detaches and closes the channel.
func (f *Feed) Subscribe(slug string) (history []Print, prints <-chan Print, cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan Print, subscriberBuffer)
	if f.subs[slug] == nil {
		f.subs[slug] = make(map[chan Print]struct{})
	}
	f.subs[slug][ch] = struct{}{}

	var once sync.Once
	cancel = func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs[slug], ch)
			if len(f.subs[slug]) == 0 {
				delete(f.subs, slug)
			}
			close(ch)
		})
	}
	return append([]Print(nil), f.prints[slug]...), ch, cancel
}
