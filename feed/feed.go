package feed

import (
	"context"
	"iter"
	"sync"
)

// New builds a concurrent broadcast feed.
func New() Feed {
	return &feedImpl{
		cond: sync.NewCond(&sync.Mutex{}),
		subs: map[int]int{},
	}
}

type feedImpl struct {
	cond *sync.Cond

	head    int // total events ever published
	pending []Event
	subs    map[int]int // listener id -> watermark of events consumed
	subHigh int
}

func (f *feedImpl) Publish(events ...Event) bool {
	if len(events) == 0 {
		return false
	}

	f.cond.L.Lock()
	defer f.cond.L.Unlock()

	f.head += len(events)

	if len(f.subs) == 0 {
		// noone will ever read these
		f.pending = nil
		return false
	}

	f.pending = append(f.pending, events...)
	f.cond.Broadcast()
	return true
}

func (f *feedImpl) Join(ctx context.Context) Listener {
	f.cond.L.Lock()
	defer f.cond.L.Unlock()

	who := f.subHigh
	f.subHigh++
	f.subs[who] = f.head

	go func() {
		<-ctx.Done()

		f.cond.L.Lock()
		defer f.cond.L.Unlock()

		delete(f.subs, who)
		f.trim()
		f.cond.Broadcast() // wake the evicted listener
	}()

	return &listenerImpl{f: f, who: who}
}

// trim drops pending events every listener has consumed.
// Must be called under lock; reports whether anything was dropped.
func (f *feedImpl) trim() bool {
	low := f.head
	for _, mark := range f.subs {
		low = min(low, mark)
	}

	start := f.head - len(f.pending)
	strip := low - start
	if strip <= 0 {
		return false
	}
	f.pending = f.pending[strip:]
	return true
}

// take blocks until the listener has unconsumed events, then consumes and
// returns up to limit of them (no limit if negative).
func (f *feedImpl) take(who int, limit int) []Event {
	f.cond.L.Lock()
	defer f.cond.L.Unlock()

	for {
		mark, ok := f.subs[who]
		if !ok {
			return nil // evicted
		}

		if mark == f.head {
			f.cond.Wait()
			continue
		}

		start := f.head - len(f.pending)
		avail := f.pending[mark-start:]
		if limit >= 0 && limit < len(avail) {
			avail = avail[:limit]
		}

		out := make([]Event, len(avail))
		copy(out, avail)

		f.subs[who] = mark + len(out)
		f.trim()
		return out
	}
}

type listenerImpl struct {
	f   *feedImpl
	who int
}

func (l *listenerImpl) Next() (Event, bool) {
	out := l.f.take(l.who, 1)
	if len(out) == 0 {
		return Event{}, false
	}
	return out[0], true
}

func (l *listenerImpl) Batch() []Event {
	return l.f.take(l.who, -1)
}

func (l *listenerImpl) Iter() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			ev, ok := l.Next()
			if !ok || !yield(ev) {
				return
			}
		}
	}
}
