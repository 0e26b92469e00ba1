package eventable

import (
	"context"

	"github.com/urandom/feedkeeper/content"
)

type Event struct {
	Name string
	Data interface{}
}

// FeedData is implemented by event payloads that concern a single feed.
type FeedData interface {
	FeedID() content.FeedID
}

type Stream chan Event

type busCall func(*busPayload)

type busPayload struct {
	listeners []Stream
}

type bus struct {
	ops chan busCall
}

func newBus(ctx context.Context) bus {
	b := bus{
		ops: make(chan busCall),
	}

	go b.loop(ctx)

	return b
}

// Dispatch delivers the event to every listener whose buffer has room.
// Slow listeners miss events rather than stall the dispatcher.
func (b bus) Dispatch(name string, data interface{}) {
	b.ops <- func(p *busPayload) {
		event := Event{name, data}
		for i := range p.listeners {
			select {
			case p.listeners[i] <- event:
			default:
			}
		}
	}
}

func (b bus) Listener() Stream {
	ret := make(chan Event, 10)

	b.ops <- func(p *busPayload) {
		p.listeners = append(p.listeners, ret)
	}

	return ret
}

func (b bus) Remove(s Stream) {
	b.ops <- func(p *busPayload) {
		for i := range p.listeners {
			if p.listeners[i] == s {
				p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
				break
			}
		}
	}
}

func (b bus) loop(ctx context.Context) {
	payload := busPayload{
		[]Stream{},
	}

	for {
		select {
		case op := <-b.ops:
			op(&payload)
		case <-ctx.Done():
			return
		}
	}
}
