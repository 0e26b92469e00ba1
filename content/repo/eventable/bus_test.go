package eventable

import (
	"context"
	"testing"
	"time"

	"github.com/urandom/feedkeeper/content"
)

func Test_bus_Dispatch(t *testing.T) {
	type args struct {
		name string
		data interface{}
	}
	tests := []struct {
		name      string
		events    []args
		listeners int
	}{
		{"single event", []args{{"event1", FeedUpdateData{Feed: "http://sugr.org"}}}, 1},
		{"multiple event", []args{
			{"event1", FeedUpdateData{Feed: "http://sugr.org"}},
			{"event2", FeedUpdateData{Feed: "http://sugr.org", UpdateError: "err"}},
		}, 1},
		{"single event, multi listeners", []args{{"event1", FeedUpdateData{Feed: "http://sugr.org"}}}, 3},
		{"multiple event, multi listeners", []args{
			{"event1", FeedUpdateData{Feed: "http://sugr.org"}},
			{"event2", FeedUpdateData{Feed: "http://sugr.org", UpdateError: "err"}},
		}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			b := newBus(ctx)

			streams := make([]Stream, tt.listeners)
			for i := range streams {
				streams[i] = b.Listener()
			}

			for _, e := range tt.events {
				b.Dispatch(e.name, e.data)
			}

			for _, l := range streams {
				for i := range tt.events {
					select {
					case e := <-l:
						if e.Name != tt.events[i].name || e.Data != tt.events[i].data {
							t.Errorf("bus.Dispatch() got %#v, want %#v", e, tt.events[i])
						}
					case <-time.After(time.Second):
						t.Fatalf("bus.Dispatch() event %d not received", i)
					}
				}
			}
		})
	}
}

func Test_bus_Remove(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := newBus(ctx)

	l := b.Listener()
	b.Remove(l)
	b.Dispatch("event", FeedUpdateData{Feed: content.FeedID("http://sugr.org")})

	select {
	case e := <-l:
		t.Errorf("bus.Remove() listener still received %#v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func Test_bus_SlowListener(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := newBus(ctx)

	l := b.Listener()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			b.Dispatch("event", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bus.Dispatch() blocked on a full listener")
	}

	if len(l) != cap(l) {
		t.Errorf("listener buffer = %d, want full %d", len(l), cap(l))
	}
}
