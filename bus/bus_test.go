package bus

import (
	"testing"

	"go.uber.org/zap"
)

func TestSubscribePublishUnsubscribe(t *testing.T) {
	b := New[int](zap.NewNop())

	calls := 0
	unsubscribe := b.Subscribe(func(int) { calls++ })

	b.Publish(1)
	b.Publish(2)
	unsubscribe()
	b.Publish(3)

	if calls != 2 {
		t.Errorf("listener invoked %d times, want 2", calls)
	}
}

func TestPanickingSubscriberDoesNotBlockOthers(t *testing.T) {
	b := New[string](zap.NewNop())

	b.Subscribe(func(string) { panic("boom") })
	var got string
	b.Subscribe(func(v string) { got = v })

	b.Publish("hello")

	if got != "hello" {
		t.Errorf("second subscriber got %q, want %q", got, "hello")
	}
}

func TestUnsubscribeTwiceIsHarmless(t *testing.T) {
	b := New[int](zap.NewNop())
	calls := 0
	first := b.Subscribe(func(int) { calls++ })
	b.Subscribe(func(int) { calls++ })

	first()
	first()
	b.Publish(1)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPublishDeliversValue(t *testing.T) {
	b := New[[]string](zap.NewNop())
	var got []string
	b.Subscribe(func(v []string) { got = v })
	b.Publish([]string{"a", "b"})
	if len(got) != 2 || got[0] != "a" {
		t.Errorf("got %v", got)
	}
}
