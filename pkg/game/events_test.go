package game

import "testing"

type countingListener struct {
	count int
	last  Event
}

func (l *countingListener) OnEvent(event Event) {
	l.count++
	l.last = event
}

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()
	listener := &countingListener{}
	var waves []int

	d.Subscribe(EventEnemyCaptured, listener)
	d.Subscribe(EventWaveStarted, ListenerFunc(func(e Event) { waves = append(waves, e.Wave) }))

	d.Dispatch(Event{Type: EventEnemyCaptured, Data: "Infantry Dragon"})
	d.Dispatch(Event{Type: EventWaveStarted, Wave: 2})
	d.Dispatch(Event{Type: EventReset})

	if listener.count != 1 || listener.last.Data != "Infantry Dragon" {
		t.Errorf("listener: expected one capture event, got %d (%+v)", listener.count, listener.last)
	}
	if len(waves) != 1 || waves[0] != 2 {
		t.Errorf("wave listener: expected [2], got %v", waves)
	}

	d.Unsubscribe(EventEnemyCaptured, listener)
	d.Dispatch(Event{Type: EventEnemyCaptured})
	if listener.count != 1 {
		t.Errorf("unsubscribed listener should not receive events, count=%d", listener.count)
	}
}
