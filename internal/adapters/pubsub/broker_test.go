package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

func event(id string) Event {
	return Event{ID: id, Message: "hi", Visibility: model.VisibilityPublic, SenderID: "a", RecipientID: "b"}
}

func TestBroker_PublishToSubscriber(t *testing.T) {
	b := NewBroker()
	ctx := context.Background()

	sub := b.Subscribe(ctx, UserTopic("u1"))
	defer sub.Close()

	b.Publish(ctx, UserTopic("u1"), event("e1"))

	select {
	case got := <-sub.C():
		if got.ID != "e1" {
			t.Errorf("received %q, want e1", got.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroker_TopicIsolation(t *testing.T) {
	b := NewBroker()
	ctx := context.Background()

	userSub := b.Subscribe(ctx, UserTopic("u1"))
	defer userSub.Close()
	teamSub := b.Subscribe(ctx, TeamTopic("team1"))
	defer teamSub.Close()

	b.Publish(ctx, TeamTopic("team1"), event("e1"))

	select {
	case got := <-teamSub.C():
		if got.ID != "e1" {
			t.Errorf("received %q, want e1", got.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for team event")
	}

	select {
	case got := <-userSub.C():
		t.Errorf("user subscriber unexpectedly received %q", got.ID)
	default:
	}
}

func TestBroker_FIFOPerTopic(t *testing.T) {
	b := NewBroker(WithBufferSize(8))
	ctx := context.Background()

	sub := b.Subscribe(ctx, UserTopic("u1"))
	defer sub.Close()

	for _, id := range []string{"e1", "e2", "e3"} {
		b.Publish(ctx, UserTopic("u1"), event(id))
	}

	for _, want := range []string{"e1", "e2", "e3"} {
		got := <-sub.C()
		if got.ID != want {
			t.Fatalf("received %q, want %q", got.ID, want)
		}
	}
}

func TestBroker_NoReplayForLateSubscribers(t *testing.T) {
	b := NewBroker()
	ctx := context.Background()

	b.Publish(ctx, UserTopic("u1"), event("early"))

	sub := b.Subscribe(ctx, UserTopic("u1"))
	defer sub.Close()

	select {
	case got := <-sub.C():
		t.Errorf("late subscriber unexpectedly received %q", got.ID)
	default:
	}
}

func TestBroker_SlowSubscriberDrops(t *testing.T) {
	b := NewBroker(WithBufferSize(1))
	ctx := context.Background()

	sub := b.Subscribe(ctx, UserTopic("u1"))
	defer sub.Close()

	b.Publish(ctx, UserTopic("u1"), event("e1"))
	b.Publish(ctx, UserTopic("u1"), event("e2")) // buffer full, dropped

	got := <-sub.C()
	if got.ID != "e1" {
		t.Errorf("received %q, want e1", got.ID)
	}
	select {
	case got := <-sub.C():
		t.Errorf("unexpectedly received %q after drop", got.ID)
	default:
	}
}

func TestBroker_CloseTerminatesSubscriptions(t *testing.T) {
	b := NewBroker()
	ctx := context.Background()

	sub := b.Subscribe(ctx, UserTopic("u1"))
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, open := <-sub.C(); open {
		t.Error("expected closed channel after broker close")
	}

	// Subscribing after close yields an already-terminated stream.
	late := b.Subscribe(ctx, UserTopic("u1"))
	if _, open := <-late.C(); open {
		t.Error("expected closed channel for post-close subscriber")
	}
}

func TestBroker_SubscriberCount(t *testing.T) {
	b := NewBroker()
	ctx := context.Background()

	s1 := b.Subscribe(ctx, TeamTopic("team1"))
	s2 := b.Subscribe(ctx, TeamTopic("team1"))

	if got := b.Subscribers(ctx, TeamTopic("team1")); got != 2 {
		t.Errorf("Subscribers = %d, want 2", got)
	}

	s1.Close()
	if got := b.Subscribers(ctx, TeamTopic("team1")); got != 1 {
		t.Errorf("Subscribers after close = %d, want 1", got)
	}
	s2.Close()
	if got := b.Subscribers(ctx, TeamTopic("team1")); got != 0 {
		t.Errorf("Subscribers after both closed = %d, want 0", got)
	}
}
