package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

func item(id string) Item {
	return Item{ID: id, Message: "hi", Visibility: model.VisibilityPublic, SenderID: "a", RecipientID: "b"}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue()
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	q.Enqueue(ctx, item("n1"))
	q.Enqueue(ctx, item("n2"))

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}

	drained := q.Drain(ctx)
	if len(drained) != 2 || drained[0].ID != "n1" || drained[1].ID != "n2" {
		t.Errorf("Drain = %v, want [n1 n2]", drained)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0 after drain, got %d", l)
	}
}

func TestInMemoryQueue_DrainEmpty(t *testing.T) {
	q := NewInMemoryQueue()
	ctx := context.Background()

	if drained := q.Drain(ctx); len(drained) != 0 {
		t.Errorf("Drain on empty queue = %v, want empty", drained)
	}
}

func TestInMemoryQueue_FIFOOrder(t *testing.T) {
	q := NewInMemoryQueue()
	ctx := context.Background()

	const n = 100
	for i := 0; i < n; i++ {
		q.Enqueue(ctx, item(fmt.Sprintf("n%03d", i)))
	}

	drained := q.Drain(ctx)
	if len(drained) != n {
		t.Fatalf("drained %d items, want %d", len(drained), n)
	}
	for i := 0; i < n; i++ {
		want := fmt.Sprintf("n%03d", i)
		if drained[i].ID != want {
			t.Fatalf("drained[%d] = %q, want %q", i, drained[i].ID, want)
		}
	}
}

func TestInMemoryQueue_ConcurrentEnqueue(t *testing.T) {
	q := NewInMemoryQueue()
	ctx := context.Background()

	const producers = 10
	const perProducer = 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(ctx, item(fmt.Sprintf("p%d-n%d", p, i)))
			}
		}(p)
	}
	wg.Wait()

	if l := q.Len(ctx); l != producers*perProducer {
		t.Errorf("Len = %d, want %d", l, producers*perProducer)
	}
}
