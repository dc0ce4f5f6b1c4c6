package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
)

func TestResultCache_FIFOWithCapacity(t *testing.T) {
	c := NewResultCache(3)
	for i := 1; i <= 5; i++ {
		if n := c.Push("past-mix", &exercise.Payload{Text: fmt.Sprint(i)}); n > 3 {
			t.Fatalf("push %d: length %d above capacity", i, n)
		}
	}
	for _, want := range []string{"3", "4", "5"} {
		p := c.Pop("past-mix")
		if p == nil || p.Text != want {
			t.Fatalf("expected %q, got %+v", want, p)
		}
	}
	if p := c.Pop("past-mix"); p != nil {
		t.Fatalf("expected empty queue, got %+v", p)
	}
	if c.Len("other") != 0 || c.Pop("other") != nil {
		t.Fatalf("categories must be independent")
	}
}

func TestResultCache_PushNilIsIgnored(t *testing.T) {
	c := NewResultCache(0)
	if c.Capacity() != 5 {
		t.Fatalf("expected default capacity 5, got %d", c.Capacity())
	}
	if n := c.Push("x", nil); n != 0 {
		t.Fatalf("expected nil push to leave the queue empty, got %d", n)
	}
}

func TestResultCache_RefillMarkerIsExclusive(t *testing.T) {
	c := NewResultCache(5)
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.TryMarkRefill("past-mix") {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if won != 1 {
		t.Fatalf("expected exactly one marker winner, got %d", won)
	}
	c.ClearRefill("past-mix")
	if c.Refilling("past-mix") || !c.TryMarkRefill("past-mix") {
		t.Fatalf("expected marker to be reusable after clear")
	}
}
