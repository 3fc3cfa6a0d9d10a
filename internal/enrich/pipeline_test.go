package enrich

import (
	"context"
	"sort"
	"sync/atomic"
	"testing"
	"time"
)

func double(_ context.Context, n int) int { return n * 2 }

func feed(items ...int) <-chan int {
	in := make(chan int, len(items))
	for _, it := range items {
		in <- it
	}
	close(in)
	return in
}

func drain(out <-chan int) []int {
	var got []int
	for v := range out {
		got = append(got, v)
	}
	sort.Ints(got)
	return got
}

func TestPipeline_Process(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		input    []int
		expected []int
	}{
		{name: "empty input closes output", input: nil, expected: nil},
		{name: "single item", input: []int{1}, expected: []int{2}},
		{name: "many items unbounded", input: []int{1, 2, 3, 4, 5}, expected: []int{2, 4, 6, 8, 10}},
		{name: "many items bounded", limit: 2, input: []int{1, 2, 3, 4, 5}, expected: []int{2, 4, 6, 8, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			got := drain(NewPipeline[int, int](double).WithLimit(tt.limit).Process(ctx, feed(tt.input...)))
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("got %v, expected %v", got, tt.expected)
				}
			}
		})
	}
}

func TestPipeline_EmitsInCompletionOrder(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	slowFirst := func(_ context.Context, n int) int {
		if n == 1 {
			time.Sleep(200 * time.Millisecond)
		}
		return n
	}
	out := NewPipeline[int, int](slowFirst).Process(ctx, feed(1, 2))

	if first := <-out; first != 2 {
		t.Errorf("expected fast item 2 first, got %d", first)
	}
	if second := <-out; second != 1 {
		t.Errorf("expected slow item 1 second, got %d", second)
	}
}

func TestPipeline_StreamsBeforeInputCloses(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	in := make(chan int)
	out := NewPipeline[int, int](double).Process(ctx, in)

	in <- 21
	select {
	case v := <-out:
		if v != 42 {
			t.Errorf("got %d, expected 42", v)
		}
	case <-ctx.Done():
		t.Fatal("no result while input still open")
	}
	close(in)
	if _, ok := <-out; ok {
		t.Error("expected output to close after input closed")
	}
}

func TestPipeline_LimitBoundsInFlight(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var inFlight, peak atomic.Int32
	stage := func(_ context.Context, n int) int {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return n
	}

	got := drain(NewPipeline[int, int](stage).WithLimit(2).Process(ctx, feed(1, 2, 3, 4, 5, 6)))
	if len(got) != 6 {
		t.Fatalf("expected 6 results, got %d", len(got))
	}
	if p := peak.Load(); p > 2 {
		t.Errorf("peak in-flight = %d, expected <= 2", p)
	}
}

func TestPipeline_CancelStopsProcessing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{}, 1)
	stage := func(ctx context.Context, n int) int {
		started <- struct{}{}
		<-ctx.Done()
		return n
	}

	in := make(chan int)
	out := NewPipeline[int, int](stage).Process(ctx, in)
	in <- 1
	<-started
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected no result after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("output not closed after cancellation")
	}
}
