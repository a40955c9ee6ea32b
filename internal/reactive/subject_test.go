package reactive

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeReplaysCurrentValue(t *testing.T) {
	subject := NewSubject("light")
	subject.Next("dark")

	var got []string
	unsubscribe := subject.Subscribe(func(v string) { got = append(got, v) })
	defer unsubscribe()

	assert.Equal(t, []string{"dark"}, got)

	subject.Next("academic")
	assert.Equal(t, []string{"dark", "academic"}, got)
	assert.Equal(t, "academic", subject.Value())
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	subject := NewSubject(0)

	var got []int
	unsubscribe := subject.Subscribe(func(v int) { got = append(got, v) })
	subject.Next(1)
	unsubscribe()
	unsubscribe()
	subject.Next(2)

	assert.Equal(t, []int{0, 1}, got)
	assert.Equal(t, 0, subject.SubscriberCount())
}

func TestDeliveryFollowsSubscriptionOrder(t *testing.T) {
	subject := NewSubject(0)

	var order []string
	subject.Subscribe(func(int) { order = append(order, "first") })
	subject.Subscribe(func(int) { order = append(order, "second") })
	order = nil

	subject.Next(1)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSubscriberMayUnsubscribeDuringDelivery(t *testing.T) {
	subject := NewSubject(0)

	var unsubscribe func()
	calls := 0
	unsubscribe = subject.Subscribe(func(v int) {
		calls++
		if v == 1 && unsubscribe != nil {
			unsubscribe()
		}
	})

	subject.Next(1)
	subject.Next(2)
	assert.Equal(t, 2, calls)
}

func TestConcurrentNext(t *testing.T) {
	subject := NewSubject(0)

	var mu sync.Mutex
	seen := 0
	subject.Subscribe(func(int) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			subject.Next(v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 51, seen)
}

func TestNextFromCallbackIsDeliveredAfterIt(t *testing.T) {
	subject := NewSubject(0)

	var got []int
	subject.Subscribe(func(v int) {
		got = append(got, v)
		if v == 1 {
			subject.Next(2)
			assert.Equal(t, 2, subject.Value())
		}
	})

	subject.Next(1)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestSetDefersDeliveryUntilFlush(t *testing.T) {
	subject := NewSubject("a")

	var got []string
	subject.Subscribe(func(v string) { got = append(got, v) })

	subject.Set("b")
	subject.Set("c")
	assert.Equal(t, "c", subject.Value())
	assert.Equal(t, []string{"a"}, got)

	subject.Flush()
	assert.Equal(t, []string{"a", "b", "c"}, got)

	subject.Flush()
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestFlushRecoversAfterPanickingCallback(t *testing.T) {
	subject := NewSubject(0)

	var got []int
	unsubscribe := subject.Subscribe(func(v int) {
		if v == 1 {
			panic("boom")
		}
	})
	subject.Subscribe(func(v int) { got = append(got, v) })

	assert.Panics(t, func() { subject.Next(1) })
	unsubscribe()

	subject.Next(2)
	assert.Equal(t, []int{0, 2}, got)
}
