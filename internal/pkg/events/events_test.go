//go:build unit

package events_test

import (
	"sync"
	"testing"

	"martcore/internal/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestTopic(t *testing.T) {
	t.Run("delivers to subscribers in subscription order", func(t *testing.T) {
		topic := events.NewTopic[int]()
		var got []int
		topic.Subscribe(func(v int) { got = append(got, v*10) })
		topic.Subscribe(func(v int) { got = append(got, v*100) })

		topic.Publish(3)
		assert.Equal(t, []int{30, 300}, got)
	})

	t.Run("publish without subscribers is a no-op", func(t *testing.T) {
		topic := events.NewTopic[string]()
		assert.NotPanics(t, func() { topic.Publish("nobody home") })
	})

	t.Run("nil subscriber ignored", func(t *testing.T) {
		topic := events.NewTopic[int]()
		topic.Subscribe(nil)
		assert.Equal(t, 0, topic.SubscriberCount())
	})

	t.Run("concurrent publish and subscribe are safe", func(t *testing.T) {
		topic := events.NewTopic[int]()
		var count sync.Map
		topic.Subscribe(func(v int) { count.Store(v, struct{}{}) })

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func(v int) {
				defer wg.Done()
				topic.Publish(v)
			}(i)
			go func() {
				defer wg.Done()
				topic.Subscribe(func(int) {})
			}()
		}
		wg.Wait()
		assert.Equal(t, 51, topic.SubscriberCount())
	})
}
