package events

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// TestEventPublishingAndSubscribing creates EventEmitter objects, subscribes EventHandler callbacks to them, and
// ensures that the events are received by the intended emitter only.
func TestEventPublishingAndSubscribing(t *testing.T) {
	// Define some event types
	type TestEventA struct{}
	type TestEventB struct{}

	// Create event emitters for both events.
	eventAEmitter1 := EventEmitter[TestEventA]{}
	eventAEmitter2 := EventEmitter[TestEventA]{}
	eventBEmitter := EventEmitter[TestEventB]{}

	var countA1, countA2, countB int
	eventAEmitter1.Subscribe(func(event TestEventA) error {
		countA1++
		return nil
	})
	eventAEmitter2.Subscribe(func(event TestEventA) error {
		countA2++
		return nil
	})
	eventBEmitter.Subscribe(func(event TestEventB) error {
		countB++
		return nil
	})

	// Publish events a given amount of times.
	for i := 0; i < 2; i++ {
		assert.NoError(t, eventAEmitter1.Publish(TestEventA{}))
	}
	for i := 0; i < 5; i++ {
		assert.NoError(t, eventAEmitter2.Publish(TestEventA{}))
	}
	for i := 0; i < 9; i++ {
		assert.NoError(t, eventBEmitter.Publish(TestEventB{}))
	}

	assert.EqualValues(t, 2, countA1)
	assert.EqualValues(t, 5, countA2)
	assert.EqualValues(t, 9, countB)
	assert.EqualValues(t, 1, eventBEmitter.SubscriberCount())
}

// TestEventPublishingStopsOnError ensures that a failing handler prevents later handlers from being invoked and that
// its error is returned to the publisher.
func TestEventPublishingStopsOnError(t *testing.T) {
	emitter := EventEmitter[int]{}
	expectedErr := errors.New("handler failed")

	var calls []int
	emitter.Subscribe(func(event int) error {
		calls = append(calls, 1)
		return expectedErr
	})
	emitter.Subscribe(func(event int) error {
		calls = append(calls, 2)
		return nil
	})

	err := emitter.Publish(7)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, []int{1}, calls)
}
