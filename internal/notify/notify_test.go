package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewBus()

	var got []Toast
	unsub := bus.Subscribe(func(tt Toast) { got = append(got, tt) })
	defer unsub()

	bus.Publish(Toast{Title: "Pedido creado", Variant: VariantSuccess})

	assert.Len(t, got, 1)
	assert.Equal(t, "Pedido creado", got[0].Title)
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	var count int
	unsub := bus.Subscribe(func(Toast) { count++ })

	bus.Publish(Toast{Title: "uno"})
	unsub()
	bus.Publish(Toast{Title: "dos"})

	assert.Equal(t, 1, count)

	// second unsubscribe is a no-op
	assert.NotPanics(t, unsub)
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()

	var a, b int
	defer bus.Subscribe(func(Toast) { a++ })()
	defer bus.Subscribe(func(Toast) { b++ })()

	bus.Publish(Toast{})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	assert.NotPanics(t, func() { NewBus().Publish(Toast{Title: "nadie"}) })
}
