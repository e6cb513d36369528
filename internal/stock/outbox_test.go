package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxKeepsEventOrder(t *testing.T) {
	out := NewOutbox()
	out.add(AlertEvent{Kind: AlertLowStock, ProductName: "Blue Shirt", Quantity: 4})
	out.add(AlertEvent{Kind: AlertOutOfStock, ProductName: "Red Hat", Quantity: 0})

	events := out.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "Blue Shirt", events[0].ProductName)
	assert.Equal(t, "Red Hat", events[1].ProductName)
}

func TestOutboxCorrelationID(t *testing.T) {
	a := NewOutbox()
	b := NewOutbox()
	assert.NotEmpty(t, a.CorrelationID)
	assert.NotEqual(t, a.CorrelationID, b.CorrelationID)
}

func TestAlertEventMessages(t *testing.T) {
	low := AlertEvent{Kind: AlertLowStock, ProductName: "Blue Shirt", Quantity: 3}
	assert.Equal(t, "Blue Shirt is low on stock (3 left)", low.Message())

	out := AlertEvent{Kind: AlertOutOfStock, ProductName: "Blue Shirt"}
	assert.Equal(t, "Blue Shirt is now OUT OF STOCK!", out.Message())
}
