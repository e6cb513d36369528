package stock

import (
	"log"

	"shopstock-backend/internal/mailer"
	"shopstock-backend/internal/models"
	"shopstock-backend/internal/notify"

	"github.com/google/uuid"
)

// Outbox collects the alert intents queued by stock mutations inside one unit
// of work. Nothing is delivered until Flush, which callers invoke only after
// their transaction has committed; a rolled-back sale therefore never
// produces a phantom alert. Its correlation id is stamped on every movement
// row written under it.
type Outbox struct {
	CorrelationID string
	events        []AlertEvent
}

func NewOutbox() *Outbox {
	return &Outbox{CorrelationID: uuid.NewString()}
}

func (o *Outbox) add(e AlertEvent) {
	o.events = append(o.events, e)
}

// Events returns the queued alerts in the order they were produced.
func (o *Outbox) Events() []AlertEvent {
	return o.events
}

// Flush fans each queued event out to the owner's mailbox and the shop's
// in-app notifications, then drains the queue. Both sinks are fire-and-forget:
// failures are logged, never returned. ownerEmail may be empty (no owner on
// record), in which case only in-app notifications are written.
func (o *Outbox) Flush(shopID uint, ownerEmail string) {
	for _, e := range o.events {
		if ownerEmail != "" {
			var err error
			switch e.Kind {
			case AlertOutOfStock:
				err = mailer.SendOutOfStockAlert(ownerEmail, e.ProductName)
			case AlertLowStock:
				err = mailer.SendLowStockAlert(ownerEmail, e.ProductName, e.Quantity)
			}
			if err != nil {
				log.Printf("Failed to send stock alert mail: %v", err)
			}
		}

		typ := models.NotificationWarning
		if e.Kind == AlertOutOfStock {
			typ = models.NotificationAlert
		}
		if err := notify.Create(shopID, e.Message(), typ); err != nil {
			log.Printf("Failed to create stock notification: %v", err)
		}
	}
	o.events = nil
}
