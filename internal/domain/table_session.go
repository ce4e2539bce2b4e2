package domain

import (
	"time"

	"github.com/google/uuid"
)

// TableSession is a lease binding a table and an order for one service interaction.
// Activity and checkout are independent: deactivation is one-way, checkout can be set
// and cleared in either activity state.
type TableSession struct {
	ID         uuid.UUID
	TableID    uuid.UUID
	OrderID    uuid.UUID
	CheckoutID *uuid.UUID
	IsActive   bool
	CreatedAt  time.Time
}

