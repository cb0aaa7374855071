package model

type OrderCreated struct {
	OrderID      string
	RestaurantID string
	TotalAmount  float64
}

func (e OrderCreated) Type() string        { return "OrderCreated" }
func (e OrderCreated) AggregateID() string { return e.OrderID }

type OrderStatusChanged struct {
	OrderID   string
	OldStatus OrderStatus
	NewStatus OrderStatus
}

func (e OrderStatusChanged) Type() string        { return "OrderStatusChanged" }
func (e OrderStatusChanged) AggregateID() string { return e.OrderID }

type OrderRejected struct {
	OrderID      string
	RestaurantID string
	Reason       string
}

func (e OrderRejected) Type() string        { return "OrderRejected" }
func (e OrderRejected) AggregateID() string { return e.OrderID }
