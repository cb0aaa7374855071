package model

type DriverAssigned struct {
	DeliveryID string
	OrderID    string
	DriverID   string
}

func (e DriverAssigned) Type() string        { return "DriverAssigned" }
func (e DriverAssigned) AggregateID() string { return e.DeliveryID }

type DeliveryStatusChanged struct {
	DeliveryID string
	OrderID    string
	OldStatus  DeliveryStatus
	NewStatus  DeliveryStatus
	Location   string
}

func (e DeliveryStatusChanged) Type() string        { return "DeliveryStatusChanged" }
func (e DeliveryStatusChanged) AggregateID() string { return e.DeliveryID }
