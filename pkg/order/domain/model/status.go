package model

import "github.com/pkg/errors"

// OrderStatus values are also the wire codes, so they are pinned explicitly.
type OrderStatus int32

const (
	UnknownStatus  OrderStatus = 0
	Pending        OrderStatus = 1
	Confirmed      OrderStatus = 2
	Rejected       OrderStatus = 3
	Preparing      OrderStatus = 4
	Ready          OrderStatus = 5
	OutForDelivery OrderStatus = 6
	Delivered      OrderStatus = 7
	Cancelled      OrderStatus = 8
)

var orderStatusNames = map[OrderStatus]string{
	UnknownStatus:  "ORDER_UNKNOWN",
	Pending:        "ORDER_PENDING",
	Confirmed:      "ORDER_CONFIRMED",
	Rejected:       "ORDER_REJECTED",
	Preparing:      "ORDER_PREPARING",
	Ready:          "ORDER_READY",
	OutForDelivery: "ORDER_OUT_FOR_DELIVERY",
	Delivered:      "ORDER_DELIVERED",
	Cancelled:      "ORDER_CANCELLED",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return orderStatusNames[UnknownStatus]
}

// Valid reports whether s is a real lifecycle state an order can be put in.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusNames[s]
	return ok && s != UnknownStatus
}

func (s OrderStatus) Terminal() bool {
	return s == Rejected || s == Delivered || s == Cancelled
}

func OrderStatusFromCode(code int32) (OrderStatus, error) {
	s := OrderStatus(code)
	if !s.Valid() {
		return UnknownStatus, errors.Wrapf(ErrInvalidStatus, "code %d", code)
	}
	return s, nil
}

func ParseOrderStatus(name string) (OrderStatus, error) {
	for s, n := range orderStatusNames {
		if n == name && s != UnknownStatus {
			return s, nil
		}
	}
	return UnknownStatus, errors.Wrapf(ErrInvalidStatus, "name %q", name)
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *OrderStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseOrderStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
