package model

import "github.com/pkg/errors"

type DeliveryStatus int32

const (
	UnknownStatus DeliveryStatus = 0
	Assigned      DeliveryStatus = 1
	PickedUp      DeliveryStatus = 2
	InProgress    DeliveryStatus = 3
	Delivered     DeliveryStatus = 4
)

var deliveryStatusNames = map[DeliveryStatus]string{
	UnknownStatus: "DELIVERY_UNKNOWN",
	Assigned:      "DELIVERY_ASSIGNED",
	PickedUp:      "DELIVERY_PICKED_UP",
	InProgress:    "DELIVERY_IN_PROGRESS",
	Delivered:     "DELIVERY_DELIVERED",
}

func (s DeliveryStatus) String() string {
	if name, ok := deliveryStatusNames[s]; ok {
		return name
	}
	return deliveryStatusNames[UnknownStatus]
}

func (s DeliveryStatus) Valid() bool {
	_, ok := deliveryStatusNames[s]
	return ok && s != UnknownStatus
}

func ParseDeliveryStatus(name string) (DeliveryStatus, error) {
	for s, n := range deliveryStatusNames {
		if n == name && s != UnknownStatus {
			return s, nil
		}
	}
	return UnknownStatus, errors.Wrapf(ErrInvalidStatus, "name %q", name)
}

func (s DeliveryStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *DeliveryStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseDeliveryStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
