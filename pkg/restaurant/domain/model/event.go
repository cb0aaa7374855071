package model

type MenuUpdated struct {
	RestaurantID string
	ItemCount    int
}

func (e MenuUpdated) Type() string        { return "MenuUpdated" }
func (e MenuUpdated) AggregateID() string { return e.RestaurantID }
