package model

type CustomerUpdated struct {
	CustomerID string
}

func (e CustomerUpdated) Type() string        { return "CustomerUpdated" }
func (e CustomerUpdated) AggregateID() string { return e.CustomerID }
