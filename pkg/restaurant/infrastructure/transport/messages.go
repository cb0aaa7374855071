package transport

import (
	"time"

	"foodplatform/pkg/restaurant/domain/model"
)

type MenuItem struct {
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
}

type Restaurant struct {
	RestaurantID string     `json:"restaurant_id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	IsOpen       bool       `json:"is_open"`
	Menu         []MenuItem `json:"menu"`
	Version      int        `json:"version"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Payment struct {
	PaymentID string    `json:"payment_id"`
	OrderID   string    `json:"order_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type GetRestaurantRequest struct {
	RestaurantID string `json:"restaurant_id"`
}

type UpdateMenuRequest struct {
	RestaurantID string     `json:"restaurant_id"`
	MenuItems    []MenuItem `json:"menu_items"`
}

type GetPaymentsRequest struct {
	RestaurantID string `json:"restaurant_id"`
}

type GetPaymentsResponse struct {
	Payments []Payment `json:"payments"`
}

func toMenu(items []model.MenuItem) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		out = append(out, MenuItem(item))
	}
	return out
}

func fromMenu(items []MenuItem) []model.MenuItem {
	out := make([]model.MenuItem, 0, len(items))
	for _, item := range items {
		out = append(out, model.MenuItem(item))
	}
	return out
}

func toRestaurant(r *model.Restaurant) *Restaurant {
	return &Restaurant{
		RestaurantID: r.ID,
		Name:         r.Name,
		Address:      r.Address,
		IsOpen:       r.IsOpen,
		Menu:         toMenu(r.Menu),
		Version:      r.Version,
		UpdatedAt:    r.UpdatedAt,
	}
}

func fromRestaurant(r *Restaurant) *model.Restaurant {
	return &model.Restaurant{
		ID:        r.RestaurantID,
		Name:      r.Name,
		Address:   r.Address,
		IsOpen:    r.IsOpen,
		Menu:      fromMenu(r.Menu),
		Version:   r.Version,
		UpdatedAt: r.UpdatedAt,
	}
}
