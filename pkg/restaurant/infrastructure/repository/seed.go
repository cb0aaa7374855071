package repository

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"foodplatform/pkg/restaurant/domain/model"
)

type seedFile struct {
	Restaurants []seedRestaurant `json:"restaurants"`
}

type seedRestaurant struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Address string         `json:"address"`
	IsOpen  bool           `json:"is_open"`
	Menu    []seedMenuItem `json:"menu"`
}

type seedMenuItem struct {
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
}

// DefaultRestaurants is the directory content used when no seed file is given.
func DefaultRestaurants() []*model.Restaurant {
	return []*model.Restaurant{{
		ID:      "restaurant456",
		Name:    "Tasty Pizza",
		Address: "123 Restaurant St, Foodville",
		IsOpen:  true,
		Menu: []model.MenuItem{
			{
				ItemID:      "pizza1",
				Name:        "Pepperoni Pizza",
				Description: "Classic pepperoni pizza with mozzarella cheese",
				Price:       12.99,
				Available:   true,
			},
			{
				ItemID:      "salad1",
				Name:        "Caesar Salad",
				Description: "Fresh romaine lettuce with Caesar dressing",
				Price:       7.99,
				Available:   true,
			},
		},
		Version: 1,
	}}
}

func LoadRestaurants(filePath string) ([]*model.Restaurant, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "read seed file %s", filePath)
	}

	var data seedFile
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, errors.Wrapf(err, "parse seed file %s", filePath)
	}

	restaurants := make([]*model.Restaurant, 0, len(data.Restaurants))
	for _, r := range data.Restaurants {
		if r.ID == "" {
			return nil, errors.Errorf("seed file %s: restaurant without id", filePath)
		}
		restaurant := &model.Restaurant{
			ID:      r.ID,
			Name:    r.Name,
			Address: r.Address,
			IsOpen:  r.IsOpen,
			Menu:    make([]model.MenuItem, 0, len(r.Menu)),
			Version: 1,
		}
		for _, item := range r.Menu {
			restaurant.Menu = append(restaurant.Menu, model.MenuItem(item))
		}
		if err := model.ValidateMenu(restaurant.Menu); err != nil {
			return nil, errors.Wrapf(err, "seed file %s", filePath)
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, nil
}
