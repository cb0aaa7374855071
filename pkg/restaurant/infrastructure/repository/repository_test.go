package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodplatform/pkg/restaurant/domain/model"
)

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository(DefaultRestaurants())

	restaurant, err := repo.Find("restaurant456")
	require.NoError(t, err)
	assert.Equal(t, "Tasty Pizza", restaurant.Name)
	require.Len(t, restaurant.Menu, 2)

	restaurant.Menu[0].Price = 1
	again, err := repo.Find("restaurant456")
	require.NoError(t, err)
	assert.Equal(t, 12.99, again.Menu[0].Price)

	_, err = repo.Find("missing")
	assert.ErrorIs(t, err, model.ErrRestaurantNotFound)

	again.Version++
	require.NoError(t, repo.Update(again))
	assert.ErrorIs(t, repo.Update(again), model.ErrOptimisticLock)
}

func TestLoadRestaurants(t *testing.T) {
	dir := t.TempDir()

	t.Run("Valid file", func(t *testing.T) {
		path := filepath.Join(dir, "restaurants.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"restaurants": [{
				"id": "r1",
				"name": "Noodle Bar",
				"address": "9 Side St",
				"is_open": false,
				"menu": [{"item_id": "ramen", "name": "Ramen", "price": 9.5, "available": true}]
			}]
		}`), 0o600))

		restaurants, err := LoadRestaurants(path)
		require.NoError(t, err)
		require.Len(t, restaurants, 1)
		assert.Equal(t, "Noodle Bar", restaurants[0].Name)
		assert.False(t, restaurants[0].IsOpen)
		assert.Equal(t, []model.MenuItem{{ItemID: "ramen", Name: "Ramen", Price: 9.5, Available: true}}, restaurants[0].Menu)
	})

	t.Run("Missing id", func(t *testing.T) {
		path := filepath.Join(dir, "noid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"restaurants": [{"name": "x"}]}`), 0o600))
		_, err := LoadRestaurants(path)
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadRestaurants(filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
