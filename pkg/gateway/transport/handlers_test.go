package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"foodplatform/pkg/common/infrastructure/event"
	"foodplatform/pkg/common/infrastructure/transport/transporttest"
	customerservice "foodplatform/pkg/customer/domain/service"
	customerrepository "foodplatform/pkg/customer/infrastructure/repository"
	customertransport "foodplatform/pkg/customer/infrastructure/transport"
	deliveryservice "foodplatform/pkg/delivery/domain/service"
	"foodplatform/pkg/delivery/infrastructure/outbox"
	deliveryrepository "foodplatform/pkg/delivery/infrastructure/repository"
	deliverytransport "foodplatform/pkg/delivery/infrastructure/transport"
	orderservice "foodplatform/pkg/order/domain/service"
	orderrepository "foodplatform/pkg/order/infrastructure/repository"
	ordertransport "foodplatform/pkg/order/infrastructure/transport"
	restaurantservice "foodplatform/pkg/restaurant/domain/service"
	restaurantrepository "foodplatform/pkg/restaurant/infrastructure/repository"
	restauranttransport "foodplatform/pkg/restaurant/infrastructure/transport"
)

const rpcTimeout = 5 * time.Second

func setup(t *testing.T) http.Handler {
	t.Helper()
	dispatcher := event.NewLogDispatcher("test")

	orderConn := transporttest.Start(t, func(s *grpc.Server) {
		ordertransport.RegisterOrderServer(s, orderservice.NewOrderService(orderrepository.NewMemoryRepository(), dispatcher))
	})
	restaurantConn := transporttest.Start(t, func(s *grpc.Server) {
		restauranttransport.RegisterRestaurantServer(s, restaurantservice.NewRestaurantService(
			restaurantrepository.NewMemoryRepository(restaurantrepository.DefaultRestaurants()), dispatcher))
	})
	customerConn := transporttest.Start(t, func(s *grpc.Server) {
		customertransport.RegisterCustomerServer(s, customerservice.NewCustomerService(
			customerrepository.NewMemoryRepository(customerrepository.DefaultCustomers()), dispatcher))
	})

	orders := ordertransport.NewOrderClient(orderConn, rpcTimeout)
	restaurants := restauranttransport.NewRestaurantClient(restaurantConn, rpcTimeout)
	deliveryConn := transporttest.Start(t, func(s *grpc.Server) {
		deliverytransport.RegisterDeliveryServer(s, deliveryservice.NewDeliveryService(
			deliveryrepository.NewMemoryRepository(),
			orders,
			restaurants,
			outbox.New(outbox.Config{Interval: time.Second, MaxBackoff: time.Second, MaxAttempts: 3}, orders),
			dispatcher,
		))
	})

	return Router(Backends{
		Orders:      orders,
		Deliveries:  deliverytransport.NewDeliveryClient(deliveryConn, rpcTimeout),
		Restaurants: restaurants,
		Customers:   customertransport.NewCustomerClient(customerConn, rpcTimeout),
		Addresses:   map[string]string{"order_service": "bufnet"},
	})
}

func do(t *testing.T, h http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func doList(t *testing.T, h http.Handler, path string) (int, []map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var out []map[string]any
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	h := setup(t)

	code, order := do(t, h, http.MethodPost, "/orders", map[string]any{
		"customer_name":    "John Doe",
		"customer_email":   "john.doe@example.com",
		"restaurant_id":    "restaurant456",
		"delivery_address": "123 Main St, Anytown, USA",
		"items": []map[string]any{
			{"item_id": "pizza1", "name": "Pepperoni Pizza", "price": 12.99, "quantity": 2},
			{"item_id": "salad1", "name": "Caesar Salad", "price": 7.99, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ORDER_PENDING", order["status"])
	assert.Equal(t, 33.97, order["total_amount"])
	orderID := order["order_id"].(string)

	code, delivery := do(t, h, http.MethodPost, "/deliveries", map[string]any{"order_id": orderID, "driver_id": "driver7"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "DELIVERY_ASSIGNED", delivery["status"])
	assert.NotContains(t, delivery, "picked_up_at")
	deliveryID := delivery["delivery_id"].(string)

	code, delivery = do(t, h, http.MethodPut, "/deliveries/"+deliveryID+"/status", map[string]any{"status": 2, "current_location": "Tasty Pizza"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "DELIVERY_PICKED_UP", delivery["status"])
	assert.Contains(t, delivery, "picked_up_at")

	_, order = do(t, h, http.MethodGet, "/orders/"+orderID, nil)
	assert.Equal(t, "ORDER_OUT_FOR_DELIVERY", order["status"])

	code, delivery = do(t, h, http.MethodPut, "/deliveries/"+deliveryID+"/status", map[string]any{"status": 4, "current_location": "Front door"})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, delivery, "delivered_at")

	_, order = do(t, h, http.MethodGet, "/orders/"+orderID, nil)
	assert.Equal(t, "ORDER_DELIVERED", order["status"])

	code, snapshots := doList(t, h, "/deliveries/"+deliveryID+"/track")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "DELIVERY_DELIVERED", snapshots[0]["status"])

	code, order = do(t, h, http.MethodPut, "/orders/"+orderID+"/status", map[string]any{"status": 8})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ORDER_CANCELLED", order["status"])
}

func TestCreateOrderWithoutItems(t *testing.T) {
	h := setup(t)

	code, order := do(t, h, http.MethodPost, "/orders", map[string]any{"restaurant_id": "restaurant456"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ORDER_PENDING", order["status"])
	assert.Equal(t, 0.0, order["total_amount"])
	assert.Empty(t, order["items"])
}

func TestRestaurantResponseOverHTTP(t *testing.T) {
	h := setup(t)

	_, order := do(t, h, http.MethodPost, "/orders", map[string]any{
		"restaurant_id": "restaurant456",
		"items":         []map[string]any{{"item_id": "pizza1", "price": 12.99, "quantity": 1}},
	})
	orderID := order["order_id"].(string)

	code, body := do(t, h, http.MethodPost, "/restaurants/restaurant789/orders/"+orderID+"/response", map[string]any{"accepted": true})
	assert.Equal(t, http.StatusForbidden, code)
	assert.NotEmpty(t, body["error"])

	code, order = do(t, h, http.MethodPost, "/restaurants/restaurant456/orders/"+orderID+"/response", map[string]any{"accepted": false, "rejection_reason": "closed"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ORDER_REJECTED", order["status"])
	assert.Equal(t, "closed", order["rejection_reason"])

	code, _ = do(t, h, http.MethodPost, "/restaurants/restaurant456/orders/"+orderID+"/response", map[string]any{"accepted": true})
	assert.Equal(t, http.StatusConflict, code)
}

func TestRestaurantRoutes(t *testing.T) {
	h := setup(t)

	code, restaurant := do(t, h, http.MethodGet, "/restaurants/restaurant456", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Tasty Pizza", restaurant["name"])
	assert.Len(t, restaurant["menu_items"], 2)

	code, restaurant = do(t, h, http.MethodPut, "/restaurants/restaurant456/menu", map[string]any{
		"menu_items": []map[string]any{{"item_id": "soup", "name": "Soup", "description": "Hot", "price": 4.5}},
	})
	require.Equal(t, http.StatusOK, code)
	items := restaurant["menu_items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, true, items[0].(map[string]any)["available"])
	assert.Contains(t, restaurant, "updated_at")

	code, payments := doList(t, h, "/restaurants/restaurant456/payments")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, payments, 3)
	assert.Equal(t, "completed", payments[0]["status"])

	code, _ = do(t, h, http.MethodGet, "/restaurants/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = doList(t, h, "/restaurants/nowhere/payments")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCustomerRoutes(t *testing.T) {
	h := setup(t)

	code, customer := do(t, h, http.MethodGet, "/customers/customer123", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "John Doe", customer["name"])

	code, customer = do(t, h, http.MethodPut, "/customers/customer123", map[string]any{"phone": "555-000-0000"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "555-000-0000", customer["phone"])
	assert.Equal(t, "john.doe@example.com", customer["email"])

	code, _ = do(t, h, http.MethodGet, "/customers/nobody", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestErrorMapping(t *testing.T) {
	h := setup(t)

	code, _ := do(t, h, http.MethodGet, "/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, h, http.MethodPost, "/deliveries", map[string]any{"order_id": "missing", "driver_id": "d"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, h, http.MethodGet, "/deliveries/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doList(t, h, "/deliveries/missing/track")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, h, http.MethodPut, "/orders/missing/status", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, h, http.MethodPost, "/orders", map[string]any{"items": []map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, code)

	req := httptest.NewRequest(http.MethodPost, "/deliveries", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, order := do(t, h, http.MethodPost, "/orders", map[string]any{
		"restaurant_id": "restaurant456",
		"items":         []map[string]any{{"item_id": "pizza1", "price": 12.99, "quantity": 1}},
	})
	code, _ = do(t, h, http.MethodPut, "/orders/"+order["order_id"].(string)+"/status", map[string]any{"status": 99})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := do(t, h, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"order_service": "bufnet"}, body["services"])
}
