package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	customermodel "foodplatform/pkg/customer/domain/model"
	customerservice "foodplatform/pkg/customer/domain/service"
	deliverymodel "foodplatform/pkg/delivery/domain/model"
	deliveryservice "foodplatform/pkg/delivery/domain/service"
	ordermodel "foodplatform/pkg/order/domain/model"
	orderservice "foodplatform/pkg/order/domain/service"
	restaurantmodel "foodplatform/pkg/restaurant/domain/model"
	restaurantservice "foodplatform/pkg/restaurant/domain/service"
)

var errBadRequest = errors.New("bad request")

// Backends are the services the gateway forwards to, one call per request.
type Backends struct {
	Orders      orderservice.OrderService
	Deliveries  deliveryservice.DeliveryService
	Restaurants restaurantservice.RestaurantService
	Customers   customerservice.CustomerService
	// Addresses is reported by the index route, keyed by service name.
	Addresses map[string]string
}

type Handler struct {
	backends Backends
}

func Router(backends Backends) http.Handler {
	h := &Handler{backends: backends}

	r := mux.NewRouter()
	r.HandleFunc("/", h.indexHandler).Methods(http.MethodGet)

	r.HandleFunc("/restaurants/{id}", h.getRestaurantHandler).Methods(http.MethodGet)
	r.HandleFunc("/restaurants/{id}/menu", h.updateMenuHandler).Methods(http.MethodPut)
	r.HandleFunc("/restaurants/{id}/payments", h.getPaymentsHandler).Methods(http.MethodGet)
	r.HandleFunc("/restaurants/{restaurant_id}/orders/{order_id}/response", h.restaurantResponseHandler).Methods(http.MethodPost)

	r.HandleFunc("/orders", h.createOrderHandler).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}", h.getOrderHandler).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/status", h.updateOrderStatusHandler).Methods(http.MethodPut)

	r.HandleFunc("/deliveries", h.assignDriverHandler).Methods(http.MethodPost)
	r.HandleFunc("/deliveries/{id}", h.getDeliveryHandler).Methods(http.MethodGet)
	r.HandleFunc("/deliveries/{id}/status", h.updateDeliveryStatusHandler).Methods(http.MethodPut)
	r.HandleFunc("/deliveries/{id}/track", h.trackDeliveryHandler).Methods(http.MethodGet)

	r.HandleFunc("/customers/{id}", h.getCustomerHandler).Methods(http.MethodGet)
	r.HandleFunc("/customers/{id}", h.updateCustomerHandler).Methods(http.MethodPut)

	return logMiddleware(r)
}

func (h *Handler) indexHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Food Platform API Gateway",
		"services": h.backends.Addresses,
	})
}

func (h *Handler) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.backends.Restaurants.GetRestaurant(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRestaurantResponse(restaurant))
}

func (h *Handler) updateMenuHandler(w http.ResponseWriter, r *http.Request) {
	var body updateMenuBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	items := make([]restaurantmodel.MenuItem, 0, len(body.MenuItems))
	for _, item := range body.MenuItems {
		available := true
		if item.Available != nil {
			available = *item.Available
		}
		items = append(items, restaurantmodel.MenuItem{
			ItemID:      item.ItemID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Available:   available,
		})
	}

	restaurant, err := h.backends.Restaurants.UpdateMenu(r.Context(), mux.Vars(r)["id"], items)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRestaurantResponse(restaurant))
}

func (h *Handler) getPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	payments, err := h.backends.Restaurants.GetRestaurantPayments(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, paymentResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) restaurantResponseHandler(w http.ResponseWriter, r *http.Request) {
	var body restaurantResponseBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	vars := mux.Vars(r)
	order, err := h.backends.Orders.RestaurantOrderResponse(r.Context(), vars["restaurant_id"], vars["order_id"], body.Accepted, body.RejectionReason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var body createOrderBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.RestaurantID == "" {
		writeError(w, errors.Wrap(errBadRequest, "restaurant_id is required"))
		return
	}
	items := make([]ordermodel.Item, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, ordermodel.Item(item))
	}

	order, err := h.backends.Orders.CreateOrder(r.Context(), orderservice.CreateOrderParams{
		CustomerName:        body.CustomerName,
		CustomerEmail:       body.CustomerEmail,
		CustomerPhone:       body.CustomerPhone,
		RestaurantID:        body.RestaurantID,
		Items:               items,
		DeliveryAddress:     body.DeliveryAddress,
		SpecialInstructions: body.SpecialInstructions,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := h.backends.Orders.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	var body updateOrderStatusBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Status == nil {
		writeError(w, errors.Wrap(errBadRequest, "status is required"))
		return
	}
	order, err := h.backends.Orders.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], ordermodel.OrderStatus(*body.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) assignDriverHandler(w http.ResponseWriter, r *http.Request) {
	var body assignDriverBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.OrderID == "" || body.DriverID == "" {
		writeError(w, errors.Wrap(errBadRequest, "order_id and driver_id are required"))
		return
	}
	delivery, err := h.backends.Deliveries.AssignDriver(r.Context(), body.OrderID, body.DriverID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeliveryResponse(delivery))
}

func (h *Handler) getDeliveryHandler(w http.ResponseWriter, r *http.Request) {
	delivery, err := h.backends.Deliveries.GetDelivery(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeliveryResponse(delivery))
}

func (h *Handler) updateDeliveryStatusHandler(w http.ResponseWriter, r *http.Request) {
	var body updateDeliveryStatusBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Status == nil {
		writeError(w, errors.Wrap(errBadRequest, "status is required"))
		return
	}
	delivery, err := h.backends.Deliveries.UpdateDeliveryStatus(r.Context(), mux.Vars(r)["id"], deliverymodel.DeliveryStatus(*body.Status), body.CurrentLocation)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeliveryResponse(delivery))
}

func (h *Handler) trackDeliveryHandler(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.backends.Deliveries.TrackDelivery(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	resp := []snapshotResponse{}
	for s := range snapshots {
		resp = append(resp, toSnapshotResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getCustomerHandler(w http.ResponseWriter, r *http.Request) {
	customer, err := h.backends.Customers.GetCustomer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

func (h *Handler) updateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var body updateCustomerBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.backends.Customers.UpdateCustomer(r.Context(), mux.Vars(r)["id"], customermodel.CustomerUpdate(body))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

func readJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrapf(errBadRequest, "decode body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := httpStatus(err)
	entry := log.WithError(err).WithField("status", code)
	if code >= http.StatusInternalServerError {
		entry.Error("backend call failed")
	} else {
		entry.Info("request rejected")
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func httpStatus(err error) int {
	if errors.Is(err, errBadRequest) {
		return http.StatusBadRequest
	}
	switch status.Code(err) {
	case codes.NotFound:
		return http.StatusNotFound
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.FailedPrecondition, codes.Aborted, codes.AlreadyExists:
		return http.StatusConflict
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
