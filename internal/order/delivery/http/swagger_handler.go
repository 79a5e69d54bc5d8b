package http

// ListOrders godoc
// @Summary List orders
// @Description List orders with optional text search and status filter
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param search query string false "Match against order ID or customer name"
// @Param status query string false "Status filter (pending/processing/shipped/delivered/failed)"
// @Success 200 {array} object{id=string,customer_name=string,status=string,total_amount=number,progress=int}
// @Failure 401 {object} object{error=string}
// @Router /api/orders [get]
func (h *OrderHandler) ListOrdersDoc() {}

// CreateOrder godoc
// @Summary Create an order
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{customer_name=string,wholesaler_id=int,items=[]object{product_id=int,quantity=int}} true "Order data"
// @Success 201 {object} object{id=string,status=string,total_amount=number}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrderDoc() {}

// GetOrder godoc
// @Summary Get order by ID
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} object{id=string,customer_name=string,status=string,items=[]object,progress=int}
// @Failure 404 {object} object{error=string}
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrderDoc() {}

// FulfillOrder godoc
// @Summary Fulfill an order
// @Description Atomically reserve stock and move the order from pending to processing
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} object{id=string,status=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/orders/{id}/fulfill [post]
func (h *OrderHandler) FulfillOrderDoc() {}

// DispatchOrder godoc
// @Summary Dispatch an order to its wholesaler
// @Description Push the order to the wholesaler API and mark it shipped on success
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} object{id=string,status=string,tracking_number=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 502 {object} object{error=string}
// @Router /api/orders/{id}/dispatch [post]
func (h *OrderHandler) DispatchOrderDoc() {}

// MarkShipped godoc
// @Summary Mark order shipped
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body object{tracking_number=string,estimated_delivery=string} false "Shipping details"
// @Success 200 {object} object{id=string,status=string}
// @Failure 409 {object} object{error=string}
// @Router /api/orders/{id}/ship [post]
func (h *OrderHandler) MarkShippedDoc() {}

// MarkDelivered godoc
// @Summary Mark order delivered
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} object{id=string,status=string}
// @Failure 409 {object} object{error=string}
// @Router /api/orders/{id}/deliver [post]
func (h *OrderHandler) MarkDeliveredDoc() {}

// MarkFailed godoc
// @Summary Mark order failed
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} object{id=string,status=string}
// @Failure 409 {object} object{error=string}
// @Router /api/orders/{id}/fail [post]
func (h *OrderHandler) MarkFailedDoc() {}
