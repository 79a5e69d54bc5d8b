package http

// ListProducts godoc
// @Summary List products
// @Description List products with optional text, category, status and threshold filters
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param search query string false "Match against name, SKU or category"
// @Param category query string false "Category filter"
// @Param status query string false "Stock status filter (in_stock/low_stock/out_of_stock)"
// @Param threshold query int false "Low stock threshold override"
// @Success 200 {array} object{id=int,name=string,sku=string,category=string,price=number,cost=number,stock=int,status=string}
// @Failure 401 {object} object{error=string}
// @Router /api/products [get]
func (h *InventoryHandler) ListProductsDoc() {}

// GetStats godoc
// @Summary Inventory statistics
// @Description Aggregate counts and value of the current inventory
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{total_products=int,total_stock=int,low_stock_count=int,out_of_stock_count=int,inventory_value=number}
// @Failure 401 {object} object{error=string}
// @Router /api/products/stats [get]
func (h *InventoryHandler) GetStatsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{id=int,name=string,sku=string,stock=int,status=string}
// @Failure 404 {object} object{error=string}
// @Router /api/products/{id} [get]
func (h *InventoryHandler) GetProductDoc() {}

// CreateProduct godoc
// @Summary Create a product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,sku=string,category=string,price=number,cost=number,stock=int,wholesaler_id=int} true "Product data"
// @Success 201 {object} object{id=int,name=string,sku=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/products [post]
func (h *InventoryHandler) CreateProductDoc() {}

// UpdateProduct godoc
// @Summary Update a product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body object{name=string,category=string,price=number,cost=number} true "Update data"
// @Success 200 {object} object{id=int,name=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/products/{id} [put]
func (h *InventoryHandler) UpdateProductDoc() {}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /api/products/{id} [delete]
func (h *InventoryHandler) DeleteProductDoc() {}

// UpdateStock godoc
// @Summary Set product stock level
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body object{stock=int} true "New stock level"
// @Success 200 {object} object{id=int,stock=int,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/products/{id}/stock [patch]
func (h *InventoryHandler) UpdateStockDoc() {}

// UpdateSelection godoc
// @Summary Update product selection
// @Description Mark which products are part of the active storefront selection
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_ids=[]int} true "Selected product IDs"
// @Success 200 {object} object{selected=int}
// @Failure 400 {object} object{error=string}
// @Router /api/products/selection [post]
func (h *InventoryHandler) UpdateSelectionDoc() {}
