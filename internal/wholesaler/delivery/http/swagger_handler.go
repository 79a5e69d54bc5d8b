package http

// ListWholesalers godoc
// @Summary List wholesalers
// @Tags Wholesalers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} object{id=int,name=string,api_url=string,active=bool,sync_status=string,last_synced_at=string}
// @Failure 401 {object} object{error=string}
// @Router /api/wholesalers [get]
func (h *WholesalerHandler) ListWholesalersDoc() {}

// AddWholesaler godoc
// @Summary Add a wholesaler
// @Tags Wholesalers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,api_url=string,api_key=string} true "Wholesaler data"
// @Success 201 {object} object{id=int,name=string,api_url=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/wholesalers [post]
func (h *WholesalerHandler) AddWholesalerDoc() {}

// UpdateWholesaler godoc
// @Summary Update a wholesaler
// @Tags Wholesalers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Wholesaler ID"
// @Param request body object{name=string,api_url=string,api_key=string} true "Update data"
// @Success 200 {object} object{id=int,name=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/wholesalers/{id} [put]
func (h *WholesalerHandler) UpdateWholesalerDoc() {}

// DeleteWholesaler godoc
// @Summary Delete a wholesaler
// @Description Fails with 409 while the wholesaler still has open orders
// @Tags Wholesalers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Wholesaler ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/wholesalers/{id} [delete]
func (h *WholesalerHandler) DeleteWholesalerDoc() {}

// TestConnection godoc
// @Summary Test wholesaler API connectivity
// @Tags Wholesalers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Wholesaler ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{error=string}
// @Failure 502 {object} object{error=string}
// @Router /api/wholesalers/{id}/test [post]
func (h *WholesalerHandler) TestConnectionDoc() {}

// SetActive godoc
// @Summary Toggle wholesaler active flag
// @Tags Wholesalers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Wholesaler ID"
// @Param request body object{active=bool} true "Active flag"
// @Success 200 {object} object{id=int,active=bool}
// @Failure 404 {object} object{error=string}
// @Router /api/wholesalers/{id}/active [patch]
func (h *WholesalerHandler) SetActiveDoc() {}
