package http

// SyncInventory godoc
// @Summary Run inventory sync
// @Description Sync the local catalog against all active wholesaler APIs. Only one sync runs at a time.
// @Tags Sync
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{sync_id=string,status=string,results=[]object{wholesaler_id=int,name=string,status=string,product_count=int}}
// @Failure 409 {object} object{error=string}
// @Failure 502 {object} object{error=string}
// @Router /api/sync [post]
func (h *SyncHandler) SyncInventoryDoc() {}

// SyncStatus godoc
// @Summary Get sync status
// @Tags Sync
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{state=string,synced_at=string}
// @Router /api/sync/status [get]
func (h *SyncHandler) SyncStatusDoc() {}
