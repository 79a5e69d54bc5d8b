package http

// ProfitSummary godoc
// @Summary Profit summary
// @Description Profit totals over daily, weekly, monthly and yearly windows
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{daily=number,weekly=number,monthly=number,yearly=number}
// @Failure 401 {object} object{error=string}
// @Router /api/analytics/profit [get]
func (h *AnalyticsHandler) ProfitSummaryDoc() {}

// TopProducts godoc
// @Summary Top selling products
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of products to return (default 5)"
// @Success 200 {array} object{product_id=int,name=string,units_sold=int,revenue=number}
// @Failure 400 {object} object{error=string}
// @Router /api/analytics/top-products [get]
func (h *AnalyticsHandler) TopProductsDoc() {}

// SalesTrend godoc
// @Summary Sales trend
// @Description Revenue and order counts bucketed by day, week or month
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param bucket query string false "Bucket size (day/week/month, default month)"
// @Success 200 {array} object{period=string,revenue=number,orders=int}
// @Failure 400 {object} object{error=string}
// @Router /api/analytics/sales-trend [get]
func (h *AnalyticsHandler) SalesTrendDoc() {}
