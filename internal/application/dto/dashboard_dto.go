package dto

// DashboardSummaryDTO conteos de la portada.
type DashboardSummaryDTO struct {
	SalesOrders    int `json:"sales_orders"`
	PurchaseOrders int `json:"purchase_orders"`
	InventoryItems int `json:"inventory_items"`
	LowStockItems  int `json:"low_stock_items"`
	Recipes        int `json:"recipes"`
}
