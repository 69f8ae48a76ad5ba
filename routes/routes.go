package routes

import (
	"github.com/daniarfurniture/finance-api/handlers"
	"github.com/daniarfurniture/finance-api/services"
	"github.com/daniarfurniture/finance-api/store"

	"github.com/gin-gonic/gin"
)

// SetupTransactionRoutes sets up ledger writes, listing and the kasbon balance.
func SetupTransactionRoutes(rg *gin.RouterGroup, svc *services.TransactionService) {
	h := handlers.NewTransactionHandler(svc)

	rg.GET("/transactions", h.ListTransactions)
	rg.POST("/transactions", h.CreateTransaction)
	rg.GET("/transactions/:id", h.GetTransaction)
	rg.PUT("/transactions/:id", h.UpdateTransaction)
	rg.DELETE("/transactions/:id", h.DeleteTransaction)

	rg.GET("/reports/summary", h.GetSummary)
	rg.GET("/payable", h.GetPayable)
}

// SetupReportRoutes sets up the dashboard and the financial statements.
func SetupReportRoutes(rg *gin.RouterGroup, svc *services.ReportService) {
	h := &handlers.ReportHandler{Service: svc}

	rg.GET("/reports/dashboard", h.GetDashboard)
	rg.GET("/reports/income-statement", h.GetIncomeStatement)
	rg.GET("/reports/balance-sheet", h.GetBalanceSheet)
}

func SetupCategoryRoutes(rg *gin.RouterGroup, catalog *services.Catalog) {
	h := &handlers.CategoryHandler{Catalog: catalog}

	rg.GET("/categories", h.ListCategories)
	rg.POST("/categories/classify", h.Classify)
}

func SetupAssetRoutes(rg *gin.RouterGroup, svc *services.AssetService) {
	h := &handlers.AssetHandler{Service: svc}

	rg.GET("/assets", h.ListAssets)
	rg.POST("/assets", h.CreateAsset)
	rg.GET("/assets/:id", h.GetAsset)
	rg.PUT("/assets/:id", h.UpdateAsset)
	rg.DELETE("/assets/:id", h.DeleteAsset)
	rg.GET("/assets/:id/depreciation", h.GetDepreciation)
}

func SetupInvoiceRoutes(rg *gin.RouterGroup, svc *services.InvoiceService) {
	h := &handlers.InvoiceHandler{Service: svc}

	rg.GET("/invoices", h.ListInvoices)
	rg.POST("/invoices", h.CreateInvoice)
	rg.GET("/invoices/:id", h.GetInvoice)
	rg.PUT("/invoices/:id", h.UpdateInvoice)
	rg.DELETE("/invoices/:id", h.DeleteInvoice)
}

// SetupBudgetRoutes sets up RAB documents.
func SetupBudgetRoutes(rg *gin.RouterGroup, svc *services.BudgetService) {
	h := &handlers.BudgetHandler{Service: svc}

	rg.GET("/budgets", h.ListBudgets)
	rg.POST("/budgets", h.CreateBudget)
	rg.GET("/budgets/:id", h.GetBudget)
	rg.PUT("/budgets/:id", h.UpdateBudget)
	rg.PUT("/budgets/:id/status", h.UpdateBudgetStatus)
	rg.DELETE("/budgets/:id", h.DeleteBudget)
}

func SetupEmployeeRoutes(rg *gin.RouterGroup, svc *services.EmployeeService) {
	h := &handlers.EmployeeHandler{Service: svc}

	rg.GET("/employees", h.ListEmployees)
	rg.GET("/employees/report", h.GetReport)
	rg.POST("/employees", h.CreateEmployee)
	rg.GET("/employees/:id", h.GetEmployee)
	rg.PUT("/employees/:id", h.UpdateEmployee)
	rg.DELETE("/employees/:id", h.DeleteEmployee)
}

func SetupPayrollRoutes(rg *gin.RouterGroup, svc *services.PayrollService) {
	h := &handlers.PayrollHandler{Service: svc}

	rg.GET("/payroll", h.ListPayroll)
	rg.POST("/payroll", h.CreatePayroll)
	rg.GET("/payroll/:id", h.GetPayroll)
	rg.PUT("/payroll/:id", h.UpdatePayroll)
	rg.DELETE("/payroll/:id", h.DeletePayroll)
}

// SetupAdminRoutes sets up maintenance jobs over the whole ledger.
func SetupAdminRoutes(rg *gin.RouterGroup, st store.Store, catalog *services.Catalog, notifier services.Notifier) {
	h := &handlers.AdminHandler{Store: st, Catalog: catalog, Notifier: notifier}

	admin := rg.Group("/admin")
	{
		admin.POST("/normalize-types", h.NormalizeTypes)
		admin.GET("/payable/reconcile", h.ReconcilePayable)
		admin.POST("/payable/rebuild", h.RebuildPayable)
	}
}
