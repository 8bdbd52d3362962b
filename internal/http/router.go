package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/asiaagro/silage-backend/internal/handlers"
	"github.com/asiaagro/silage-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	stockHandler *handlers.StockHandler,
	bunkerHandler *handlers.BunkerHandler,
	saleHandler *handlers.SaleHandler,
	expenseHandler *handlers.ExpenseHandler,
	sparePartHandler *handlers.SparePartHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Deleting a bunker cascades its whole ledger and deleting a category
	// touches every expense under it, so those stay admin-only.
	admin := authMiddleware.RequireRole("admin")

	// Public routes
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	// Authenticated profile and TOTP enrolment
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/totp/setup", authHandler.SetupTOTP).Methods("POST")
	authAPI.HandleFunc("/totp/verify", authHandler.VerifyTOTP).Methods("POST")

	// Stock in
	stockAPI := r.PathPrefix("/api/stock").Subrouter()
	stockAPI.Use(authMiddleware.Authenticate)
	stockAPI.HandleFunc("", stockHandler.ListStockIn).Methods("GET")
	stockAPI.HandleFunc("", stockHandler.CreateStockIn).Methods("POST")
	stockAPI.HandleFunc("/summary", stockHandler.StockSummary).Methods("GET")
	stockAPI.HandleFunc("/available", stockHandler.AvailableStock).Methods("GET")
	stockAPI.HandleFunc("/{id}", stockHandler.GetStockIn).Methods("GET")
	stockAPI.HandleFunc("/{id}", stockHandler.UpdateStockIn).Methods("PATCH")
	stockAPI.HandleFunc("/{id}", stockHandler.DeleteStockIn).Methods("DELETE")

	// Stock out
	stockOutAPI := r.PathPrefix("/api/stock-out").Subrouter()
	stockOutAPI.Use(authMiddleware.Authenticate)
	stockOutAPI.HandleFunc("", stockHandler.ListStockOut).Methods("GET")
	stockOutAPI.HandleFunc("", stockHandler.CreateStockOut).Methods("POST")
	stockOutAPI.HandleFunc("/{id}", stockHandler.DeleteStockOut).Methods("DELETE")

	// Bunkers and their three ledgers
	bunkersAPI := r.PathPrefix("/api/bunkers").Subrouter()
	bunkersAPI.Use(authMiddleware.Authenticate)
	bunkersAPI.HandleFunc("", bunkerHandler.ListBunkers).Methods("GET")
	bunkersAPI.HandleFunc("", bunkerHandler.CreateBunker).Methods("POST")
	bunkersAPI.HandleFunc("/{id}", bunkerHandler.GetBunker).Methods("GET")
	bunkersAPI.Handle("/{id}", admin(http.HandlerFunc(bunkerHandler.DeleteBunker))).Methods("DELETE")
	bunkersAPI.HandleFunc("/{id}/totals", bunkerHandler.BunkerTotals).Methods("GET")
	bunkersAPI.HandleFunc("/{id}/purchases", bunkerHandler.ListPurchases).Methods("GET")
	bunkersAPI.HandleFunc("/{id}/purchases", bunkerHandler.CreatePurchase).Methods("POST")
	bunkersAPI.HandleFunc("/{id}/purchases/{purchaseId}/payment", bunkerHandler.AddPurchasePayment).Methods("PATCH")
	bunkersAPI.HandleFunc("/{id}/purchases/{purchaseId}", bunkerHandler.DeletePurchase).Methods("DELETE")
	bunkersAPI.HandleFunc("/{id}/sales", bunkerHandler.ListSales).Methods("GET")
	bunkersAPI.HandleFunc("/{id}/sales", bunkerHandler.CreateSale).Methods("POST")
	bunkersAPI.HandleFunc("/{id}/sales/{saleId}/payment", bunkerHandler.AddSalePayment).Methods("PATCH")
	bunkersAPI.HandleFunc("/{id}/sales/{saleId}", bunkerHandler.DeleteSale).Methods("DELETE")
	bunkersAPI.HandleFunc("/{id}/expenses", bunkerHandler.ListExpenses).Methods("GET")
	bunkersAPI.HandleFunc("/{id}/expenses", bunkerHandler.CreateExpense).Methods("POST")
	bunkersAPI.HandleFunc("/{id}/expenses/{expenseId}/payment", bunkerHandler.AddExpensePayment).Methods("PATCH")
	bunkersAPI.HandleFunc("/{id}/expenses/{expenseId}", bunkerHandler.DeleteExpense).Methods("DELETE")

	// Client sales and invoices
	salesAPI := r.PathPrefix("/api/sales").Subrouter()
	salesAPI.Use(authMiddleware.Authenticate)
	salesAPI.HandleFunc("", saleHandler.ListSales).Methods("GET")
	salesAPI.HandleFunc("", saleHandler.CreateSale).Methods("POST")
	salesAPI.HandleFunc("/bill-number", saleHandler.NextBillNumber).Methods("GET")
	salesAPI.HandleFunc("/summary", saleHandler.Summary).Methods("GET")
	salesAPI.HandleFunc("/{id}", saleHandler.GetSale).Methods("GET")
	salesAPI.HandleFunc("/{id}", saleHandler.DeleteSale).Methods("DELETE")
	salesAPI.HandleFunc("/{id}/payment", saleHandler.AddPayment).Methods("PATCH")
	salesAPI.HandleFunc("/{id}/invoice", saleHandler.Invoice).Methods("GET")

	// Expense categories and expenses
	expensesAPI := r.PathPrefix("/api/expenses").Subrouter()
	expensesAPI.Use(authMiddleware.Authenticate)
	expensesAPI.HandleFunc("", expenseHandler.ListExpenses).Methods("GET")
	expensesAPI.HandleFunc("", expenseHandler.CreateExpense).Methods("POST")
	expensesAPI.HandleFunc("/summary", expenseHandler.Summary).Methods("GET")
	expensesAPI.HandleFunc("/categories", expenseHandler.ListCategories).Methods("GET")
	expensesAPI.HandleFunc("/categories", expenseHandler.CreateCategory).Methods("POST")
	expensesAPI.Handle("/categories/{id}", admin(http.HandlerFunc(expenseHandler.DeleteCategory))).Methods("DELETE")
	expensesAPI.HandleFunc("/{id}/payment", expenseHandler.AddPayment).Methods("PATCH")
	expensesAPI.HandleFunc("/{id}", expenseHandler.DeleteExpense).Methods("DELETE")

	// Spare parts
	partsAPI := r.PathPrefix("/api/spare-parts").Subrouter()
	partsAPI.Use(authMiddleware.Authenticate)
	partsAPI.HandleFunc("", sparePartHandler.ListParts).Methods("GET")
	partsAPI.HandleFunc("", sparePartHandler.CreatePart).Methods("POST")
	partsAPI.HandleFunc("/{id}", sparePartHandler.UpdatePart).Methods("PATCH")
	partsAPI.HandleFunc("/{id}", sparePartHandler.DeletePart).Methods("DELETE")

	// Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("/overview", dashboardHandler.Overview).Methods("GET")

	return r
}
