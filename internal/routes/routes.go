// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and mounts every
// route under /api/v1 behind operator authentication.
package routes

import (
	"errors"

	"mcacrm/internal/config"
	"mcacrm/internal/handlers"
	"mcacrm/internal/metrics"
	"mcacrm/internal/middleware"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/repositories/cache"
	"mcacrm/internal/services/banking"
	"mcacrm/internal/services/deal"
	"mcacrm/internal/services/merchant"
	"mcacrm/internal/services/offer"
	"mcacrm/internal/services/payment"
	"mcacrm/internal/services/principal"
	"mcacrm/internal/services/renewal"
	"mcacrm/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Dependencies are the process level resources the routes are built on.
type Dependencies struct {
	DB *gorm.DB
	// Cache backs the portfolio summary. Nil disables caching.
	Cache    *cache.CacheService
	Config   *config.Config
	Registry *prometheus.Registry
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) error {
	if deps.DB == nil || deps.Config == nil {
		return errors.New("routes: database and config are required")
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	cfg := deps.Config

	sealer, err := utils.NewSSNSealer(cfg.Policy.SSNKey)
	if err != nil {
		return err
	}

	collector := metrics.NewPrometheusCollector(deps.Registry)
	httpMetrics := middleware.NewHTTPMetrics(deps.Registry)
	auth := middleware.NewAuthMiddleware(cfg.JWTSecret)

	var summaryCache deal.SummaryCache
	if deps.Cache != nil {
		summaryCache = deal.NewRedisSummaryCache(deps.Cache)
	}

	// Initialize services
	store := repositories.NewStore(deps.DB)
	merchantService := merchant.NewService(store, merchant.Config{FEINDuplicateCheck: cfg.Policy.FEINDuplicateCheck}, collector)
	principalService := principal.NewService(store, sealer, principal.Config{SSNDuplicateCheck: cfg.Policy.SSNDuplicateCheck}, collector)
	bankingService := banking.NewService(store, collector)
	offerService := offer.NewService(store, collector)
	dealService := deal.NewService(store, summaryCache, collector)
	paymentService := payment.NewService(store, dealService, collector)
	renewalService := renewal.NewService(store, dealService, collector)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache)
	merchantHandler := handlers.NewMerchantHandler(merchantService)
	principalHandler := handlers.NewPrincipalHandler(principalService)
	bankingHandler := handlers.NewBankingHandler(bankingService)
	offerHandler := handlers.NewOfferHandler(offerService)
	dealHandler := handlers.NewDealHandler(dealService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	renewalHandler := handlers.NewRenewalHandler(renewalService)

	app.Use(httpMetrics.Handler)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", middleware.PrometheusHandler(deps.Registry))

	api := app.Group("/api/v1", auth.Handler)
	read := auth.HasPermission(models.PermissionRead)
	write := auth.HasPermission(models.PermissionWrite)
	funding := auth.HasPermission(models.PermissionFunding)

	api.Get("/cache/stats", read, healthHandler.CacheStats)

	// Merchant routes
	merchants := api.Group("/merchants")
	merchants.Get("/", read, merchantHandler.ListMerchants)
	merchants.Post("/", write, merchantHandler.CreateMerchant)
	merchants.Get("/stats", read, merchantHandler.GetMerchantStats)
	merchants.Get("/:id", read, merchantHandler.GetMerchant)
	merchants.Patch("/:id", write, merchantHandler.UpdateMerchant)
	merchants.Delete("/:id", write, merchantHandler.DeleteMerchant)
	merchants.Post("/:id/restore", write, merchantHandler.RestoreMerchant)

	merchants.Get("/:id/principals", read, principalHandler.ListMerchantPrincipals)
	merchants.Post("/:id/principals", write, principalHandler.CreatePrincipal)
	merchants.Get("/:id/ownership", read, principalHandler.GetOwnershipSummary)
	merchants.Get("/:id/bank-accounts", read, bankingHandler.ListMerchantBankAccounts)
	merchants.Post("/:id/bank-accounts", write, bankingHandler.CreateBankAccount)
	merchants.Get("/:id/offers", read, offerHandler.ListMerchantOffers)
	merchants.Post("/:id/offers", write, offerHandler.CreateOffer)
	merchants.Get("/:id/offers/selected", read, offerHandler.GetSelectedOffer)
	merchants.Get("/:id/deals", read, dealHandler.ListMerchantDeals)
	merchants.Get("/:id/renewal-deals", read, dealHandler.ListMerchantRenewalDeals)

	// Principal routes
	principals := api.Group("/principals")
	principals.Post("/search-ssn", read, principalHandler.SearchBySSN)
	principals.Get("/:id", read, principalHandler.GetPrincipal)
	principals.Patch("/:id", write, principalHandler.UpdatePrincipal)
	principals.Delete("/:id", write, principalHandler.DeletePrincipal)
	principals.Post("/:id/restore", write, principalHandler.RestorePrincipal)

	// Bank account routes
	accounts := api.Group("/bank-accounts")
	accounts.Get("/:id", read, bankingHandler.GetBankAccount)
	accounts.Patch("/:id", write, bankingHandler.UpdateBankAccount)
	accounts.Delete("/:id", write, bankingHandler.DeleteBankAccount)
	accounts.Post("/:id/restore", write, bankingHandler.RestoreBankAccount)
	accounts.Post("/:id/primary", write, bankingHandler.SetPrimaryBankAccount)

	// Offer routes
	offers := api.Group("/offers")
	offers.Get("/", read, offerHandler.ListOffers)
	offers.Post("/preview", read, offerHandler.PreviewOffer)
	offers.Get("/:id", read, offerHandler.GetOffer)
	offers.Patch("/:id", write, offerHandler.UpdateOffer)
	offers.Post("/:id/status", write, offerHandler.TransitionOffer)
	offers.Delete("/:id", write, offerHandler.DeleteOffer)
	offers.Post("/:id/restore", write, offerHandler.RestoreOffer)

	// Deal routes
	deals := api.Group("/deals")
	deals.Get("/", read, dealHandler.ListDeals)
	deals.Post("/", funding, dealHandler.CreateDeal)
	deals.Get("/active", read, dealHandler.ListActiveDeals)
	deals.Get("/summary", read, dealHandler.GetPortfolioSummary)
	deals.Post("/recompute", funding, dealHandler.RecomputeAllBalances)
	deals.Get("/number/:number", read, dealHandler.GetDealByNumber)
	deals.Get("/:id", read, dealHandler.GetDeal)
	deals.Patch("/:id", write, dealHandler.UpdateDeal)
	deals.Delete("/:id", funding, dealHandler.CancelDeal)
	deals.Post("/:id/recompute", write, dealHandler.RecomputeBalance)
	deals.Get("/:id/payments", read, paymentHandler.ListDealPayments)
	deals.Get("/:id/payments/summary", read, paymentHandler.GetDealPaymentSummary)
	deals.Get("/:id/renewal-chain", read, renewalHandler.GetRenewalChain)
	deals.Get("/:id/renewal-summary", read, renewalHandler.GetRenewalSummary)
	deals.Get("/:id/renewal-infos", read, renewalHandler.ListRenewalInfos)
	deals.Get("/:id/renewal-relationships", read, renewalHandler.ListRenewalRelationships)

	// Payment routes
	payments := api.Group("/payments")
	payments.Get("/", read, paymentHandler.ListPayments)
	payments.Post("/", write, paymentHandler.RecordPayment)
	payments.Get("/recent", read, paymentHandler.GetRecentPayments)
	payments.Get("/bounced", read, paymentHandler.GetBouncedPayments)
	payments.Get("/stats/by-type", read, paymentHandler.GetStatsByType)
	payments.Get("/:id", read, paymentHandler.GetPayment)
	payments.Patch("/:id", write, paymentHandler.UpdatePayment)
	payments.Patch("/:id/bounce", write, paymentHandler.MarkBounced)
	payments.Delete("/:id", write, paymentHandler.DeletePayment)
	payments.Post("/:id/restore", write, paymentHandler.RestorePayment)

	// Renewal routes
	renewals := api.Group("/renewals")
	renewals.Post("/", funding, renewalHandler.CreateRenewal)
	renewals.Post("/reverse", funding, renewalHandler.ReverseRenewal)
	renewals.Patch("/infos/:id", write, renewalHandler.UpdateRenewalInfo)

	return nil
}
