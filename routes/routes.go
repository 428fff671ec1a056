package routes

import (
	"net/http"

	"planora/auth"
	"planora/market"
	"planora/middleware"
	"planora/plan"
	"planora/preview"
	"planora/ratelim"
	"planora/suggestions"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddUserRoutes(router, rateLimiter)
	AddPlanRoutes(router, rateLimiter)
	AddMarketRoutes(router, rateLimiter)
	AddPreviewRoutes(router, rateLimiter)
	AddSuggestionsRoutes(router, rateLimiter)
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/planpic/*filepath", http.Dir("static/planpic"))
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rateLimiter.Limit(auth.RefreshToken))
}

func AddUserRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/user/:userid/plans", middleware.Authenticate(plan.GetUserPlansHandler))
	router.PUT("/api/user/:userid/role", rateLimiter.Limit(middleware.Authenticate(auth.UpgradeToSeller)))
}

func AddPlanRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/plans", rateLimiter.Limit(middleware.Authenticate(middleware.RequireSeller(plan.CreatePlanHandler))))
	router.GET("/api/plans/:planid", middleware.OptionalAuth(plan.GetPlanHandler))
	router.PUT("/api/plans/:planid", rateLimiter.Limit(middleware.Authenticate(plan.UpdatePlanHandler)))
	router.PUT("/api/plans/:planid/sell", rateLimiter.Limit(middleware.Authenticate(middleware.RequireSeller(plan.SellPlanHandler))))
	router.POST("/api/plans/:planid/days", rateLimiter.Limit(middleware.Authenticate(plan.AddDayHandler)))
	router.GET("/api/plans/:planid/summary", middleware.OptionalAuth(plan.PlanSummaryHandler))
	router.POST("/api/plans/:planid/images", rateLimiter.Limit(middleware.Authenticate(plan.UploadPlanImagesHandler)))

	router.GET("/api/plans/:planid/days/:day/buffer", middleware.Authenticate(plan.GetDayBufferHandler))
	router.PUT("/api/plans/:planid/days/:day/buffer", middleware.Authenticate(plan.SaveDayBufferHandler))
	router.DELETE("/api/plans/:planid/days/:day/buffer", middleware.Authenticate(plan.DiscardDayBufferHandler))
	router.POST("/api/plans/:planid/days/:day/commit", rateLimiter.Limit(middleware.Authenticate(plan.CommitDayHandler)))
}

func AddMarketRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/market/plans", rateLimiter.Limit(market.ListMarketPlansHandler))
}

func AddPreviewRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/plans/:planid/preview", preview.GetPlanPreviewHandler)
	router.GET("/api/plans/:planid/qr", preview.PlanQRHandler)
	router.GET("/api/plans/:planid/preview/pdf", rateLimiter.Limit(preview.PrintPlanHandler))
}

func AddSuggestionsRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/suggestions/plans", rateLimiter.Limit(suggestions.SuggestPlansHandler))
	router.GET("/api/suggestions/countries", rateLimiter.Limit(suggestions.SuggestCountriesHandler))
}
