package internal

import (
	"golang.org/x/time/rate"
	"kgsite/internal/controllers"
	"kgsite/internal/providers"
	"kgsite/internal/structures"
	"net/http"
)

type Controllers struct {
	Health    *controllers.HealthController
	Analytics *controllers.AnalyticsController
	Consent   *controllers.ConsentController
	Intake    *controllers.IntakeController
	Stub      *controllers.StubController
}

func NewControllers(health *controllers.HealthController, analytics *controllers.AnalyticsController, consent *controllers.ConsentController, intake *controllers.IntakeController, stub *controllers.StubController) *Controllers {
	return &Controllers{
		Health:    health,
		Analytics: analytics,
		Consent:   consent,
		Intake:    intake,
		Stub:      stub,
	}
}

func InitRoutes(c *Controllers, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/health", http.HandlerFunc(c.Health.ApiHealth))

	routers.Get("/api/analytics", http.HandlerFunc(c.Analytics.GetSeries))
	routers.Get("/api/analytics/charts", http.HandlerFunc(c.Analytics.GetCharts))
	routers.Get("/api/analytics/seed", http.HandlerFunc(c.Analytics.GetSeed))
	routers.Post("/api/analytics/seed", http.HandlerFunc(c.Analytics.RegenerateSeed))

	routers.Get("/api/consent", http.HandlerFunc(c.Consent.GetStatus))
	routers.Post("/api/consent/request", http.HandlerFunc(c.Consent.Request))
	routers.Post("/api/consent/decline", http.HandlerFunc(c.Consent.Decline))
	routers.Post("/api/consent/clear", http.HandlerFunc(c.Consent.Clear))

	limiter := rate.NewLimiter(rate.Limit(conf.Intake.RatePerSecond), conf.Intake.Burst)
	routers.Post("/api/geo", providers.RateLimitMiddleware(limiter, http.HandlerFunc(c.Intake.Receive)))

	routers.Get("/api/blog", http.HandlerFunc(c.Stub.Blog))
	routers.Get("/api/blog/", http.HandlerFunc(c.Stub.Blog))
	routers.Get("/api/", http.HandlerFunc(c.Stub.Api))
	routers.Handle("/", http.HandlerFunc(c.Stub.NotFound))
	return routers
}
