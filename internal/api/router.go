package api

import (
	"net/http"

	_ "currencymonitor/docs"
	ratehandler "currencymonitor/internal/rate/handler"
	subscriptionhandler "currencymonitor/internal/subscription/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(
	rateHandler *ratehandler.Handler,
	subscriptionHandler *subscriptionhandler.Handler,
	gatherer prometheus.Gatherer,
) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/currencies", rateHandler.ListCurrencies)

		r.Get("/rates", rateHandler.ListRates)
		r.Post("/rates/updates", rateHandler.TriggerUpdate)
		r.Get("/rates/{base:[A-Za-z]{3}}/{quote:[A-Za-z]{3}}", rateHandler.GetByCodes)

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", subscriptionHandler.List)
			r.Post("/", subscriptionHandler.Create)
			r.Get("/{id}", subscriptionHandler.Get)
			r.Put("/{id}", subscriptionHandler.Update)
			r.Delete("/{id}", subscriptionHandler.Delete)
		})
	})
	return router
}
