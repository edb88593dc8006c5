package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/viralforge/campaign-marketplace/internal/adapters/metrics"
	"github.com/viralforge/campaign-marketplace/internal/application"
)

// ReadinessCheck reports whether downstream dependencies can take traffic.
type ReadinessCheck func(ctx context.Context) error

type Handler struct {
	service *application.Service
	ready   ReadinessCheck
}

func NewHandler(service *application.Service, ready ReadinessCheck) *Handler {
	return &Handler{service: service, ready: ready}
}

func NewRouter(handler *Handler, recorder *metrics.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)
	if recorder != nil {
		r.Use(recorder.Middleware)
		r.Method(http.MethodGet, "/metrics", recorder.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ok") })
	r.Get("/readyz", handler.readyz)

	r.Route("/v1", func(r chi.Router) {
		r.Use(handler.authMiddleware)

		r.Route("/users/me", func(r chi.Router) {
			r.Post("/", handler.ensureUser)
			r.Get("/", handler.getCurrentUser)
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Put("/brand/me", handler.upsertBrandProfile)
			r.Get("/brand/me", handler.getMyBrandProfile)
			r.Put("/influencer/me", handler.upsertInfluencerProfile)
			r.Get("/influencer/me", handler.getMyInfluencerProfile)
		})
		r.Get("/brands/{user_id}", handler.getBrandProfile)
		r.Get("/influencers", handler.discoverInfluencers)
		r.Get("/influencers/{user_id}", handler.getInfluencerProfile)

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", handler.createCampaign)
			r.Get("/", handler.discoverCampaigns)
			r.Get("/mine", handler.listMyCampaigns)
			r.Get("/recommended", handler.recommendedCampaigns)

			r.Route("/{campaign_id}", func(r chi.Router) {
				r.Get("/", handler.getCampaign)
				r.Patch("/", handler.updateCampaign)
				r.Delete("/", handler.deleteCampaign)
				r.Post("/extend", handler.extendCampaign)

				r.Post("/applications", handler.applyToCampaign)
				r.Get("/applications", handler.listCampaignApplications)
				r.Get("/applications/mine", handler.getMyApplicationForCampaign)
				r.Delete("/applications/mine", handler.withdrawApplication)
			})
		})

		r.Route("/applications", func(r chi.Router) {
			r.Get("/mine", handler.listMyApplications)
			r.Get("/{application_id}", handler.getApplication)
			r.Patch("/{application_id}/status", handler.updateApplicationStatus)
		})
	})
	return r
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			logHTTPOperationError(r.Context(), "readyz", http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "not ready", err)
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "not ready")
			return
		}
	}
	writeMessage(w, http.StatusOK, "ready")
}
