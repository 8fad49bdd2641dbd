package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/campground-booking/internal/domain"
	"github.com/pkordes/campground-booking/internal/middleware"
)

// Routes returns the API router. authenticate verifies bearer tokens; it is
// applied only to the routes that need a caller.
//
//	/healthz, /openapi.yaml          public
//	/api/v1/auth/me                  any authenticated caller
//	/api/v1/campgrounds              reads public, writes admin
//	/api/v1/.../bookings             user or admin, owner-scoped
//	/api/v1/bookings/export          admin
//	/api/v1/.../reviews              reads public, writes owner or admin
//	/api/v1/promotions               reads public, writes user or admin
func (s *Server) Routes(authenticate func(http.Handler) http.Handler) http.Handler {
	member := middleware.RequireRole(domain.RoleUser, domain.RoleAdmin)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(authenticate).Get("/auth/me", s.GetMe)

		r.Route("/campgrounds", func(r chi.Router) {
			r.Get("/", s.ListCampgrounds)
			r.Get("/{campgroundId}", s.GetCampground)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Post("/", s.CreateCampground)
				r.Put("/{campgroundId}", s.UpdateCampground)
				r.Delete("/{campgroundId}", s.DeleteCampground)
			})

			r.Route("/{campgroundId}/bookings", func(r chi.Router) {
				r.Use(authenticate, member)
				r.Get("/", s.ListBookings)
				r.Post("/", s.CreateBooking)
			})

			r.Get("/{campgroundId}/reviews", s.ListReviews)
			r.With(authenticate, member).Post("/{campgroundId}/reviews", s.CreateReview)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(authenticate, member)
			r.Get("/", s.ListBookings)
			r.With(adminOnly).Get("/export", s.GetExport)
			r.Get("/{id}", s.GetBooking)
			r.Put("/{id}", s.UpdateBooking)
			r.Delete("/{id}", s.DeleteBooking)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", s.ListReviews)
			r.Get("/{id}", s.GetReview)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, member)
				r.Put("/{id}", s.UpdateReview)
				r.Delete("/{id}", s.DeleteReview)
			})
		})

		r.Route("/promotions", func(r chi.Router) {
			r.Get("/", s.ListPromotions)
			r.Get("/{id}", s.GetPromotion)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, member)
				r.Post("/", s.CreatePromotion)
				r.Post("/apply", s.ApplyPromotion)
				r.Put("/{id}", s.UpdatePromotion)
				r.Delete("/{id}", s.DeletePromotion)
			})
			r.With(authenticate, adminOnly).Get("/{id}/usages", s.ListPromotionUsages)
		})
	})
	return r
}
