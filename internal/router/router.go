package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/no-thing-project/hub-frontend/internal/handler"
	"github.com/no-thing-project/hub-frontend/internal/setup"
	"github.com/no-thing-project/hub-frontend/shared/middleware/metrics"
)

// New builds the service router: public health/metrics plus the
// authenticated JSON surface the UI talks to.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	h := deps.Handler

	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.NeedAuth())

		r.Route("/gates", func(r chi.Router) {
			r.Get("/", h.ListGates)
			r.Post("/", h.CreateGate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetGate)
				r.Put("/", h.UpdateGate)
				r.Delete("/", h.DeleteGate)
				r.Put("/status", h.UpdateGateStatus)
				r.Post("/favorite", h.FavoriteGate)
				r.Post("/unfavorite", h.UnfavoriteGate)
				r.Post("/members", h.AddGateMember)
				r.Put("/members/{username}", h.UpdateGateMemberRole)
				r.Delete("/members/{username}", h.RemoveGateMember)
				r.Get("/classes", h.ListGateClasses)
				r.Get("/boards", h.ListGateBoards)
			})
		})

		r.Route("/classes", func(r chi.Router) {
			r.Get("/", h.ListClasses)
			r.Post("/", h.CreateClass)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetClass)
				r.Put("/", h.UpdateClass)
				r.Delete("/", h.DeleteClass)
				r.Put("/status", h.UpdateClassStatus)
				r.Post("/favorite", h.FavoriteClass)
				r.Post("/unfavorite", h.UnfavoriteClass)
				r.Post("/members", h.AddClassMember)
				r.Put("/members/{username}", h.UpdateClassMemberRole)
				r.Delete("/members/{username}", h.RemoveClassMember)
				r.Get("/boards", h.ListClassBoards)
			})
		})

		r.Route("/boards", func(r chi.Router) {
			r.Get("/", h.ListBoards)
			r.Post("/", h.CreateBoard)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetBoard)
				r.Put("/", h.UpdateBoard)
				r.Delete("/", h.DeleteBoard)
				r.Put("/status", h.UpdateBoardStatus)
				r.Post("/favorite", h.FavoriteBoard)
				r.Post("/unfavorite", h.UnfavoriteBoard)
				r.Post("/members", h.AddBoardMember)
				r.Put("/members/{username}", h.UpdateBoardMemberRole)
				r.Delete("/members/{username}", h.RemoveBoardMember)
				r.Get("/children", h.ListChildBoards)
				r.Post("/children", h.CreateChildBoard)
			})
		})

		r.Route("/social", func(r chi.Router) {
			r.Get("/friends", h.ListFriends)
			r.Get("/friends/pending", h.ListPendingFriends)
			r.Post("/friends/add", h.AddFriend)
			r.Post("/friends/accept", h.AcceptFriend)
			r.Post("/friends/reject", h.RejectFriend)
			r.Post("/friends/remove", h.RemoveFriend)
			r.Get("/users/search", h.SearchUsers)
		})
	})

	return r
}
