package api

import (
	"net/http"

	"github.com/dnb8866/family-finances-2/src/handlers"
	"github.com/dnb8866/family-finances-2/src/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, readOnly bool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.ReadOnlyMiddleware(readOnly))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Post("/login", handlers.Login(pool))
	r.Post("/register", handlers.Register(pool))

	// User-scoped resources
	r.Route("/users/{user_id}", func(r chi.Router) {
		r.Use(middleware.JWTAuthMiddleware, middleware.UserScopeMiddleware)

		r.Get("/", handlers.GetUser(pool))

		// Transactions: list/create/retrieve only, never updated or deleted
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", handlers.GetAllTransactionsForUser(pool))
			r.Post("/", handlers.CreateTransaction(pool))
			r.Get("/{transaction_id}", handlers.GetTransactionByID(pool))
		})

		// Groups
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", handlers.GetAllGroupsForUser(pool))
			r.Post("/", handlers.CreateGroup(pool))
			r.Get("/{group_id}", handlers.GetGroupByID(pool))
			r.Put("/{group_id}", handlers.UpdateGroup(pool))
			r.Patch("/{group_id}", handlers.PatchGroup(pool))
			r.Delete("/{group_id}", handlers.DeleteGroup(pool))
		})

		// Summary of the current space and period
		r.Get("/summary", handlers.GetSummary(pool))

		// Spaces ("basenames" in the route vocabulary)
		r.Route("/basenames", func(r chi.Router) {
			r.Get("/", handlers.GetAllSpacesForUser(pool))
			r.Post("/", handlers.CreateSpace(pool))
			r.Get("/{space_id}", handlers.GetSpaceByID(pool))
			r.Put("/{space_id}", handlers.UpdateSpace(pool))
			r.Patch("/{space_id}", handlers.PatchSpace(pool))
			r.Delete("/{space_id}", handlers.DeleteSpace(pool))
			r.Post("/{space_id}/link_user", handlers.LinkUser(pool))
			r.Post("/{space_id}/unlink_user", handlers.UnlinkUser(pool))
		})

		// Settings
		r.Route("/core-settings", func(r chi.Router) {
			r.Get("/", handlers.GetCoreSettings(pool))
			r.Put("/", handlers.UpdateCoreSettings(pool))
			r.Patch("/", handlers.PatchCoreSettings(pool))
		})
		r.Route("/telegram-settings", func(r chi.Router) {
			r.Get("/", handlers.GetTelegramSettings(pool))
			r.Put("/", handlers.UpdateTelegramSettings(pool))
			r.Patch("/", handlers.PatchTelegramSettings(pool))
		})
	})

	return r
}
