package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	guestMiddleware := standardMiddleware.Append(app.optionalAuth)
	authMiddleware := standardMiddleware.Append(app.requireAuth)

	mux := pat.New()

	// Auth
	mux.Post("/api/auth/register", standardMiddleware.ThenFunc(app.userHandler.Register))
	mux.Post("/api/auth/login", standardMiddleware.ThenFunc(app.userHandler.Login))
	mux.Post("/api/auth/refresh", standardMiddleware.ThenFunc(app.userHandler.Refresh))
	mux.Post("/api/auth/logout", standardMiddleware.ThenFunc(app.userHandler.Logout))
	mux.Get("/api/auth/me", authMiddleware.ThenFunc(app.userHandler.Me))

	// Wishlists
	mux.Post("/api/wishlists", authMiddleware.ThenFunc(app.wishlistHandler.CreateWishlist))
	mux.Get("/api/wishlists", authMiddleware.ThenFunc(app.wishlistHandler.ListMine))
	mux.Get("/api/wishlists/slug/:slug", guestMiddleware.ThenFunc(app.wishlistHandler.GetBySlug))
	mux.Get("/api/wishlists/id/:id", authMiddleware.ThenFunc(app.wishlistHandler.GetByID))
	mux.Put("/api/wishlists/id/:id", authMiddleware.ThenFunc(app.wishlistHandler.UpdateWishlist))
	mux.Put("/api/wishlists/:id/items/order", authMiddleware.ThenFunc(app.itemHandler.ReorderItems))
	mux.Post("/api/wishlists/:id/items", authMiddleware.ThenFunc(app.itemHandler.AddItem))

	// Items
	mux.Put("/api/items/:id", authMiddleware.ThenFunc(app.itemHandler.UpdateItem))
	mux.Del("/api/items/:id", authMiddleware.ThenFunc(app.itemHandler.DeleteItem))
	mux.Post("/api/items/:id/reserve", guestMiddleware.ThenFunc(app.itemHandler.Reserve))
	mux.Del("/api/items/:id/reserve", guestMiddleware.ThenFunc(app.itemHandler.Unreserve))
	mux.Post("/api/items/:id/contribute", guestMiddleware.ThenFunc(app.itemHandler.Contribute))
	mux.Post("/api/items/:id/comments", guestMiddleware.ThenFunc(app.commentHandler.AddComment))

	// Tooling
	mux.Post("/api/scraper/fetch", guestMiddleware.ThenFunc(app.scraperHandler.FetchMeta))
	mux.Get("/api/wishlist-templates", standardMiddleware.ThenFunc(app.templateHandler.ListTemplates))

	// Live view feed
	mux.Get("/api/ws/:slug", http.HandlerFunc(app.hub.ServeWS))

	return mux
}
