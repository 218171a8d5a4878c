package routes

import (
	"github.com/shashiranjanraj/orderdesk/app/controllers"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/middleware"
	"github.com/shashiranjanraj/orderdesk/pkg/router"
)

// Services is everything the API routes need.
type Services struct {
	Tokens   middleware.TokenVerifier
	Identity controllers.Identity
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Orders   *services.OrderService
}

func RegisterAPI(r *router.Router, s Services) {
	authController := controllers.NewAuthController(s.Auth, s.Identity)
	orderController := controllers.NewOrderController(s.Orders, s.Identity)
	productController := controllers.NewProductController(s.Catalog, s.Identity)

	access := middleware.Authenticate(s.Tokens, auth.AccessToken)

	r.Get("/", "home", ctx.Wrap(controllers.Home))

	authGroup := r.Group("/auth")
	authGroup.Get("/", "auth.welcome", ctx.Wrap(authController.Welcome), access)
	authGroup.Post("/signup", "auth.signup", ctx.Wrap(authController.Signup))
	authGroup.Post("/login", "auth.login", ctx.Wrap(authController.Login))
	authGroup.Get("/login/refresh", "auth.refresh", ctx.Wrap(authController.Refresh))

	orders := r.Group("/order", access)
	orders.Get("/", "orders.welcome", ctx.Wrap(orderController.Welcome))
	orders.Post("/make", "orders.make", ctx.Wrap(orderController.Make))
	orders.Get("/list", "orders.list", ctx.Wrap(orderController.List))
	orders.Get("/user/orders", "orders.mine", ctx.Wrap(orderController.Mine))
	orders.Get("/user/order/{id}", "orders.mine.show", ctx.Wrap(orderController.ShowMine))
	orders.Get("/{id}", "orders.show", ctx.Wrap(orderController.Show))
	orders.Put("/{id}/update", "orders.update", ctx.Wrap(orderController.Update))
	orders.Patch("/{id}/update-status", "orders.status", ctx.Wrap(orderController.UpdateStatus))
	orders.Delete("/{id}/delete", "orders.delete", ctx.Wrap(orderController.Delete))

	products := r.Group("/product", access)
	products.Post("/create", "products.create", ctx.Wrap(productController.Create))
	products.Get("/list", "products.list", ctx.Wrap(productController.List))
	products.Get("/{id}", "products.show", ctx.Wrap(productController.Show))
	products.Put("/{id}/update", "products.update", ctx.Wrap(productController.Update))
	products.Delete("/{id}/delete", "products.delete", ctx.Wrap(productController.Delete))
}
