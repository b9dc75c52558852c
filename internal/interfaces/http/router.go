package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ucoffee-api/internal/application/auth"
	"github.com/jhoicas/ucoffee-api/internal/application/usecase"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	ProductUC *usecase.ProductUseCase
	OrderUC   *usecase.OrderUseCase
	JWTSecret string
	// AdminEnforced protege las rutas de administración con JWT + rol admin.
	// En false esas rutas quedan abiertas.
	AdminEnforced bool
	Revocation    RevocationChecker
	ServiceName   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")
	admin := adminGuard(deps)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", AuthMiddleware(deps.JWTSecret, deps.Revocation), authHandler.Logout)

	// Users (admin)
	userHandler := NewUserHandler(deps.UserUC)
	api.Get("/users", append(admin, userHandler.List)...)

	// Products: lectura pública, escritura admin
	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)
	api.Post("/products", append(admin, productHandler.Create)...)
	api.Put("/products/:id", append(admin, productHandler.Update)...)
	api.Delete("/products/:id", append(admin, productHandler.Delete)...)

	// Orders: alta pública (con sesión opcional), consulta admin
	orderHandler := NewOrderHandler(deps.OrderUC)
	api.Post("/orders", OptionalAuth(deps.JWTSecret, deps.Revocation), orderHandler.Create)
	api.Get("/orders", append(admin, orderHandler.List)...)
	api.Get("/orders/:id", append(admin, orderHandler.GetByID)...)
	api.Get("/orders/:id/receipt", append(admin, orderHandler.Receipt)...)
}

// adminGuard devuelve la cadena de middlewares para rutas de administración.
func adminGuard(deps RouterDeps) []fiber.Handler {
	if !deps.AdminEnforced {
		return nil
	}
	return []fiber.Handler{
		AuthMiddleware(deps.JWTSecret, deps.Revocation),
		RequireRole(entity.RoleAdmin),
	}
}
