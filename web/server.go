package web

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/totok22/quicksales-backend/store"
	"github.com/totok22/quicksales-backend/web/handlers"
)

// Server represents the web server
type Server struct {
	app *fiber.App
}

// NewServer creates a new Fiber server around an injected store.
func NewServer(st *store.Store) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("ERROR [%s %s]: %v", c.Method(), c.Path(), err)

			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))

	setupRoutes(app, handlers.New(st))

	return &Server{app: app}
}

// Start starts the server
func (s *Server) Start(port string) error {
	log.Printf("Server starting on http://localhost:%s", port)
	return s.app.Listen(":" + port)
}

// Shutdown gracefully stops the server, draining in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api")

	// Debug endpoint for SQL logs
	api.Get("/debug/sql", h.GetSQLLogs)
	api.Delete("/debug/sql", h.ClearSQLLogs)

	// Orders
	orders := api.Group("/orders")
	orders.Get("/", h.OrderList)
	orders.Post("/", h.OrderSave)
	orders.Get("/:id", h.OrderView)
	orders.Get("/:id/items", h.OrderItems)
	orders.Delete("/:id", h.OrderDelete)

	// Customers (specific routes before ":id")
	customers := api.Group("/customers")
	customers.Get("/", h.CustomerList)
	customers.Get("/search", h.CustomerSearch)
	customers.Post("/", h.CustomerSave)
	customers.Post("/merge", h.CustomerMerge)
	customers.Post("/batch-delete", h.CustomerBatchDelete)
	customers.Get("/:id", h.CustomerView)
	customers.Delete("/:id", h.CustomerDelete)

	// Products
	products := api.Group("/products")
	products.Get("/", h.ProductList)
	products.Get("/search", h.ProductSearch)
	products.Get("/pinyin", h.ProductPinyinPreview)
	products.Post("/", h.ProductSave)
	products.Post("/batch-delete", h.ProductBatchDelete)
	products.Post("/update-pinyin", h.ProductUpdatePinyin)
	products.Get("/:id", h.ProductView)
	products.Put("/:id/price", h.ProductUpdatePrice)
	products.Delete("/:id", h.ProductDelete)

	// Categories
	categories := api.Group("/categories")
	categories.Get("/", h.CategoryList)
	categories.Post("/", h.CategorySave)
	categories.Post("/batch", h.CategorySaveBatch)
	categories.Get("/:id/products", h.CategoryProducts)
	categories.Get("/:id", h.CategoryView)
	categories.Delete("/:id", h.CategoryDelete)

	// Remark and unit presets
	remarks := api.Group("/remark-presets")
	remarks.Get("/", h.RemarkPresetList)
	remarks.Post("/", h.RemarkPresetSave)
	remarks.Post("/:id/use", h.RemarkPresetUse)
	remarks.Delete("/:id", h.RemarkPresetDelete)

	units := api.Group("/unit-presets")
	units.Get("/", h.UnitPresetList)
	units.Post("/", h.UnitPresetSave)
	units.Post("/:id/use", h.UnitPresetUse)
	units.Delete("/:id", h.UnitPresetDelete)

	// Templates
	templates := api.Group("/templates")
	templates.Get("/", h.TemplateList)
	templates.Post("/", h.TemplateSave)
	templates.Post("/normalize-filenames", h.TemplateNormalizeFilenames)
	templates.Get("/:id", h.TemplateView)
	templates.Delete("/:id", h.TemplateDelete)

	// Settings
	api.Get("/settings", h.SettingsGet)
	api.Put("/settings", h.SettingsSave)
}
