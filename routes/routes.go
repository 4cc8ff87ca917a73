package routes

import (
	"net/http"

	"foodhub/configs"
	"foodhub/controllers"
	"foodhub/entity"
	"foodhub/middlewares"
	"foodhub/pkg/cache"
	"foodhub/pkg/events"
	"foodhub/pkg/payment"
	"foodhub/repository"
	"foodhub/services"
	"foodhub/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps คือของที่ main สร้างไว้แล้วส่งเข้ามา
type Deps struct {
	DB      *gorm.DB
	Cfg     *configs.Config
	Log     *logrus.Logger
	Cache   *cache.Cache // nil = ไม่มี redis
	Gateway payment.Gateway
	Events  events.Publisher
	Hub     *ws.OrderHub
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.CORSMiddleware(d.Cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	db := d.DB

	// Repositories
	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	cuisineRepo := repository.NewCuisineRepository(db)
	dishRepo := repository.NewDishRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, d.Cfg.JWTSecret, d.Cfg.JWTTTL)
	restSvc := services.NewRestaurantService(db, restRepo, cuisineRepo, d.Cache, d.Log)
	dishSvc := services.NewDishService(dishRepo, restRepo, d.Cache, d.Log)
	cartSvc := services.NewCartService(cartRepo, dishRepo, d.Log)
	checkoutSvc := services.NewCheckoutService(db, orderRepo, cartRepo, reviewRepo, d.Gateway, d.Events,
		services.CheckoutConfig{Currency: d.Cfg.PaymentCurrency, BaseURL: d.Cfg.PublicBaseURL}, d.Log)
	orderSvc := services.NewOrderService(orderRepo)
	reviewSvc := services.NewReviewService(db, reviewRepo, restRepo, d.Log)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restSvc)
	dishCtrl := controllers.NewDishController(dishSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	webhookCtrl := controllers.NewWebhookController(d.Gateway, checkoutSvc, d.Log)
	orderCtrl := controllers.NewOrderController(orderSvc)
	reviewCtrl := controllers.NewReviewController(reviewSvc)

	secret := d.Cfg.JWTSecret
	auth := middlewares.AuthMiddleware(secret)
	staff := middlewares.AuthMiddleware(secret, entity.RoleStaff, entity.RoleSuperuser)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", auth, authCtrl.Me)
	}

	// Catalog (public)
	r.GET("/cuisines", restCtrl.Cuisines)
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Get)
	r.GET("/restaurants/:id/reviews", reviewCtrl.ListForRestaurant)
	r.GET("/dishes/:id", dishCtrl.Get)

	// Catalog (staff/superuser) เช็คเจ้าของร้านใน service
	s := r.Group("/", staff)
	{
		s.POST("/cuisines", restCtrl.CreateCuisine)
		s.POST("/restaurants", restCtrl.Create)
		s.PATCH("/restaurants/:id", restCtrl.Update)
		s.DELETE("/restaurants/:id", restCtrl.Delete)
		s.POST("/restaurants/:id/dishes", dishCtrl.Create)
		s.PATCH("/dishes/:id", dishCtrl.Update)
		s.DELETE("/dishes/:id", dishCtrl.Delete)
		s.GET("/staff/dashboard", restCtrl.Dashboard)
	}

	// User (ต้อง login)
	u := r.Group("/", auth)
	{
		u.GET("/cart", cartCtrl.Get)
		u.POST("/cart/dishes/:dishId", cartCtrl.Add)
		u.POST("/cart/items/:itemId/increment", cartCtrl.Increment)
		u.POST("/cart/items/:itemId/decrement", cartCtrl.Decrement)

		u.POST("/checkout", checkoutCtrl.Initiate)
		u.GET("/checkout/success", checkoutCtrl.Success)
		u.GET("/checkout/cancel", checkoutCtrl.Cancel)

		u.GET("/orders", orderCtrl.List)
		u.GET("/orders/:id", orderCtrl.Get)

		u.POST("/restaurants/:id/reviews", reviewCtrl.Submit)
		u.GET("/profile/reviews", reviewCtrl.Mine)
	}

	// Payment processor callback (ไม่มี JWT)
	r.POST("/webhooks/stripe", webhookCtrl.Stripe)

	// Realtime order status
	if d.Hub != nil {
		r.GET("/ws/orders", middlewares.WSAuthMiddleware(secret), d.Hub.HandleWebSocket)
	}
}
