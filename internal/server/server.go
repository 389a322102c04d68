package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrimart/agrimart/internal/auth"
	authdomain "github.com/agrimart/agrimart/internal/auth/domain"
	"github.com/agrimart/agrimart/internal/auth/session"
	"github.com/agrimart/agrimart/internal/blog"
	blogdomain "github.com/agrimart/agrimart/internal/blog/domain"
	"github.com/agrimart/agrimart/internal/cart"
	cartdomain "github.com/agrimart/agrimart/internal/cart/domain"
	"github.com/agrimart/agrimart/internal/catalog"
	catalogdomain "github.com/agrimart/agrimart/internal/catalog/domain"
	"github.com/agrimart/agrimart/internal/config"
	"github.com/agrimart/agrimart/internal/diagnosis"
	diagnosisdomain "github.com/agrimart/agrimart/internal/diagnosis/domain"
	"github.com/agrimart/agrimart/internal/observability"
	obslogger "github.com/agrimart/agrimart/internal/observability/logger"
	obsmetrics "github.com/agrimart/agrimart/internal/observability/metrics"
	obstracing "github.com/agrimart/agrimart/internal/observability/tracing"
	"github.com/agrimart/agrimart/internal/order"
	orderdomain "github.com/agrimart/agrimart/internal/order/domain"
	"github.com/agrimart/agrimart/internal/payment"
	"github.com/agrimart/agrimart/internal/ratelimit"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	catalog.Module,
	cart.Module,
	order.Module,
	payment.Module,
	blog.Module,
	diagnosis.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	genID          *snowflake.Node
	authsvc        authdomain.Service
	sessions       *session.Manager
	catalogSvc     catalogdomain.Service
	cartSvc        cartdomain.Service
	orderSvc       orderdomain.Service
	blogSvc        blogdomain.Service
	diagnosisSvc   diagnosisdomain.Service
	analyzeLimiter *ratelimit.AnalyzeLimiter
	obsMetrics     *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	GenID          *snowflake.Node
	Authsvc        authdomain.Service
	Sessions       *session.Manager
	CatalogSvc     catalogdomain.Service
	CartSvc        cartdomain.Service
	OrderSvc       orderdomain.Service
	BlogSvc        blogdomain.Service
	DiagnosisSvc   diagnosisdomain.Service
	AnalyzeLimiter *ratelimit.AnalyzeLimiter `optional:"true"`
	ObsMetrics     *obsmetrics.Metrics       `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		genID:          p.GenID,
		authsvc:        p.Authsvc,
		sessions:       p.Sessions,
		catalogSvc:     p.CatalogSvc,
		cartSvc:        p.CartSvc,
		orderSvc:       p.OrderSvc,
		blogSvc:        p.BlogSvc,
		diagnosisSvc:   p.DiagnosisSvc,
		analyzeLimiter: p.AnalyzeLimiter,
		obsMetrics:     p.ObsMetrics,
	}

	svc.registerAuthRoutes()
	svc.registerBlogRoutes()
	svc.registerProductRoutes()
	svc.registerCartRoutes()
	svc.registerOrderRoutes()
	svc.registerDiagnosisRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	s.engine.POST("/register", s.Register)
	s.engine.POST("/login", s.Login)
	s.engine.POST("/logout", s.Logout)
	s.engine.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerBlogRoutes() {
	s.engine.GET("/blogs", s.ListBlogs)
	s.engine.POST("/blogs", s.AuthRequired(), s.CreateBlog)
	s.engine.PUT("/blogs/:id", s.AuthRequired(), s.UpdateBlog)
	s.engine.DELETE("/blogs/:id", s.AuthRequired(), s.DeleteBlog)
	s.engine.POST("/blogs/:id/like", s.AuthRequired(), s.LikeBlog)
	s.engine.POST("/blogs/:id/dislike", s.AuthRequired(), s.DislikeBlog)
	s.engine.POST("/blogs/:id/comment", s.AuthRequired(), s.AddComment)
	s.engine.GET("/blogs/:id/comments", s.ListComments)
}

func (s *Server) registerProductRoutes() {
	products := s.engine.Group("/products")

	products.GET("", s.ListProducts)
	products.GET("/:id", s.GetProduct)
	products.POST("/fertilizers", s.AuthRequired(), s.CreateFertilizer)
	products.POST("/pesticides", s.AuthRequired(), s.CreatePesticide)
	products.POST("/seeds", s.AuthRequired(), s.CreateSeed)
	products.POST("/equipment", s.AuthRequired(), s.CreateEquipment)
	products.PUT("/:id/stock", s.AuthRequired(), s.UpdateProductStock)
}

func (s *Server) registerCartRoutes() {
	cartGroup := s.engine.Group("/cart", s.AuthRequired())

	cartGroup.POST("/add", s.AddToCart)
	cartGroup.GET("/items", s.CartItems)
	cartGroup.PUT("/update", s.UpdateCartItem)
	cartGroup.DELETE("/remove/:productID", s.RemoveFromCart)
	cartGroup.DELETE("/clear", s.ClearCart)
	cartGroup.GET("/count", s.CartCount)
	cartGroup.GET("/total", s.CartTotal)
	cartGroup.POST("/checkout", s.CheckoutCart)
}

func (s *Server) registerOrderRoutes() {
	orders := s.engine.Group("/orders", s.AuthRequired())

	orders.POST("/create", s.CreateOrder)
	orders.GET("/my-orders", s.MyOrders)
	orders.GET("/:id", s.GetOrder)
	orders.PATCH("/:id/status", s.UpdateOrderStatus)
	orders.POST("/buynow", s.BuyNow)
	orders.POST("/create-razorpay-order", s.CreateRazorpayOrder)
	orders.POST("/verify-razorpay-payment", s.VerifyRazorpayPayment)
}

func (s *Server) registerDiagnosisRoutes() {
	s.engine.POST("/analyze", s.AnalyzeRateLimit(), s.Analyze)
}
