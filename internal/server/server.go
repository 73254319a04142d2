package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/hamzazerouala/windevexpert/internal/auth/domain"
	checkoutdomain "github.com/hamzazerouala/windevexpert/internal/checkout/domain"
	"github.com/hamzazerouala/windevexpert/internal/config"
	coursedomain "github.com/hamzazerouala/windevexpert/internal/course/domain"
	enrollmentdomain "github.com/hamzazerouala/windevexpert/internal/enrollment/domain"
	obslogger "github.com/hamzazerouala/windevexpert/internal/observability/logger"
	obsmetrics "github.com/hamzazerouala/windevexpert/internal/observability/metrics"
	paymentdomain "github.com/hamzazerouala/windevexpert/internal/payment/domain"
	"github.com/hamzazerouala/windevexpert/internal/payment/signature"
	"github.com/hamzazerouala/windevexpert/internal/profile"
	"github.com/hamzazerouala/windevexpert/internal/ratelimit"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	db           *gorm.DB
	authsvc      authdomain.Service
	coursesvc    coursedomain.Service
	checkoutsvc  checkoutdomain.Service
	paymentsvc   paymentdomain.Service
	profilesvc   *profile.Service
	enrollments  enrollmentdomain.Repository
	verifier     *signature.Verifier
	loginLimiter *ratelimit.LoginLimiter
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	DB           *gorm.DB
	Authsvc      authdomain.Service
	Coursesvc    coursedomain.Service
	Checkoutsvc  checkoutdomain.Service
	Paymentsvc   paymentdomain.Service
	Profilesvc   *profile.Service
	Enrollments  enrollmentdomain.Repository
	Verifier     *signature.Verifier
	LoginLimiter *ratelimit.LoginLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("server"),
		db:           p.DB,
		authsvc:      p.Authsvc,
		coursesvc:    p.Coursesvc,
		checkoutsvc:  p.Checkoutsvc,
		paymentsvc:   p.Paymentsvc,
		profilesvc:   p.Profilesvc,
		enrollments:  p.Enrollments,
		verifier:     p.Verifier,
		loginLimiter: p.LoginLimiter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.POST("/auth/login", s.Login)
	api.GET("/me", s.AuthRequired(), s.Me)

	api.GET("/courses", s.ListCourses)
	api.GET("/courses/:id", s.GetCourse)
	api.POST("/courses/:id/purchase", s.AuthRequired(), s.PurchaseCourse)

	api.GET("/me/enrollments", s.AuthRequired(), s.ListMyEnrollments)
	api.PUT("/profile", s.AuthRequired(), s.UpdateProfile)

	// Signature verification replaces bearer auth on these routes; the
	// provider is the caller. Both paths serve the same handler for
	// compatibility with older provider configurations.
	api.POST("/stripe/webhook", s.HandleStripeWebhook)
	api.POST("/payments/webhook", s.HandleStripeWebhook)
}
