package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-portal/internal/gate"
	"github.com/jwalitptl/clinic-portal/internal/handler"
	"github.com/jwalitptl/clinic-portal/internal/middleware"
)

// Handler registers a screen group's routes.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type RouterConfig struct {
	RateLimit     rate.Limit
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

// Router wires the portal's three route trees behind the gate: the
// login surface, the admin screens and the doctor screens. Exactly one
// tree is reachable per request.
type Router struct {
	engine  *gin.Engine
	gateMW  *middleware.GateMiddleware
	authH   Handler
	adminH  Handler
	doctorH Handler
	h       *handler.Handler
	metrics *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(
	gateMW *middleware.GateMiddleware,
	authH Handler,
	adminH Handler,
	doctorH Handler,
	h *handler.Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:  engine,
		gateMW:  gateMW,
		authH:   authH,
		adminH:  adminH,
		doctorH: doctorH,
		h:       h,
		metrics: initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		r.metricsMiddleware(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.setupHealthCheck(r.engine.Group("/health"))

	// Login surface plus the shared chrome's logout and session probe.
	// The login view redirects itself away when a session is active.
	r.authH.RegisterRoutes(r.engine.Group(""))

	admin := r.engine.Group("/admin", r.gateMW.Require(gate.AdminSession))
	r.adminH.RegisterRoutes(admin)

	doctor := r.engine.Group("/doctor", r.gateMW.Require(gate.DoctorSession))
	r.doctorH.RegisterRoutes(doctor)

	r.engine.NoRoute(r.gateMW.RedirectUnmatched())
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	rg.GET("/live", r.h.LivenessCheck)
	rg.GET("/ready", r.h.ReadinessCheck)
	rg.GET("/metrics", r.h.MetricsHandler)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "portal"
	}
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
		}, []string{"method", "path", "status"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
