package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/seatcounter/internal/config"
	"github.com/smallbiznis/seatcounter/internal/queue"
	tabledomain "github.com/smallbiznis/seatcounter/internal/table/domain"
	visitdomain "github.com/smallbiznis/seatcounter/internal/visit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
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
	engine   *gin.Engine
	cfg      config.Config
	log      *zap.Logger
	tableSvc tabledomain.Service
	visitSvc visitdomain.Service
	queue    *queue.Queue
}

type ServerParams struct {
	fx.In

	Gin      *gin.Engine
	Cfg      config.Config
	Log      *zap.Logger
	TableSvc tabledomain.Service
	VisitSvc visitdomain.Service
	Queue    *queue.Queue
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:   p.Gin,
		cfg:      p.Cfg,
		log:      p.Log.Named("http.server"),
		tableSvc: p.TableSvc,
		visitSvc: p.VisitSvc,
		queue:    p.Queue,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Tables --------
	api.GET("/tables", s.ListTables)
	api.POST("/tables", s.CreateTable)
	api.GET("/tables/:id", s.GetTableByID)

	// -------- Visits --------
	api.GET("/tables/:id/session", s.GetTableSession)
	api.POST("/tables/:id/enter", s.Enter)
	api.POST("/tables/:id/leave", s.Leave)
	api.POST("/tables/:id/undo", s.Undo)
	api.POST("/tables/:id/checkout", s.Checkout)
}
