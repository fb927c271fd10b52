package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/drivia/drivia/internal/auth"
	authdomain "github.com/drivia/drivia/internal/auth/domain"
	"github.com/drivia/drivia/internal/auth/session"
	"github.com/drivia/drivia/internal/config"
	"github.com/drivia/drivia/internal/instructor"
	instructordomain "github.com/drivia/drivia/internal/instructor/domain"
	"github.com/drivia/drivia/internal/lesson"
	lessondomain "github.com/drivia/drivia/internal/lesson/domain"
	"github.com/drivia/drivia/internal/notification"
	notificationdomain "github.com/drivia/drivia/internal/notification/domain"
	"github.com/drivia/drivia/internal/observability"
	obsmiddleware "github.com/drivia/drivia/internal/observability/logger"
	obsmetrics "github.com/drivia/drivia/internal/observability/metrics"
	"github.com/drivia/drivia/internal/organization"
	organizationdomain "github.com/drivia/drivia/internal/organization/domain"
	"github.com/drivia/drivia/internal/payment"
	"github.com/drivia/drivia/internal/providers/email"
	"github.com/drivia/drivia/internal/registration"
	registrationdomain "github.com/drivia/drivia/internal/registration/domain"
	"github.com/drivia/drivia/internal/student"
	studentdomain "github.com/drivia/drivia/internal/student/domain"
	"github.com/drivia/drivia/internal/vehicle"
	vehicledomain "github.com/drivia/drivia/internal/vehicle/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	auth.Module,
	organization.Module,
	payment.Module,
	email.Module,
	registration.Module,
	student.Module,
	instructor.Module,
	vehicle.Module,
	lesson.Module,
	notification.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
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
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	sessions        *session.Manager
	authsvc         authdomain.Service
	organizationSvc organizationdomain.Service
	registrationSvc registrationdomain.Service
	studentSvc      studentdomain.Service
	instructorSvc   instructordomain.Service
	vehicleSvc      vehicledomain.Service
	lessonSvc       lessondomain.Service
	notificationSvc notificationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	Sessions        *session.Manager
	Authsvc         authdomain.Service
	OrganizationSvc organizationdomain.Service
	RegistrationSvc registrationdomain.Service
	StudentSvc      studentdomain.Service
	InstructorSvc   instructordomain.Service
	VehicleSvc      vehicledomain.Service
	LessonSvc       lessondomain.Service
	NotificationSvc notificationdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		sessions:        p.Sessions,
		authsvc:         p.Authsvc,
		organizationSvc: p.OrganizationSvc,
		registrationSvc: p.RegistrationSvc,
		studentSvc:      p.StudentSvc,
		instructorSvc:   p.InstructorSvc,
		vehicleSvc:      p.VehicleSvc,
		lessonSvc:       p.LessonSvc,
		notificationSvc: p.NotificationSvc,
	}

	svc.registerRegistrationRoutes()
	svc.registerAuthRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRegistrationRoutes() {
	api := s.engine.Group("/api/registration")

	api.GET("/config", s.RegistrationConfig)
	api.POST("/verify", s.VerifyRegistration)
	api.POST("/checkout-session", s.StartRegistrationCheckout)
	api.POST("/payment-intent", s.CreateRegistrationPaymentIntent)
	api.POST("/complete", s.CompleteRegistration)
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")

	admin.Use(s.AuthRequired())
	admin.Use(s.OrgContext())

	admin.GET("/organization", s.GetOrganization)

	// -------- Students --------
	admin.GET("/students", s.ListStudents)
	admin.POST("/students", s.CreateStudent)
	admin.GET("/students/:id", s.GetStudentByID)
	admin.PATCH("/students/:id", s.UpdateStudent)
	admin.DELETE("/students/:id", s.DeleteStudent)

	// -------- Instructors --------
	admin.GET("/instructors", s.ListInstructors)
	admin.POST("/instructors", s.CreateInstructor)
	admin.GET("/instructors/:id", s.GetInstructorByID)
	admin.PATCH("/instructors/:id", s.UpdateInstructor)
	admin.DELETE("/instructors/:id", s.DeleteInstructor)

	// -------- Vehicles --------
	admin.GET("/vehicles", s.ListVehicles)
	admin.POST("/vehicles", s.CreateVehicle)
	admin.GET("/vehicles/:id", s.GetVehicleByID)
	admin.PATCH("/vehicles/:id", s.UpdateVehicle)
	admin.DELETE("/vehicles/:id", s.DeleteVehicle)

	// -------- Lessons --------
	admin.GET("/lessons", s.ListLessons)
	admin.POST("/lessons", s.CreateLesson)
	admin.GET("/lessons/:id", s.GetLessonByID)
	admin.PATCH("/lessons/:id", s.UpdateLesson)
	admin.POST("/lessons/:id/cancel", s.CancelLesson)

	// -------- Notifications --------
	admin.GET("/notifications", s.ListNotifications)
	admin.GET("/notifications/unread-count", s.UnreadNotificationCount)
	admin.POST("/notifications/:id/read", s.MarkNotificationRead)
	admin.POST("/notifications/read-all", s.MarkAllNotificationsRead)
}
