package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/shulecoach/shule_api/services/handlers"
	"github.com/shulecoach/shule_api/shared"
)

// HttpService is the public API surface. It owns the fiber app, the route
// table and the central error handler; all domain logic lives in the
// services behind the handler interfaces.
type HttpService struct {
	context.DefaultService

	authSvc      *AuthService
	jwtSvc       *JWTService
	userSvc      *UserService
	studySvc     *StudyService
	quizSvc      *QuizService
	paymentSvc   *PaymentService
	rateLimitSvc *RateLimitService
	monSvc       *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.studySvc = svc.Service(STUDY_SVC).(*StudyService)
	svc.quizSvc = svc.Service(QUIZ_SVC).(*QuizService)
	svc.paymentSvc = svc.Service(PAYMENT_SVC).(*PaymentService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	app := fiber.New(fiber.Config{
		AppName:      "ShuleCoach API",
		JSONEncoder:  shared.SonicMarshal,
		JSONDecoder:  shared.SonicUnmarshal,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("CORS_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))
	app.Use(MonitoringMiddleware(svc.monSvc))
	app.Use(svc.rateLimitSvc.IPRateLimit())

	svc.registerRoutes(app)

	svc.server = app

	log.WithField("port", svc.port).Info("HTTP server starting")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc, svc.jwtSvc)
	userHandler := handlers.NewUserHandler(svc.userSvc)
	studyHandler := handlers.NewStudyHandler(svc.studySvc)
	quizHandler := handlers.NewQuizHandler(svc.quizSvc)
	paymentHandler := handlers.NewPaymentHandler(svc.paymentSvc)

	app.Get("/ping", svc.ping)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	auth := v1.Group("/auth")
	auth.Post("/register", svc.rateLimitSvc.RateLimit("register"), authHandler.Register)
	auth.Post("/login", svc.rateLimitSvc.RateLimit("login"), authHandler.Login)
	auth.Post("/refresh", svc.rateLimitSvc.RateLimit("refresh"), authHandler.RefreshToken)
	auth.Post("/forgot-password", svc.rateLimitSvc.RateLimit("forgot_password"), authHandler.ForgotPassword)
	auth.Post("/logout", svc.authSvc.RequiredAuth(), authHandler.Logout)
	auth.Get("/me", svc.authSvc.RequiredAuth(), authHandler.Me)

	users := v1.Group("/users", svc.authSvc.RequiredAuth())
	users.Get("/profile", userHandler.GetProfile)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Get("/progress", userHandler.GetProgress)
	users.Post("/increment-questions", userHandler.IncrementQuestions)
	users.Delete("/account", userHandler.DeactivateAccount)

	study := v1.Group("/study", svc.authSvc.RequiredAuth())
	study.Post("/session", studyHandler.CreateSession)
	study.Get("/sessions", studyHandler.ListSessions)
	study.Get("/sessions/:sessionId", studyHandler.GetSession)
	study.Put("/sessions/:sessionId", studyHandler.UpdateSession)
	study.Post("/sessions/:sessionId/questions", studyHandler.AddQuestion)
	study.Get("/stats", studyHandler.GetStats)

	quiz := v1.Group("/quiz", svc.authSvc.RequiredAuth())
	quiz.Post("/generate", svc.rateLimitSvc.RateLimit("quiz_generate"), quizHandler.Generate)
	quiz.Post("/submit", quizHandler.Submit)
	quiz.Get("/history", quizHandler.History)

	payments := v1.Group("/payments")
	payments.Post("/intasend", svc.authSvc.RequiredAuth(), svc.rateLimitSvc.RateLimit("payment"), paymentHandler.ProcessPayment)
	payments.Get("/history", svc.authSvc.RequiredAuth(), paymentHandler.History)
	// Gateway callback is unauthenticated; it carries its own reference
	payments.Post("/callback", paymentHandler.Callback)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, http.StatusNotFound, "Page not found", nil)
	})
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

// handleError renders AppErrors as their envelope and hides everything else
// behind a generic 500.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
	return shared.ResponseInternalError(c, err)
}
