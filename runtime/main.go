package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/shulecoach/shule_api/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file found, using system environment")
	}

	ctx, err := context.NewCtx(
		&services.JWTService{},
		&services.DatabaseService{},
		&services.RedisService{},
		&services.EmailService{},
		&services.MonitoringService{},
		&services.RateLimitService{},
		&services.AuthService{},
		&services.UserService{},
		&services.StudyService{},
		&services.QuizService{},
		&services.PaymentService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
