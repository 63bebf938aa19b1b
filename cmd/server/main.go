package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/niri-portal/backend/audit"
	"github.com/niri-portal/backend/conf"
	"github.com/niri-portal/backend/http"
	"github.com/niri-portal/backend/notif"
	submhttp "github.com/niri-portal/backend/subm/http"
	"github.com/niri-portal/backend/subm/submrepo"
	"github.com/niri-portal/backend/subm/submsrvc"
	"github.com/niri-portal/backend/user"
	userhttp "github.com/niri-portal/backend/user/http"
)

func main() {
	// .env is optional outside local dev
	_ = godotenv.Load()

	cfg, err := conf.Load(os.Getenv("NIRI_CONFIG_FILE"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AwsRegion),
	)
	if err != nil {
		slog.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	ddbClient := dynamodb.NewFromConfig(awsCfg)

	auditStore := audit.NewDdbStore(ddbClient, cfg.AuditTableName)
	submStore := submrepo.NewDdbRepo(ddbClient, cfg.SubmTableName, auditStore)
	userRepo := user.NewDdbUserRepo(ddbClient, cfg.UserTableName)

	var emitter notif.Emitter
	if cfg.NotifSqsUrl != "" {
		emitter = notif.NewSqsEmitter(sqs.NewFromConfig(awsCfg), cfg.NotifSqsUrl)
	} else {
		slog.Warn("NOTIF_SQS_URL not set, transition notifications stay in-process")
		emitter = notif.NewChanEmitter(1000)
	}

	submSrvc := submsrvc.NewSubmSrvc(submStore, auditStore, emitter)
	userSrvc := user.NewUserSrvc(userRepo)

	jwtKey := []byte(cfg.JwtKey)
	submHandler := submhttp.NewSubmHttpHandler(submSrvc, userSrvc)
	userHandler := userhttp.NewUserHttpHandler(userSrvc, jwtKey)

	httpServer := http.NewHttpServer(submHandler, userHandler, jwtKey)

	log.Printf("Starting server on %s", cfg.ListenAddr)
	err = httpServer.Start(cfg.ListenAddr)
	log.Printf("Server stopped with error: %v", err)
}
