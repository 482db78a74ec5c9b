package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/cmd"
	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/notify"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/generated/servers"
	"storefront/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	createDbIfNotExists(configs)
	gormDB := mustConnectDB(configs)

	rabbit, err := notify.NewRabbitmqClient(configs.RabbitMQURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rabbit.Close()
	for _, queue := range []string{configs.EmailQueue, configs.SMSQueue} {
		if err = rabbit.DeclareQueue(queue); err != nil {
			log.Fatalf("Failed to declare queue %s: %v", queue, err)
		}
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, rabbit, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}
	defer app.Close()

	jobManager := jobs.NewJobManager(
		app.CreateGetUnshippedOrdersQueryHandler(),
		app.CreateCreateShipmentCommandHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		PaymentGatewaySecret:   goDotEnvVariable("PAYMENT_GATEWAY_SECRET"),
		CarrierBaseURL:         goDotEnvVariable("CARRIER_BASE_URL"),
		CarrierAPIKey:          goDotEnvVariable("CARRIER_API_KEY"),
		DefaultCourierID:       goDotEnvVariable("DEFAULT_COURIER_ID"),
		TrackingURLBase:        goDotEnvVariable("TRACKING_URL_BASE"),
		RabbitMQURL:            goDotEnvVariable("RABBITMQ_URL"),
		EmailQueue:             goDotEnvVariable("EMAIL_QUEUE"),
		SMSQueue:               goDotEnvVariable("SMS_QUEUE"),
		OperatorEmail:          goDotEnvVariable("OPERATOR_EMAIL"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderChangedTopic: goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func createDbIfNotExists(configs cmd.Config) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBSslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", configs.DBName).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check database existence: %v", err)
	}

	if !exists {
		if _, err = db.Exec("CREATE DATABASE " + configs.DBName); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
	}
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/api/v1/openapi.json", func(c echo.Context) error {
		swagger, err := servers.GetSwagger()
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, swagger)
	})

	server := httpin.NewServer(
		app.CreateConfirmPaymentCommandHandler(),
		app.CreateCreateShipmentCommandHandler(),
		app.CreateGetTrackingQueryHandler(),
	)
	servers.RegisterHandlers(e, server)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		e.Logger.Info("Shutting down")
		_ = e.Close()
	}()

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
