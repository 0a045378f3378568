// @title Courtify API
// @version 1.0
// @description Arena discovery, owner facility management and player/owner accounts.
// @host localhost:5000
// @BasePath /
// @schemes http
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <JWT>

package api

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aka-Ayaan/courtify/config"
	"github.com/Aka-Ayaan/courtify/infra/database"
	"github.com/Aka-Ayaan/courtify/infra/queue"
	"github.com/Aka-Ayaan/courtify/internal/api/rest/handlers"
	"github.com/Aka-Ayaan/courtify/internal/dto"
	"github.com/Aka-Ayaan/courtify/internal/helper"
	"github.com/Aka-Ayaan/courtify/internal/interfaces"
	"github.com/Aka-Ayaan/courtify/internal/repository"
	"github.com/Aka-Ayaan/courtify/internal/services"
	"github.com/Aka-Ayaan/courtify/pkg/cloudinary"
	"github.com/Aka-Ayaan/courtify/pkg/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const assetsPrefix = "/assets"

// Deps are the collaborators NewApp wires into handlers. Producer may be nil.
type Deps struct {
	DB       *gorm.DB
	Mailer   interfaces.VerificationMailer
	Producer interfaces.ProducerHandler
	Uploader interfaces.Uploader
}

func StartServer(cfg config.Config) {
	// ---------- DB ----------
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------- Infra ----------
	mailer := services.NewMailService(cfg)

	var producer interfaces.ProducerHandler
	if cfg.KafkaBroker != "" {
		log.Infof("[KAFKA] broker=%q topic=%q", cfg.KafkaBroker, cfg.KafkaTopic)
		kafkaProducer := queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword)
		defer func() { _ = kafkaProducer.Close() }()
		producer = kafkaProducer

		consumer := queue.NewKafkaConsumer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			cfg.KafkaGroupID,
			cfg.KafkaUsername,
			cfg.KafkaPassword,
			handlers.NewMailHandler(mailer),
		)
		go consumer.Listen(ctx)
	} else {
		log.Info("[KAFKA] no broker configured, verification mails are sent inline")
	}

	uploader, err := newUploader(cfg)
	if err != nil {
		log.Fatalf("uploader init error: %v", err)
	}

	app := NewApp(cfg, Deps{
		DB:       db,
		Mailer:   mailer,
		Producer: producer,
		Uploader: uploader,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	// ---------- Listen ----------
	log.Infof("listening on %s", cfg.ServerPort)
	if err := app.Listen(cfg.ServerPort); err != nil {
		log.Fatal(err)
	}
}

// NewApp builds the fiber app with every route registered.
func NewApp(cfg config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "courtify",
		BodyLimit: 6 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	app.Static(assetsPrefix, cfg.AssetsDir)
	RegisterSwagger(app)

	authHelper := helper.SetupAuth(cfg.AccessSecret, cfg.AccessTTL())

	// ---------- Repositories ----------
	accountRepo := repository.NewAccountRepository(deps.DB)
	arenaRepo := repository.NewArenaRepository(deps.DB)
	courtRepo := repository.NewCourtRepository(deps.DB)

	// ---------- Service ----------
	authSvc := services.NewAuthService(accountRepo, deps.Mailer, deps.Producer, authHelper)
	catalogSvc := services.NewCatalogService(arenaRepo, courtRepo, accountRepo, deps.Uploader)

	// ---------- Handler ----------
	handlers.NewAuthHandler(authSvc, authHelper, cfg.FrontendURL).SetupRoutes(app)
	handlers.NewArenaHandler(catalogSvc, authHelper).SetupRoutes(app)
	handlers.NewUploadHandler(catalogSvc, authHelper).SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok"})
	})

	return app
}

func newUploader(cfg config.Config) (interfaces.Uploader, error) {
	if cfg.CloudinaryURL == "" {
		log.Infof("media stored under %s", cfg.AssetsDir)
		return storage.NewLocalUploader(cfg.AssetsDir, assetsPrefix), nil
	}

	cld, err := cloudinary.New(cfg.CloudinaryURL)
	if err != nil {
		return nil, err
	}
	log.Info("media stored on cloudinary")
	return cloudinary.NewCloudinaryUploader(cld), nil
}
