package api

import (
	"context"
	"log"

	"github.com/SundayYogurt/placement_service/config"
	"github.com/SundayYogurt/placement_service/infra/queue"
	"github.com/SundayYogurt/placement_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/placement_service/internal/domain"
	"github.com/SundayYogurt/placement_service/internal/engine/scoring"
	"github.com/SundayYogurt/placement_service/internal/engine/similarity"
	"github.com/SundayYogurt/placement_service/internal/logger"
	"github.com/SundayYogurt/placement_service/internal/repository"
	"github.com/SundayYogurt/placement_service/internal/services"
	"github.com/SundayYogurt/placement_service/internal/skills"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.BaseURL,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- Logger ----------
	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260418

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.Student{},
		&domain.Drive{},
		&domain.Application{},
		&domain.AuditLog{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	if cfg.SeedDemo {
		seedDemoData(db)
	}

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUser,
		cfg.KafkaPass,
	)

	model, err := buildSimilarityModel(cfg)
	if err != nil {
		log.Fatalf("similarity model init error: %v", err)
	}
	zlog.Info("similarity model ready", zap.String("model", model.Name()))

	// ---------- Repositories ----------
	studentRepo := repository.NewStudentRepository(db)
	driveRepo := repository.NewDriveRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	auditSvc := services.NewAuditService(auditRepo, zlog)
	engine := scoring.NewEngine(model, zlog, scoring.WithMaxConcurrent(cfg.ScoringMaxConcurrent))
	placementSvc := services.NewPlacementService(
		studentRepo,
		driveRepo,
		appRepo,
		auditSvc,
		engine,
		skills.NewDictionaryExtractor(),
		kafkaProducer,
		zlog,
	)

	// ---------- Handlers ----------
	handlers.NewStudentHandler(placementSvc).SetupRoutes(app)
	handlers.NewDriveHandler(placementSvc).SetupRoutes(app)
	handlers.NewApplicationHandler(placementSvc).SetupRoutes(app)
	handlers.NewAuditHandler(auditSvc).SetupRoutes(app)
	handlers.NewAnalyticsHandler(placementSvc).SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

func buildSimilarityModel(cfg config.Config) (similarity.Model, error) {
	if cfg.SimilarityModel == "gemini" {
		return similarity.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	return similarity.Lexical{}, nil
}
