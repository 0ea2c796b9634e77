package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"askmego/backend/internal/api/handler"
	"askmego/backend/internal/helpdesk"
	"askmego/backend/internal/identity"
	"askmego/backend/internal/livehub"
	"askmego/backend/internal/localization"
	"askmego/backend/internal/models"
	"askmego/backend/internal/session"
	"askmego/backend/internal/storage"
	"askmego/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "askmegodb"),
		envOr("DB_PORT", "5432"),
	)

	// TranslateError перетворює помилки драйвера на gorm.ErrDuplicatedKey тощо
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (Створення таблиць)
	err = db.AutoMigrate(
		&models.Project{},
		&models.Request{},
		&models.Message{},
		&models.Preference{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.Println("Starting AskMeGo Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET не встановлено!")
	}
	creds := session.EnvCredentials{
		Username: envOr("ADMIN_USERNAME", "admin"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	if creds.Password == "" {
		log.Fatal("ADMIN_PASSWORD не встановлено!")
	}

	// 2. Сервіси
	ids := identity.NewService(s)
	projects := helpdesk.NewProjectService(s)
	requests := helpdesk.NewRequestService(s, ids)
	sessions := session.NewManager(s, creds)

	loc, err := localization.NewLocalizer(envOr("LOCALES_DIR", "locales"))
	if err != nil {
		log.Fatalf("Failed to load locales: %v", err)
	}

	// Telegram-сповіщення для адміна (опційно)
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_ADMIN_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_ADMIN_CHAT_ID: %v", err)
		}
		notifier, err := telegram.NewNotifier(token, chatID)
		if err != nil {
			log.Fatalf("Не вдалося запустити Telegram-бота: %v", err)
		}
		requests.Notifier = notifier
		log.Println("Telegram admin notifications enabled.")
	}

	// 3. Live hub + Redis pub/sub fan-in
	hub := livehub.NewManager()
	go hub.Run()
	hub.StartPubSubListener(s.SubscribeThreadEvents())

	// 4. Налаштування Gin та роутингу
	r := gin.Default()
	h := handler.NewHandler(projects, requests, ids, sessions, loc, hub, []byte(jwtSecret))

	r.Use(h.IdentityMiddleware())

	// Публічні роути
	r.GET("/", h.Index)
	r.GET("/project/:id", h.ProjectDetail)
	r.POST("/project/:id/request", h.CreateRequest)
	r.POST("/request/:id/message", h.UserMessage)
	r.POST("/preferences", h.UpdatePreferences)
	r.GET("/ws/request/:id", h.ServeThreadSocket)

	// Вхід адміністратора
	r.GET("/admin/login", h.LoginPage)
	r.POST("/admin/login", h.Login)
	r.GET("/admin/logout", h.Logout)

	// Адмін-панель
	admin := r.Group("/admin", h.RequireAdmin())
	admin.GET("", h.Dashboard)
	admin.POST("/project/create", h.CreateProject)
	admin.POST("/project/:id/toggle_lock", h.ToggleProjectLock)
	admin.POST("/project/:id/edit", h.EditProject)
	admin.POST("/project/:id/delete", h.DeleteProject)
	admin.POST("/request/:id/update", h.UpdateRequest)
	admin.POST("/request/:id/delete", h.DeleteRequest)
	admin.POST("/request/:id/message", h.AdminMessage)

	// Запуск HTTP-сервера
	server := &http.Server{
		Addr:           envOr("SERVER_ADDR", ":8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
