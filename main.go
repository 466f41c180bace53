package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/api"
	"quiz_web/internal/models"
	"quiz_web/internal/repository"
	"quiz_web/internal/service"
	"quiz_web/internal/storage"
	"quiz_web/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// 自動遷移資料庫結構
	err = db.AutoMigrate(
		&models.QuizStatus{},
		&models.QuizSettings{},
		&models.Question{},
		&models.Option{},
		&models.SchoolClass{},
		&models.Student{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories
	repos := repository.NewRepositories(db)

	// 確保測驗狀態和設定的單例資料列存在
	if err := repos.Quiz.EnsureDefaults(); err != nil {
		log.Fatalf("Failed to seed quiz defaults: %v", err)
	}

	// 初始化 services
	services := service.NewServices(repos)

	// 定期向主持人推送在線學生人數
	services.WebSocketManager.StartHostInfoNotifier(3 * time.Second)

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services)

	// 啟動伺服器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
