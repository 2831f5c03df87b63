package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/suzannah24/title-aggregator/internal/aggregator"
	"github.com/suzannah24/title-aggregator/internal/config"
	"github.com/suzannah24/title-aggregator/internal/handler"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	agg, err := aggregator.FromConfig(cfg)
	if err != nil {
		log.Fatalf("error building aggregator: %v", err)
	}

	articleHandler := handler.NewArticleHandler(agg)

	r := gin.Default()
	r.SetHTMLTemplate(handler.Templates())

	slog.Info("AllowOrigins URL:", "urls", cfg.AllowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/", articleHandler.GetIndex)
	r.GET("/articles", articleHandler.GetArticles)
	r.GET("/health", articleHandler.GetHealth)

	slog.Info("starting server", "addr", cfg.Addr(), "site", cfg.SiteURL, "cutoff", cfg.Cutoff.Format("2006-01-02"))

	err = r.Run(cfg.Addr())
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
