package main

import (
	"github.com/joho/godotenv"

	"github.com/inkwell/internal/config"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/handler"
	"github.com/inkwell/internal/logger"
	"github.com/inkwell/internal/router"
)

func main() {
	// 本地开发允许从 .env 读取配置，文件不存在时忽略
	_ = godotenv.Load()

	log := logger.New()
	cfg := config.Load()

	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	api := handler.NewAPI(gdb, cfg, log)
	r := router.Setup(api, cfg, log)

	log.Info().Str("addr", cfg.ListenAddr).Msg("starting server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}
