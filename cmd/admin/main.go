package main

import (
	"os"

	"github.com/fsdevblog/groph-admin/internal/app"
	"github.com/fsdevblog/groph-admin/internal/config"
	"github.com/fsdevblog/groph-admin/internal/logger"
)

func main() {
	conf := config.MustLoadConfig()
	l, logCloser := logger.NewWithFile(os.Stdout, conf.LogFile)
	defer func() {
		_ = logCloser.Close()
	}()

	if err := app.New(conf, l).Run(); err != nil {
		l.WithError(err).Error("admin app stopped")
		_ = logCloser.Close()
		os.Exit(1)
	}
	l.Info("graceful shutdown")
}
