package main

import (
	stdLog "log"
	"time"

	"github.com/joho/godotenv"
	"github.com/motlib/library-service/app"
	"github.com/motlib/library-service/config"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env file loaded: ", err)
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal(err)
	}
}
