package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/bankcore/payment-processor/config"
	"github.com/bankcore/payment-processor/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		logrus.Fatalf("Error reading config: %v", err)
	}

	application := &app.App{}
	application.Initialize(cfg)

	go application.Run()

	<-ctx.Done()
	application.Shutdown()
	logrus.Info("payment processor stopped")
}
