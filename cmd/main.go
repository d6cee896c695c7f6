package main

import (
	"os"

	"clinical-assistant/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	// "migrate" upgrades the schema (including legacy consultations tables) and exits
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := bootstrap.Migrate(); err != nil {
			logrus.Fatalf("Migration failed: %v", err)
		}
		logrus.Info("Migration complete")
		return
	}

	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	app.Run()
}
