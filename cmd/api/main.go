package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"peoplelens/adapters/model"
	"peoplelens/adapters/tabular"
	"peoplelens/app"
	"peoplelens/internal/config"
	"peoplelens/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	reader := tabular.NewReader(tabular.Config{
		Path:      appConfig.Data.Path,
		SheetName: appConfig.Data.SheetName,
	})
	source := model.NewSource(appConfig.Model.Path)

	bundle, err := app.LoadBundle(context.Background(), reader, source)
	if err != nil {
		log.Fatalf("Failed to load startup artifacts: %v", err)
	}

	api := ui.NewAPIServer(bundle)
	log.Fatal(api.Start(":" + appConfig.Server.Port))
}
