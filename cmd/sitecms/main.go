package main

import (
	"log"

	"github.com/MrSnakeDoc/sitecms/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ sitecms failed: %v", err)
	}
}
