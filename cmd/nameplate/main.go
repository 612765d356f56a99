package main

import (
	"log"

	"github.com/courierlabs/nameplate/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("nameplate failed to start: %v", err)
	}
}
