package main

import (
	"os"

	"github.com/ozanveral/movie-club-api/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
