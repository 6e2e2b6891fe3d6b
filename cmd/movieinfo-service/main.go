package main

import (
	"fmt"
	"os"

	"github.com/YouSangSon/movie-catalog-service/internal/app"
	"github.com/YouSangSon/movie-catalog-service/internal/config"
)

// @title Movie info service API
// @version 1.0
// @description Service that manages movie metadata (name, year, cast, release date)

// @host localhost:8080
// @BasePath /v1

func main() {
	if err := app.Run(config.RoleMovieInfo, "movieinfo"); err != nil {
		fmt.Fprintf(os.Stderr, "movieinfo-service: %v\n", err)
		os.Exit(1)
	}
}
