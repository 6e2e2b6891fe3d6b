package main

import (
	"fmt"
	"os"

	"github.com/YouSangSon/movie-catalog-service/internal/app"
	"github.com/YouSangSon/movie-catalog-service/internal/config"
)

// @title Movies service API
// @version 1.0
// @description Service that aggregates movie info and reviews from the movieinfo and review services

// @host localhost:8082
// @BasePath /v1

func main() {
	if err := app.Run(config.RoleMovies, "movies"); err != nil {
		fmt.Fprintf(os.Stderr, "movies-service: %v\n", err)
		os.Exit(1)
	}
}
