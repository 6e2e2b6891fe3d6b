package main

import (
	"fmt"
	"os"

	"github.com/YouSangSon/movie-catalog-service/internal/app"
	"github.com/YouSangSon/movie-catalog-service/internal/config"
)

// @title Review service API
// @version 1.0
// @description Service that manages movie reviews and ratings

// @host localhost:8081
// @BasePath /v1

func main() {
	if err := app.Run(config.RoleReview, "review"); err != nil {
		fmt.Fprintf(os.Stderr, "review-service: %v\n", err)
		os.Exit(1)
	}
}
