// Command app runs the sales achievement engine.
//
//go:generate swag init -g cmd/app/main.go -d ../../ -o ../../docs --parseInternal
package main

import (
	"os"

	_ "github.com/Eloquas/Eloverit-sub002/docs"
)

// @title Sales Achievements API
// @version 1.0
// @description Achievement unlocks, progression and leaderboards for sales activity.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
