package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/restaurant-menu/utils"
)

var Version = "dev"

func main() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: .env file not found or error loading: %v\n", err)
	}
	utils.InitLogger()

	serve := serveCmd()
	rootCmd := &cobra.Command{
		Use:     "restaurant-menu",
		Short:   "Restaurant menus with Google sign-in",
		Version: Version,
		RunE:    serve.RunE,
	}
	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		utils.ErrorLogger.Error(err)
		os.Exit(1)
	}
}
