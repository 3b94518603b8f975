package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/restaurant-menu/config"
	"github.com/yeremiapane/restaurant-menu/database"
	"github.com/yeremiapane/restaurant-menu/router"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web application",
		Long: `Run the web application.

The schema is created on start. Configuration comes from the environment
(or a .env file); SESSION_SECRET is required and the Google OAuth client
is read from GOOGLE_CLIENT_SECRETS (default client_secrets.json).

Examples:
  restaurant-menu serve
  restaurant-menu serve --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.ValidateServe(); err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			oauthCfg, err := cfg.OAuthConfig()
			if err != nil {
				return err
			}
			google := services.NewGoogleService(&services.GoogleConfig{
				OAuth:        oauthCfg,
				TokenInfoURL: cfg.TokenInfoURL,
				UserInfoURL:  cfg.UserInfoURL,
				RevokeURL:    cfg.RevokeURL,
			})
			if err := google.ValidateConfig(); err != nil {
				return fmt.Errorf("invalid google configuration: %w", err)
			}
			auth := services.NewAuthService(services.NewUserService(db), google, google.ClientID())

			if cfg.GinMode == gin.ReleaseMode {
				gin.SetMode(gin.ReleaseMode)
			}
			r := router.SetupRouter(cfg, db, auth)

			if addr == "" {
				addr = ":" + cfg.Port
			}
			utils.InfoLogger.Printf("Listening on %s", addr)
			return r.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default \":$PORT\")")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the users, restaurants and menu_items tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := setup()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			utils.InfoLogger.Println("Migration completed.")
			return nil
		},
	}
}

func setup() (config.App, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	if err := utils.SetLogLevel(cfg.LogLevel); err != nil {
		return cfg, nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, db, nil
}
