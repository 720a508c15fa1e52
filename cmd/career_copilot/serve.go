package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/career-copilot/internal/config"
	"github.com/jonathan/career-copilot/internal/logger"
	"github.com/jonathan/career-copilot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start the HTTP server that serves the upload form, runs analyses, and exposes the generation endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().String("data-dir", config.DefaultDataDir, "Directory for sessions and feedback")
	serveCmd.Flags().String("db-url", "", "PostgreSQL connection URL for the session store (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().Duration("session-ttl", config.DefaultSessionTTL, "Session lifetime")
	serveCmd.Flags().Bool("log-json", false, "Emit JSON logs")
	serveCmd.Flags().Bool("debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

// loadServeConfig merges flags over environment variables.
func loadServeConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()

	for flagName, key := range map[string]string{
		"port":        "port",
		"data-dir":    "data_dir",
		"db-url":      "database_url",
		"session-ttl": "session_ttl",
		"log-json":    "log_json",
		"debug":       "debug",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flagName)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flagName, err)
		}
	}

	for key, envVar := range map[string]string{
		"port":             "PORT",
		"data_dir":         "DATA_DIR",
		"database_url":     "DATABASE_URL",
		"session_ttl":      "SESSION_TTL",
		"groq_api_key":     "GROQ_API_KEY",
		"groq_model":       "GROQ_MODEL",
		"gemini_api_key":   "GEMINI_API_KEY",
		"gemini_model":     "GEMINI_MODEL",
		"llm_timeout":      "LLM_TIMEOUT",
		"jwt_secret":       "JWT_SECRET",
		"max_upload_bytes": "MAX_UPLOAD_BYTES",
		"log_json":         "LOG_JSON",
		"debug":            "DEBUG",
	} {
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", envVar, err)
		}
	}

	cfg := &config.Config{
		Port:           v.GetInt("port"),
		DataDir:        v.GetString("data_dir"),
		DatabaseURL:    v.GetString("database_url"),
		SessionTTL:     v.GetDuration("session_ttl"),
		GroqAPIKey:     v.GetString("groq_api_key"),
		GroqModel:      v.GetString("groq_model"),
		GeminiAPIKey:   v.GetString("gemini_api_key"),
		GeminiModel:    v.GetString("gemini_model"),
		LLMTimeout:     v.GetDuration("llm_timeout"),
		JWTSecret:      v.GetString("jwt_secret"),
		MaxUploadBytes: v.GetInt64("max_upload_bytes"),
		LogJSON:        v.GetBool("log_json"),
		Debug:          v.GetBool("debug"),
	}
	cfg.Normalize()
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	srv, err := server.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.Bool("offline", cfg.Offline()),
		zap.Bool("postgres", cfg.DatabaseURL != ""),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.Duration("llm_timeout", cfg.LLMTimeout),
	)
	return srv.Start()
}
