package main

import (
	"errors"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries everything the process needs at startup. Values come from the
// environment (optionally a local .env file), with defaults for the
// development case.
type Config struct {
	Addr        string
	DatabaseURL string
	SecretKey   string

	ExamsDir    string
	KeysDir     string
	CVUploadDir string

	MailHost     string
	MailPort     int
	MailUseTLS   bool
	MailUsername string
	MailPassword string

	OpenAIKey string
}

func loadConfig() (Config, error) {
	// Load ./.env if present without overwriting variables already set.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("addr", ":8081")
	v.SetDefault("secret_key", "dev-key")
	v.SetDefault("exams_dir", "exams")
	v.SetDefault("keys_dir", "answer_keys")
	v.SetDefault("cv_upload_dir", filepath.Join("uploads", "cvs"))
	v.SetDefault("mail_host", "smtp.gmail.com")
	v.SetDefault("mail_port", 587)
	v.SetDefault("mail_use_tls", true)
	v.AutomaticEnv()

	cfg := Config{
		Addr:         v.GetString("addr"),
		DatabaseURL:  v.GetString("database_url"),
		SecretKey:    v.GetString("secret_key"),
		ExamsDir:     v.GetString("exams_dir"),
		KeysDir:      v.GetString("keys_dir"),
		CVUploadDir:  v.GetString("cv_upload_dir"),
		MailHost:     v.GetString("mail_host"),
		MailPort:     v.GetInt("mail_port"),
		MailUseTLS:   v.GetBool("mail_use_tls"),
		MailUsername: v.GetString("mail_username"),
		MailPassword: v.GetString("mail_password"),
		OpenAIKey:    v.GetString("openai_api_key"),
	}
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is not set; this app requires a Postgres DSN")
	}
	return cfg, nil
}
