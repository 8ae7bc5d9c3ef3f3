package config

import (
	"os"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type PaddleConfig struct {
	WebhookSecret string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
	AdminEmail   string
}

type Config struct {
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	SiteURL     string
	R2          R2Config
	Paddle      PaddleConfig
	Email       EmailConfig
}

func LoadConfig() *Config {
	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   os.Getenv("JWT_ISSUER"),
		SiteURL:     os.Getenv("SITE_URL"),
		R2: R2Config{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			Bucket:          os.Getenv("R2_BUCKET"),
			PublicURL:       os.Getenv("R2_PUBLIC_URL"),
		},
		Paddle: PaddleConfig{
			WebhookSecret: os.Getenv("PADDLE_WEBHOOK_SECRET"),
		},
		Email: EmailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			FromAddress:  os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:     os.Getenv("EMAIL_FROM_NAME"),
			AdminEmail:   os.Getenv("ADMIN_NOTIFICATION_EMAIL"),
		},
	}
}
