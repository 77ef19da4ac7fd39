package config

import (
	"os"
	"time"
)

type Config struct {
	ProjectID        string
	Region           string
	LogLevel         string
	GatewayURL       string
	GatewayModel     string
	GatewayAPIKey    string
	GatewayKeySecret string
	ResendAPIKey     string
	ResendKeySecret  string
	NewsAPIKey       string
	NewsKeySecret    string
	KMSKeyName       string
	OTPFromAddress   string
	OTPTTL           time.Duration
}

func New() *Config {
	return &Config{
		ProjectID:        os.Getenv("PROJECTID"),
		Region:           os.Getenv("REGION"),
		LogLevel:         os.Getenv("LOGLEVEL"),
		GatewayURL:       getEnvDefault("GATEWAYURL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		GatewayModel:     getEnvDefault("GATEWAYMODEL", "google/gemini-2.5-flash"),
		GatewayAPIKey:    os.Getenv("GATEWAYAPIKEY"),
		GatewayKeySecret: os.Getenv("GATEWAYKEYSECRET"),
		ResendAPIKey:     os.Getenv("RESENDAPIKEY"),
		ResendKeySecret:  os.Getenv("RESENDKEYSECRET"),
		NewsAPIKey:       os.Getenv("NEWSAPIKEY"),
		NewsKeySecret:    os.Getenv("NEWSKEYSECRET"),
		KMSKeyName:       os.Getenv("KMSKEYNAME"),
		OTPFromAddress:   getEnvDefault("OTPFROMADDRESS", "Liqueno <onboarding@resend.dev>"),
		OTPTTL:           getDurationDefault("OTPTTL", 10*time.Minute),
	}
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
