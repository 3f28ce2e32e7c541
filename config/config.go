package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	MongoURI string
	DBName   string

	JWTSecret        string
	PaymentSecretKey string

	RabbitMQ string

	MailgunDomain string
	MailgunAPIKey string
	MailSender    string

	CORSOrigins []string
}

func envOrDefaultString(env, def string) string {
	if val, ok := os.LookupEnv(env); ok && val != "" {
		return val
	}

	return def
}

// Load reads the optional .env files, then the process environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	c := &Config{
		Port:             envOrDefaultString("PORT", "5000"),
		MongoURI:         os.Getenv("MONGO_URI"),
		DBName:           envOrDefaultString("DB_NAME", "summerChamp"),
		JWTSecret:        os.Getenv("JWT_SECRET_ACCESS_TOKEN"),
		PaymentSecretKey: os.Getenv("PAYMENT_SECRET_KEY"),
		RabbitMQ:         os.Getenv("RABBITMQ_CONNSTRING"),
		MailgunDomain:    os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey:    os.Getenv("MAILGUN_API_KEY"),
		MailSender:       envOrDefaultString("MAIL_SENDER", "Summer Champ <no-reply@summerchamp.dev>"),
		CORSOrigins:      splitList(envOrDefaultString("CORS_ORIGINS", "*")),
	}

	if c.MongoURI == "" {
		user, pass := os.Getenv("DB_USER"), os.Getenv("DB_PASS")
		if user != "" && pass != "" {
			c.MongoURI = fmt.Sprintf("mongodb+srv://%s:%s@cluster0.ebwgrc3.mongodb.net/?retryWrites=true&w=majority", user, pass)
		} else {
			c.MongoURI = "mongodb://localhost:27017"
		}
	}

	if c.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET_ACCESS_TOKEN is required")
	}
	if c.PaymentSecretKey == "" {
		return nil, errors.New("PAYMENT_SECRET_KEY is required")
	}

	return c, nil
}

func (c *Config) MailEnabled() bool {
	return c.MailgunDomain != "" && c.MailgunAPIKey != ""
}

func (c *Config) EventsEnabled() bool {
	return c.RabbitMQ != ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
