package utils

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBSource   string `yaml:"DB_SOURCE"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	AppPort   string `yaml:"APP_PORT"`
	JWTSecret string `yaml:"JWT_SECRET"`
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`

	// Costing and reporting
	StockPolicy          string `yaml:"STOCK_POLICY"`
	CogsStrategy         string `yaml:"COGS_STRATEGY"`
	FlatCogsRate         string `yaml:"FLAT_COGS_RATE"`
	PrimeCostTarget      string `yaml:"PRIME_COST_TARGET"`
	PrimeCostWarningBand string `yaml:"PRIME_COST_WARNING_BAND"`

	// Messaging
	RabbitMQURL string `yaml:"RABBITMQ_URL"`

	// Mailing configuration
	SMTPHost           string `yaml:"SMTP_HOST"`
	SMTPPort           string `yaml:"SMTP_PORT"`
	SMTPSenderName     string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail      string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword   string `yaml:"SMTP_AUTH_PASSWORD"`
	LowStockAlertEmail string `yaml:"LOW_STOCK_ALERT_EMAIL"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var (
	config     Config
	configOnce sync.Once
)

// LoadConfig reads .env (optional) and config.yaml; environment variables win over yaml.
func LoadConfig() {
	configOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Error reading .env file: %s\n", err)
		}

		file, err := os.ReadFile(configPath())
		if err != nil {
			log.Printf("Error reading YAML file: %s\n", err)
		} else if err := yaml.Unmarshal(file, &config); err != nil {
			log.Printf("Error parsing YAML file: %s\n", err)
		}

		for key, field := range config.fields() {
			if v, ok := os.LookupEnv(key); ok {
				*field = v
			}
		}
	})
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"DB_DRIVER":               &c.DBDriver,
		"DB_SOURCE":               &c.DBSource,
		"DB_USER":                 &c.DBUser,
		"DB_NAME":                 &c.DBName,
		"DB_PASSWORD":             &c.DBPassword,
		"DB_PORT":                 &c.DBPort,
		"DB_HOST":                 &c.DBHost,
		"APP_PORT":                &c.AppPort,
		"JWT_SECRET":              &c.JWTSecret,
		"LOG_LEVEL":               &c.LogLevel,
		"LOG_FORMAT":              &c.LogFormat,
		"STOCK_POLICY":            &c.StockPolicy,
		"COGS_STRATEGY":           &c.CogsStrategy,
		"FLAT_COGS_RATE":          &c.FlatCogsRate,
		"PRIME_COST_TARGET":       &c.PrimeCostTarget,
		"PRIME_COST_WARNING_BAND": &c.PrimeCostWarningBand,
		"RABBITMQ_URL":            &c.RabbitMQURL,
		"SMTP_HOST":               &c.SMTPHost,
		"SMTP_PORT":               &c.SMTPPort,
		"SMTP_SENDER_NAME":        &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":         &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":      &c.SMTPAuthPassword,
		"LOW_STOCK_ALERT_EMAIL":   &c.LowStockAlertEmail,
		"AWS_S3_BUCKET":           &c.AWSS3Bucket,
		"AWS_S3_REGION":           &c.AWSS3Region,
		"AWS_ACCESS_KEY":          &c.AWSAccessKey,
		"AWS_SECRET_KEY":          &c.AWSSecretKey,
	}
}

func GetConfig(key string) string {
	if field, ok := config.fields()[key]; ok {
		return *field
	}
	return ""
}

// GetConfigOr returns fallback when key is unset or empty.
func GetConfigOr(key, fallback string) string {
	if v := GetConfig(key); v != "" {
		return v
	}
	return fallback
}
