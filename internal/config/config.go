package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Backend struct {
	BaseURL string        `yaml:"BASE_URL" env:"BACKEND_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"TIMEOUT" env:"BACKEND_TIMEOUT" env-default:"15s"`
}

type Pricing struct {
	CurrencyCode string  `yaml:"CURRENCY_CODE" env:"CURRENCY_CODE" env-default:"AUD"`
	TaxRate      float64 `yaml:"TAX_RATE" env:"TAX_RATE" env-default:"0.10"`
}

// Promotion is one entry of the merchant-configured discount table consumed
// by the promotion engine. Value is a 0-1 fraction for the percentage kind
// and AmountMinor a minor-currency amount for the fixed_amount kind.
type Promotion struct {
	Code           string  `yaml:"code"`
	DiscountID     string  `yaml:"discount_id"`
	Kind           string  `yaml:"kind" env-default:"percentage"`
	Value          float64 `yaml:"value"`
	AmountMinor    int64   `yaml:"amount_minor"`
	MinAmountMinor int64   `yaml:"min_amount_minor"`
}

type RedisConnect struct {
	Enabled  bool   `yaml:"REDIS_ENABLED" env:"REDIS_ENABLED" env-default:"false"`
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Telemetry struct {
	Enabled      bool   `yaml:"OTEL_ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	OTLPEndpoint string `yaml:"OTLP_ENDPOINT" env:"OTLP_ENDPOINT" env-default:"localhost:4318"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Backend      Backend      `yaml:"backend"`
	Pricing      Pricing      `yaml:"pricing"`
	Promotions   []Promotion  `yaml:"promotions"`
	RedisConnect RedisConnect `yaml:"redis"`
	Telemetry    Telemetry    `yaml:"telemetry"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://:%s@%s:%s/%d", r.Password, r.Host, r.Port, r.DB)
}

func (r *RedisConnect) GetAddr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}
