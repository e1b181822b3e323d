package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	AMQP struct {
		URL      string `yaml:"url"`
		Exchange string `yaml:"exchange"`
	} `yaml:"amqp"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Email      EmailConfig `yaml:"email"`
	Escalation struct {
		Mailbox string `yaml:"mailbox"`
	} `yaml:"escalation"`
	Milestones struct {
		CriticalKeys []string `yaml:"critical_keys"`
	} `yaml:"milestones"`
	Reports struct {
		FontPath string `yaml:"font_path"`
	} `yaml:"reports"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads the yaml file at path, applies DEALDESK_* environment overrides
// and fills defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.overrideFromEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) overrideFromEnv() error {
	if v := os.Getenv("DEALDESK_DB_URL"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("DEALDESK_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("DEALDESK_AMQP_URL"); v != "" {
		c.AMQP.URL = v
	}
	if v := os.Getenv("DEALDESK_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("DEALDESK_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DEALDESK_SERVER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.AMQP.Exchange == "" {
		c.AMQP.Exchange = "deals"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
