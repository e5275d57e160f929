package config

import (
	"errors"
	"strings"

	"github.com/pratham13103/OfferLetter-Verification/library/pg"
	"github.com/pratham13103/OfferLetter-Verification/library/yamlenv"
)

type Config struct {
	Postgres pg.PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig       `yaml:"kafka"`
	UserAPI  ApiConfig         `yaml:"userAPI"`
	Template TemplateConfig    `yaml:"template"`
}

// KafkaConfig: пустой bootstrap отключает события.
type KafkaConfig struct {
	Bootstrap *yamlenv.Env[string] `yaml:"bootstrap"`
	Topic     *yamlenv.Env[string] `yaml:"topic"`
	GroupID   *yamlenv.Env[string] `yaml:"group_id"`
	Source    *yamlenv.Env[string] `yaml:"source"`
}

type ApiConfig struct {
	Port          *yamlenv.Env[int]    `yaml:"port"`
	AllowedOrigin *yamlenv.Env[string] `yaml:"allowed_origin"`
}

type TemplateConfig struct {
	// Path: пустое значение означает встроенный шаблон.
	Path      *yamlenv.Env[string] `yaml:"path"`
	OutputDir *yamlenv.Env[string] `yaml:"output_dir"`
}

var ErrPostgresConnRequired = errors.New("postgres.conn is required")

// Validate fills defaults for optional fields and checks required ones.
func (c *Config) Validate() error {
	if c.Postgres.Conn == nil || strings.TrimSpace(c.Postgres.Conn.Value) == "" {
		return ErrPostgresConnRequired
	}

	if c.Postgres.MaxConns == nil {
		c.Postgres.MaxConns = yamlenv.New[int32](10)
	}
	if c.Postgres.AutoMigrate == nil {
		c.Postgres.AutoMigrate = yamlenv.New(true)
	}

	if c.Kafka.Bootstrap == nil {
		c.Kafka.Bootstrap = yamlenv.New("")
	}
	if c.Kafka.Topic == nil || c.Kafka.Topic.Value == "" {
		c.Kafka.Topic = yamlenv.New("offer-letters")
	}
	if c.Kafka.GroupID == nil || c.Kafka.GroupID.Value == "" {
		c.Kafka.GroupID = yamlenv.New("offer_letter_audit")
	}
	if c.Kafka.Source == nil || c.Kafka.Source.Value == "" {
		c.Kafka.Source = yamlenv.New("offer-letter-api")
	}

	if c.UserAPI.Port == nil || c.UserAPI.Port.Value == 0 {
		c.UserAPI.Port = yamlenv.New(8000)
	}
	if c.UserAPI.AllowedOrigin == nil || c.UserAPI.AllowedOrigin.Value == "" {
		c.UserAPI.AllowedOrigin = yamlenv.New("http://localhost:3000")
	}

	if c.Template.Path == nil {
		c.Template.Path = yamlenv.New("")
	}
	if c.Template.OutputDir == nil || c.Template.OutputDir.Value == "" {
		c.Template.OutputDir = yamlenv.New(".")
	}

	return nil
}

// KafkaEnabled reports whether a broker is configured.
func (c *Config) KafkaEnabled() bool {
	return strings.TrimSpace(c.Kafka.Bootstrap.Get()) != ""
}

// Brokers splits a comma-separated bootstrap list.
func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.Kafka.Bootstrap.Get(), ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}

	return out
}
