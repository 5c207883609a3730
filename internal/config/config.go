// Package config loads process configuration from environment variables,
// with a best-effort .env file load first.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the server and the client tools read from
// the environment.
type Config struct {
	Port     int    `env:"PORT" envDefault:"5000"`
	DBDriver string `env:"DB_DRIVER" envDefault:"mongo"`

	// Document store settings (DB_DRIVER=mongo).
	MongoURI string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGODB_DB" envDefault:"contactdb"`

	// Relational store settings (DB_DRIVER=mysql).
	DBUser string `env:"DBUSER"`
	DBPwd  string `env:"DBPWD"`
	DBHost string `env:"DBHOST" envDefault:"localhost"`
	DBName string `env:"DBNAME" envDefault:"contacts"`

	// Base URL used by the client commands.
	ServerURL string `env:"CONTACTS_API_URL" envDefault:"http://localhost:5000"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`
}

// Load reads the configuration from the environment. A missing .env file
// is not an error; explicit environment variables win over file entries.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// MySQLDSN builds the data source name for the MySQL backend.
func (c Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", c.DBUser, c.DBPwd, c.DBHost, c.DBName)
}
