package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	AppConfig struct {
		Name        string `mapstructure:"name"`
		Version     string `mapstructure:"version"`
		Port        int    `mapstructure:"port"`
		Environment string `mapstructure:"environment"`
		PathPrefix  string `mapstructure:"path_prefix"` // Optional, can be used to set a base path for the application
	}

	LoggerConfig struct {
		Level       string `mapstructure:"level"`
		Format      string `mapstructure:"format"`
		FilePath    string `mapstructure:"filepath"`
		MaxSize     int    `mapstructure:"max_size"`
		MaxAge      int    `mapstructure:"max_age"`
		MaxBackups  int    `mapstructure:"max_backups"`
		Compress    bool   `mapstructure:"compress"`
		LocalTime   bool   `mapstructure:"localTime"`
		Environment string
	}

	// JWTConfig holds the process-wide signing secret and token lifetime.
	// The secret is read once at startup and never rotated at runtime.
	JWTConfig struct {
		Secret string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	}

	PostgresConfig struct {
		Host              string `mapstructure:"host"`
		Port              int    `mapstructure:"port"`
		WriteHost         string `mapstructure:"write_host"`
		WritePort         int    `mapstructure:"write_port"`
		ReadHost          string `mapstructure:"read_host"`
		ReadPort          int    `mapstructure:"read_port"`
		Username          string `mapstructure:"username"`
		Password          string `mapstructure:"password"`
		Database          string `mapstructure:"database"`
		SSLMode           string `mapstructure:"sslmode"`
		ConnectTimeout    int    `mapstructure:"connect_timeout"`
		MaxConns          int32  `mapstructure:"max_conns"`
		MinConns          int32  `mapstructure:"min_conns"`
		ConnMaxLifetime   int    `mapstructure:"conn_max_lifetime"`
		ConnMaxIdleTime   int    `mapstructure:"conn_max_idle_time"`
		HealthCheckPeriod int    `mapstructure:"health_check_period"`
	}

	MongoConfig struct {
		URI            string `mapstructure:"uri"`
		Database       string `mapstructure:"database"`
		AuthSource     string `mapstructure:"authSource"`
		Username       string `mapstructure:"username"`
		Password       string `mapstructure:"password"`
		ConnectTimeout int    `mapstructure:"connect_timeout"`
		MaxPoolSize    uint64 `mapstructure:"max_pool_size"`
		MinPoolSize    uint64 `mapstructure:"min_pool_size"`
	}

	// DatabaseConfig selects the user-store backend. Type is "postgres" or "mongodb".
	DatabaseConfig struct {
		Type           string         `mapstructure:"type"`
		PostgresConfig PostgresConfig `mapstructure:"postgres"`
		MongoConfig    MongoConfig    `mapstructure:"mongo"`
	}

	CORSConfig struct {
		Enabled          bool     `mapstructure:"enabled"`
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	}

	MetricsConfig struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	}
)

type Env struct {
	AppConfig      AppConfig      `mapstructure:"app"`
	LoggerConfig   LoggerConfig   `mapstructure:"logging"`
	JWTConfig      JWTConfig      `mapstructure:"jwt"`
	DatabaseConfig DatabaseConfig `mapstructure:"database"`
	CORSConfig     CORSConfig     `mapstructure:"cors"`
	MetricsConfig  MetricsConfig  `mapstructure:"metrics"`
}

var env Env
var envLoaded bool

func loadEnv() Env {
	// Set up viper to read the config.yaml file
	viper.SetConfigName("config")   // Config file name without extension
	viper.SetConfigType("yaml")     // Config file type
	viper.AddConfigPath("./config") // Look for the config file in the current directory

	/*
	   AutomaticEnv will check for an environment variable any time a viper.Get request is made.
	   It will apply the following rules.
	       It will check for an environment variable with a name matching the key uppercased and prefixed with the EnvPrefix if set.
	*/
	viper.AutomaticEnv()
	viper.SetEnvPrefix("env") // will be uppercased automatically
	viper.SetEnvKeyReplacer(
		strings.NewReplacer(".", "_"),
	) // this is useful e.g. want to use . in Get() calls, but environmental variables to use _ delimiters (e.g. app.port -> APP_PORT)

	err := viper.ReadInConfig() // Read the config file
	if err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	// Secrets never live in the yaml file; they come from the environment.
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("database.postgres.password", "POSTGRES_PASSWORD")
	viper.BindEnv("database.mongo.password", "MONGO_PASSWORD")

	err = viper.Unmarshal(&env)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
	env.LoggerConfig.Environment = env.AppConfig.Environment // Set the logger environment from app config
	if env.AppConfig.Environment == "production" {
		env.LoggerConfig.Level = "info" // Default to info level in production
	}

	if env.JWTConfig.Secret == "" {
		log.Fatal("JWT signing secret is not configured (set JWT_SECRET)")
	}
	if env.JWTConfig.TTL <= 0 {
		env.JWTConfig.TTL = 24 * time.Hour
	}
	if env.DatabaseConfig.Type == "" {
		env.DatabaseConfig.Type = "postgres"
	}

	printStartupConfig(&env)

	return env
}

func GetEnv() *Env {
	if envLoaded {
		return &env
	}
	env = loadEnv()
	envLoaded = true
	return &env
}

func printStartupConfig(env *Env) {
	line := strings.Repeat("=", 40)
	fmt.Println(line)
	fmt.Println("🚀 Application Configuration")
	fmt.Println(line)

	fmt.Printf("%-15s: %s\n", "App Name", env.AppConfig.Name)
	fmt.Printf("%-15s: %s\n", "Version", env.AppConfig.Version)
	fmt.Printf("%-15s: %s\n", "Environment", env.AppConfig.Environment)
	fmt.Printf("%-15s: %d\n", "Port", env.AppConfig.Port)
	fmt.Printf("%-15s: %s\n", "Log Level", env.LoggerConfig.Level)
	fmt.Printf("%-15s: %s\n", "User Store", env.DatabaseConfig.Type)
	fmt.Printf("%-15s: %s\n", "Token TTL", env.JWTConfig.TTL)

	fmt.Println(line)
}
