package database

import (
	"context"
	"fmt"
	"time"

	"github.com/duccv/auth-service/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PostgresDB struct {
	config    *config.PostgresConfig
	readPool  *pgxpool.Pool
	writePool *pgxpool.Pool
	logger    *zap.Logger
}

func NewPostgresDB(config *config.PostgresConfig) *PostgresDB {
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 30
	}
	return &PostgresDB{
		config: config,
		logger: zap.L(),
	}
}

func (p *PostgresDB) Connect() error {
	p.logger.Info("Starting PostgreSQL connection",
		zap.String("host", p.config.Host),
		zap.Int("port", p.config.Port),
		zap.String("database", p.config.Database),
		zap.String("username", p.config.Username))

	ctx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(p.config.ConnectTimeout)*time.Second,
	)
	defer cancel()

	writeHost, writePort := p.writeHostPort()

	writePoolConfig, err := pgxpool.ParseConfig(p.BuildDSN(writeHost, writePort))
	if err != nil {
		return fmt.Errorf("failed to parse write pool config: %w", err)
	}
	p.configurePool(writePoolConfig)

	p.writePool, err = pgxpool.NewWithConfig(ctx, writePoolConfig)
	if err != nil {
		p.logger.Error("Failed to create write pool",
			zap.String("write_host", writeHost),
			zap.Int("write_port", writePort),
			zap.Error(err))
		return fmt.Errorf("failed to create write pool: %w", err)
	}

	readHost, readPort := p.readHostPort()

	readPoolConfig, err := pgxpool.ParseConfig(p.BuildDSN(readHost, readPort))
	if err != nil {
		p.writePool.Close()
		return fmt.Errorf("failed to parse read pool config: %w", err)
	}
	p.configurePool(readPoolConfig)

	p.readPool, err = pgxpool.NewWithConfig(ctx, readPoolConfig)
	if err != nil {
		p.logger.Error("Failed to create read pool",
			zap.String("read_host", readHost),
			zap.Int("read_port", readPort),
			zap.Error(err))
		p.writePool.Close()
		return fmt.Errorf("failed to create read pool: %w", err)
	}

	if err := p.writePool.Ping(ctx); err != nil {
		p.Close()
		return fmt.Errorf("failed to ping write pool: %w", err)
	}
	if err := p.readPool.Ping(ctx); err != nil {
		p.Close()
		return fmt.Errorf("failed to ping read pool: %w", err)
	}

	p.logger.Info("Successfully connected to PostgreSQL",
		zap.String("write_host", writeHost),
		zap.Int("write_port", writePort),
		zap.String("read_host", readHost),
		zap.Int("read_port", readPort))
	return nil
}

func (p *PostgresDB) writeHostPort() (string, int) {
	if p.config.WriteHost == "" {
		return p.config.Host, p.config.Port
	}
	return p.config.WriteHost, p.config.WritePort
}

func (p *PostgresDB) readHostPort() (string, int) {
	if p.config.ReadHost == "" {
		return p.config.Host, p.config.Port
	}
	return p.config.ReadHost, p.config.ReadPort
}

func (p *PostgresDB) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.writePool != nil {
		if err := p.writePool.Ping(ctx); err != nil {
			return fmt.Errorf("write pool ping failed: %w", err)
		}
	}

	if p.readPool != nil {
		if err := p.readPool.Ping(ctx); err != nil {
			return fmt.Errorf("read pool ping failed: %w", err)
		}
	}

	return nil
}

func (p *PostgresDB) GetReadConnection() any {
	return p.readPool
}

func (p *PostgresDB) GetWriteConnection() any {
	return p.writePool
}

func (p *PostgresDB) IsConnected() bool {
	return p.writePool != nil && p.readPool != nil
}

func (p *PostgresDB) HealthCheck() map[string]error {
	result := make(map[string]error)
	ctx := context.Background()

	if p.writePool != nil {
		result["write_pool"] = p.writePool.Ping(ctx)
	} else {
		result["write_pool"] = fmt.Errorf("write pool not initialized")
	}

	if p.readPool != nil {
		result["read_pool"] = p.readPool.Ping(ctx)
	} else {
		result["read_pool"] = fmt.Errorf("read pool not initialized")
	}

	return result
}

// BuildDSN builds a pgx connection string for the given host and port. It is
// also used by the migration runner, which opens its own short-lived
// connection against the write host.
func (p *PostgresDB) BuildDSN(host string, port int) string {
	sslMode := p.config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.config.Username, p.config.Password, host, port, p.config.Database, sslMode)
}

func (p *PostgresDB) GetType() DatabaseType {
	return PostgreSQL
}

func (p *PostgresDB) Close() error {
	p.logger.Info("Closing PostgreSQL connections")

	if p.writePool != nil {
		p.writePool.Close()
	}
	if p.readPool != nil {
		p.readPool.Close()
	}

	return nil
}

func (p *PostgresDB) configurePool(config *pgxpool.Config) {
	if p.config.MaxConns != 0 {
		config.MaxConns = p.config.MaxConns
	}

	if p.config.MinConns != 0 {
		config.MinConns = p.config.MinConns
	}

	if p.config.ConnMaxIdleTime != 0 {
		config.MaxConnIdleTime = time.Duration(p.config.ConnMaxIdleTime) * time.Minute
	}

	if p.config.ConnMaxLifetime != 0 {
		config.MaxConnLifetime = time.Duration(p.config.ConnMaxLifetime) * time.Hour
	}

	if p.config.HealthCheckPeriod != 0 {
		config.HealthCheckPeriod = time.Duration(p.config.HealthCheckPeriod) * time.Minute
	}
}
