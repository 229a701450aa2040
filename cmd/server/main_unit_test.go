package main

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ledger-chain.backend/internal/config"
	"ledger-chain.backend/internal/infrastructure/datasources/sqlite"
	"ledger-chain.backend/internal/infrastructure/signing"
	plog "ledger-chain.backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenDB := openDB
	origRunServer := runServer

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openDB = origOpenDB
		runServer = origRunServer
	})

	loadDotenv = func(...string) error { return errors.New("no .env") }
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port: "18080",
			Env:  "development",
		},
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			AutoMigrate: true,
		},
		Redis: config.RedisConfig{
			URL:     "redis://localhost:6379",
			Enabled: false,
		},
		JWT: config.JWTConfig{
			Secret: "secret",
			Expiry: time.Hour,
		},
		Ledger: config.LedgerConfig{
			StartingBalance:        decimal.NewFromInt(1000),
			FeeRate:                decimal.RequireFromString("0.01"),
			StatsWindow:            100,
			IntegrityCheckInterval: time.Hour,
		},
	}
}

func memoryDB(name string) func(config.DatabaseConfig) (*gorm.DB, error) {
	return func(config.DatabaseConfig) (*gorm.DB, error) {
		return sqlite.NewGormDB(sqlite.MemoryDSN(name), 1)
	}
}

func TestRunMainProcess_RedisInitError(t *testing.T) {
	withMainHooks(t)
	loadCfg = func() *config.Config {
		cfg := baseTestConfig()
		cfg.Redis.Enabled = true
		return cfg
	}
	initRedis = func(string, string) error { return errors.New("redis down") }

	err := runMainProcess()
	require.ErrorContains(t, err, "failed to initialize redis")
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig
	openDB = func(config.DatabaseConfig) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	err := runMainProcess()
	require.ErrorContains(t, err, "failed to connect to database")
}

func TestRunMainProcess_InvalidSigningKey(t *testing.T) {
	withMainHooks(t)
	loadCfg = func() *config.Config {
		cfg := baseTestConfig()
		cfg.Ledger.SigningKey = "not-hex"
		return cfg
	}
	openDB = memoryDB("main_bad_key")

	err := runMainProcess()
	require.ErrorContains(t, err, "failed to load ledger signing key")
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig
	openDB = memoryDB("main_server_err")
	runServer = func(context.Context, http.Handler, string) error { return errors.New("listen failed") }

	err := runMainProcess()
	require.ErrorContains(t, err, "listen failed")
}

func TestRunMainProcess_SuccessPath(t *testing.T) {
	withMainHooks(t)
	redisCalled := false
	loadCfg = func() *config.Config {
		cfg := baseTestConfig()
		cfg.Redis.Enabled = true
		return cfg
	}
	initRedis = func(string, string) error {
		redisCalled = true
		return nil
	}
	openDB = memoryDB("main_success")

	var served http.Handler
	runServer = func(_ context.Context, h http.Handler, port string) error {
		served = h
		require.Equal(t, "18080", port)
		return nil
	}

	require.NoError(t, runMainProcess())
	require.True(t, redisCalled)
	require.NotNil(t, served)
}

func TestNewBlockSigner(t *testing.T) {
	signer, err := newBlockSigner("")
	require.NoError(t, err)
	require.Nil(t, signer)

	_, err = newBlockSigner("zz")
	require.Error(t, err)

	key, address, err := signing.GenerateKey()
	require.NoError(t, err)
	signer, err = newBlockSigner(key)
	require.NoError(t, err)
	require.Equal(t, address, signer.Address())
}

func TestServeUntilDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveUntilDone(ctx, http.NotFoundHandler(), "0") }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	err := serveUntilDone(context.Background(), http.NotFoundHandler(), "invalid-port")
	require.Error(t, err)
}
