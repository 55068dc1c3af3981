//go:build integration

// Package testutil 整合測試共用：連線測試用 Postgres (5433) 與 Redis (6380)
package testutil

import (
	"context"
	"fmt"
	"log"

	"go-gin-event-ticketing/config"
	"go-gin-event-ticketing/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup 連線並套用 migration
func Setup() (*pgxpool.Pool, *redis.Client, func(), error) {
	ctx := context.Background()
	cfg := config.LoadTestConfig()

	testDB, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize test database: %v", err)
	}
	if err := database.Migrate(ctx, testDB); err != nil {
		testDB.Close()
		return nil, nil, nil, fmt.Errorf("failed to migrate test database: %v", err)
	}
	log.Println("Test database connected successfully")

	testRdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		testDB.Close()
		return nil, nil, nil, fmt.Errorf("failed to initialize redis: %v", err)
	}
	log.Println("Test redis connected successfully")

	cleanup := func() {
		testDB.Close()
		log.Println("Test database closed")

		testRdb.Close()
		log.Println("Test redis closed")
	}

	return testDB, testRdb, cleanup, nil
}

// SetupDBOnly 僅初始化 Postgres
func SetupDBOnly() (*pgxpool.Pool, func(), error) {
	ctx := context.Background()
	cfg := config.LoadTestConfig()

	testDB, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize test database: %v", err)
	}
	if err := database.Migrate(ctx, testDB); err != nil {
		testDB.Close()
		return nil, nil, fmt.Errorf("failed to migrate test database: %v", err)
	}
	return testDB, testDB.Close, nil
}

// SetupRedisOnly 僅初始化 Redis，用於只依賴 Redis 的測試（如 queue、cache 整合測試）
func SetupRedisOnly() (*redis.Client, func(), error) {
	cfg := config.LoadTestConfig()
	rdb, err := database.InitRedis(context.Background(), &cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis: %v", err)
	}
	cleanup := func() { rdb.Close() }
	return rdb, cleanup, nil
}

// Truncate 清空所有資料表，保留 schema
func Truncate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE registrations, events, users RESTART IDENTITY CASCADE")
	return err
}
