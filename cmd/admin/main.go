// Package main is the operator CLI: schema migration, retention and offline rendering.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"resumeBuilder/internal/config"
	"resumeBuilder/internal/database"
)

var rootCmd = &cobra.Command{
	Use:           "resume-admin",
	Short:         "Resume Builder operator tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var dbFlags struct {
	host     string
	port     int
	name     string
	user     string
	password string
	sslmode  string
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dbFlags.host, "db-host", "", "数据库 Host（可选，默认读 DATABASE_HOST）")
	pf.IntVar(&dbFlags.port, "db-port", 0, "数据库 Port（可选，默认读 DATABASE_PORT）")
	pf.StringVar(&dbFlags.name, "db-name", "", "数据库名（可选，默认读 POSTGRES_DB）")
	pf.StringVar(&dbFlags.user, "db-user", "", "数据库用户（可选，默认读 POSTGRES_USER）")
	pf.StringVar(&dbFlags.password, "db-password", "", "数据库密码（可选，默认读 POSTGRES_PASSWORD）")
	pf.StringVar(&dbFlags.sslmode, "db-sslmode", "", "数据库 SSLMODE（可选，默认读 DATABASE_SSLMODE）")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openDatabase() (*gorm.DB, error) {
	dbCfg, err := loadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	return database.InitDatabase(dbCfg, gormlogger.Warn)
}

// loadDatabaseConfig 优先使用命令行参数，其次读取环境变量。
func loadDatabaseConfig() (config.DatabaseConfig, error) {
	host := firstNonEmpty(dbFlags.host, os.Getenv("DATABASE_HOST"), "localhost")
	name := firstNonEmpty(dbFlags.name, os.Getenv("POSTGRES_DB"))
	user := firstNonEmpty(dbFlags.user, os.Getenv("POSTGRES_USER"))
	password := firstNonEmpty(dbFlags.password, os.Getenv("POSTGRES_PASSWORD"))
	sslmode := firstNonEmpty(dbFlags.sslmode, os.Getenv("DATABASE_SSLMODE"), "disable")

	port := dbFlags.port
	if port <= 0 {
		if env := strings.TrimSpace(os.Getenv("DATABASE_PORT")); env != "" {
			p, err := strconv.Atoi(env)
			if err != nil {
				return config.DatabaseConfig{}, fmt.Errorf("parse DATABASE_PORT: %w", err)
			}
			port = p
		}
	}
	if port <= 0 {
		port = 5432
	}

	if name == "" {
		return config.DatabaseConfig{}, errors.New("database name is required (POSTGRES_DB)")
	}
	if user == "" {
		return config.DatabaseConfig{}, errors.New("database user is required (POSTGRES_USER)")
	}
	if password == "" {
		return config.DatabaseConfig{}, errors.New("database password is required (POSTGRES_PASSWORD)")
	}

	return config.DatabaseConfig{
		Host:     host,
		Port:     port,
		Name:     name,
		User:     user,
		Password: password,
		SSLMode:  sslmode,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
