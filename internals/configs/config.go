package configs

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	CronSecret             string
	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	FirebaseServiceAccount string
	MemberLoginDomain      string
	RolloverHeadAmount     string
	RolloverDependentAmt   string
	RedisURL               string
	InternalCron           bool

	AladhanBaseURL   string
	AladhanLatitude  float64
	AladhanLongitude float64
	AladhanMethod    int
)

// =======================
// ENV LOADER
// =======================
func LoadEnv(log *zap.Logger) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" && os.Getenv("VERCEL") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn("no .env file found, using system environment")
		} else {
			log.Info(".env file loaded")
		}
	} else {
		log.Info("running on platform, using system environment")
	}

	CronSecret = GetEnv("CRON_SECRET")
	SupabaseURL = GetEnv("SUPABASE_URL")
	SupabaseServiceRoleKey = GetEnv("SUPABASE_SERVICE_ROLE_KEY")
	SupabaseJWTSecret = GetEnv("SUPABASE_JWT_SECRET")
	FirebaseServiceAccount = GetEnv("FIREBASE_SERVICE_ACCOUNT")
	MemberLoginDomain = GetEnv("MEMBER_LOGIN_DOMAIN", "pmjmasjid.com")
	RolloverHeadAmount = GetEnv("ROLLOVER_HEAD_AMOUNT", "1250")
	RolloverDependentAmt = GetEnv("ROLLOVER_DEPENDENT_AMOUNT", "200")
	RedisURL = GetEnv("REDIS_URL")
	InternalCron = GetBool("INTERNAL_CRON", false)

	AladhanBaseURL = GetEnv("ALADHAN_BASE_URL", "https://api.aladhan.com/v1")
	AladhanLatitude = GetFloat("ALADHAN_LATITUDE", 8.631732)
	AladhanLongitude = GetFloat("ALADHAN_LONGITUDE", 76.808162)
	AladhanMethod = int(GetFloat("ALADHAN_METHOD", 1))

	for key, val := range map[string]string{
		"CRON_SECRET":               CronSecret,
		"SUPABASE_JWT_SECRET":       SupabaseJWTSecret,
		"SUPABASE_SERVICE_ROLE_KEY": SupabaseServiceRoleKey,
		"FIREBASE_SERVICE_ACCOUNT":  FirebaseServiceAccount,
	} {
		if val == "" {
			log.Warn("environment variable not set", zap.String("key", key))
		}
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func GetFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// DatabaseDSN builds the Postgres DSN from DB_* variables.
func DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=jamath&options=-c statement_timeout=30000",
		GetEnv("DB_USER"),
		GetEnv("DB_PASSWORD"),
		GetEnv("DB_HOST"),
		GetEnv("DB_PORT", "5432"),
		GetEnv("DB_NAME"),
		GetEnv("DB_SSLMODE", "require"),
	)
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
	log           *zap.Logger
}

func NewGormLogger(log *zap.Logger) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
		log:           log.Named("gorm"),
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.log.Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		l.log.Error("query failed", append(fields, zap.Error(err))...)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.log.Warn("slow query", fields...)
	case l.LogLevel >= gormLogger.Info:
		l.log.Debug("query", fields...)
	}
}
