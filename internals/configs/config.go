package configs

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		log.Println("🚀 Production mode, .env dosyası okunmuyor")
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env dosyası bulunamadı, sistem ENV değerleri kullanılıyor")
	} else {
		log.Println("✅ .env dosyası yüklendi")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// TYPED CONFIG
// =======================

type DBConfig struct {
	DSN           string
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	StatementMS   int
	MaxOpenConns  int
	MaxIdleConns  int
	AutoMigrate   bool
	LogLevel      string
	SlowThreshold time.Duration
}

type StorageConfig struct {
	Driver string // supabase | oss | cloudinary | memory

	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string

	OSSEndpoint      string
	OSSAccessKey     string
	OSSSecretKey     string
	OSSBucket        string
	OSSPublicBaseURL string

	CloudinaryURL string
}

type UploadConfig struct {
	MaxBytes     int64
	ConvertWebP  bool
	MaxDimension int
	WebPQuality  float32
}

type KafkaConfig struct {
	Broker string
	Topic  string
}

type Config struct {
	AppEnv string
	Port   string

	DB      DBConfig
	Storage StorageConfig
	Upload  UploadConfig
	Kafka   KafkaConfig

	RollbarToken     string
	CORSAllowOrigins string
	RateLimitMax     int
	RateLimitWindow  time.Duration
	RequestTimeout   time.Duration
	KeepAliveCron    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_STATEMENT_TIMEOUT_MS", 5000)
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("DB_SLOW_THRESHOLD", "200ms")

	v.SetDefault("STORAGE_DRIVER", "supabase")
	v.SetDefault("SUPABASE_STORAGE_BUCKET", "hata-gorselleri")

	v.SetDefault("UPLOAD_MAX_BYTES", 5*1024*1024)
	v.SetDefault("IMAGE_CONVERT_WEBP", false)
	v.SetDefault("IMAGE_MAX_DIMENSION", 1600)
	v.SetDefault("IMAGE_WEBP_QUALITY", 80)

	v.SetDefault("KAFKA_TOPIC", "hatatakip.events")

	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("KEEPALIVE_CRON", "@every 5m")
}

// Load reads the process environment (after LoadEnv) into a Config.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		AppEnv: v.GetString("APP_ENV"),
		Port:   v.GetString("PORT"),
		DB: DBConfig{
			DSN:           v.GetString("DB_DSN"),
			Host:          v.GetString("DB_HOST"),
			Port:          v.GetString("DB_PORT"),
			User:          v.GetString("DB_USER"),
			Password:      v.GetString("DB_PASSWORD"),
			Name:          v.GetString("DB_NAME"),
			SSLMode:       v.GetString("DB_SSLMODE"),
			StatementMS:   v.GetInt("DB_STATEMENT_TIMEOUT_MS"),
			MaxOpenConns:  v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:  v.GetInt("DB_MAX_IDLE_CONNS"),
			AutoMigrate:   v.GetBool("DB_AUTO_MIGRATE"),
			LogLevel:      v.GetString("DB_LOG_LEVEL"),
			SlowThreshold: v.GetDuration("DB_SLOW_THRESHOLD"),
		},
		Storage: StorageConfig{
			Driver:           strings.ToLower(v.GetString("STORAGE_DRIVER")),
			SupabaseURL:      strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
			SupabaseKey:      v.GetString("SUPABASE_SERVICE_ROLE_KEY"),
			SupabaseBucket:   v.GetString("SUPABASE_STORAGE_BUCKET"),
			OSSEndpoint:      v.GetString("OSS_ENDPOINT"),
			OSSAccessKey:     v.GetString("OSS_ACCESS_KEY_ID"),
			OSSSecretKey:     v.GetString("OSS_ACCESS_KEY_SECRET"),
			OSSBucket:        v.GetString("OSS_BUCKET"),
			OSSPublicBaseURL: strings.TrimRight(v.GetString("OSS_PUBLIC_BASE_URL"), "/"),
			CloudinaryURL:    v.GetString("CLOUDINARY_URL"),
		},
		Upload: UploadConfig{
			MaxBytes:     v.GetInt64("UPLOAD_MAX_BYTES"),
			ConvertWebP:  v.GetBool("IMAGE_CONVERT_WEBP"),
			MaxDimension: v.GetInt("IMAGE_MAX_DIMENSION"),
			WebPQuality:  float32(v.GetFloat64("IMAGE_WEBP_QUALITY")),
		},
		Kafka: KafkaConfig{
			Broker: v.GetString("KAFKA_BROKER"),
			Topic:  v.GetString("KAFKA_TOPIC"),
		},
		RollbarToken:     v.GetString("ROLLBAR_TOKEN"),
		CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		RateLimitMax:     v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow:  v.GetDuration("RATE_LIMIT_WINDOW"),
		RequestTimeout:   v.GetDuration("REQUEST_TIMEOUT"),
		KeepAliveCron:    v.GetString("KEEPALIVE_CRON"),
	}
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// PostgresDSN returns DB_DSN when set, otherwise builds one from the parts
// with statement_timeout applied per connection.
func (c DBConfig) PostgresDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("application_name", "hatatakip")
	if c.StatementMS > 0 {
		q.Set("options", fmt.Sprintf("-c statement_timeout=%d", c.StatementMS))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(level string, slow time.Duration) gormLogger.Interface {
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return &GormLogger{
		SlowThreshold: slow,
		LogLevel:      ParseGormLogLevel(level),
	}
}

func ParseGormLogLevel(level string) gormLogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[DB][INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[DB][WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[DB][ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && err != gormLogger.ErrRecordNotFound:
		sql, rows := fc()
		log.Printf("[DB][ERROR] %s | %v | %s | %d rows | %s", utils.FileWithLineNum(), err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		sql, rows := fc()
		log.Printf("[DB][SLOW SQL] %s | %s | %d rows | %s", utils.FileWithLineNum(), elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		sql, rows := fc()
		log.Printf("[DB][QUERY] %s | %s | %d rows | %s", utils.FileWithLineNum(), elapsed, rows, sql)
	}
}
