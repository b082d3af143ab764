package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                 App                 `mapstructure:",squash"`
	Server              Server              `mapstructure:",squash"`
	Database            Database            `mapstructure:",squash"`
	Redis               Redis               `mapstructure:",squash"`
	Upload              Upload              `mapstructure:",squash"`
	RateLimit           RateLimit           `mapstructure:",squash"`
	Cors                Cors                `mapstructure:",squash"`
	MonthlySnapshotSync MonthlySnapshotSync `mapstructure:",squash"`
	Dashboard           Dashboard           `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Timezone string `mapstructure:"timezone"`
}

// Location devolve o fuso usado para agrupar vendas por mês. Nome inválido cai para UTC.
func (a App) Location() *time.Location {
	if a.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		logrus.WithError(err).Warnf("Fuso horário inválido: %s, usando UTC", a.Timezone)
		return time.UTC
	}

	return loc
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN            string `mapstructure:"-"`
	Driver         string `mapstructure:"database_driver"`
	Password       string `mapstructure:"database_password"`
	URL            string `mapstructure:"database_url"`
	User           string `mapstructure:"database_user"`
	SSLMode        string `mapstructure:"database_sslmode"`
	MigrateOnStart bool   `mapstructure:"database_migrate_on_start"`
}

type Redis struct {
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	DB       int           `mapstructure:"redis_db"`
	TTL      time.Duration `mapstructure:"redis_report_ttl"`
	Enabled  bool          `mapstructure:"redis_enabled"`
}

type Upload struct {
	Dir       string `mapstructure:"upload_dir"`
	MaxSizeMB int64  `mapstructure:"upload_max_size_mb"`
}

// MaxBytes devolve o limite de upload em bytes
func (u Upload) MaxBytes() int64 {
	return u.MaxSizeMB << 20
}

type RateLimit struct {
	RequestsPerMinute int `mapstructure:"rate_limit_requests_per_minute"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type MonthlySnapshotSync struct {
	CronSchedule string `mapstructure:"monthly_snapshot_sync_cron"`
	Enabled      bool   `mapstructure:"monthly_snapshot_sync_enabled"`
}

// Dashboard configura o cliente que consome a API (cmd/dashboard)
type Dashboard struct {
	APIURL           string        `mapstructure:"dashboard_api_url"`
	Timeout          time.Duration `mapstructure:"dashboard_timeout"`
	SingleEdit       bool          `mapstructure:"dashboard_single_edit"`
	ProfitPolicy     string        `mapstructure:"dashboard_profit_policy"`
	RefetchAfterSave bool          `mapstructure:"dashboard_refetch_after_save"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 8080)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("TIMEZONE", "UTC")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MIGRATE_ON_START", true)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_REPORT_TTL", "5m")
	viper.SetDefault("REDIS_ENABLED", false)

	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("UPLOAD_MAX_SIZE_MB", 10)

	viper.SetDefault("RATE_LIMIT_REQUESTS_PER_MINUTE", 120)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// Snapshot mensal de vendas
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_ENABLED", false)

	viper.SetDefault("DASHBOARD_API_URL", "http://localhost:8080")
	viper.SetDefault("DASHBOARD_TIMEOUT", "30s")
	viper.SetDefault("DASHBOARD_SINGLE_EDIT", true)
	viper.SetDefault("DASHBOARD_PROFIT_POLICY", "collapse")
	viper.SetDefault("DASHBOARD_REFETCH_AFTER_SAVE", false)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
		config.Database.SSLMode,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
