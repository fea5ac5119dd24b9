package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Meta       Meta       `mapstructure:",squash"`
	Redis      Redis      `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	Dispatcher Dispatcher `mapstructure:",squash"`
	Pipeline   Pipeline   `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL string `mapstructure:"meta_base_url"`
	URL     string `mapstructure:"meta_url"`
	Version string `mapstructure:"meta_version"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Dispatcher controla o job do gocron que dispara os slots no horário agendado
type Dispatcher struct {
	Enabled  bool   `mapstructure:"dispatcher_enabled"`
	Timezone string `mapstructure:"dispatcher_timezone"`
}

// Pipeline controla a execução do fetch/decide/persist por conta
type Pipeline struct {
	MaxConcurrentRuns     int `mapstructure:"pipeline_max_concurrent_runs"`
	LockTTLSeconds        int `mapstructure:"pipeline_lock_ttl_seconds"`
	RequestTimeoutSeconds int `mapstructure:"pipeline_request_timeout_seconds"`
	MaxInsightPages       int `mapstructure:"pipeline_max_insight_pages"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/autoads")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 2)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("DISPATCHER_ENABLED", true)
	viper.SetDefault("DISPATCHER_TIMEZONE", "Asia/Manila")

	viper.SetDefault("PIPELINE_MAX_CONCURRENT_RUNS", 5)
	viper.SetDefault("PIPELINE_LOCK_TTL_SECONDS", 300)
	viper.SetDefault("PIPELINE_REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("PIPELINE_MAX_INSIGHT_PAGES", 50)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
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
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
