package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig содержит конфигурацию приложения
type AppConfig struct {
	ServerPort string
	GinMode    string
	Database   DatabaseConfig
	Monitor    MonitorConfig
	Analytics  AnalyticsConfig
	Broadcast  BroadcastConfig
	Logging    LoggerConfig
}

// LoggerConfig содержит настройки логгера
type LoggerConfig struct {
	Enable     bool
	LogsDir    string
	Level      string
	SavingDays int
}

// DatabaseConfig содержит конфигурацию для подключения к базе данных
type DatabaseConfig struct {
	Driver       string // postgres | sqlite
	Host         string
	Port         string
	Username     string
	Password     string
	DBName       string
	SQLitePath   string
	MachinesFile string // YAML со списком станков для первичного заполнения
}

// MonitorConfig содержит настройки опроса станков
type MonitorConfig struct {
	PollInterval time.Duration
	PollTimeout  time.Duration
	Concurrency  int
	AutoStart    bool
	FanucAPIKey  string
	// FanucAdapterURL - базовый адрес сервиса-адаптера FANUC, пусто если сброс недоступен
	FanucAdapterURL string
}

// AnalyticsConfig содержит настройки расчета KPI
type AnalyticsConfig struct {
	DailyTargetHours float64
}

// BroadcastConfig содержит настройки каналов рассылки снимков парка
type BroadcastConfig struct {
	KafkaEnable  bool
	KafkaBroker  string
	KafkaTopic   string
	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string
	WSBuffer     int
}

// LoadConfiguration загружает конфигурацию из .env файла или переменных окружения
func LoadConfiguration() (*AppConfig, error) {
	_ = godotenv.Load()

	config := &AppConfig{
		ServerPort: getEnv("APP_PORT", "8082"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Username:     getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "root"),
			DBName:       getEnv("DB_NAME", "machine_monitor"),
			SQLitePath:   getEnv("SQLITE_PATH", "./data/machine_monitor.db"),
			MachinesFile: getEnv("MACHINES_FILE", ""),
		},
		Monitor: MonitorConfig{
			PollInterval:    getEnvAsMillis("POLL_INTERVAL_MS", time.Second),
			PollTimeout:     getEnvAsMillis("POLL_TIMEOUT_MS", 500*time.Millisecond),
			Concurrency:     getEnvAsInt("POLL_CONCURRENCY", 16),
			AutoStart:       getEnvAsBool("MONITOR_AUTOSTART", true),
			FanucAPIKey:     getEnv("FANUC_API_KEY", "my-secret-key"),
			FanucAdapterURL: getEnv("FANUC_ADAPTER_URL", ""),
		},
		Analytics: AnalyticsConfig{
			DailyTargetHours: getEnvAsFloat("DAILY_TARGET_HOURS", 7.5),
		},
		Broadcast: BroadcastConfig{
			KafkaEnable:  getEnvAsBool("KAFKA_ENABLE", false),
			KafkaBroker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			KafkaTopic:   getEnv("KAFKA_TOPIC", "machine_states"),
			MQTTBroker:   getEnv("MQTT_BROKER", ""),
			MQTTTopic:    getEnv("MQTT_TOPIC", "machines/states"),
			MQTTClientID: getEnv("MQTT_CLIENT_ID", "machine-monitor"),
			WSBuffer:     getEnvAsInt("WS_PUSH_BUFFER", 8),
		},
		Logging: LoggerConfig{
			Enable:     getEnvAsBool("LOGGER_ENABLE", true),
			LogsDir:    getEnv("LOGGER_LOGS_DIR", "./logs"),
			Level:      getEnv("LOGGER_LOG_LEVEL", "DEBUG"),
			SavingDays: getEnvAsInt("LOGGER_SAVING_DAYS", 7),
		},
	}

	if config.Monitor.Concurrency <= 0 {
		config.Monitor.Concurrency = 1
	}
	if config.Broadcast.WSBuffer <= 0 {
		config.Broadcast.WSBuffer = 8
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultValue int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(name string, defaultValue float64) float64 {
	valueStr := getEnv(name, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

// getEnvAsMillis читает длительность в миллисекундах; ноль и отрицательные значения игнорируются
func getEnvAsMillis(name string, defaultValue time.Duration) time.Duration {
	ms := getEnvAsInt(name, 0)
	if ms <= 0 {
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	val, _ := strconv.ParseBool(value)
	return val
}
