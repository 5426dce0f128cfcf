package configs

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Application configs
type Config struct {
	ServerAddress   string `json:"server_address,omitempty"`
	BaseURL         string `json:"base_url,omitempty"`
	DatabaseDSN     string `json:"database_dsn,omitempty"`
	FileStoragePath string `json:"file_storage_path,omitempty"`
	LogLevel        string `json:"log_level,omitempty"`
	AppEnv          string `json:"app_env,omitempty"`
	EnableHTTPS     bool   `json:"enable_https"`
}

// Parse configs
func Parse() Config {
	var (
		flagServerAddress   string
		flagBaseURL         string
		flagDatabaseDSN     string
		flagFileStoragePath string
		flagLogLevel        string
		flagEnableHTTPS     bool
		configFilePath      string
	)
	flag.StringVar(&flagServerAddress, "a", "", "server's address")
	flag.StringVar(&flagBaseURL, "b", "", "base address of the resulting short URL")
	flag.StringVar(&flagDatabaseDSN, "d", "", "database URL")
	flag.StringVar(&flagFileStoragePath, "f", "", "file storage path")
	flag.StringVar(&flagLogLevel, "l", "", "log level")
	flag.BoolVar(&flagEnableHTTPS, "s", false, "enable HTTPS")
	flag.StringVar(&configFilePath, "c", "", "file path with json application configs")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	if envConfigFilePath := os.Getenv("CONFIG"); envConfigFilePath != "" {
		configFilePath = envConfigFilePath
	}

	config := Config{
		ServerAddress: "localhost:8080",
		LogLevel:      "info",
		AppEnv:        "development",
	}
	if configFilePath != "" {
		configData, err := os.ReadFile(configFilePath)
		if err == nil {
			if err = json.Unmarshal(configData, &config); err != nil {
				log.Printf("failed to parse configs: %s\n", err.Error())
			}
		} else {
			log.Printf("failed to read configs: %s\n", err.Error())
		}
	}

	if flagServerAddress != "" {
		config.ServerAddress = flagServerAddress
	}
	if flagBaseURL != "" {
		config.BaseURL = flagBaseURL
	}
	if flagDatabaseDSN != "" {
		config.DatabaseDSN = flagDatabaseDSN
	}
	if flagFileStoragePath != "" {
		config.FileStoragePath = flagFileStoragePath
	}
	if flagLogLevel != "" {
		config.LogLevel = flagLogLevel
	}

	if envServerAddress := os.Getenv("SERVER_ADDRESS"); envServerAddress != "" {
		config.ServerAddress = envServerAddress
	}
	if envBaseURL := os.Getenv("BASE_URL"); envBaseURL != "" {
		config.BaseURL = envBaseURL
	}
	if envDatabaseDSN := os.Getenv("DATABASE_DSN"); envDatabaseDSN != "" {
		config.DatabaseDSN = envDatabaseDSN
	}
	if envFileStoragePath := os.Getenv("FILE_STORAGE_PATH"); envFileStoragePath != "" {
		config.FileStoragePath = envFileStoragePath
	}
	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		config.LogLevel = envLogLevel
	}
	if envAppEnv := os.Getenv("APP_ENV"); envAppEnv != "" {
		config.AppEnv = envAppEnv
	}
	envEnableHTTPS, err := strconv.ParseBool(os.Getenv("ENABLE_HTTPS"))

	if err == nil {
		config.EnableHTTPS = config.EnableHTTPS || flagEnableHTTPS || envEnableHTTPS
	} else {
		config.EnableHTTPS = config.EnableHTTPS || flagEnableHTTPS
	}

	return config
}

// Use database storage
func (c Config) UseDBStorage() bool {
	return c.DatabaseDSN != ""
}

// Use file storage
func (c Config) UseFileStorage() bool {
	return c.FileStoragePath != ""
}

// Use HTTPS
func (c Config) UseHTTPS() bool {
	return c.EnableHTTPS
}

// Production environment
func (c Config) Production() bool {
	return c.AppEnv == "production"
}
