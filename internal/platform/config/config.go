package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	// Store backend selection: "file" (CSV users + xlsx questions) or "postgres".
	StoreBackend  string
	DataLocation  string
	UsersLocation string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	// SelfURL is the base URL the /test self-check calls back on.
	SelfURL string

	BcryptPasswords    bool
	EnforcePermissions bool
	UniformSample      bool
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:            getEnv("API_PORT", "8000"),
		StoreBackend:       getEnv("STORE_BACKEND", "file"),
		DataLocation:       getEnv("DATA_LOCATION", "data/questions.xlsx"),
		UsersLocation:      getEnv("USERS_LOCATION", "data/users.csv"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "user"),
		DBPassword:         getEnv("DB_PASSWORD", "password"),
		DBName:             getEnv("DB_NAME", "quizzical_db"),
		DBSslMode:          getEnv("DB_SSLMODE", "disable"),
		SelfURL:            getEnv("SELF_URL", "http://localhost:8000"),
		BcryptPasswords:    getEnvAsBool("AUTH_BCRYPT_PASSWORDS", false),
		EnforcePermissions: getEnvAsBool("AUTH_ENFORCE_PERMISSIONS", false),
		UniformSample:      getEnvAsBool("QUESTION_SAMPLE_UNIFORM", false),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
