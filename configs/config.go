package configs

import (
	"log"
	"os"
	"strconv"
	"sync"
)

// AppConfig holds the application configuration.
// It's populated once by LoadConfig.
var AppConfig Configuration
var once sync.Once

// Configuration defines the structure for application settings.
type Configuration struct {
	JWTSecret            string
	ServerPort           string
	AccessExpireMinutes  int
	RefreshExpireDays    int
}

const (
	defaultJWTSecret           = "construction-qa"         // Default JWT secret, used if env var is not set.
	envJWTSecretKey            = "JWT_SECRET_KEY"          // Environment variable name for the JWT secret.
	defaultServerPort          = "8080"                    // Default server port.
	envServerPortKey           = "SERVER_PORT"             // Environment variable name for the server port.
	defaultAccessExpireMinutes = 30                        // Access Token 默认有效期（分钟）
	envAccessExpireMinutesKey  = "JWT_ACCESS_EXPIRE_MIN"   // Access Token 有效期环境变量名
	defaultRefreshExpireDays   = 30                        // Refresh Token 默认有效期（天）
	envRefreshExpireDaysKey    = "JWT_REFRESH_EXPIRE_DAYS" // Refresh Token 有效期环境变量名
)

// LoadConfig loads configuration from environment variables or defaults.
// It should be called once at application startup.
func LoadConfig() {
	once.Do(func() {
		jwtSecret := os.Getenv(envJWTSecretKey)
		if jwtSecret == "" {
			jwtSecret = defaultJWTSecret
			log.Printf("警告: %s 环境变量未设置。正在使用默认的JWT密钥。请在生产环境中设置此变量以保证安全。", envJWTSecretKey)
		}

		serverPort := os.Getenv(envServerPortKey)
		if serverPort == "" {
			serverPort = defaultServerPort
			log.Printf("信息: %s 环境变量未设置。正在使用默认端口 %s。", envServerPortKey, defaultServerPort)
		}

		accessExpire := defaultAccessExpireMinutes
		if v := os.Getenv(envAccessExpireMinutesKey); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				accessExpire = parsed
			} else {
				log.Printf("警告: %s 的值 %q 无效，使用默认值 %d。", envAccessExpireMinutesKey, v, defaultAccessExpireMinutes)
			}
		}

		refreshExpire := defaultRefreshExpireDays
		if v := os.Getenv(envRefreshExpireDaysKey); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				refreshExpire = parsed
			} else {
				log.Printf("警告: %s 的值 %q 无效，使用默认值 %d。", envRefreshExpireDaysKey, v, defaultRefreshExpireDays)
			}
		}

		AppConfig = Configuration{
			JWTSecret:           jwtSecret,
			ServerPort:          serverPort,
			AccessExpireMinutes: accessExpire,
			RefreshExpireDays:   refreshExpire,
		}

		log.Println("应用配置已加载。")
	})
}
