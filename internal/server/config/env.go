package config

import (
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// envConfig lists the environment variables the server understands.
// PORT is honoured for platforms that only hand out a port number.
type envConfig struct {
	Port                   string        `env:"PORT"`
	HTTPAddr               string        `env:"HTTP_ADDR"`
	DatabaseURL            string        `env:"DATABASE_URL"`
	JWTSecret              string        `env:"JWT_SECRET"`
	TokenTTL               time.Duration `env:"TOKEN_TTL"`
	BcryptCost             int           `env:"BCRYPT_COST"`
	RequestTimeout         time.Duration `env:"REQUEST_TIMEOUT"`
	AuthRateLimit          string        `env:"AUTH_RATE_LIMIT"`
	CORSOrigin             string        `env:"CORS_ORIGIN"`
	LogLevel               string        `env:"LOG_LEVEL"`
	RedisAddr              string        `env:"REDIS_ADDR"`
	S3RootUser             string        `env:"S3_ROOT_USER"`
	S3RootPassword         string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket               string        `env:"S3_BUCKET"`
	S3Region               string        `env:"S3_REGION"`
	S3BaseEndpoint         string        `env:"S3_BASE_ENDPOINT"`
	S3PublicBaseURL        string        `env:"S3_PUBLIC_BASE_URL"`
	ImageUploadURLValidity time.Duration `env:"IMAGE_UPLOAD_URL_VALIDITY"`
}

// dotEnvFile is loaded before decoding; variables already present in the
// process environment win over the file.
var dotEnvFile = ".env"

// parseEnv overlays config with environment variables. Malformed values
// panic, matching the JSON loader.
func parseEnv(config *Config) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	var e envConfig
	if err := envdecode.Decode(&e); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return
		}
		panic(err)
	}

	if e.Port != "" {
		config.EndpointAddrHTTP = ":" + e.Port
	}
	setString(&config.EndpointAddrHTTP, e.HTTPAddr)
	setString(&config.DatabaseDSN, e.DatabaseURL)
	setString(&config.SecretKey, e.JWTSecret)
	setString(&config.CORSAllowedOrigins, e.CORSOrigin)
	setString(&config.LogLevel, e.LogLevel)
	setString(&config.RedisAddr, e.RedisAddr)
	setString(&config.S3RootUser, e.S3RootUser)
	setString(&config.S3RootPassword, e.S3RootPassword)
	setString(&config.S3Bucket, e.S3Bucket)
	setString(&config.S3Region, e.S3Region)
	setString(&config.S3BaseEndpoint, e.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, e.S3PublicBaseURL)

	if e.TokenTTL > 0 {
		config.AccessTokenValidityDuration = e.TokenTTL
	}
	if e.BcryptCost > 0 {
		config.PasswordHashCost = e.BcryptCost
	}
	if e.RequestTimeout > 0 {
		config.RequestTimeout = e.RequestTimeout
	}
	if e.ImageUploadURLValidity > 0 {
		config.ImageUploadURLValidity = e.ImageUploadURLValidity
	}
	if e.AuthRateLimit != "" {
		n, err := strconv.Atoi(e.AuthRateLimit)
		if err != nil {
			panic(err)
		}
		config.AuthRateLimit = n
	}
}
