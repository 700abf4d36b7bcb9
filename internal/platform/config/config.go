package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "respass/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr    string
	Verbose bool

	DatabaseURL         string
	CollaboratorTimeout time.Duration

	JWT      JWTConfig
	Notify   NotifyConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Workflow WorkflowConfig
}

// JWTConfig holds the PEM encoded ES256 key pair.
type JWTConfig struct {
	PublicKeyPEM  string
	PrivateKeyPEM string
}

// NotifyConfig selects the notification backend.
type NotifyConfig struct {
	Backend      string // knock | kafka
	KnockBaseURL string
	KnockSecret  string
}

type KafkaConfig struct {
	Brokers     []string
	NotifyTopic string
}

// RedisConfig holds Redis connection settings. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// WorkflowConfig names the provider workflows triggered by the service.
type WorkflowConfig struct {
	ParcelArrived string
	NoMatch       string
	TokenDelivery string
}

const (
	NotifyBackendKnock = "knock"
	NotifyBackendKafka = "kafka"

	defaultCollaboratorTimeout = 5 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:                getEnv("RESPASS_ADDR", ":8080"),
		Verbose:             strings.EqualFold(os.Getenv("IS_VERBOSE"), "Y"),
		DatabaseURL:         os.Getenv("DB_CONNECTION_STRING"),
		CollaboratorTimeout: getDuration("COLLABORATOR_TIMEOUT", defaultCollaboratorTimeout),
		JWT: JWTConfig{
			PublicKeyPEM:  os.Getenv("JWT_PUBLIC_KEY"),
			PrivateKeyPEM: os.Getenv("JWT_PRIVATE_KEY"),
		},
		Notify: NotifyConfig{
			Backend:      strings.ToLower(getEnv("NOTIFY_BACKEND", NotifyBackendKnock)),
			KnockBaseURL: getEnv("KNOCK_BASE_URL", "https://api.knock.app"),
			KnockSecret:  os.Getenv("KNOCK_SECRET_KEY"),
		},
		Kafka: KafkaConfig{
			Brokers:     pstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			NotifyTopic: getEnv("KAFKA_NOTIFY_TOPIC", "respass.notifications"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Workflow: WorkflowConfig{
			ParcelArrived: getEnv("WORKFLOW_PARCEL_ARRIVED", "parcel-arrived"),
			NoMatch:       getEnv("WORKFLOW_PARCEL_NO_MATCH", "no-match"),
			TokenDelivery: getEnv("WORKFLOW_TOKEN_DELIVERY", "token-delivery"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// getDuration accepts Go duration strings ("750ms") or bare seconds ("5").
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
