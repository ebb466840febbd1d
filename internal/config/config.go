package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultSessionSecret is only acceptable outside production.
const DefaultSessionSecret = "notadez-secret-key"

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	// DSN overrides the individual connection fields when set.
	DSN             string
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

// ConnString returns the DSN, or builds one from the individual fields.
func (c PostgresConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}
	query := url.Values{}
	if c.SSLMode != "" {
		query.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = query.Encode()
	return u.String()
}

type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type SecurityConfig struct {
	RecoverySecret string
	RecoveryTTL    time.Duration
}

type NotificationsConfig struct {
	Stream        string
	Group         string
	Consumer      string
	ClaimInterval time.Duration
}

type JobsConfig struct {
	// OnboardingReminderSchedule uses the six-field cron syntax; empty disables it.
	OnboardingReminderSchedule string
	OnboardingReminderAfter    time.Duration
	// OnboardingReminderWindow should match the schedule period so each
	// user falls in exactly one run.
	OnboardingReminderWindow   time.Duration
	OnboardingReminderBatch    int
}

type LoggingConfig struct {
	Level string
}

type AppConfig struct {
	Environment   string
	HTTP          HTTPConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Session       SessionConfig
	Security      SecurityConfig
	Notifications NotificationsConfig
	Jobs          JobsConfig
	Logging       LoggingConfig
}

// envAliases binds the plain variable names used by existing deployments
// next to the NOTADEZ_ prefixed ones.
var envAliases = map[string]string{
	"environment":       "NODE_ENV",
	"http.port":         "PORT",
	"postgres.host":     "DB_HOST",
	"postgres.port":     "DB_PORT",
	"postgres.user":     "DB_USER",
	"postgres.password": "DB_PASSWORD",
	"postgres.database": "DB_NAME",
	"postgres.dsn":      "DATABASE_URL",
	"redis.addr":        "REDIS_ADDR",
	"session.secret":    "SESSION_SECRET",
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("NOTADEZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range envAliases {
		prefixed := "NOTADEZ_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings that must never reach production.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Environment == "production" {
		if c.Session.Secret == "" || c.Session.Secret == DefaultSessionSecret {
			errs = append(errs, errors.New("session.secret must be set in production"))
		}
		if c.Security.RecoverySecret == "" || c.Security.RecoverySecret == DefaultSessionSecret {
			errs = append(errs, errors.New("security.recoverysecret must be set in production"))
		}
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.host", "127.0.0.1")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "notadez")
	v.SetDefault("postgres.database", "notadez")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.maxopen", 10)
	v.SetDefault("postgres.maxidle", 2)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.dialtimeout", "5s")
	v.SetDefault("redis.readtimeout", "3s")
	v.SetDefault("redis.writetimeout", "3s")

	v.SetDefault("session.secret", DefaultSessionSecret)
	v.SetDefault("session.cookiename", "notadez_session")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.secure", false)

	v.SetDefault("security.recoverysecret", DefaultSessionSecret)
	v.SetDefault("security.recoveryttl", "30m")

	v.SetDefault("notifications.stream", "notadez:notifications")
	v.SetDefault("notifications.group", "notadez-workers")
	v.SetDefault("notifications.consumer", "worker-1")
	v.SetDefault("notifications.claiminterval", "30s")

	v.SetDefault("jobs.onboardingreminderschedule", "0 0 9 * * *")
	v.SetDefault("jobs.onboardingreminderafter", "72h")
	v.SetDefault("jobs.onboardingreminderwindow", "24h")
	v.SetDefault("jobs.onboardingreminderbatch", 500)

	v.SetDefault("logging.level", "")
}
