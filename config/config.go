package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env        string `envconfig:"ENV" default:"dev"`
	ServerPort string `envconfig:"SERVER_PORT" default:":5000"`

	// DB
	DBDriver    string `envconfig:"DB_DRIVER" default:"mysql"` // mysql | postgres | sqlite
	DBHost      string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort      string `envconfig:"DB_PORT" default:"3306"`
	DBUser      string `envconfig:"DB_USER" default:"root"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"courtify_db"`
	DatabaseDSN string `envconfig:"DATABASE_DSN"`

	// URLs
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`
	BaseURL     string `envconfig:"BASE_URL" default:"http://localhost:5000"`

	// Session tokens
	AccessSecret   string `envconfig:"ACCESS_SECRET" required:"true"`
	AccessTTLHours int    `envconfig:"ACCESS_TTL_HOURS" default:"24"`

	// Mail
	EmailUser    string `envconfig:"EMAIL_USER"`
	EmailPass    string `envconfig:"EMAIL_PASS"`
	SMTPHost     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	MailFromName string `envconfig:"MAIL_FROM_NAME" default:"Courtify"`
	MailSubject  string `envconfig:"MAIL_SUBJECT" default:"Verify your email"`

	// Kafka (optional)
	KafkaBroker   string `envconfig:"KAFKA_BROKER"`
	KafkaTopic    string `envconfig:"KAFKA_TOPIC" default:"courtify.accounts"`
	KafkaGroupID  string `envconfig:"KAFKA_GROUP_ID" default:"courtify-mailer"`
	KafkaUsername string `envconfig:"KAFKA_USERNAME"`
	KafkaPassword string `envconfig:"KAFKA_PASSWORD"`

	// Media
	CloudinaryURL string `envconfig:"CLOUDINARY_URL"`
	AssetsDir     string `envconfig:"ASSETS_DIR" default:"assets"`
}

func LoadConfig() (Config, error) {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Warnf("env file not found or could not be loaded: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// DSN returns DatabaseDSN when set, otherwise builds one for DBDriver.
func (c Config) DSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}

	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
		)
	case "sqlite":
		return c.DBName + ".sqlite3"
	default:
		mc := mysql.NewConfig()
		mc.User = c.DBUser
		mc.Passwd = c.DBPassword
		mc.Net = "tcp"
		mc.Addr = c.DBHost + ":" + c.DBPort
		mc.DBName = c.DBName
		mc.ParseTime = true
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()
	}
}

func (c Config) AccessTTL() time.Duration {
	if c.AccessTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.AccessTTLHours) * time.Hour
}

// VerifyURL is the link target embedded in verification mails.
func (c Config) VerifyURL() string {
	return c.BaseURL + "/auth/verify"
}
