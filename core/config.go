package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

// Conf is the loaded app configuration. Set by NewConfig.
var Conf *Config

type (
	ServerConfig struct {
		Host                      string
		Port                      string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		ShutdownTimeout           time.Duration
	}

	DatabaseConfig struct {
		Engine     string
		Name       string
		User       string
		Password   string
		Host       string
		Port       string
		DisableTLS bool
	}

	GeminiConfig struct {
		APIKey  string
		Model   string
		BaseURL string
	}

	Config struct {
		AppName                   string
		Env                       string // DEV (default) | TEST | QA | PROD
		Debug                     bool
		TestMode                  bool
		Build                     string
		WorkDir                   string
		SecretKey                 []byte
		FrontendBaseURL           string
		DefaultFromEmailAddr      string
		PasswordResetTimeoutDelta time.Duration
		SendgridApiKey            string
		RollbarToken              string
		Server                    ServerConfig
		Database                  DatabaseConfig
		Gemini                    GeminiConfig
	}
)

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.DefaultFromEmailAddr}
}

func (c *Config) IsProd() bool { return c.Env == "PROD" }

func (dc DatabaseConfig) Address() string { return dc.Host + ":" + dc.Port }

// NewConfig loads the app configuration from defaults, an optional
// `config/.env.<env>` file and environment variables prefixed with the env name.
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "AYLF Group Tracker")
	conf.SetDefault("build", "dev")
	conf.SetDefault("secretKey", "w#14@+hx2t(kuebh1z&0^0ya&6(ms8ib&_yi=@2&9c6fxm0ho)")
	conf.SetDefault("frontendBaseURL", "http://localhost:3000")
	conf.SetDefault("defaultFromEmail", "noreply@aylf.org")
	conf.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)

	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.port", "8000")
	conf.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)

	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.name", "aylf")
	conf.SetDefault("database.user", "postgres")
	conf.SetDefault("database.password", "")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.disableTLS", true)

	conf.SetDefault("gemini.apiKey", "")
	conf.SetDefault("gemini.model", "gemini-1.5-flash")
	conf.SetDefault("gemini.baseURL", "https://generativelanguage.googleapis.com")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	case "QA", "PROD":
		conf.SetDefault("debug", false)
	}
	conf.SetDefault("env", env)
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()
	conf.SetDefault("workDir", wd)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	Conf = &Config{
		AppName:                   conf.GetString("appName"),
		Env:                       conf.GetString("env"),
		Debug:                     conf.GetBool("debug"),
		TestMode:                  conf.GetBool("testMode"),
		Build:                     conf.GetString("build"),
		WorkDir:                   conf.GetString("workDir"),
		SecretKey:                 []byte(conf.GetString("secretKey")),
		FrontendBaseURL:           conf.GetString("frontendBaseURL"),
		DefaultFromEmailAddr:      conf.GetString("defaultFromEmail"),
		PasswordResetTimeoutDelta: conf.GetDuration("passwordResetTimeoutDelta"),
		SendgridApiKey:            conf.GetString("sendgridApiKey"),
		RollbarToken:              conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:                      conf.GetString("server.host"),
			Port:                      conf.GetString("server.port"),
			JWTExpirationDelta:        conf.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("server.jwtRefreshExpirationDelta"),
			ShutdownTimeout:           conf.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:     conf.GetString("database.engine"),
			Name:       conf.GetString("database.name"),
			User:       conf.GetString("database.user"),
			Password:   conf.GetString("database.password"),
			Host:       conf.GetString("database.host"),
			Port:       conf.GetString("database.port"),
			DisableTLS: conf.GetBool("database.disableTLS"),
		},
		Gemini: GeminiConfig{
			APIKey:  conf.GetString("gemini.apiKey"),
			Model:   conf.GetString("gemini.model"),
			BaseURL: conf.GetString("gemini.baseURL"),
		},
	}
	return Conf
}

// Validate checks that settings without sane defaults are provided in PROD.
func (c *Config) Validate() error {
	if !c.IsProd() {
		return nil
	}
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(string(c.SecretKey), "secretKey"),
		vala.StringNotEmpty(c.SendgridApiKey, "sendgridApiKey"),
		vala.StringNotEmpty(c.RollbarToken, "rollbarToken"),
		vala.StringNotEmpty(c.Database.Password, "database.password"),
	).Check()
}
