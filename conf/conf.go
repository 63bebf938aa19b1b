package conf

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the server configuration, read from a TOML file with env
// variable overrides on top. Every field has a usable local default except
// the JWT key, which must be provided.
type Config struct {
	ListenAddr     string `toml:"listen_addr"`
	JwtKey         string `toml:"jwt_key"`
	AwsRegion      string `toml:"aws_region"`
	SubmTableName  string `toml:"subm_table_name"`
	AuditTableName string `toml:"audit_table_name"`
	UserTableName  string `toml:"user_table_name"`
	NotifSqsUrl    string `toml:"notif_sqs_url"`
}

func defaultConfig() Config {
	return Config{
		ListenAddr:     ":8080",
		AwsRegion:      "ap-south-1",
		SubmTableName:  "NiriSubmissions",
		AuditTableName: "NiriAuditLog",
		UserTableName:  "NiriUsers",
	}
}

// Load reads the config file at path (skipped when path is empty or the
// file does not exist) and then applies env overrides.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.JwtKey == "" {
		return Config{}, fmt.Errorf("jwt key is not configured (set JWT_KEY or jwt_key in %s)", path)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideFromEnv(&cfg.ListenAddr, "NIRI_LISTEN_ADDR")
	overrideFromEnv(&cfg.JwtKey, "JWT_KEY")
	overrideFromEnv(&cfg.AwsRegion, "AWS_REGION")
	overrideFromEnv(&cfg.SubmTableName, "SUBM_TABLE_NAME")
	overrideFromEnv(&cfg.AuditTableName, "AUDIT_TABLE_NAME")
	overrideFromEnv(&cfg.UserTableName, "USER_TABLE_NAME")
	overrideFromEnv(&cfg.NotifSqsUrl, "NOTIF_SQS_URL")
}

func overrideFromEnv(target *string, envName string) {
	if v := os.Getenv(envName); v != "" {
		*target = v
	}
}
