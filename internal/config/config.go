package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/varoOP/comicwatch/internal/domain"
)

// legacyKeys are read without the COMICWATCH_ prefix so existing scheduled
// deployments keep working with their plain environment.
var legacyKeys = []string{"years", "numbers", "publishers", "region", "verbose"}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("publishers", domain.DefaultPublisher)
	v.SetDefault("region", domain.DefaultRegion)
	v.SetDefault("job_name", domain.DefaultJobName)
	v.SetDefault("stop_policy", string(domain.StopPolicyAnchor))
	v.SetDefault("base_url", domain.DefaultBaseURL)
	v.SetDefault("page_param", domain.DefaultPageParam)
	v.SetDefault("start_page", 0)
	v.SetDefault("max_pages", domain.DefaultMaxPages)
	v.SetDefault("storage", string(domain.StorageS3))
	v.SetDefault("bucket", domain.DefaultBucket)
	v.SetDefault("object", domain.DefaultObjectKey)
	v.SetDefault("storage_dir", domain.DefaultStorageDir)
	v.SetDefault("cron", domain.DefaultCronSpec)

	v.AllowEmptyEnv(true)
	for _, key := range legacyKeys {
		v.BindEnv(key, "COMICWATCH_"+strings.ToUpper(key), key)
	}
}

// Load builds the run configuration from v (config file, env vars and
// bound flags). now supplies the default year.
func Load(v *viper.Viper, now time.Time) (*domain.Config, error) {
	cfg := &domain.Config{
		Years:             splitList(v.GetString("years")),
		Publishers:        splitList(v.GetString("publishers")),
		Numbers:           splitList(v.GetString("numbers")),
		Region:            v.GetString("region"),
		Verbose:           v.IsSet("verbose") && v.GetString("verbose") != "false",
		JobName:           v.GetString("job_name"),
		StopPolicy:        domain.StopPolicy(v.GetString("stop_policy")),
		BaseURL:           v.GetString("base_url"),
		PageParam:         v.GetString("page_param"),
		StartPage:         v.GetInt("start_page"),
		MaxPages:          v.GetInt("max_pages"),
		Render:            v.GetBool("render"),
		Storage:           domain.StorageBackend(v.GetString("storage")),
		Bucket:            v.GetString("bucket"),
		ObjectKey:         v.GetString("object"),
		StorageDir:        v.GetString("storage_dir"),
		DiscordWebhookURL: v.GetString("discord_webhook_url"),
		CronSpec:          v.GetString("cron"),
	}

	if len(cfg.Years) == 0 {
		cfg.Years = []string{now.Format("2006")}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks a configuration for values the job cannot run with.
func Validate(cfg *domain.Config) error {
	switch cfg.StopPolicy {
	case domain.StopPolicyAnchor, domain.StopPolicyContent:
	default:
		return fmt.Errorf("invalid stop_policy: %s (must be 'anchor' or 'content')", cfg.StopPolicy)
	}

	switch cfg.Storage {
	case domain.StorageS3, domain.StorageFile, domain.StorageSQLite:
	default:
		return fmt.Errorf("invalid storage: %s (must be 's3', 'file' or 'sqlite')", cfg.Storage)
	}

	if len(cfg.Publishers) == 0 {
		return fmt.Errorf("publishers must not be empty")
	}
	if cfg.ObjectKey == "" {
		return fmt.Errorf("object key is required")
	}
	if cfg.Storage == domain.StorageS3 && cfg.Bucket == "" {
		return fmt.Errorf("bucket is required for s3 storage")
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if cfg.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive, got %d", cfg.MaxPages)
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
