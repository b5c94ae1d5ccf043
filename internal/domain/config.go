package domain

// StopPolicy selects how the collector decides a year's listing is exhausted.
type StopPolicy string

const (
	// StopPolicyAnchor stops when the first unfiltered title of a page equals
	// the first unfiltered title of the previous page.
	StopPolicyAnchor StopPolicy = "anchor"
	// StopPolicyContent stops when the publisher-filtered titles of a page
	// equal those of the previous page.
	StopPolicyContent StopPolicy = "content"
)

// StorageBackend selects where the snapshot object lives.
type StorageBackend string

const (
	StorageS3     StorageBackend = "s3"
	StorageFile   StorageBackend = "file"
	StorageSQLite StorageBackend = "sqlite"
)

const (
	DefaultBaseURL    = "https://www.comixology.com/search/series"
	DefaultPageParam  = "seriesSearchDetailList_pg"
	DefaultBucket     = "sflomenb-comics"
	DefaultObjectKey  = "sflomenb-comics"
	DefaultRegion     = "us-east-1"
	DefaultPublisher  = "DC"
	DefaultJobName    = "AWS Comics Lambda"
	DefaultMaxPages   = 200
	DefaultCronSpec   = "0 9 * * *"
	DefaultStorageDir = "."
)

// Config holds the immutable per-run parameters. It is built once at process
// start and passed down; nothing below cmd/ reads the environment.
type Config struct {
	Years      []string   `mapstructure:"years"`
	Publishers []string   `mapstructure:"publishers"`
	Numbers    []string   `mapstructure:"numbers"`
	Region     string     `mapstructure:"region"`
	Verbose    bool       `mapstructure:"verbose"`
	JobName    string     `mapstructure:"job_name"`
	StopPolicy StopPolicy `mapstructure:"stop_policy"`

	BaseURL   string `mapstructure:"base_url"`
	PageParam string `mapstructure:"page_param"`
	StartPage int    `mapstructure:"start_page"`
	MaxPages  int    `mapstructure:"max_pages"`
	Render    bool   `mapstructure:"render"`

	Storage    StorageBackend `mapstructure:"storage"`
	Bucket     string         `mapstructure:"bucket"`
	ObjectKey  string         `mapstructure:"object"`
	StorageDir string         `mapstructure:"storage_dir"`

	DiscordWebhookURL string `mapstructure:"discord_webhook_url"`
	CronSpec          string `mapstructure:"cron"`
}
