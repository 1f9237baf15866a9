package config

const (
	groupContainer = "~/Library/Group Containers/243LU875E5.groups.com.apple.podcasts"

	defaultTTMLDir      = groupContainer + "/Library/Cache/Assets/TTML"
	defaultDatabasePath = groupContainer + "/Documents/MTLibrary.sqlite"
	defaultOutputDir    = "~/transcripts"
	defaultLogDir       = "~/.local/share/podscribe/logs"

	defaultTokenURL       = "https://sf-api-token-service.itunes.apple.com/apiToken"
	defaultCatalogURL     = "https://amp-api.podcasts.apple.com/v1/catalog/us"
	defaultStorefront     = "143441-1,42 t:podcasts1"
	defaultRequestTimeout = 30

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			TTMLDir:      defaultTTMLDir,
			DatabasePath: defaultDatabasePath,
			OutputDir:    defaultOutputDir,
			LogDir:       defaultLogDir,
		},
		Output: Output{
			Timestamps:   false,
			SkipExisting: true,
		},
		API: API{
			TokenURL:       defaultTokenURL,
			CatalogURL:     defaultCatalogURL,
			Storefront:     defaultStorefront,
			RequestTimeout: defaultRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
