package config

const (
	defaultOutputDir = "~/Documents/MythosCards/Outputs"
	defaultBackupDir = "~/Documents/MythosCards/Backup"
	defaultLogDir    = "~/Documents/MythosCards/logs"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultSimilarityThreshold = 0.70
	defaultLengthWindow        = 2
	defaultBaseScore           = 100
	defaultExtraPenalty        = 15

	defaultShortenMaxLength = 97

	defaultSortLocale = "tr"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			BackupDir: defaultBackupDir,
			LogDir:    defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Matching: Matching{
			SimilarityThreshold: defaultSimilarityThreshold,
			LengthWindow:        defaultLengthWindow,
			BaseScore:           defaultBaseScore,
			ExtraPenalty:        defaultExtraPenalty,
		},
		Shorten: Shorten{
			MaxLength: defaultShortenMaxLength,
		},
		Sorting: Sorting{
			Locale: defaultSortLocale,
		},
	}
}
