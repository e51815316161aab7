package config

const (
	defaultProcessNameMatch    = "language_server"
	defaultProcessScanTimeout  = 15
	defaultPortListTimeout     = 5
	defaultProbeTimeout        = 3
	defaultFetchTimeout        = 10
	defaultClientIDEName       = "antigravity"
	defaultClientExtensionName = "antigravity"
	defaultClientLocale        = "en"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"

	// maxStageTimeout keeps any single stage inside an interactive budget.
	maxStageTimeout = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Process: Process{
			NameMatch:   defaultProcessNameMatch,
			ScanTimeout: defaultProcessScanTimeout,
		},
		Ports: Ports{
			ListTimeout: defaultPortListTimeout,
		},
		Probe: Probe{
			Timeout: defaultProbeTimeout,
		},
		Fetch: Fetch{
			Timeout: defaultFetchTimeout,
		},
		Client: Client{
			IDEName:       defaultClientIDEName,
			ExtensionName: defaultClientExtensionName,
			Locale:        defaultClientLocale,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
