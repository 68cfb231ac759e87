package cfg

type Cfg struct {
	// Digest configuration
	ConfigFile string
	OutputDir  string
	Timezone   string
	SiteTitle  string
	BaseUrl    string

	// Fetch configuration
	UserAgent   string
	Timeout     int
	WorkerCount int

	// Preview server
	Serve bool
	Port  string

	// Application metadata
	Debug   bool
	Version string
}
