package flags

var (
	ConfigFile  string
	DataPath    string
	OutputPath  string
	Force       bool
	Concurrency int
	LogLevel    string
	LogFile     string
	Version     bool
)
