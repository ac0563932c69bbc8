package config

type Config struct {
	Project  string         `yaml:"project"`
	Targets  TargetsConfig  `yaml:"targets"`
	Browser  BrowserConfig  `yaml:"browser"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Report   ReportConfig   `yaml:"report"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
}

// TargetsConfig holds the endpoints probed each cycle. An empty DeploymentURL is
// derived from the project name.
type TargetsConfig struct {
	DeploymentURL string `yaml:"deployment_url"`
	DatabaseURL   string `yaml:"database_url"`
	DashboardURL  string `yaml:"dashboard_url"`
	VMIP          string `yaml:"vm_ip"`
	SSHKey        string `yaml:"ssh_key"`
}

var DefaultTargetsConfig = TargetsConfig{
	DatabaseURL:  DefaultDatabaseURL,
	DashboardURL: DefaultDashboardURL,
	VMIP:         DefaultVMIP,
	SSHKey:       DefaultSSHKey,
}

type BrowserConfig struct {
	Headless          bool     `yaml:"headless"`
	ViewportWidth     int      `yaml:"viewport_width"`
	ViewportHeight    int      `yaml:"viewport_height"`
	UserAgent         string   `yaml:"user_agent"`
	Args              []string `yaml:"args"`
	NavigationTimeout string   `yaml:"navigation_timeout"`
	DatabaseTimeout   string   `yaml:"database_timeout"`
	SettleDelay       string   `yaml:"settle_delay"`
}

var DefaultBrowserConfig = BrowserConfig{
	Headless:          true,
	ViewportWidth:     1920,
	ViewportHeight:    1080,
	UserAgent:         DefaultUserAgent,
	Args:              []string{"--no-sandbox", "--disable-dev-shm-usage"},
	NavigationTimeout: "30s",
	DatabaseTimeout:   "15s",
	SettleDelay:       "2s",
}

type MonitorConfig struct {
	PollingInterval string `yaml:"polling_interval"`
}

var DefaultMonitorConfig = MonitorConfig{
	PollingInterval: "300s",
}

type ReportConfig struct {
	Path               string `yaml:"path"`
	ScreenshotDir      string `yaml:"screenshot_dir"`
	InfrastructurePath string `yaml:"infrastructure_path"`
}

var DefaultReportConfig = ReportConfig{
	Path:               DefaultBaseDir + "/" + ConstReportFileName,
	ScreenshotDir:      DefaultBaseDir,
	InfrastructurePath: DefaultBaseDir + "/" + ConstInfrastructureFileName,
}

// DatabaseConfig carries the credentials used to inspect the database anon key.
// Values found in the env files override empty fields only.
type DatabaseConfig struct {
	EnvFiles  []string `yaml:"env_files"`
	AnonKey   string   `yaml:"anon_key"`
	JWTSecret string   `yaml:"jwt_secret"`
	JWKSURL   string   `yaml:"jwks_url"`
}

var DefaultDatabaseConfig = DatabaseConfig{
	EnvFiles: []string{".env.local", ".env"},
}

type LoggingConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

var DefaultLoggingConfig = LoggingConfig{
	Level: "info",
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}
