package config

const (
	fmtErrEmptyConfig       = "config %s cannot be empty"
	fmtErrEmptyConfigOption = "config field '%s' cannot be empty"
	fmtErrInvalidDuration   = "config field '%s' must be a positive duration, got %q"
)

const (
	ConstReportFileName         = "MONITORING_REPORT.md"
	ConstInfrastructureFileName = "GLOBAL_INFRASTRUCTURE.md"
	ConstScreenshotPrefix       = "screenshot_"
	ConstScreenshotTimeLayout   = "20060102_150405"
)

const (
	DefaultProject      = "zoe-solar-accounting-ocr"
	DefaultDatabaseURL  = "https://supabase.aura-call.de"
	DefaultVMIP         = "130.162.235.142"
	DefaultSSHKey       = "~/.ssh/aura-call-vm-key"
	DefaultDashboardURL = "https://vercel.com"
	DefaultUserAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	DefaultBaseDir      = "~/.claude"
)
