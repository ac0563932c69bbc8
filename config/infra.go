package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Infrastructure maps lowercase keys from the infrastructure Markdown file to their
// trimmed values.
type Infrastructure map[string]string

// infrastructure keys understood by Apply, by target field.
var (
	deploymentKeys = []string{"vercel_url", "vercel url", "deployment url", "deployment_url"}
	databaseKeys   = []string{"supabase_url", "supabase url", "database url", "database_url"}
	vmIPKeys       = []string{"vm_ip", "vm ip"}
	sshKeyKeys     = []string{"ssh_key", "ssh key"}
)

// LoadInfrastructure reads the infrastructure Markdown file at path. A missing file
// yields an empty Infrastructure, so Apply leaves the configured targets alone.
func LoadInfrastructure(path string) (Infrastructure, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Infrastructure{}, nil
		}
		return nil, fmt.Errorf("failed to read infrastructure file: %w", err)
	}

	return ParseInfrastructure(string(data)), nil
}

// ParseInfrastructure scans lines containing "URL:" or "IP:" and splits them on the
// first colon. Markdown bold markers are stripped from both sides. Lines that do not
// yield a key and a value are skipped.
func ParseInfrastructure(content string) Infrastructure {
	infra := Infrastructure{}

	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "URL:") && !strings.Contains(line, "IP:") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		key = strings.ToLower(cleanMarkdown(key))
		value = cleanMarkdown(value)
		if key == "" || value == "" {
			continue
		}

		infra[key] = value
	}

	return infra
}

func cleanMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.TrimSpace(s)
	return strings.TrimPrefix(strings.TrimPrefix(s, "- "), "* ")
}

// Apply copies recognised entries onto cfg. Unknown keys are ignored.
func (i Infrastructure) Apply(cfg *Config) {
	if v := i.lookup(deploymentKeys); v != "" {
		cfg.Targets.DeploymentURL = v
	}
	if v := i.lookup(databaseKeys); v != "" {
		cfg.Targets.DatabaseURL = v
	}
	if v := i.lookup(vmIPKeys); v != "" {
		cfg.Targets.VMIP = v
	}
	if v := i.lookup(sshKeyKeys); v != "" {
		cfg.Targets.SSHKey = v
	}
}

func (i Infrastructure) lookup(keys []string) string {
	for _, k := range keys {
		if v, ok := i[k]; ok {
			return v
		}
	}
	return ""
}
