package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Crowley723/deploy-monitor/browser/browsertest"
	"github.com/Crowley723/deploy-monitor/config"
)

func TestVMRun(t *testing.T) {
	cfg := config.Default()
	vm := NewVM(cfg, testLogger)
	vm.Now = fixedNow

	var p Probe[VMStatus] = vm
	status := p.Run(context.Background(), nil)

	assert.Equal(t, KindStubbed, p.Kind())
	assert.Equal(t, config.DefaultVMIP, status.IP)
	assert.Equal(t, "running", status.Status)
	assert.Contains(t, status.Note, "SSH")
	assert.Equal(t, fixedTime, status.Timestamp)
}

func TestLogsRun(t *testing.T) {
	cfg := config.Default()

	t.Run("SimulatedFinding", func(t *testing.T) {
		page := browsertest.NewPage(map[string]browsertest.Visit{config.DefaultDashboardURL: {}})

		findings := NewLogs(cfg, testLogger).Run(context.Background(), page)

		assert.Equal(t, []LogFinding{SimulatedFinding}, findings)
		assert.Equal(t, []string{config.DefaultDashboardURL}, page.Navigations)
	})

	t.Run("NavigationFailure", func(t *testing.T) {
		page := browsertest.NewPage(map[string]browsertest.Visit{
			config.DefaultDashboardURL: {Err: errors.New("net::ERR_INTERNET_DISCONNECTED")},
		})

		findings := NewLogs(cfg, testLogger).Run(context.Background(), page)

		assert.Len(t, findings, 1)
		assert.Contains(t, findings[0].Error, "ERR_INTERNET_DISCONNECTED")
		assert.Empty(t, findings[0].Type)
	})

	t.Run("Descriptor", func(t *testing.T) {
		var p Probe[[]LogFinding] = NewLogs(cfg, testLogger)
		assert.Equal(t, "errors", p.Name())
		assert.Equal(t, KindStubbed, p.Kind())
	})
}
