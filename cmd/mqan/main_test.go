package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/config"
	"github.com/aidmqan/mqan-console/internal/models"
)

func alertsInfo(t *testing.T) catalog.Info {
	t.Helper()
	reg := catalog.NewRegistry(catalog.Seed(), nil)
	page, ok := reg.Get(catalog.PageAlerts)
	require.True(t, ok)
	return page.Info()
}

func TestBuildSpec(t *testing.T) {
	info := alertsInfo(t)

	tests := []struct {
		name    string
		base    models.FilterSpec
		search  string
		facets  []string
		want    string
		wantErr string
	}{
		{name: "empty", want: "none"},
		{name: "search and facet", search: "node", facets: []string{"status=resolved"}, want: "'node' status=resolved"},
		{name: "all is accepted", facets: []string{"type=all"}, want: "none"},
		{
			name:   "flags override base",
			base:   models.FilterSpec{Search: "old", Facets: map[string]string{"type": "critical", "status": "active"}},
			search: "new", facets: []string{"status=resolved"},
			want: "'new' status=resolved type=critical",
		},
		{name: "missing equals", facets: []string{"status"}, wantErr: "want name=value"},
		{name: "unknown facet", facets: []string{"colour=red"}, wantErr: `no facet "colour"`},
		{name: "unknown value", facets: []string{"status=closed"}, wantErr: `no value "closed"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := buildSpec(info, tt.base, tt.search, tt.facets)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.String())
		})
	}
}

func TestBuildSpecLeavesBaseUntouched(t *testing.T) {
	base := models.FilterSpec{Facets: map[string]string{"status": "active"}}
	_, err := buildSpec(alertsInfo(t), base, "", []string{"status=resolved"})
	require.NoError(t, err)
	assert.Equal(t, "active", base.Facets["status"])
}

func TestOpenSessionSeedsStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvPrefix+"_DB_PATH", filepath.Join(dir, "mqan.db"))
	t.Setenv(config.EnvPrefix+"_LOG_LEVEL", "error")

	s, err := openSession(logStderr)
	require.NoError(t, err)
	defer s.Close()

	assert.Len(t, s.catalog.Alerts, len(catalog.SeedAlerts()))
	assert.Equal(t, "AID-MQAN Network", s.settings.SystemName)

	page, ok := s.registry().Get(catalog.PageAlerts)
	require.True(t, ok)
	spec, err := buildSpec(page.Info(), models.FilterSpec{}, "", []string{"status=active"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Query(spec).Count)
}

func TestConfigShow(t *testing.T) {
	t.Setenv(config.EnvPrefix+"_FEED_INTERVAL", "5s")

	var out bytes.Buffer
	configShowCmd.SetOut(&out)
	require.NoError(t, configShowCmd.RunE(configShowCmd, nil))
	assert.Contains(t, out.String(), "every 5s, 20 events")
}
