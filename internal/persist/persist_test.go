package persist

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/lanedefense/sim/internal/config"
)

func TestMatchResultValidate(t *testing.T) {
	cases := []struct {
		name string
		m    MatchResult
		ok   bool
	}{
		{"win", MatchResult{Outcome: OutcomeWin, Elapsed: time.Minute}, true},
		{"aborted", MatchResult{Outcome: OutcomeAborted}, true},
		{"unknown outcome", MatchResult{Outcome: "draw"}, false},
		{"negative elapsed", MatchResult{Outcome: OutcomeLoss, Elapsed: -time.Second}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.m.validate(); (err == nil) != tc.ok {
				t.Errorf("validate() = %v, want ok=%v", err, tc.ok)
			}
		})
	}
}

func TestWavesStartedFallsBackToLog(t *testing.T) {
	m := MatchResult{Waves: []WaveRecord{{Index: 1}, {Index: 2}}}
	if got := m.wavesStarted(); got != 2 {
		t.Errorf("wavesStarted() = %d, want 2", got)
	}
	m.WavesStarted = 5
	if got := m.wavesStarted(); got != 5 {
		t.Errorf("wavesStarted() = %d, want 5", got)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("embedded migrations = %v", names)
	}
	for _, name := range names {
		body, err := fs.ReadFile(migrations, name)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(body), "-- +goose Up") || !strings.Contains(string(body), "-- +goose Down") {
			t.Errorf("%s lacks goose annotations", name)
		}
	}
}

func TestSchemaFSRootedAtFiles(t *testing.T) {
	fsys, err := schemaFS()
	if err != nil {
		t.Fatal(err)
	}
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"00001_match_history.sql", "00002_match_waves.sql"}
	if len(names) != len(want) {
		t.Fatalf("schema files = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("schema file %d = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestPoolConfig(t *testing.T) {
	cfg := config.DatabaseConfig{
		DSN:             "postgres://u:p@db.local:5432/history?sslmode=disable",
		MaxOpenConns:    3,
		MaxIdleConns:    8,
		ConnMaxLifetime: time.Minute,
	}
	pc, err := poolConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if pc.MaxConns != 3 {
		t.Errorf("MaxConns = %d", pc.MaxConns)
	}
	if pc.MinConns != 3 {
		t.Errorf("MinConns = %d, want clamped to MaxConns", pc.MinConns)
	}
	if pc.MaxConnLifetime != time.Minute {
		t.Errorf("MaxConnLifetime = %s", pc.MaxConnLifetime)
	}
	if got := pc.ConnConfig.RuntimeParams["application_name"]; got != ApplicationName {
		t.Errorf("application_name = %q", got)
	}
	if pc.ConnConfig.Host != "db.local" || pc.ConnConfig.Database != "history" {
		t.Errorf("host/database = %s/%s", pc.ConnConfig.Host, pc.ConnConfig.Database)
	}
}

func TestPoolConfigKeepsDSNApplicationName(t *testing.T) {
	pc, err := poolConfig(config.DatabaseConfig{DSN: "postgres://localhost/x?application_name=ops"})
	if err != nil {
		t.Fatal(err)
	}
	if got := pc.ConnConfig.RuntimeParams["application_name"]; got != "ops" {
		t.Errorf("application_name = %q", got)
	}
}

func TestPoolConfigRejectsBadDSN(t *testing.T) {
	if _, err := poolConfig(config.DatabaseConfig{DSN: "postgres://localhost:notaport/x"}); err == nil {
		t.Error("expected a parse error")
	}
}
