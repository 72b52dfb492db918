package db

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"fleet-dashboard-service/internal/config"
)

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		driver  string
		name    string
		wantErr bool
	}{
		{config.DriverMySQL, "mysql", false},
		{config.DriverPostgres, "postgres", false},
		{"sqlite", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			dialector, err := dialectorFor(config.DBConfig{Driver: tt.driver, DSN: "dsn"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("dialectorFor(%q) error = %v, wantErr %v", tt.driver, err, tt.wantErr)
			}
			if err == nil && dialector.Name() != tt.name {
				t.Errorf("Name() = %q, expected %q", dialector.Name(), tt.name)
			}
		})
	}
}

func TestGormLogLevel(t *testing.T) {
	tests := []struct {
		environment string
		expected    gormlogger.LogLevel
	}{
		{"development", gormlogger.Info},
		{"dev", gormlogger.Info},
		{"local", gormlogger.Info},
		{"", gormlogger.Info},
		{"production", gormlogger.Warn},
		{"staging", gormlogger.Warn},
	}

	for _, tt := range tests {
		if got := gormLogLevel(tt.environment); got != tt.expected {
			t.Errorf("gormLogLevel(%q) = %v, expected %v", tt.environment, got, tt.expected)
		}
	}
}

func TestEnsureIndexesContinuesOnFailure(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	ensureIndexes(log, func() error {
		return errors.New("Error 1170: BLOB/TEXT column '作業日期' used in key specification without a key length")
	})

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, "Error 1170") {
		t.Errorf("log = %s, expected a warning carrying the migration error", out)
	}
}

func TestEnsureIndexesSuccess(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	ensureIndexes(log, func() error { return nil })

	if !strings.Contains(buf.String(), `"level":"info"`) {
		t.Errorf("log = %s, expected an info line", buf.String())
	}
}

func TestMigrationsAreOrderedAndUnique(t *testing.T) {
	list := migrations("績效日報表", "酒測紀錄")

	seen := make(map[string]struct{}, len(list))
	previous := ""
	for _, m := range list {
		if _, dup := seen[m.ID]; dup {
			t.Errorf("duplicate migration id %s", m.ID)
		}
		seen[m.ID] = struct{}{}
		if m.ID <= previous {
			t.Errorf("migration %s is out of order after %s", m.ID, previous)
		}
		previous = m.ID
		if m.Migrate == nil || m.Rollback == nil {
			t.Errorf("migration %s lacks migrate or rollback", m.ID)
		}
	}
}
