package batch

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxConcurrency != 5 {
		t.Errorf("MaxConcurrency = %d, want 5", cfg.MaxConcurrency)
	}
	if cfg.BatchSize != 10 {
		t.Errorf("BatchSize = %d, want 10", cfg.BatchSize)
	}
	if cfg.InterBatchDelay != 100*time.Millisecond {
		t.Errorf("InterBatchDelay = %v, want 100ms", cfg.InterBatchDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should validate, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid",
			config:  Config{MaxConcurrency: 5, BatchSize: 10, InterBatchDelay: 100 * time.Millisecond},
			wantErr: false,
		},
		{
			name:    "zero delay is allowed",
			config:  Config{MaxConcurrency: 1, BatchSize: 1},
			wantErr: false,
		},
		{
			name:    "zero concurrency",
			config:  Config{MaxConcurrency: 0, BatchSize: 10},
			wantErr: true,
		},
		{
			name:    "negative concurrency",
			config:  Config{MaxConcurrency: -1, BatchSize: 10},
			wantErr: true,
		},
		{
			name:    "zero batch size",
			config:  Config{MaxConcurrency: 5, BatchSize: 0},
			wantErr: true,
		},
		{
			name:    "negative delay",
			config:  Config{MaxConcurrency: 5, BatchSize: 10, InterBatchDelay: -1 * time.Millisecond},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
