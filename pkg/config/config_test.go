package config

import (
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Orchestrator: OrchestratorConfig{MaxIterations: 100, Tolerance: 1e-5},
				Log:          LogConfig{Level: "info"},
			},
			wantErr: false,
		},
		{
			name: "missing max iterations",
			cfg: Config{
				Orchestrator: OrchestratorConfig{Tolerance: 1e-5},
				Log:          LogConfig{Level: "info"},
			},
			wantErr: true,
		},
		{
			name: "missing tolerance",
			cfg: Config{
				Orchestrator: OrchestratorConfig{MaxIterations: 50},
				Log:          LogConfig{Level: "info"},
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			cfg: Config{
				Orchestrator: OrchestratorConfig{MaxIterations: 50, Tolerance: 1e-5},
				Log:          LogConfig{Level: "invalid"},
			},
			wantErr: true,
		},
		{
			name: "valid debug level",
			cfg: Config{
				Orchestrator: OrchestratorConfig{MaxIterations: 50, Tolerance: 1e-5},
				Log:          LogConfig{Level: "debug"},
			},
			wantErr: false,
		},
		{
			name: "empty log level defaults to info",
			cfg: Config{
				Orchestrator: OrchestratorConfig{MaxIterations: 50, Tolerance: 1e-5},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
