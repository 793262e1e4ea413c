package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/recruitiq-sub007/pkg/cli"
	"github.com/kishan-gau/recruitiq-sub007/pkg/config"
)

// newTestCommand returns a command with captured output streams and resets
// the global flags to the quiet test configuration.
func newTestCommand(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cfgFile = "testdata/config.yaml"
	verbose = false
	astInput = false
	t.Cleanup(func() {
		cfgFile = ""
		verbose = false
		astInput = false
	})

	cmd := &cobra.Command{}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetContext(context.Background())
	return cmd, stdout, stderr
}

func TestNewApp(t *testing.T) {
	cmd, _, _ := newTestCommand(t)

	a, err := newApp(cmd)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.close()
	if a.engine == nil || a.logger == nil || a.metrics == nil || a.tracer == nil {
		t.Fatal("newApp() left components nil")
	}
	if a.tracer.Enabled() {
		t.Error("tracing should be disabled by default")
	}
	if config.Published() != a.cfg {
		t.Error("newApp() did not publish the loaded config")
	}
	if a.cfg.Telemetry.Logging.Level != "error" {
		t.Errorf("config not loaded from %s", cfgFile)
	}
}

func TestNewAppConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"invalid values", "testdata/bad-config.yaml"},
		{"missing file", "testdata/missing.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, _ := newTestCommand(t)
			cfgFile = tt.file

			_, err := newApp(cmd)
			var cfgErr *cli.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("newApp() error = %v, want ConfigError", err)
			}
			if cli.ExitCode(err) != cli.ExitConfig {
				t.Errorf("ExitCode() = %d, want %d", cli.ExitCode(err), cli.ExitConfig)
			}
		})
	}
}

func TestNewAppVerboseLogging(t *testing.T) {
	cmd, stdout, stderr := newTestCommand(t)
	verbose = true

	calcFlags.vars = []string{"gross_pay=100"}
	calcFlags.format = "text"
	if err := calcFormula(cmd, []string{"gross_pay * 2"}); err != nil {
		t.Fatalf("calcFormula() error = %v", err)
	}

	if stdout.String() != "200\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !bytes.Contains(stderr.Bytes(), []byte("formula execution finished")) {
		t.Errorf("verbose run should log debug output, got %q", stderr.String())
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	want := []string{"parse", "validate", "calc", "preview", "vars", "stats", "lint", "test", "watch", "version", "completion"}

	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{500, "500"},
		{230.77, "230.77"},
		{1e7, "10000000"},
		{-0.5, "-0.5"},
	}

	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
