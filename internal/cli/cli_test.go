package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/BobBjorklund/progressTracker/internal/config"
)

// testRoot registers every command once; flag definitions are not reentrant.
var testRoot = func() *cobra.Command {
	root := &cobra.Command{Use: "tracker", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(AgentCmd(), RecordCmd(), NotesCmd(), FollowUpCmd(), PeriodCmd(),
		ClearCmd(), ImportCmd(), ExportCmd(), TotalsCmd(), SaveCmd(), ConfigCmd())
	return root
}()

func execute(args ...string) error {
	testRoot.SetOut(&bytes.Buffer{})
	testRoot.SetErr(&bytes.Buffer{})
	testRoot.SetArgs(args)
	return testRoot.Execute()
}

func TestCommandTree(t *testing.T) {
	tests := []struct {
		path  []string
		flags []string
	}{
		{path: []string{"agent", "add"}, flags: []string{"requirement"}},
		{path: []string{"agent", "edit"}, flags: []string{"name", "requirement"}},
		{path: []string{"agent", "delete"}, flags: []string{"yes"}},
		{path: []string{"agent", "list"}, flags: []string{"search", "sort", "desc"}},
		{path: []string{"agent", "show"}},
		{path: []string{"record", "add"}, flags: []string{"kind", "date", "notes", "score"}},
		{path: []string{"record", "edit"}, flags: []string{"kind", "id"}},
		{path: []string{"record", "delete"}, flags: []string{"kind", "yes"}},
		{path: []string{"notes", "set"}},
		{path: []string{"followup", "edit"}, flags: []string{"id"}},
		{path: []string{"followup", "delete"}, flags: []string{"yes"}},
		{path: []string{"period", "reset"}, flags: []string{"yes"}},
		{path: []string{"clear"}, flags: []string{"yes"}},
		{path: []string{"import", "report"}},
		{path: []string{"import", "json"}, flags: []string{"yes"}},
		{path: []string{"export"}, flags: []string{"out"}},
		{path: []string{"totals"}},
		{path: []string{"save"}},
		{path: []string{"config", "show"}},
		{path: []string{"config", "set"}, flags: []string{"log-level", "default-requirement"}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.path, " "), func(t *testing.T) {
			cmd, _, err := testRoot.Find(tt.path)
			if err != nil {
				t.Fatalf("command not found: %v", err)
			}
			if cmd.Name() != tt.path[len(tt.path)-1] {
				t.Fatalf("found %q instead", cmd.Name())
			}
			for _, f := range tt.flags {
				if cmd.Flags().Lookup(f) == nil {
					t.Errorf("missing flag --%s", f)
				}
			}
		})
	}
}

func TestAgentEdit_RequiresAFlag(t *testing.T) {
	if err := execute("agent", "edit", "Ann"); !errors.Is(err, errMissingEditFlags) {
		t.Errorf("expected errMissingEditFlags, got %v", err)
	}
}

func TestRecordEdit_RequiresID(t *testing.T) {
	if err := execute("record", "edit", "Ann", "--kind", "side", "--notes", "x"); !errors.Is(err, errMissingRecordID) {
		t.Errorf("expected errMissingRecordID, got %v", err)
	}
}

func TestRecordAdd_RequiresTextForKind(t *testing.T) {
	// a score does not satisfy a coaching
	if err := execute("record", "add", "Ann", "--kind", "coaching", "--score", "90"); !errors.Is(err, errMissingText) {
		t.Errorf("expected errMissingText, got %v", err)
	}
}

func TestRecordDelete_RequiresKind(t *testing.T) {
	err := execute("record", "delete", "Ann", "REC-1")
	if err == nil || !strings.Contains(err.Error(), `"kind"`) {
		t.Errorf("expected required flag error, got %v", err)
	}
}

func TestFollowUpEdit_RequiresID(t *testing.T) {
	if err := execute("followup", "edit", "Ann", "call", "back"); !errors.Is(err, errMissingRecordID) {
		t.Errorf("expected errMissingRecordID, got %v", err)
	}
}

func TestArgumentCounts(t *testing.T) {
	tests := [][]string{
		{"agent", "add"},
		{"agent", "show"},
		{"record", "delete", "Ann"},
		{"followup", "add", "Ann"},
		{"import", "report"},
	}
	for _, args := range tests {
		if err := execute(args...); err == nil {
			t.Errorf("%v: expected argument error", args)
		}
	}
}

// Flag state persists across executions of testRoot, so the flagless case runs first.
func TestConfigSet(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvDataDir, dir)
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvDefaultRequirement, "")

	if err := execute("config", "set"); !errors.Is(err, errMissingConfigFlags) {
		t.Fatalf("expected errMissingConfigFlags, got %v", err)
	}
	if err := execute("config", "set", "--log-level", "loud"); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	if err := execute("config", "set", "--log-level", "warn", "--default-requirement", "0"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	cfg, err := config.LoadFile(dir)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.LogLevel != "warn" || cfg.DefaultRequirement != 0 {
		t.Errorf("unexpected saved config: %+v", cfg)
	}
}
