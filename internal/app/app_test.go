package app_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomhdl/loom/export"
	"github.com/loomhdl/loom/internal/testutil"
)

func TestRun_ElaboratesAndWritesOutputs(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"designs/soc.hcl": `
design "soc" {
  generator = "chain"

  params {
    stages = 3
    width  = 8
  }

  output "json" {
    path = "report.json"
  }

  output "dot" {
    path = "topology.dot"
  }
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err, "logs:\n%s", result.LogOutput)
	testutil.AssertDesignElaborated(t, result, "soc")

	raw, err := os.ReadFile(filepath.Join(result.OutputDir, "soc", "report.json"))
	require.NoError(t, err)
	var rep export.Report
	require.NoError(t, json.Unmarshal(raw, &rep))
	assert.Equal(t, "soc", rep.Design)
	assert.Equal(t, 4, rep.Stats.Blocks)
	assert.Equal(t, 2, rep.Stats.Links)

	dot, err := os.ReadFile(filepath.Join(result.OutputDir, "soc", "topology.dot"))
	require.NoError(t, err)
	assert.Contains(t, string(dot), `digraph "soc"`)
}

func TestRun_DesignsElaborateConcurrently(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	manifest := `
design "a" {
  generator = "sleeper"
  params { id = "a" }
}

design "b" {
  generator = "sleeper"
  params { id = "b" }
}

design "c" {
  generator = "sleeper"
  params { id = "c" }
}
`
	files := map[string]string{"designs/sleepers.hcl": manifest}
	sleeper := testutil.NewMockSleeperModule(nil, 100*time.Millisecond)

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, sleeper)

	// --- Assert ---
	require.NoError(t, result.Err, "logs:\n%s", result.LogOutput)
	require.Len(t, sleeper.ExecutionTimes, 3)

	var latestStart, earliestEnd time.Time
	for _, rec := range sleeper.ExecutionTimes {
		if rec.Start.After(latestStart) {
			latestStart = rec.Start
		}
		if earliestEnd.IsZero() || rec.End.Before(earliestEnd) {
			earliestEnd = rec.End
		}
	}
	assert.True(t, latestStart.Before(earliestEnd),
		"expected all three elaborations to overlap, latest start %v vs earliest end %v", latestStart, earliestEnd)
}

func TestRun_CollectsFailuresAcrossDesigns(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"designs/mixed.hcl": `
design "healthy" {
  generator = "chain"

  params {
    stages = 2
    width  = 4
  }
}

design "bad" {
  generator = "warp_drive"
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "elaboration failed for bad")
	assert.Contains(t, result.Err.Error(), "unknown generator 'warp_drive'")
	assert.NotContains(t, result.Err.Error(), "healthy")

	// The healthy design still elaborates despite its sibling's failure.
	testutil.AssertDesignElaborated(t, result, "healthy")
}

func TestRun_StrictDesignFailsOnUnresolvedEnds(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A chain always leaves its head and tail on the root boundary, so a
	// strict elaboration of one must fail.
	files := map[string]string{
		"designs/strict.hcl": `
design "open_chain" {
  generator = "chain"
  strict    = true

  params {
    stages = 2
    width  = 8
  }
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "elaboration failed for open_chain")
	assert.Contains(t, result.Err.Error(), "unresolved")
}

func TestNewApp_PanicsOnInvalidManifest(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"designs/broken.hcl": `
design "x" {
  generator =
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "application startup panicked")
	assert.Nil(t, result.App)
}

func TestRun_NoDesignsWarnsAndSucceeds(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.LogOutput, "No designs found")
}
