package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertDesignElaborated checks the log output within a HarnessResult to
// confirm that a specific design completed elaboration. It abstracts the
// underlying log format, making tests more resilient to internal
// refactoring.
func AssertDesignElaborated(t *testing.T, result *HarnessResult, designName string) {
	t.Helper()

	expectedLogSubstring := fmt.Sprintf("design=%s", designName)

	require.True(t,
		strings.Contains(result.LogOutput, expectedLogSubstring) &&
			strings.Contains(result.LogOutput, "Design elaboration succeeded."),
		"expected log output for elaborated design '%s' was not found in logs", designName,
	)
}
