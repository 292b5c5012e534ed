package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DOGE-network/cali-doge-sub006/internal/config"
	"github.com/DOGE-network/cali-doge-sub006/pkg/logging"
)

func TestRunSearch(t *testing.T) {
	logging.DisableLoggingForTest(t)
	config.SetDefaults()

	searchTarget = "Air Resorces Board"
	searchSnapshot = "../../../testdata/snapshot.yaml"

	var buf bytes.Buffer
	searchCmd.SetOut(&buf)
	require.NoError(t, runSearch(searchCmd, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "Air Resources Board")
	assert.LessOrEqual(t, len(lines), config.FuzzyLimit())
}

func TestRunSearchMissingSnapshot(t *testing.T) {
	logging.DisableLoggingForTest(t)
	config.SetDefaults()

	searchTarget = "anything"
	searchSnapshot = "no-such-file.yaml"

	searchCmd.SetOut(new(bytes.Buffer))
	assert.Error(t, runSearch(searchCmd, nil))
}
