package cmd

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/line-follower-sim/line-follower-sim/follower"
)

func pressKey(t *testing.T, m tuneModel, msg tea.Msg) (tuneModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(tuneModel), cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestTuneModel_AdjustIncrementsSelectedField(t *testing.T) {
	m := newTuneModel(follower.DefaultConfig(), "tuning.json")

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.cfg.MinVal)
	assert.True(t, m.dirty)
}

func TestTuneModel_RejectsInvalidAdjustment(t *testing.T) {
	m := newTuneModel(follower.DefaultConfig(), "tuning.json")

	// min_val is already at the bottom of its range.
	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.cfg.MinVal)
	assert.False(t, m.dirty)
	assert.True(t, m.bad)
	assert.NotEmpty(t, m.status)
}

func TestTuneModel_BigStepOnThreshold(t *testing.T) {
	m := newTuneModel(follower.DefaultConfig(), "tuning.json")

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyShiftRight})
	assert.Equal(t, 60, m.cfg.HoughThreshold)
}

func TestTuneModel_RhoStepsByHundredths(t *testing.T) {
	m := newTuneModel(follower.DefaultConfig(), "tuning.json")
	m.cursor = len(tuneFields) - 1

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.InDelta(t, 0.95, m.cfg.Rho, 1e-9)
}

func TestTuneModel_SaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.json")
	m := newTuneModel(follower.DefaultConfig(), path)

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = pressKey(t, m, runeKey('s'))
	assert.False(t, m.dirty)
	assert.Contains(t, m.status, "saved")

	got, err := follower.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.cfg, got)
}

func TestTuneModel_ResetRestoresDefaults(t *testing.T) {
	cfg := follower.DefaultConfig()
	cfg.MaxVal = 90
	m := newTuneModel(cfg, "tuning.json")

	m, _ = pressKey(t, m, runeKey('r'))
	assert.Equal(t, follower.DefaultConfig(), m.cfg)
	assert.True(t, m.dirty)
}

func TestTuneModel_QuitReturnsQuitCmd(t *testing.T) {
	m := newTuneModel(follower.DefaultConfig(), "tuning.json")

	_, cmd := pressKey(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok, "quit key should produce tea.Quit")
}

func TestTuneModel_CursorStaysInBounds(t *testing.T) {
	m := newTuneModel(follower.DefaultConfig(), "tuning.json")

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < len(tuneFields)+3; i++ {
		m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(tuneFields)-1, m.cursor)
}
