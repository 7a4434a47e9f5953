package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itbagames/dilema/internal/game"
	"github.com/itbagames/dilema/internal/leaderboard"
)

// fixedRand always loses outcome draws and never permutes the shuffle, so
// view assertions are stable.
type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.99 }
func (fixedRand) IntN(n int) int   { return 0 }

func newTestModel(t *testing.T, variant game.Variant) *Model {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	s := game.NewSession(variant, leaderboard.NewBoard(variant.Retention),
		leaderboard.NewMemStore(), game.WithRand(fixedRand{}))
	m := NewModel(s, logger)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func keyPress(m *Model, key string) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m.Update(msg)
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestIntroValidationShowsFieldErrors(t *testing.T) {
	m := newTestModel(t, game.Mundial)

	keyPress(m, "enter") // empty form
	assert.Equal(t, game.PhaseIntro, m.session.Phase())

	view := m.View()
	assert.Contains(t, view, "¡Ponete un nombre, crack!")
	assert.Contains(t, view, "¡Necesitamos tu email!")
}

func TestIntroStartsSession(t *testing.T) {
	m := newTestModel(t, game.Mundial)

	typeText(m, "Valentina")
	keyPress(m, "tab")
	typeText(m, "valen@example.com")
	keyPress(m, "enter")

	require.Equal(t, game.PhasePlaying, m.session.Phase())
	assert.Len(t, m.options, game.StepOptions)

	view := m.View()
	assert.Contains(t, view, "Decisión 1 de 3")
	assert.Contains(t, view, m.session.CurrentStep().Title)
}

func TestEmailFieldHiddenWhenNotRequired(t *testing.T) {
	m := newTestModel(t, game.Feria)

	assert.NotContains(t, m.View(), "Email")

	typeText(m, "Rocío")
	keyPress(m, "enter")
	assert.Equal(t, game.PhasePlaying, m.session.Phase())
}

func TestFullRoundThroughReveal(t *testing.T) {
	m := newTestModel(t, game.Mundial)
	typeText(m, "Julián")
	keyPress(m, "tab")
	typeText(m, "julian@example.com")
	keyPress(m, "enter")
	require.Equal(t, game.PhasePlaying, m.session.Phase())

	keyPress(m, "enter") // pick first option
	require.Equal(t, game.PhaseRevealing, m.session.Phase())
	require.NotNil(t, m.reveal)

	// Animation in progress: enter skips to the outcome.
	assert.Contains(t, m.View(), "Analizando")
	keyPress(m, "enter")
	assert.Contains(t, m.View(), "Salió mal")

	keyPress(m, "enter") // commit, back to playing
	assert.Equal(t, game.PhasePlaying, m.session.Phase())
	assert.Equal(t, 1, m.session.StepIndex())
	assert.Contains(t, m.View(), "Decisión 2 de 3")
}

func TestFullSessionReachesResultAndLeaderboard(t *testing.T) {
	m := newTestModel(t, game.Mundial)
	typeText(m, "Martina")
	keyPress(m, "tab")
	typeText(m, "marti@example.com")
	keyPress(m, "enter")

	for i := 0; i < game.StepCount; i++ {
		keyPress(m, "enter") // resolve
		keyPress(m, "enter") // skip animation
		keyPress(m, "enter") // commit
	}

	require.Equal(t, game.PhaseResult, m.session.Phase())
	require.NotNil(t, m.result)
	assert.True(t, m.result.Final)

	view := m.View()
	assert.Contains(t, view, m.result.Tier.Label)
	assert.Contains(t, view, "Tus decisiones")

	keyPress(m, "l")
	require.Equal(t, game.PhaseLeaderboard, m.session.Phase())
	assert.Contains(t, m.renderBoardEntries(), "Martina")

	keyPress(m, "esc")
	assert.Equal(t, game.PhaseIntro, m.session.Phase())
}

func TestLeaderboardVisibleFromIntro(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	board := leaderboard.NewBoardFrom([]leaderboard.Entry{
		{ID: "01", Name: "Sofía", Email: "sofia@example.com", FinalAmount: 1800, Profile: "Coleccionista"},
	}, 0)
	s := game.NewSession(game.Mundial, board, leaderboard.NewMemStore(), game.WithRand(fixedRand{}))
	m := NewModel(s, logger)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.Equal(t, game.PhaseLeaderboard, m.session.Phase())
	assert.Contains(t, m.View(), "Sofía", "stored entries must show without playing a game first")

	keyPress(m, "esc")
	assert.Equal(t, game.PhaseIntro, m.session.Phase())
}

func TestResultShowsAccumulatedSubsidy(t *testing.T) {
	v := game.Mundial
	v.Steps[0].Options[2].Investment = 900 // crafted so the first loss falls below the floor
	m := newTestModel(t, v)
	typeText(m, "Lucas")
	keyPress(m, "tab")
	typeText(m, "lucas@example.com")
	keyPress(m, "enter")

	// Step one: the expensive option loses, 1000-900=100 is floored to 200.
	keyPress(m, "down")
	keyPress(m, "enter")
	keyPress(m, "enter")
	keyPress(m, "enter")
	require.Equal(t, 100, m.subsidyTotal)

	// Step two: 200-200=0 is floored again.
	keyPress(m, "enter")
	keyPress(m, "enter")
	keyPress(m, "enter")
	require.Equal(t, 300, m.subsidyTotal)

	// Final step: no floor applies.
	keyPress(m, "down")
	keyPress(m, "down")
	keyPress(m, "enter")
	keyPress(m, "enter")
	keyPress(m, "enter")
	require.Equal(t, game.PhaseResult, m.session.Phase())
	assert.Equal(t, 300, m.subsidyTotal)
	assert.Contains(t, m.View(), "Recibiste $300 de empujón")

	keyPress(m, "r")
	assert.Zero(t, m.subsidyTotal)
}

func TestResetStartsOver(t *testing.T) {
	m := newTestModel(t, game.Kiosco)
	typeText(m, "Bruno")
	keyPress(m, "tab")
	typeText(m, "bruno@example.com")
	keyPress(m, "enter")

	for i := 0; i < game.StepCount; i++ {
		keyPress(m, "enter")
		keyPress(m, "enter")
		keyPress(m, "enter")
	}
	require.Equal(t, game.PhaseResult, m.session.Phase())

	keyPress(m, "r")
	assert.Equal(t, game.PhaseIntro, m.session.Phase())
	assert.Empty(t, m.nameInput.Value())
	assert.Nil(t, m.result)
}

func TestTutorialRoundTrip(t *testing.T) {
	m := newTestModel(t, game.Mundial)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Equal(t, game.PhaseTutorial, m.session.Phase())
	assert.Contains(t, m.View(), "Cómo se juega")

	keyPress(m, "esc")
	assert.Equal(t, game.PhaseIntro, m.session.Phase())
}

func TestCursorClamps(t *testing.T) {
	m := newTestModel(t, game.Mundial)
	typeText(m, "Camila")
	keyPress(m, "tab")
	typeText(m, "cami@example.com")
	keyPress(m, "enter")

	// Walk the cursor past the end; it must clamp.
	for i := 0; i < 10; i++ {
		keyPress(m, "down")
	}
	assert.Equal(t, game.StepOptions-1, m.cursor)
	for i := 0; i < 10; i++ {
		keyPress(m, "up")
	}
	assert.Equal(t, 0, m.cursor)
}

func TestViewHeaderAlwaysPresent(t *testing.T) {
	for _, v := range game.Variants {
		m := newTestModel(t, v)
		view := m.View()
		assert.True(t, strings.Contains(view, v.Title), "header missing for %s", v.Name)
	}
}
