// Package tui is the interactive terminal front end for the game. It is a
// thin Presentation Layer: all money arithmetic and phase transitions live
// in the engine, and the model only decides which controls to show and when
// to advance the reveal animation.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/itbagames/dilema/internal/game"
)

// Reveal animation stages, as percentages of the progress bar. The pending
// outcome is already fixed when the animation starts; the stages are pure
// theater.
const (
	stageAnalyzing  = 30
	stageProcessing = 70
	stageDone       = 100

	tickInterval = 60 * time.Millisecond
	tickStep     = 4 // percent gained per tick
)

type tickMsg time.Time

// Model is the Bubble Tea model for a single game session.
type Model struct {
	session *game.Session
	logger  *log.Logger

	// UI components
	nameInput  textinput.Model
	emailInput textinput.Model
	revealBar  progress.Model
	boardView  viewport.Model

	// Playing state
	options []game.Option
	cursor  int

	// Revealing state
	reveal  *game.Reveal
	percent int

	// Result state
	result *game.CommitResult
	// Floor subsidies granted across the session, for the result summary.
	subsidyTotal int

	fieldErrs map[string]string
	focused   int // 0 = name, 1 = email

	width    int
	height   int
	quitting bool
}

// NewModel wires a model around a started-at-intro session.
func NewModel(session *game.Session, logger *log.Logger) *Model {
	name := textinput.New()
	name.Placeholder = "Tu nombre"
	name.CharLimit = 40
	name.Width = 40
	name.Prompt = "> "
	name.Focus()

	email := textinput.New()
	email.Placeholder = "tu@email.com"
	email.CharLimit = 60
	email.Width = 40
	email.Prompt = "> "

	vp := viewport.New(10, 5)

	return &Model{
		session:    session,
		logger:     logger.WithPrefix("tui"),
		nameInput:  name,
		emailInput: email,
		revealBar:  progress.New(progress.WithDefaultGradient()),
		boardView:  vp,
		fieldErrs:  map[string]string{},
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.revealBar.Width = min(msg.Width-10, 50)
		m.boardView.Width = msg.Width - 6
		m.boardView.Height = msg.Height - 8

	case tickMsg:
		if m.session.Phase() != game.PhaseRevealing {
			return m, nil
		}
		m.percent += tickStep
		if m.percent > stageDone {
			m.percent = stageDone
		}
		if m.percent < stageDone {
			return m, tick()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m.updateComponents(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.session.Phase() {
	case game.PhaseIntro:
		return m.handleIntroKey(msg)
	case game.PhaseTutorial:
		if err := m.session.BackToIntro(); err != nil {
			m.logger.Warn("Failed to leave tutorial", "error", err)
		}
		return m, nil
	case game.PhasePlaying:
		return m.handlePlayingKey(msg)
	case game.PhaseRevealing:
		return m.handleRevealingKey(msg)
	case game.PhaseResult:
		return m.handleResultKey(msg)
	case game.PhaseLeaderboard:
		return m.handleLeaderboardKey(msg)
	}
	return m, nil
}

func (m *Model) handleIntroKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "shift+tab", "down", "up":
		if m.session.Variant().RequireEmail {
			m.toggleIntroFocus()
		}
		return m, nil
	case "ctrl+t":
		if err := m.session.ShowTutorial(); err == nil {
			return m, nil
		}
	case "ctrl+l":
		m.openLeaderboard()
		return m, nil
	case "enter":
		return m.submitIntro()
	}
	return m.updateComponents(msg)
}

func (m *Model) toggleIntroFocus() {
	if m.focused == 0 {
		m.focused = 1
		m.nameInput.Blur()
		m.emailInput.Focus()
	} else {
		m.focused = 0
		m.emailInput.Blur()
		m.nameInput.Focus()
	}
}

func (m *Model) submitIntro() (tea.Model, tea.Cmd) {
	m.fieldErrs = map[string]string{}
	err := m.session.Start(m.nameInput.Value(), m.emailInput.Value())
	if err != nil {
		for _, fe := range game.FieldErrors(err) {
			m.fieldErrs[fe.Field] = fe.Message
		}
		if len(m.fieldErrs) == 0 {
			m.fieldErrs["name"] = err.Error()
		}
		return m, nil
	}
	return m, m.prepareStep()
}

// prepareStep pulls the next shuffled option set from the engine.
func (m *Model) prepareStep() tea.Cmd {
	opts, err := m.session.PrepareStep()
	if err != nil {
		m.logger.Error("Failed to prepare step", "error", err)
		m.quitting = true
		return tea.Quit
	}
	m.options = opts
	m.cursor = 0
	return nil
}

func (m *Model) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter", " ":
		reveal, err := m.session.Resolve(m.cursor)
		if err != nil {
			// Unaffordable pick; the view already marks it, leave the
			// cursor where it is.
			m.logger.Debug("Resolve rejected", "error", err)
			return m, nil
		}
		m.reveal = reveal
		m.percent = 0
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleRevealingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.percent < stageDone {
		// Skip the animation.
		if msg.String() == "enter" {
			m.percent = stageDone
		}
		return m, nil
	}
	if msg.String() != "enter" {
		return m, nil
	}

	res, err := m.session.Commit()
	if err != nil {
		m.logger.Error("Failed to commit decision", "error", err)
		m.quitting = true
		return m, tea.Quit
	}
	m.reveal = nil
	m.subsidyTotal += res.Subsidy
	if res.Final {
		m.result = res
		return m, nil
	}
	return m, m.prepareStep()
}

func (m *Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "l":
		m.openLeaderboard()
	case "r":
		m.session.Reset()
		m.result = nil
		m.options = nil
		m.subsidyTotal = 0
		m.nameInput.SetValue("")
		m.emailInput.SetValue("")
		m.focused = 0
		m.emailInput.Blur()
		m.nameInput.Focus()
		return m, textinput.Blink
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// openLeaderboard transitions to the leaderboard view and refreshes the
// viewport. Content is set on every entry so the ranking is visible from the
// intro, not just after a finished game.
func (m *Model) openLeaderboard() {
	if err := m.session.ShowLeaderboard(); err != nil {
		m.logger.Warn("Failed to open leaderboard", "error", err)
		return
	}
	m.boardView.SetContent(m.renderBoardEntries())
	m.boardView.GotoTop()
}

func (m *Model) handleLeaderboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		if err := m.session.BackToIntro(); err != nil {
			m.logger.Warn("Failed to leave leaderboard", "error", err)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.boardView, cmd = m.boardView.Update(msg)
	return m, cmd
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.session.Phase() == game.PhaseIntro {
		m.nameInput, cmd = m.nameInput.Update(msg)
		cmds = append(cmds, cmd)
		if m.session.Variant().RequireEmail {
			m.emailInput, cmd = m.emailInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.session.Phase() {
	case game.PhaseIntro:
		body = m.viewIntro()
	case game.PhaseTutorial:
		body = m.viewTutorial()
	case game.PhasePlaying:
		body = m.viewPlaying()
	case game.PhaseRevealing:
		body = m.viewRevealing()
	case game.PhaseResult:
		body = m.viewResult()
	case game.PhaseLeaderboard:
		body = m.viewLeaderboard()
	}

	v := m.session.Variant()
	header := TitleStyle.Render(v.Title) + "\n" + TaglineStyle.Render(v.Tagline)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

func (m *Model) money(amount int) string {
	return MoneyStyle.Render(fmt.Sprintf("%s%d", m.session.Variant().Currency, amount))
}

func (m *Model) viewIntro() string {
	var b strings.Builder
	v := m.session.Variant()

	b.WriteString(ScenarioStyle.Render(fmt.Sprintf(
		"Empezás con %s. Tu meta: llegar a %s en %d decisiones.",
		v.Currency+strconv.Itoa(v.StartingMoney), v.Currency+strconv.Itoa(v.Goal), game.StepCount)))
	b.WriteString("\n\n")

	b.WriteString("Nombre\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")
	if msg, ok := m.fieldErrs["name"]; ok {
		b.WriteString(ErrorStyle.Render(msg))
		b.WriteString("\n")
	}

	if v.RequireEmail {
		b.WriteString("\nEmail\n")
		b.WriteString(m.emailInput.View())
		b.WriteString("\n")
		if msg, ok := m.fieldErrs["email"]; ok {
			b.WriteString(ErrorStyle.Render(msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("Enter para jugar • Ctrl+T cómo se juega • Ctrl+L ranking • Esc salir"))
	return b.String()
}

func (m *Model) viewTutorial() string {
	v := m.session.Variant()
	var b strings.Builder
	b.WriteString(BoxStyle.Render(strings.Join([]string{
		"Cómo se juega",
		"",
		fmt.Sprintf("1. Tomás %d decisiones, una por ronda.", game.StepCount),
		"2. Cada opción tiene un costo y una probabilidad de salir bien.",
		"3. Si sale bien, recuperás la inversión con ganancia. Si no, la perdés.",
		fmt.Sprintf("4. Si te quedás sin fondos antes de la última ronda, recibís un empujón hasta %s.", m.session.Variant().Currency+strconv.Itoa(v.FloorAmount)),
		"5. Al final, tu monto define tu perfil y entra al ranking.",
	}, "\n")))
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("Cualquier tecla para volver"))
	return b.String()
}

func (m *Model) viewPlaying() string {
	var b strings.Builder
	step := m.session.CurrentStep()

	b.WriteString(fmt.Sprintf("%s  •  Decisión %d de %d\n",
		m.money(m.session.Money()), m.session.StepIndex()+1, game.StepCount))
	b.WriteString("\n")
	b.WriteString(CursorStyle.Render(step.Title))
	b.WriteString("\n")
	b.WriteString(TaglineStyle.Render(step.Subtitle))
	b.WriteString("\n\n")
	b.WriteString(ScenarioStyle.Render(step.Scenario))
	b.WriteString("\n\n")

	for i, o := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = CursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%s — invertís %s%d, %d%% de probabilidad, %s",
			o.Label(), m.session.Variant().Currency, o.Investment, o.WinChance, m.potentialGain(o))
		if o.Investment > m.session.Money() {
			line = DisabledStyle.Render(line + "  (no te alcanza)")
		} else if i == m.cursor {
			line = CursorStyle.Render(line)
		} else {
			line = OptionStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
		b.WriteString("    " + HelpStyle.Render(o.Description) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("↑/↓ elegir • Enter confirmar • Ctrl+C salir"))
	return b.String()
}

// potentialGain describes what a win would pay for the option.
func (m *Model) potentialGain(o game.Option) string {
	v := m.session.Variant()
	if v.DynamicPayout() {
		low := int(float64(o.Investment) * v.Multiplier.Min)
		high := int(float64(o.Investment) * v.Multiplier.Max)
		return fmt.Sprintf("ganás entre %s%d y %s%d", v.Currency, low, v.Currency, high)
	}
	return fmt.Sprintf("ganás %s%d", v.Currency, o.FixedPayout)
}

func (m *Model) viewRevealing() string {
	var b strings.Builder

	var label string
	switch {
	case m.percent < stageAnalyzing:
		label = "Analizando tu decisión..."
	case m.percent < stageProcessing:
		label = "Procesando el resultado..."
	case m.percent < stageDone:
		label = "Revelando..."
	}

	b.WriteString(ScenarioStyle.Render(fmt.Sprintf("Elegiste: %s (%s%d)",
		m.reveal.Option.Label(), m.session.Variant().Currency, m.reveal.Invested)))
	b.WriteString("\n\n")
	b.WriteString(m.revealBar.ViewAs(float64(m.percent) / 100))
	b.WriteString("\n\n")

	if m.percent < stageDone {
		b.WriteString(TaglineStyle.Render(label))
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("Enter para saltar la animación"))
		return b.String()
	}

	if m.reveal.Outcome == game.Win {
		b.WriteString(WinStyle.Render(fmt.Sprintf("¡Salió bien! Ganaste %s%d.",
			m.session.Variant().Currency, m.reveal.Gain)))
	} else {
		b.WriteString(LoseStyle.Render(fmt.Sprintf("Salió mal. Perdiste los %s%d invertidos.",
			m.session.Variant().Currency, m.reveal.Invested)))
	}
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("Enter para continuar"))
	return b.String()
}

func (m *Model) viewResult() string {
	var b strings.Builder
	res := m.result
	v := m.session.Variant()

	b.WriteString(TierStyle.Render(res.Tier.Label))
	b.WriteString("\n\n")
	b.WriteString(ScenarioStyle.Render(res.Tier.Message))
	b.WriteString("\n\n")

	final := fmt.Sprintf("Terminaste con %s de una meta de %s%d.", m.money(res.Money), v.Currency, v.Goal)
	if res.Money >= v.Goal {
		b.WriteString(WinStyle.Render(final))
	} else {
		b.WriteString(ScenarioStyle.Render(final))
	}
	b.WriteString("\n\n")

	b.WriteString("Tus decisiones:\n")
	for i, d := range m.session.Decisions() {
		outcome := LoseStyle.Render(fmt.Sprintf("-%s%d", v.Currency, d.Invested))
		if d.Outcome == game.Win {
			outcome = WinStyle.Render(fmt.Sprintf("+%s%d", v.Currency, d.Gained))
		}
		b.WriteString(fmt.Sprintf("  %d. %s  %s\n", i+1, d.OptionLabel, outcome))
	}

	if m.subsidyTotal > 0 {
		b.WriteString("\n")
		b.WriteString(SubsidyStyle.Render(fmt.Sprintf(
			"Recibiste %s%d de empujón para seguir jugando.", v.Currency, m.subsidyTotal)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("L ranking • R jugar de nuevo • Q salir"))
	return b.String()
}

func (m *Model) viewLeaderboard() string {
	var b strings.Builder
	b.WriteString(CursorStyle.Render(fmt.Sprintf("Ranking (%d jugadores)", m.session.Board().Len())))
	b.WriteString("\n\n")
	b.WriteString(m.boardView.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("↑/↓ desplazar • Esc volver"))
	return b.String()
}

func (m *Model) renderBoardEntries() string {
	entries := m.session.Board().Entries()
	if len(entries) == 0 {
		return TaglineStyle.Render("Todavía no hay resultados. ¡Sé el primero!")
	}

	medals := [...]string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	for i, e := range entries {
		rank := fmt.Sprintf("%2d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		b.WriteString(fmt.Sprintf("%s %-20s %s  %s\n",
			rank, e.Name, m.money(e.FinalAmount), HelpStyle.Render(e.Profile)))
	}
	return b.String()
}

// Run starts the interactive program and blocks until the player quits.
func Run(session *game.Session, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(session, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}
