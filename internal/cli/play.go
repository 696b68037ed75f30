package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/notation"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var (
	playMetricsAddr string
	playLog         bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive animated cube",
	Long: `Start an interactive TUI with an animated cube.

Keyboard shortcuts:
  u d r l f b  - Turn a face clockwise
  U D R L F B  - Turn a face counter-clockwise (Shift)
  2 then face  - Double turn
  /            - Type a move sequence
  s            - Scramble
  o / Enter    - Solve the last scramble step by step
  n            - Reset to a solved cube
  q/Esc        - Quit

Scramble, solve and reset are ignored while moves are still turning.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. localhost:9100)")
	playCmd.Flags().BoolVar(&playLog, "log", false, "Write a session log to ~/.cubestate/logs")
}

// frameInterval is how often the player samples animation progress.
const frameInterval = 16 * time.Millisecond

// Messages
type frameMsg time.Time

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// advanceFrame commits the active move once its animation has run and
// starts the next queued move.
func advanceFrame(e *cubestate.Engine, now time.Time) {
	if rot, ok := e.ActiveRotation(); ok && rot.Done(now) {
		e.CommitActive()
	}
	e.DequeueIfIdle()
}

// Model
type playModel struct {
	engine *cubestate.Engine
	now    func() time.Time
	color  bool

	input         textinput.Model
	typing        bool
	pendingDouble bool

	// Solution being played back and the move count when it started.
	solution   *cubestate.Solution
	stepEnds   []int
	solveStart int

	scrambles  *storage.ScrambleRepository
	solutions  *storage.SolutionRepository
	scrambleID string
	sessionLog *SessionLogger

	message  string
	err      error
	quitting bool
}

func newPlayModel(e *cubestate.Engine, db *storage.DB, sessionLog *SessionLogger) *playModel {
	ti := textinput.New()
	ti.Placeholder = "R U R' U'"
	ti.Prompt = "moves> "
	ti.CharLimit = 256

	m := &playModel{
		engine:     e,
		now:        time.Now,
		color:      colorOutput(),
		input:      ti,
		sessionLog: sessionLog,
	}
	if db != nil {
		m.scrambles = storage.NewScrambleRepository(db)
		m.solutions = storage.NewSolutionRepository(db)
	}

	e.OnSolved(func(moveCount int) {
		m.message = fmt.Sprintf("Solved! (%d moves since reset)", moveCount)
	})
	return m
}

func (m *playModel) Init() tea.Cmd {
	return frameCmd()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.typing {
			return m.updateInput(msg)
		}
		return m.handleKey(msg.String())

	case frameMsg:
		advanceFrame(m.engine, m.now())
		return m, frameCmd()
	}

	return m, nil
}

func (m *playModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		m.input.Blur()
		m.typing = false
		if text != "" {
			m.enqueue(text)
		}
		return m, nil
	case tea.KeyEsc:
		m.input.SetValue("")
		m.input.Blur()
		m.typing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *playModel) handleKey(key string) (tea.Model, tea.Cmd) {
	action, token := mapKey(key, m.pendingDouble)
	if action != actionDouble {
		m.pendingDouble = false
	}

	switch action {
	case actionQuit:
		m.quitting = true
		return m, tea.Quit

	case actionDouble:
		m.pendingDouble = true

	case actionMove:
		m.enqueue(token)

	case actionInput:
		m.typing = true
		return m, m.input.Focus()

	case actionScramble:
		if m.busy() {
			return m, nil
		}
		m.scramble()

	case actionSolve:
		if m.busy() {
			return m, nil
		}
		m.solve()

	case actionReset:
		if m.busy() {
			return m, nil
		}
		m.engine.Reset()
		m.clearSolution()
		m.message = "Reset"
		m.sessionLog.LogReset()
	}

	return m, nil
}

// busy refuses sequence-starting controls while moves are pending.
func (m *playModel) busy() bool {
	if m.engine.Busy() {
		m.message = "Wait for the cube to stop turning"
		return true
	}
	return false
}

func (m *playModel) enqueue(text string) {
	m.err = nil
	err := m.engine.EnqueueNotation(text)
	m.sessionLog.LogEnqueue(text)
	if err != nil {
		m.err = err
	}
}

func (m *playModel) scramble() {
	m.err = nil
	m.clearSolution()

	s, err := m.engine.Scramble(0)
	if err != nil {
		m.err = err
		return
	}
	m.sessionLog.LogScramble(s)
	m.message = "Scrambling"

	m.scrambleID = ""
	if m.scrambles != nil {
		id, err := m.scrambles.Create(s, len(notation.Tokens(s)), settings.Seed)
		if err != nil {
			m.err = err
			return
		}
		m.scrambleID = id
	}
}

func (m *playModel) solve() {
	m.err = nil
	sol := m.engine.ReconstructSolution()

	ends := make([]int, len(sol.Steps))
	total := 0
	for i, st := range sol.Steps {
		cmds, err := st.Commands()
		if err != nil {
			m.err = err
			return
		}
		total += len(cmds)
		ends[i] = total
	}

	m.solveStart = m.engine.Tracker().MoveCount()
	if err := m.engine.EnqueueSolution(sol); err != nil {
		m.err = err
		return
	}
	m.solution = &sol
	m.stepEnds = ends
	m.sessionLog.LogSolve()

	if sol.BestEffort {
		m.message = "No scramble recorded: playing a demonstration"
	} else {
		m.message = "Solving"
	}

	if m.solutions != nil {
		if _, err := m.solutions.Create(m.scrambleID, sol.Moves(), sol.Len(), sol.BestEffort); err != nil {
			m.err = err
		}
	}
}

func (m *playModel) clearSolution() {
	m.solution = nil
	m.stepEnds = nil
}

// currentStep returns the index of the solution step being played, or -1.
func (m *playModel) currentStep() int {
	if m.solution == nil {
		return -1
	}
	done := m.engine.Tracker().MoveCount() - m.solveStart
	if _, ok := m.engine.ActiveRotation(); ok {
		done++
	}
	prev := 0
	for i, end := range m.stepEnds {
		if done > prev && done <= end {
			return i
		}
		prev = end
	}
	return -1
}

func (m *playModel) View() string {
	if m.quitting {
		msg := "Goodbye!\n"
		if p := m.sessionLog.FilePath(); p != "" {
			msg += fmt.Sprintf("Log saved to: %s\n", p)
		}
		return msg
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("cubestate"))
	b.WriteString("\n\n")

	b.WriteString(renderNet(m.engine.Facelets(), m.color))
	b.WriteString("\n")

	if rot, ok := m.engine.ActiveRotation(); ok {
		tok := cubestate.FormatMoves([]cubestate.Move{rot.Move})
		b.WriteString(fmt.Sprintf("Turning: %s %s %s\n",
			moveStyle.Render(tok),
			progressBar(rot.Progress(m.now()), 20),
			statusStyle.Render(notation.Describe(tok)),
		))
	} else if m.engine.IsSolved() {
		b.WriteString(fmt.Sprintf("Cube State: %s\n", phaseStyle.Render("SOLVED")))
	} else {
		b.WriteString("Cube State: scrambled\n")
	}
	b.WriteString(fmt.Sprintf("Queued: %d  Moves: %d\n", m.engine.QueueLength(), m.engine.Tracker().MoveCount()))

	if m.solution != nil {
		b.WriteString("\n")
		cur := m.currentStep()
		for i, st := range m.solution.Steps {
			line := fmt.Sprintf("%s  %s", st.Phase.DisplayName(), st.Moves)
			if i == cur {
				b.WriteString(phaseStyle.Render("> " + line))
			} else {
				b.WriteString(statusStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	if history := m.engine.History(); len(history) > 0 {
		b.WriteString("\n")
		b.WriteString("Moves: ")
		b.WriteString(moveStyle.Render(tail(strings.Fields(cubestate.FormatMoves(history)), 20)))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.message))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.typing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("Enter=apply  Esc=cancel"))
	} else {
		help := "udrlfb=turn  Shift=prime  2=double  /=type  s=scramble  o=solve  n=reset  q=quit"
		if m.pendingDouble {
			help = "Double turn: press a face letter"
		}
		b.WriteString(helpStyle.Render(help))
	}
	b.WriteString("\n")

	return b.String()
}

func progressBar(p float64, width int) string {
	filled := int(p * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

// serveMetrics exposes reg on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("play needs an interactive terminal")
	}

	var opts []cubestate.Option

	addr := playMetricsAddr
	if addr == "" {
		addr = settings.MetricsAddr
	}
	if addr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, cubestate.WithMetrics(cubestate.NewMetrics(reg)))

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		serveMetrics(ctx, addr, reg)
	}

	e := newEngine(0, opts...)

	// History is optional while playing.
	db, err := openDB()
	if err != nil {
		logger.Warn("scramble history disabled", "error", err)
	} else {
		defer db.Close()
	}

	var sessionLog *SessionLogger
	if playLog {
		dir, err := defaultLogDir()
		if err != nil {
			return err
		}
		sessionLog, err = StartSessionLog(dir)
		if err != nil {
			return err
		}
		defer sessionLog.Close()
	}

	p := tea.NewProgram(newPlayModel(e, db, sessionLog), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
