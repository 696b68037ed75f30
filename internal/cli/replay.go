package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
)

var replayCmd = &cobra.Command{
	Use:   "replay [log-file]",
	Short: "Replay a recorded play session",
	Long: `Replay a session recorded with 'cubestate play --log'.

If no log file is specified, lists available log files.

Usage:
  cubestate replay                    # List available logs
  cubestate replay <log-file>         # Replay specific log
  cubestate replay --speed 2.0        # Replay at 2x speed
  cubestate replay --step             # Step through events manually`,
	RunE: runReplay,
}

var (
	replaySpeed float64
	replayStep  bool
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVarP(&replayStep, "step", "t", false, "Step through events manually")
}

func runReplay(cmd *cobra.Command, args []string) error {
	logDir, err := defaultLogDir()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return listLogs(logDir)
	}

	logPath := args[0]
	if !filepath.IsAbs(logPath) {
		if _, err := os.Stat(logPath); err != nil {
			logPath = filepath.Join(logDir, logPath)
		}
	}

	log, err := LoadSessionLog(logPath)
	if err != nil {
		return fmt.Errorf("failed to load log: %w", err)
	}

	fmt.Printf("Loaded log: %s\n", logPath)
	fmt.Printf("Created: %s\n", log.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Events: %d\n", len(log.Events))
	fmt.Println()

	model := newReplayModel(newEngine(0), log, replaySpeed, replayStep)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}

	return nil
}

func listLogs(logDir string) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No log files found. Record a session first with: cubestate play --log")
			return nil
		}
		return err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			logs = append(logs, e.Name())
		}
	}

	if len(logs) == 0 {
		fmt.Println("No log files found. Record a session first with: cubestate play --log")
		return nil
	}

	// Names carry the timestamp, so newest sorts last
	sort.Strings(logs)

	fmt.Println("Available log files:")
	fmt.Println()
	for _, log := range logs {
		fmt.Printf("  %s\n", log)
	}
	fmt.Println()
	fmt.Println("Usage: cubestate replay <filename>")

	return nil
}

// Replay model
type replayModel struct {
	engine        *cubestate.Engine
	log           *SessionLog
	eventIndex    int
	speed         float64
	stepMode      bool
	paused        bool
	elapsed       time.Duration
	lastEventTime int64
	lastNotation  string
	err           error
	quitting      bool
	now           func() time.Time
	color         bool
}

func newReplayModel(e *cubestate.Engine, log *SessionLog, speed float64, stepMode bool) *replayModel {
	if speed <= 0 {
		speed = 1
	}
	return &replayModel{
		engine:   e,
		log:      log,
		speed:    speed,
		stepMode: stepMode,
		paused:   stepMode, // Start paused in step mode
		now:      time.Now,
		color:    colorOutput(),
	}
}

type replayEventMsg struct{ index int }

func (m *replayModel) Init() tea.Cmd {
	if m.stepMode {
		return frameCmd()
	}
	return tea.Batch(frameCmd(), m.scheduleNextEvent())
}

func (m *replayModel) scheduleNextEvent() tea.Cmd {
	if m.eventIndex >= len(m.log.Events) {
		return nil
	}

	index := m.eventIndex
	event := m.log.Events[index]

	var delay time.Duration
	if d := event.ElapsedMs - m.lastEventTime; d > 0 {
		delay = time.Duration(float64(d)/m.speed) * time.Millisecond
	}

	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return replayEventMsg{index: index}
	})
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n":
			if m.stepMode || m.paused {
				m.step()
			}

		case "p":
			if m.stepMode {
				break
			}
			m.paused = !m.paused
			if !m.paused {
				return m, m.scheduleNextEvent()
			}

		case "r":
			m.eventIndex = 0
			m.lastEventTime = 0
			m.elapsed = 0
			m.lastNotation = ""
			m.err = nil
			m.engine.Reset()
			if !m.paused {
				return m, m.scheduleNextEvent()
			}

		case "+", "=":
			m.speed *= 2
			if m.speed > 16 {
				m.speed = 16
			}

		case "-":
			m.speed /= 2
			if m.speed < 0.25 {
				m.speed = 0.25
			}
		}

	case replayEventMsg:
		// Stale ticks from before a pause or reset are dropped
		if m.paused || msg.index != m.eventIndex {
			return m, nil
		}
		m.step()
		return m, m.scheduleNextEvent()

	case frameMsg:
		advanceFrame(m.engine, m.now())
		return m, frameCmd()
	}

	return m, nil
}

// step applies the next event to the engine.
func (m *replayModel) step() {
	if m.eventIndex >= len(m.log.Events) {
		return
	}
	event := m.log.Events[m.eventIndex]
	m.eventIndex++
	m.lastEventTime = event.ElapsedMs
	m.elapsed = time.Duration(event.ElapsedMs) * time.Millisecond
	m.err = applyLogEvent(m.engine, event)
	if event.Notation != "" {
		m.lastNotation = event.Notation
	}
}

// applyLogEvent replays one session event. Events that only ran on an idle
// cube during play finish pending moves first.
func applyLogEvent(e *cubestate.Engine, event LogEvent) error {
	switch event.EventType {
	case LogEventEnqueue:
		return e.EnqueueNotation(event.Notation)

	case LogEventScramble:
		e.Drain()
		if err := e.RecordScramble(event.Notation); err != nil {
			return err
		}
		return e.EnqueueNotation(event.Notation)

	case LogEventSolve:
		e.Drain()
		return e.EnqueueSolution(e.ReconstructSolution())

	case LogEventReset:
		e.Drain()
		e.Reset()
		return nil

	default:
		return fmt.Errorf("unknown event type %q", event.EventType)
	}
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("cubestate Replay"))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("Event %d/%d", m.eventIndex, len(m.log.Events))
	if m.paused && !m.stepMode {
		progress += " [PAUSED]"
	}
	if m.stepMode {
		progress += " [STEP MODE]"
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString(fmt.Sprintf(" (%.2gx speed)\n", m.speed))
	b.WriteString(fmt.Sprintf("Time: %s\n\n", formatElapsed(m.elapsed)))

	b.WriteString(renderNet(m.engine.Facelets(), m.color))
	b.WriteString("\n")

	if m.engine.IsSolved() && !m.engine.Busy() {
		b.WriteString(fmt.Sprintf("Cube State: %s\n", phaseStyle.Render("SOLVED")))
	}
	b.WriteString(fmt.Sprintf("Moves: %d  Queued: %d\n", m.engine.Tracker().MoveCount(), m.engine.QueueLength()))
	if m.lastNotation != "" {
		b.WriteString("Last: ")
		b.WriteString(moveStyle.Render(tail(strings.Fields(m.lastNotation), 20)))
		b.WriteString("\n")
	}

	if m.eventIndex < len(m.log.Events) {
		event := m.log.Events[m.eventIndex]
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(fmt.Sprintf("Next: %s %s", event.EventType, event.Notation)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "SPACE/n=next (when paused)  p=pause  r=reset  +/-=speed  q=quit"
	if m.stepMode {
		help = "SPACE/n=next event  r=reset  q=quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}
