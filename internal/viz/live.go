// Package viz renders a live cart-pole episode in the terminal. The TUI owns
// pacing and history buffering; the physics core stays synchronous and is
// stepped once per frame while running.
package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/sim"
)

const (
	canvasWidth     = 80
	canvasHeight    = 20
	historyCapacity = 300
)

type TickMsg time.Time

// Model is the bubbletea state for one live session. It owns the mutable
// episode state and replaces it wholesale on reset.
type Model struct {
	params cartpole.Params
	policy sim.Policy
	rng    *rand.Rand

	state      cartpole.State
	t          float64
	lastAction cartpole.Action

	fps      int
	running  bool
	manual   bool
	override *cartpole.Action

	canvas    *Canvas
	thetaHist []float64
	episodes  int
	outcomes  map[cartpole.Outcome]int
}

func NewModel(params cartpole.Params, policy sim.Policy, rng *rand.Rand, fps int, manual bool) Model {
	if fps <= 0 {
		fps = 50
	}
	return Model{
		params:    params,
		policy:    policy,
		rng:       rng,
		state:     cartpole.Init(rng),
		fps:       fps,
		running:   true,
		manual:    manual,
		canvas:    NewCanvas(canvasWidth, canvasHeight),
		thetaHist: make([]float64, 0, historyCapacity),
		outcomes:  make(map[cartpole.Outcome]int),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "s":
			m.stop()
		case "m":
			m.manual = !m.manual
		case "left", "h":
			m.steer(cartpole.Left)
		case "right", "l":
			m.steer(cartpole.Right)
		}
	case TickMsg:
		if m.running && !m.state.Done {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// steer feeds a manual action: sticky in manual mode, a one-shot override of
// the policy otherwise.
func (m *Model) steer(a cartpole.Action) {
	if m.manual {
		m.lastAction = a
		return
	}
	override := a
	m.override = &override
}

// step advances the episode by one tick.
func (m *Model) step() {
	a := m.chooseAction()
	m.lastAction = a

	m.state = cartpole.Step(m.state, a, m.params)
	m.t += m.params.Tau

	m.thetaHist = append(m.thetaHist, m.state.Theta*180/math.Pi)
	if len(m.thetaHist) > historyCapacity {
		m.thetaHist = m.thetaHist[1:]
	}

	if m.state.Done {
		m.episodes++
		m.outcomes[m.state.Outcome]++
	}
}

func (m *Model) chooseAction() cartpole.Action {
	if m.override != nil {
		a := *m.override
		m.override = nil
		return a
	}
	if m.manual {
		return m.lastAction
	}
	return m.policy.Act(m.state, m.t)
}

// stop ends the current episode as manual_stop. The core never emits this
// code; it belongs to the driving layer.
func (m *Model) stop() {
	if m.state.Done {
		return
	}
	m.state.Done = true
	m.state.Outcome = cartpole.ManualStop
	m.episodes++
	m.outcomes[m.state.Outcome]++
}

// reset discards the episode and draws a fresh start state.
func (m *Model) reset() {
	m.state = cartpole.Init(m.rng)
	m.t = 0
	m.thetaHist = m.thetaHist[:0]
	m.override = nil
	m.lastAction = cartpole.Left
	m.running = true
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("CART-POLE") + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.thetaHist) > 1 {
		chart := asciigraph.Plot(m.thetaHist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("pole angle (deg)"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.state.Steps, m.params.MaxSteps)) + "\n")
	s.WriteString(labelStyle.Render("Cart x") + valueStyle.Render(fmt.Sprintf("%+.3f m", m.state.X)) + "\n")
	s.WriteString(labelStyle.Render("Angle") + valueStyle.Render(fmt.Sprintf("%+.2f°", m.state.Theta*180/math.Pi)) + "\n")
	s.WriteString(labelStyle.Render("Push") + valueStyle.Render(m.lastAction.String()) + "\n")
	s.WriteString("\n" + trackBar(m.state.X, m.params.XLimit, 30) + "\n")

	if m.episodes > 0 {
		s.WriteString("\nEPISODES\n")
		for _, o := range []cartpole.Outcome{cartpole.PoleFell, cartpole.OutOfBounds, cartpole.MaxSteps, cartpole.ManualStop} {
			if n := m.outcomes[o]; n > 0 {
				s.WriteString("  " + labelStyle.Render(o.String()) + valueStyle.Render(fmt.Sprintf("%d", n)) + "\n")
			}
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset S:Stop Q:Quit\nM:Manual ←→:Steer"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func (m Model) status() string {
	switch {
	case m.state.Done:
		return statusDone.Render("DONE: " + m.state.Outcome.String())
	case !m.running:
		return statusPaused.Render("PAUSED")
	case m.manual:
		return statusManual.Render("MANUAL")
	default:
		return statusRunning.Render("RUNNING")
	}
}

// draw renders the track, limit posts, cart and pole onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()

	cw, ch := canvasWidth*2, canvasHeight*4
	cx := cw / 2
	groundY := ch - 12

	// Track with limit posts at +-XLimit.
	xScale := float64(cw-20) / (2 * m.params.XLimit)
	m.canvas.DrawLine(0, groundY+4, cw, groundY+4)
	for _, lim := range []float64{-m.params.XLimit, m.params.XLimit} {
		px := cx + int(lim*xScale)
		m.canvas.DrawLine(px, groundY-2, px, groundY+4)
	}

	cartX := cx + int(m.state.X*xScale)
	m.canvas.FillRect(cartX-6, groundY, cartX+6, groundY+3)

	poleLen := float64(ch) * 0.6
	px := cartX + int(poleLen*math.Sin(m.state.Theta))
	py := groundY - int(poleLen*math.Cos(m.state.Theta))
	m.canvas.DrawLine(cartX, groundY, px, py)
	m.canvas.FillRect(px-1, py-1, px+1, py+1)
}
