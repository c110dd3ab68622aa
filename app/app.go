package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/miosa/osa-launch/markdown"
	"github.com/miosa/osa-launch/model"
	"github.com/miosa/osa-launch/msg"
	"github.com/miosa/osa-launch/style"
	"github.com/miosa/osa-launch/vm"
)

// screenObserver is the subscription driving the main panel. The two
// visible observer panels use ids 1 and 2.
const (
	screenObserver = 0
	observerCount  = 2
)

const tickInterval = time.Second

type Model struct {
	banner     model.BannerModel
	activity   model.ActivityModel
	toasts     model.ToastsModel
	observers  [observerCount]model.ObserverModel
	subs       [observerCount + 1]*vm.Subscription
	help       help.Model
	keys       KeyMap
	vm         *vm.ViewModel
	logger     *zap.SugaredLogger
	state      vm.State
	lastResult string
	lastErr    error
	width      int
	height     int
	autoLaunch bool
	quitting   bool
	saveTheme  func(name string) error
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for UI events.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithVersion sets the version shown in the header.
func WithVersion(v string) Option {
	return func(m *Model) { m.banner.SetVersion(v) }
}

// WithDelay sets the computation delay shown in the header.
func WithDelay(d time.Duration) Option {
	return func(m *Model) { m.banner.SetDelay(d) }
}

// WithAutoLaunch submits one Launch as soon as the program starts.
func WithAutoLaunch(v bool) Option {
	return func(m *Model) { m.autoLaunch = v }
}

// WithThemeSaver persists the theme chosen with the theme key.
func WithThemeSaver(save func(name string) error) Option {
	return func(m *Model) { m.saveTheme = save }
}

// New builds the screen model and subscribes its observers to v.
func New(v *vm.ViewModel, opts ...Option) Model {
	m := Model{
		banner:   model.NewBanner(""),
		activity: model.NewActivity(),
		toasts:   model.NewToasts(),
		help:     help.New(),
		keys:     DefaultKeyMap(),
		vm:       v,
		logger:   zap.NewNop().Sugar(),
		state:    v.State(),
		width:    80,
		height:   24,
	}
	for i := range m.observers {
		m.observers[i] = model.NewObserver(i + 1)
	}
	for _, opt := range opts {
		opt(&m)
	}
	for i := range m.subs {
		m.subs[i] = v.Subscribe()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.activity.Init(), tickCmd(), tea.WindowSize()}
	for i, sub := range m.subs {
		cmds = append(cmds, listen(i, sub))
	}
	if m.autoLaunch {
		cmds = append(cmds, func() tea.Msg { return msg.LaunchRequested{} })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.banner.SetWidth(v.Width)
		m.help.Width = v.Width
		half := (v.Width - 1) / 2
		for i := range m.observers {
			m.observers[i].SetWidth(half)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(v)
	case msg.LaunchRequested:
		return m.launch()
	case msg.StateChanged:
		return m.handleStateChanged(v)
	case msg.ObserverClosed:
		return m.handleObserverClosed(v)
	case msg.TickMsg:
		m.toasts.Tick()
		return m, tickCmd()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(v)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	sections := []string{
		m.banner.View(),
		m.mainPanel(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.observers[0].View(), " ", m.observers[1].View()),
	}
	if toasts := m.toasts.View(m.width); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.help.View(m.keys))
	return strings.Join(sections, "\n")
}

func (m Model) mainPanel() string {
	inner := m.width - 6
	var body string
	switch m.state.Kind {
	case vm.KindRunning:
		body = m.activity.View()
	case vm.KindFinished:
		body = style.PanelTitle.Render("Finished") + "\n" + markdown.Render(m.state.Result, inner)
	case vm.KindFailed:
		body = style.ErrorText.Render("Failed: " + errString(m.state.Err))
	default:
		body = style.PanelTitle.Render("Waiting") + "\n" + style.Faint.Render("Press enter to launch the computation.")
		switch {
		case m.lastErr != nil:
			body += "\n\n" + style.ErrorText.Render("Last run failed: "+m.lastErr.Error())
		case m.lastResult != "":
			body += "\n\n" + style.Faint.Render("Last result:") + "\n" + markdown.Render(m.lastResult, inner)
		}
	}
	panel := style.Panel
	if m.width > 2 {
		panel = panel.Width(m.width - 2)
	}
	return panel.Render(body)
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Quit):
		m.quitting = true
		for _, sub := range m.subs {
			sub.Cancel()
		}
		return m, tea.Quit
	case key.Matches(k, m.keys.Launch):
		return m.launch()
	case key.Matches(k, m.keys.ToggleObserver1):
		return m.toggleObserver(1)
	case key.Matches(k, m.keys.ToggleObserver2):
		return m.toggleObserver(2)
	case key.Matches(k, m.keys.CycleTheme):
		return m.cycleTheme()
	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// launch submits vm.Launch. The view model decides whether it applies;
// the screen state may lag behind it.
func (m Model) launch() (tea.Model, tea.Cmd) {
	if err := m.vm.OnEvent(vm.Launch); err != nil {
		m.logger.Warnf("launch rejected: %v", err)
		m.toasts.Add(fmt.Sprintf("Launch rejected: %v", err), model.ToastWarning)
		return m, nil
	}
	m.logger.Debug("launch submitted")
	return m, nil
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	next := style.ThemeNames[0]
	for i, name := range style.ThemeNames {
		if name == style.CurrentThemeName {
			next = style.ThemeNames[(i+1)%len(style.ThemeNames)]
			break
		}
	}
	style.SetTheme(next)
	if m.saveTheme != nil {
		if err := m.saveTheme(next); err != nil {
			m.logger.Warnf("save theme %s: %v", next, err)
			m.toasts.Add(fmt.Sprintf("Theme %s not saved: %v", next, err), model.ToastWarning)
			return m, nil
		}
	}
	m.toasts.Add("Theme: "+next, model.ToastInfo)
	return m, nil
}

func (m Model) toggleObserver(id int) (tea.Model, tea.Cmd) {
	o := &m.observers[id-1]
	if o.IsSubscribed() {
		m.subs[id].Cancel()
		o.SetSubscribed(false)
		m.toasts.Add(fmt.Sprintf("Observer %d unsubscribed", id), model.ToastInfo)
		return m, nil
	}
	m.subs[id] = m.vm.Subscribe()
	o.SetSubscribed(true)
	m.toasts.Add(fmt.Sprintf("Observer %d subscribed", id), model.ToastInfo)
	return m, listen(id, m.subs[id])
}

func (m Model) handleStateChanged(v msg.StateChanged) (tea.Model, tea.Cmd) {
	if v.Observer < 0 || v.Observer >= len(m.subs) || v.Sub != m.subs[v.Observer] {
		return m, nil
	}
	if v.Observer == screenObserver {
		m.applyScreenState(v.State)
	} else {
		updated, _ := m.observers[v.Observer-1].Update(v)
		if o, ok := updated.(model.ObserverModel); ok {
			m.observers[v.Observer-1] = o
		}
	}
	return m, listen(v.Observer, v.Sub)
}

func (m *Model) applyScreenState(s vm.State) {
	m.logger.Debugf("screen state %s", s)
	m.state = s
	switch s.Kind {
	case vm.KindRunning:
		m.activity.Start()
	case vm.KindFinished:
		m.activity.Stop()
		m.lastResult = s.Result
		m.lastErr = nil
		m.banner.IncCycles()
	case vm.KindFailed:
		m.activity.Stop()
		m.lastErr = s.Err
		m.banner.IncCycles()
		m.toasts.Add(fmt.Sprintf("Computation failed: %v", s.Err), model.ToastError)
	default:
		m.activity.Stop()
	}
}

func (m Model) handleObserverClosed(v msg.ObserverClosed) (tea.Model, tea.Cmd) {
	if v.Observer < 0 || v.Observer >= len(m.subs) || v.Sub != m.subs[v.Observer] {
		return m, nil
	}
	if errors.Is(v.Err, vm.ErrClosed) {
		m.logger.Debugf("observer %d closed with view model", v.Observer)
	}
	if v.Observer != screenObserver {
		updated, _ := m.observers[v.Observer-1].Update(v)
		if o, ok := updated.(model.ObserverModel); ok {
			m.observers[v.Observer-1] = o
		}
	}
	return m, nil
}

// listen waits for the next emission on sub and reports it as a message.
func listen(id int, sub *vm.Subscription) tea.Cmd {
	return func() tea.Msg {
		s, err := sub.Next(context.Background())
		if err != nil {
			return msg.ObserverClosed{Observer: id, Sub: sub, Err: err}
		}
		return msg.StateChanged{Observer: id, Sub: sub, State: s}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return msg.TickMsg{} })
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
