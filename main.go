package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/miosa/osa-launch/app"
	"github.com/miosa/osa-launch/compute"
	"github.com/miosa/osa-launch/config"
	"github.com/miosa/osa-launch/logger"
	"github.com/miosa/osa-launch/style"
	"github.com/miosa/osa-launch/vm"
)

var version = "dev"

func main() {
	profileFlag := flag.String("profile", "", "Named profile for state isolation (~/.osa-launch/profiles/<name>)")
	delayFlag := flag.Duration("delay", 0, "Computation delay (overrides config and LAUNCH_DELAY)")
	resultFlag := flag.String("result", "", "Computation result (overrides config and LAUNCH_RESULT)")
	headless := flag.Bool("headless", false, "Run launch cycles without the TUI and print observed states")
	cycles := flag.Int("cycles", 1, "Number of launch cycles in headless mode")
	autoLaunch := flag.Bool("launch", false, "Launch once at startup")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("osa-launch %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		lipgloss.SetColorProfile(0)
	}

	home, _ := os.UserHomeDir()
	profileDir := filepath.Join(home, ".osa-launch")
	if *profileFlag != "" {
		profileDir = filepath.Join(profileDir, "profiles", *profileFlag)
	}

	cfg := config.Load(profileDir)
	delay := cfg.Delay()
	if env := os.Getenv("LAUNCH_DELAY"); env != "" {
		if d, err := time.ParseDuration(env); err == nil && d > 0 {
			delay = d
		}
	}
	if *delayFlag > 0 {
		delay = *delayFlag
	}
	result := cfg.Result
	if env := os.Getenv("LAUNCH_RESULT"); env != "" {
		result = env
	}
	if *resultFlag != "" {
		result = *resultFlag
	}

	level := cfg.LogLevel
	if env := os.Getenv("LOGGING_LEVEL"); env != "" {
		level = env
	}
	format := logger.ParseFormat(os.Getenv("LOGGING_FORMAT"), logger.FormatConsole)

	var base *zap.Logger
	closeLog := func() error { return nil }
	if *headless {
		base = logger.New(os.Stderr, level, format)
	} else {
		var err error
		base, closeLog, err = logger.NewFile(profileDir, level, format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "osa-launch: logging disabled: %v\n", err)
		}
	}
	defer closeLog()

	heavy := compute.NewHeavy(delay, result, logger.For(base, logger.ComponentCompute))
	holder := vm.New(heavy,
		vm.WithLogger(logger.For(base, logger.ComponentViewModel)),
		vm.WithBufferSize(cfg.BufferSize),
	)
	defer holder.Close()

	if *headless {
		code := runHeadless(holder, *cycles, os.Stdout, logger.For(base, logger.ComponentHeadless))
		holder.Close()
		_ = closeLog()
		os.Exit(code)
	}

	style.SetTheme(resolveTheme(cfg.Theme, lipgloss.HasDarkBackground))

	m := app.New(holder,
		app.WithVersion(version),
		app.WithDelay(delay),
		app.WithAutoLaunch(*autoLaunch),
		app.WithLogger(logger.For(base, logger.ComponentApp)),
		app.WithThemeSaver(func(name string) error {
			cfg.Theme = name
			return config.Save(profileDir, cfg)
		}),
	)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "osa-launch: %v\n", err)
		holder.Close()
		_ = closeLog()
		os.Exit(1)
	}
}

// resolveTheme honours a known configured theme, else follows the
// terminal background.
func resolveTheme(configured string, hasDarkBackground func() bool) string {
	if _, ok := style.Themes[configured]; ok {
		return configured
	}
	if hasDarkBackground() {
		return "dark"
	}
	return "light"
}
