package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/aliskhannn/quiz-trainer/internal/app"
	"github.com/aliskhannn/quiz-trainer/internal/config"
	"github.com/aliskhannn/quiz-trainer/internal/delivery/tui"
	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/service"
)

// localUserID keys the preferences of the terminal user.
const localUserID = 0

func main() {
	os.Exit(run())
}

func run() int {
	var (
		filter  = flag.String("filter", "", "comma-separated categories, or all")
		maxQ    = flag.String("max", "", "questions per session")
		seed    = flag.String("seed", "", "seed for a reproducible order")
		mode    = flag.String("mode", "", "study or exam")
		lang    = flag.String("lang", "", "bank language")
		noColor = flag.Bool("no-color", false, "disable colors")
		verbose = flag.Bool("verbose", false, "log to stderr")
	)
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "trainer needs an interactive terminal")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Logs would corrupt the TUI unless asked for.
	lg := zap.NewNop()
	if *verbose {
		if lg, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validator := service.NewValidator(lg)
	source := app.NewQuestionSource(cfg, validator, lg)

	prefsStore, closePrefs, err := app.OpenPreferences(ctx, cfg, lg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closePrefs()

	prefs, err := service.NewPreferencesService(prefsStore, cfg.Quiz.Languages, cfg.Quiz.DefaultLanguage).
		GetOrDefault(ctx, localUserID)
	if err != nil {
		prefs = entities.NewPreferences(localUserID)
	}
	req := prefs.Request()
	override(&req.Filter, *filter)
	override(&req.Max, *maxQ)
	override(&req.Seed, *seed)
	override(&req.Mode, *mode)
	override(&req.Language, *lang)

	session := service.NewSession(source,
		service.WithLogger(lg),
		service.WithValidator(validator),
		service.WithPreferences(prefsStore, localUserID),
		service.WithLanguages(cfg.Quiz.Languages, cfg.Quiz.DefaultLanguage),
	)

	model := tui.NewModel(ctx, session, req, tui.Options{NoColor: *noColor})
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
