package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"kharcha/internal/config"
	"kharcha/internal/controllers"
	"kharcha/internal/core"
	"kharcha/internal/log"
	"kharcha/internal/session"
	"kharcha/internal/store"
	"kharcha/internal/store/memory"
	"kharcha/internal/store/rest"
	"kharcha/internal/store/sqlite"
)

const usage = `kharcha - personal expense tracker

Usage:
  kharcha [command] [flags]

Commands:
  dashboard   Current month overview with budget usage (default)
  list        List expenses grouped by day; -month -year -category
  add         Record an expense; -title -amount -category -date
  edit        Replace an expense; -id plus the fields to change
  delete      Remove an expense; -id
  budget      Set the monthly budget; -amount
  login       Store an API token; -token
  logout      Drop the stored session
  theme       Toggle between dark and light
`

func main() {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	sess, err := session.Load(cfg.SessionFile)
	if err != nil {
		logger.Error("Failed to load session", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{cfg: cfg, sess: sess, logger: logger}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, store.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "Not authenticated. Run: kharcha login -token <token>")
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	sess   *session.Session
	logger *log.Logger
	ctx    context.Context
}

func (a *app) run(ctx context.Context, args []string) error {
	a.ctx = ctx
	cmd := "dashboard"
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	// Session-only commands need no backend.
	switch cmd {
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	case "login":
		return a.login(args)
	case "logout":
		a.logger.Info("Session cleared", log.FieldOperation, log.OpLogout)
		return a.sess.Clear()
	case "theme":
		return a.toggleTheme()
	}

	backend, err := a.openStore()
	if err != nil {
		return err
	}
	if backend.Cleanup != nil {
		defer func() {
			if err := backend.Cleanup(); err != nil {
				a.logger.Warn("Backend cleanup failed", log.FieldError, err)
			}
		}()
	}
	st := backend.Store

	switch cmd {
	case "dashboard":
		return a.dashboard(st)
	case "list":
		return a.list(st, args)
	case "add":
		return a.add(st, args)
	case "edit":
		return a.edit(st, args)
	case "delete":
		return a.remove(st, args)
	case "budget":
		return a.budget(st, args)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// openStore builds the backend the configuration selects, mirroring the
// rest of the app: the remote API by default, sqlite or memory for
// offline use.
func (a *app) openStore() (store.Result, error) {
	backend, err := store.ParseBackendType(a.cfg.DataBackend)
	if err != nil {
		return store.Result{}, err
	}

	switch backend {
	case store.SQLiteBackend:
		repo, err := sqlite.NewRepository(a.cfg.SQLiteDBPath)
		if err != nil {
			return store.Result{}, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		a.logger.Info("Initialized sqlite backend", log.FieldBackend, backend.String())
		return store.Result{Store: repo, Cleanup: repo.Close}, nil
	case store.MemoryBackend:
		st := memory.New(core.UserProfile{Name: "Demo User", Email: "demo@kharcha.local", Budget: core.Money{Cents: 50000}})
		a.logger.Info("Initialized memory backend", log.FieldBackend, backend.String())
		return store.Result{Store: st}, nil
	default:
		client, err := rest.New(a.cfg.APIBaseURL, a.sess, a.cfg.HTTPTimeout)
		if err != nil {
			return store.Result{}, fmt.Errorf("initialize rest backend: %w", err)
		}
		a.logger.Info("Initialized rest backend", log.FieldBackend, backend.String())
		return store.Result{Store: client}, nil
	}
}

func (a *app) controllerOptions() controllers.Options {
	return controllers.Options{
		BannerTTL:   a.cfg.BannerTTL,
		CallTimeout: a.cfg.HTTPTimeout,
		Logger:      a.logger.WithComponent(log.ComponentController),
		Parent:      a.ctx,
	}
}

func (a *app) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	token := fs.String("token", "", "API bearer token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" {
		return errors.New("login requires -token")
	}
	if err := a.sess.SetToken(*token); err != nil {
		return err
	}
	fmt.Println("Logged in.")
	return nil
}

func (a *app) toggleTheme() error {
	settings := controllers.NewSettings(nil, a.sess, a.controllerOptions())
	theme, err := settings.ToggleTheme()
	if err != nil {
		return err
	}
	fmt.Println("Theme:", theme)
	return nil
}

func (a *app) dashboard(st store.Store) error {
	d := controllers.NewDashboard(st, a.controllerOptions())
	defer d.Close()

	if err := d.Refresh(); err != nil {
		return err
	}
	snap, ok := d.Snapshot()
	if !ok {
		return errors.New("no dashboard data")
	}

	now := time.Now()
	fmt.Printf("%s %d - %s\n", now.Month(), now.Year(), snap.Profile.Name)
	fmt.Printf("Spent %s of %s (%.0f%%, %s)\n",
		snap.Total, snap.Profile.Budget, snap.Usage*100, snap.Band)
	for _, ct := range snap.Breakdown {
		fmt.Printf("  %-14s %10s\n", ct.Category, ct.Total)
	}
	return nil
}

func (a *app) list(st store.Store, args []string) error {
	now := time.Now()
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	month := fs.Int("month", int(now.Month()), "month 1-12")
	year := fs.Int("year", now.Year(), "four-digit year")
	category := fs.String("category", core.CategoryAll, "category or All")
	if err := fs.Parse(args); err != nil {
		return err
	}

	h := controllers.NewHistory(st, a.controllerOptions())
	defer h.Close()

	h.SetMonth(*month)
	h.SetYear(*year)
	h.SetCategory(*category)
	if err := h.Apply(); err != nil {
		return err
	}

	buckets := h.Buckets()
	if len(buckets) == 0 {
		fmt.Println("No expenses found.")
		return nil
	}
	for _, b := range buckets {
		fmt.Println(b.Label)
		for _, e := range b.Expenses {
			fmt.Printf("  [%s] %-20s %10s  %s\n", e.ID, e.Title, e.Amount, e.Category)
		}
	}
	return nil
}

func (a *app) add(st store.Store, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	title := fs.String("title", "", "expense title")
	amount := fs.String("amount", "", "amount, e.g. 4.50")
	category := fs.String("category", "", "category, defaults to "+core.DefaultCategory)
	date := fs.String("date", "", "date YYYY-MM-DD, defaults to today")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := controllers.NewExpenseForm(st, a.controllerOptions())
	defer form.Close()

	form.SetFields(controllers.FormFields{Title: *title, Amount: *amount, Category: *category, Date: *date})
	res, err := form.Submit()
	if err != nil {
		return err
	}
	fmt.Printf("Added [%s] %s %s\n", res.Created.ID, res.Created.Title, res.Created.Amount)
	return nil
}

func (a *app) edit(st store.Store, args []string) error {
	now := time.Now()
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	id := fs.String("id", "", "expense identifier")
	month := fs.Int("month", int(now.Month()), "month the expense falls in")
	year := fs.Int("year", now.Year(), "year the expense falls in")
	title := fs.String("title", "", "new title")
	amount := fs.String("amount", "", "new amount")
	category := fs.String("category", "", "new category")
	date := fs.String("date", "", "new date YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("edit requires -id")
	}

	h := controllers.NewHistory(st, a.controllerOptions())
	h.SetMonth(*month)
	h.SetYear(*year)
	if err := h.Apply(); err != nil {
		h.Close()
		return err
	}
	seed, ok := h.EditSeed(*id)
	h.Close()
	if !ok {
		return fmt.Errorf("expense %q: %w", *id, store.ErrNotFound)
	}

	form := controllers.NewExpenseForm(st, a.controllerOptions())
	defer form.Close()

	form.BeginEdit(seed)
	fields := form.Fields()
	if *title != "" {
		fields.Title = *title
	}
	if *amount != "" {
		fields.Amount = *amount
	}
	if *category != "" {
		fields.Category = *category
	}
	if *date != "" {
		fields.Date = *date
	}
	form.SetFields(fields)

	res, err := form.Submit()
	if err != nil {
		return err
	}
	fmt.Printf("Updated as [%s] %s %s\n", res.Created.ID, res.Created.Title, res.Created.Amount)
	return nil
}

func (a *app) remove(st store.Store, args []string) error {
	now := time.Now()
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.String("id", "", "expense identifier")
	month := fs.Int("month", int(now.Month()), "month the expense falls in")
	year := fs.Int("year", now.Year(), "year the expense falls in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("delete requires -id")
	}

	h := controllers.NewHistory(st, a.controllerOptions())
	defer h.Close()

	h.SetMonth(*month)
	h.SetYear(*year)
	if err := h.Apply(); err != nil {
		return err
	}
	if err := h.Delete(*id); err != nil {
		return err
	}
	fmt.Println("Deleted", *id)
	return nil
}

func (a *app) budget(st store.Store, args []string) error {
	fs := flag.NewFlagSet("budget", flag.ContinueOnError)
	amount := fs.String("amount", "", "monthly budget, e.g. 600.00")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *amount == "" {
		return errors.New("budget requires -amount")
	}

	s := controllers.NewSettings(st, a.sess, a.controllerOptions())
	defer s.Close()

	if err := s.Load(); err != nil {
		return err
	}
	if err := s.SaveBudget(*amount); err != nil {
		return err
	}
	p, _ := s.Profile()
	fmt.Println("Budget set to", p.Budget)
	return nil
}
