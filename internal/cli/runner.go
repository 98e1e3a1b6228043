package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/todo/internal/app"
	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/log"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/store/jsonstore"
	"github.com/idilsaglam/todo/internal/store/kv"
	"github.com/idilsaglam/todo/internal/store/sqlitestore"
	"github.com/idilsaglam/todo/internal/ui"
	"github.com/idilsaglam/todo/internal/view"
	"github.com/idilsaglam/todo/internal/watch"
)

// Options tune output behavior from root flags. Empty strings keep the
// configured value.
type Options struct {
	Group    bool // list grouped by pending/done
	Config   string
	Storage  string
	Path     string
	Theme    string
	Filter   string
	LogLevel string
}

type command func(s *session, args []string) int

var commands = map[string]command{
	"ls":     doList,
	"add":    doAdd,
	"done":   doToggle,
	"edit":   doEdit,
	"rm":     doRemove,
	"all":    doToggleAll,
	"clear":  doClear,
	"export": doExport,
	"ui":     doUI,
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	}

	run, ok := commands[cmd]
	if !ok {
		ui.Fail("unknown subcommand: " + cmd)
		fmt.Fprintln(os.Stderr)
		PrintHelp()
		return 2
	}

	s, code := openSession(opt, cmd == "ui")
	if code != 0 {
		return code
	}
	defer s.close()
	return run(s, a)
}

func PrintHelp() {
	fmt.Printf(`todo - a tiny todo list

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  ui                   Interactive list (add, edit, toggle, filter)
  add <text...>        Add a new item (text can be multiple words)
  ls [filter]          List items; filter is all, active or completed
  done <id>            Toggle done for the item with id
  edit <id> <text...>  Replace the text of an item (empty text removes it)
  rm <id>              Remove the item with id
  all <on|off>         Mark every item done (on) or active (off)
  clear                Remove completed items
  export [json|toml]   Print every item

Flags:
  -group               group ls output by pending/done
  -config <file>       config file (default ~/.config/tada/config.toml)
  -storage <backend>   json, sqlite or memory
  -path <path>         data directory (json) or database file (sqlite)
  -theme <name>        classic, neon or mono
  -filter <name>       initial filter for ui and ls
  -log-level <level>   debug, info, warn or error

Examples:
  todo add "Buy milk"
  todo ls active
  todo done 2
  todo edit 2 "Buy oat milk"
  todo rm 3
`)
}

// -------------- session ----------------

type session struct {
	cfg     config.Config
	backend kv.Backend
	store   *store.Store
	// watchPath is the file the TUI reloads from; empty disables watching
	watchPath string
}

func openSession(opt Options, interactive bool) (*session, int) {
	cfg, err := config.Load(opt.Config)
	if err != nil {
		ui.Fail(err.Error())
		return nil, 1
	}
	applyOverrides(&cfg, opt)
	if err := cfg.Validate(); err != nil {
		ui.Fail(err.Error())
		return nil, 2
	}

	logOpts := log.Options{Level: cfg.Log.Level, File: cfg.Log.File}
	if !interactive {
		logOpts.Output = os.Stderr
	}
	if err := log.Init(logOpts); err != nil {
		ui.Fail("log: " + err.Error())
		return nil, 1
	}
	if err := ui.SetTheme(cfg.UI.Theme); err != nil {
		ui.Fail(err.Error())
		return nil, 2
	}

	s := &session{cfg: cfg}
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := sqlitestore.Open(cfg.DataPath())
		if err != nil {
			ui.Fail("open: " + err.Error())
			return nil, 1
		}
		s.backend = db
	case config.BackendMemory:
		s.backend = kv.NewMemory()
	default:
		js, err := jsonstore.New(cfg.DataPath())
		if err != nil {
			ui.Fail("open: " + err.Error())
			return nil, 1
		}
		s.backend = js
		if cfg.Storage.Watch {
			s.watchPath = js.Path(store.ItemsKey)
		}
	}
	log.Debug().Str("backend", cfg.Storage.Backend).Str("path", cfg.DataPath()).Msg("storage opened")

	s.store = store.New(s.backend)
	if err := s.store.Init(); err != nil {
		s.close()
		ui.Fail("load: " + err.Error())
		return nil, 1
	}
	return s, 0
}

func applyOverrides(cfg *config.Config, opt Options) {
	if opt.Storage != "" {
		cfg.Storage.Backend = opt.Storage
	}
	if opt.Path != "" {
		cfg.Storage.Path = opt.Path
	}
	if opt.Theme != "" {
		cfg.UI.Theme = opt.Theme
	}
	if opt.Filter != "" {
		cfg.UI.Filter = opt.Filter
	}
	if opt.LogLevel != "" {
		cfg.Log.Level = opt.LogLevel
	}
	cfg.UI.Group = cfg.UI.Group || opt.Group
}

func (s *session) close() {
	if s.backend == nil {
		return
	}
	if err := s.backend.Close(); err != nil {
		log.Warn().Err(err).Msg("close storage")
	}
	_ = log.Close()
}

// saved reports the outcome of a mutation.
func (s *session) saved(msg string) int {
	if err := s.store.Err(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(msg)
	return 0
}

// lookup parses an id argument and checks that the item exists.
func (s *session) lookup(cmd, arg string) (model.Item, int) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		ui.Fail(cmd + ": not a number: " + arg)
		return model.Item{}, 2
	}
	it, ok := s.store.Find(id)
	if !ok {
		ui.Fail(fmt.Sprintf("%s: no item with id %d", cmd, id))
		ui.Hint("Hint: run `todo ls` to see valid ids")
		return model.Item{}, 2
	}
	return it, 0
}

// -------------- subcommand impls ----------------

func doAdd(s *session, a []string) int {
	if len(a) == 0 {
		ui.Fail("usage: todo add <text...>")
		return 2
	}
	it, ok := s.store.Add(strings.Join(a, " "))
	if !ok {
		ui.Fail("add: empty text")
		return 2
	}
	return s.saved(fmt.Sprintf("added #%d", it.ID))
}

func doToggle(s *session, a []string) int {
	if len(a) != 1 {
		ui.Fail("usage: todo done <id>")
		return 2
	}
	it, code := s.lookup("done", a[0])
	if code != 0 {
		return code
	}
	s.store.Toggle(it.ID)
	state := "done"
	if it.Done {
		state = "active"
	}
	return s.saved(fmt.Sprintf("#%d is %s", it.ID, state))
}

func doEdit(s *session, a []string) int {
	if len(a) < 1 {
		ui.Fail("usage: todo edit <id> <text...>")
		return 2
	}
	it, code := s.lookup("edit", a[0])
	if code != 0 {
		return code
	}
	text := strings.TrimSpace(strings.Join(a[1:], " "))
	s.store.Edit(it.ID, text)
	if text == "" {
		return s.saved(fmt.Sprintf("removed #%d", it.ID))
	}
	return s.saved(fmt.Sprintf("edited #%d", it.ID))
}

func doRemove(s *session, a []string) int {
	if len(a) != 1 {
		ui.Fail("usage: todo rm <id>")
		return 2
	}
	it, code := s.lookup("rm", a[0])
	if code != 0 {
		return code
	}
	s.store.Delete(it.ID)
	return s.saved(fmt.Sprintf("removed #%d", it.ID))
}

func doToggleAll(s *session, a []string) int {
	if len(a) != 1 {
		ui.Fail("usage: todo all <on|off>")
		return 2
	}
	var done bool
	switch strings.ToLower(a[0]) {
	case "on", "done", "true":
		done = true
	case "off", "active", "false":
	default:
		ui.Fail("all: want on or off, got " + a[0])
		return 2
	}
	s.store.ToggleAll(done)
	state := "active"
	if done {
		state = "done"
	}
	return s.saved(fmt.Sprintf("marked %d items %s", len(s.store.Items()), state))
}

func doClear(s *session, a []string) int {
	if len(a) != 0 {
		ui.Fail("usage: todo clear")
		return 2
	}
	done, _ := model.Counts(s.store.Items())
	s.store.ClearCompleted()
	return s.saved(fmt.Sprintf("cleared %d completed", done))
}

func doList(s *session, a []string) int {
	if len(a) > 1 {
		ui.Fail("usage: todo ls [all|active|completed]")
		return 2
	}
	raw := s.cfg.UI.Filter
	if len(a) == 1 {
		raw = a[0]
	}
	filter, err := model.ParseFilter(raw)
	if err != nil {
		ui.Fail("ls: " + err.Error())
		return 2
	}

	all := s.store.Items()
	t := ui.Current()

	// Header + progress
	d, p := model.Counts(all)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(all),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	items := model.Apply(all, filter)
	if s.cfg.UI.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	if filter != model.FilterAll {
		lines = append(lines, t.Muted.Render("Showing "+filter.Label()))
	}
	lines = append(lines, t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(lines)
	return 0
}

type exportDoc struct {
	Todos []model.Item `toml:"todos"`
}

func doExport(s *session, a []string) int {
	format := "json"
	if len(a) == 1 {
		format = strings.ToLower(a[0])
	} else if len(a) > 1 {
		ui.Fail("usage: todo export [json|toml]")
		return 2
	}
	items := s.store.Items()
	switch format {
	case "json":
		b, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			ui.Fail("export: " + err.Error())
			return 1
		}
		fmt.Println(string(b))
	case "toml":
		if err := toml.NewEncoder(os.Stdout).Encode(exportDoc{Todos: items}); err != nil {
			ui.Fail("export: " + err.Error())
			return 1
		}
	default:
		ui.Fail("export: unknown format " + format)
		return 2
	}
	return 0
}

func doUI(s *session, a []string) int {
	if len(a) != 0 {
		ui.Fail("usage: todo ui")
		return 2
	}
	filter, err := model.ParseFilter(s.cfg.UI.Filter)
	if err != nil {
		ui.Fail("ui: " + err.Error())
		return 2
	}
	r, err := view.New(view.Options{Theme: s.cfg.UI.Theme})
	if err != nil {
		ui.Fail(err.Error())
		return 2
	}
	coord, err := app.New(s.store, r, filter)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer coord.Close()

	var changes <-chan struct{}
	if s.watchPath != "" {
		w, err := watch.New(s.watchPath)
		if err != nil {
			log.Warn().Err(err).Msg("live reload disabled")
		} else {
			defer w.Close()
			changes = w.Changes()
		}
	}

	if err := app.NewProgram(coord, changes).Run(); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	if err := s.store.Err(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	return 0
}

// -------------- rendering helpers --------------

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		id := fmt.Sprintf("#%-3d", it.ID)
		box := t.Muted.Render(t.BoxUnchecked)
		text := ansi.Truncate(it.Text, 80, "...")
		if it.Done {
			box = t.Success.Render(t.BoxChecked)
			text = t.DoneText.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(id), box, text))
	}
	return out
}

func groupLines(items []model.Item) []string {
	t := ui.Current()
	pend := model.Apply(items, model.FilterActive)
	done := model.Apply(items, model.FilterCompleted)

	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
