package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/laydown/internal/archive"
	"github.com/idilsaglam/laydown/internal/config"
	"github.com/idilsaglam/laydown/internal/editor"
	"github.com/idilsaglam/laydown/internal/model"
	"github.com/idilsaglam/laydown/internal/store/yamlstore"
	"github.com/idilsaglam/laydown/internal/ui"
)

// Options wire the runner to its environment. Zero values mean the process's
// own stdio and wall clock.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time
}

func (o *Options) defaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// usageError marks failures caused by how the command was invoked.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageErrorf("%s: %v", cmd.Name(), err)
		}
		return nil
	}
}

type app struct {
	opt Options

	configDir string
	env       string
	theme     string
	noColor   bool
	debug     bool

	cfg   *config.Config
	store *yamlstore.Store
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	a := &app{opt: opt}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(opt.Stdin)
	root.SetOut(opt.Stdout)
	root.SetErr(opt.Stderr)

	if err := root.Execute(); err != nil {
		ui.Fail(opt.Stderr, err.Error())
		var ue usageError
		if errors.As(err, &ue) {
			ui.Hint(opt.Stderr, `Try "laydown help" for a list of commands.`)
			return 2
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "laydown",
		Short: "Keep a running standup: what you did, are doing, blockers and sidebars",
		Long: strings.TrimSpace(`
Running "laydown" without a command displays your standup.

Items are added to one of four sections:
  di, did      <item>   DID
  do, doing    <item>   DOING
  bl, blocker  <item>   BLOCKERS
  sb, sidebar  <item>   SIDEBARS

The standup is stored as YAML in your config directory. Use "laydown edit" to
change or delete entries by hand, "laydown undo" to remove the last item added,
and "laydown archive" to save today's standup and start a fresh one.`),
		Example: strings.TrimSpace(`
  laydown did "Reviewed the release notes"
  laydown do Pairing on the importer
  laydown undo
  laydown edit "code --wait"
  laydown archive`),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.doShow("auto")
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "Config directory (default: $LAYDOWN_CONFIG_DIR or <user config dir>/laydown)")
	pf.StringVar(&a.env, "env", "", "Record file to use: prod or test")
	pf.StringVar(&a.theme, "theme", "", "Color theme: classic, neon or mono")
	pf.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&a.debug, "debug", false, "Log debug details to stderr")

	for _, c := range []struct {
		name, alias, section string
	}{
		{"did", "di", "DID"},
		{"doing", "do", "DOING"},
		{"blocker", "bl", "BLOCKERS"},
		{"sidebar", "sb", "SIDEBARS"},
	} {
		root.AddCommand(newAddCmd(a, c.name, c.alias, c.section))
	}
	root.AddCommand(newShowCmd(a))
	root.AddCommand(&cobra.Command{
		Use:   "undo",
		Short: "Remove the last item added to your standup",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  func(cmd *cobra.Command, args []string) error { return a.doUndo() },
	})
	root.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all items from your standup",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  func(cmd *cobra.Command, args []string) error { return a.doClear() },
	})
	root.AddCommand(&cobra.Command{
		Use:   "edit [editor]",
		Short: "Open the standup file in an editor ($VISUAL, $EDITOR or vi by default)",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := a.cfg.Editor
			if len(args) == 1 {
				ed = args[0]
			}
			return a.doEdit(ed)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "archive",
		Short: "Save today's standup to a dated file and start a fresh one",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  func(cmd *cobra.Command, args []string) error { return a.doArchive() },
	})
	return root
}

func newAddCmd(a *app, name, alias, section string) *cobra.Command {
	return &cobra.Command{
		Use:     name + " <item...>",
		Aliases: []string{alias},
		Short:   "Add an item to the " + section + " section",
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := model.ParseCategory(cmd.CalledAs())
			if err != nil {
				return usageError{msg: err.Error()}
			}
			return a.doAdd(c, strings.Join(args, " "))
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display your standup",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "auto", "plain", "panel", "markdown":
				return a.doShow(format)
			}
			return usageErrorf("show: unknown format %q (want auto, plain, panel or markdown)", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "auto", "Output format: auto, plain, panel or markdown")
	return cmd
}

// setup resolves configuration and binds the store; it runs before every command.
func (a *app) setup() error {
	cfg, err := config.Load(a.configDir)
	if err != nil {
		return err
	}
	if err := cfg.Apply(a.env, a.theme, a.debug); err != nil {
		return usageError{msg: err.Error()}
	}
	if err := cfg.Ensure(); err != nil {
		return err
	}

	log.SetOutput(a.opt.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	ui.SetTheme(cfg.Theme)
	ui.SetColorProfile(a.noColor)

	a.cfg = cfg
	a.store = yamlstore.New(cfg.DataFile())
	log.WithFields(log.Fields{"file": cfg.DataFile(), "env": cfg.Env}).Debug("config resolved")
	return nil
}

// -------------- subcommand impls ----------------

func (a *app) doShow(format string) error {
	st, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	out := a.opt.Stdout
	if format == "auto" {
		format = "plain"
		if f, ok := out.(*os.File); ok && ui.IsTerminal(f) {
			format = "panel"
		}
	}
	switch format {
	case "panel":
		fmt.Fprintln(out, ui.StandupPanel(st))
	case "markdown":
		fmt.Fprintln(out, ui.Markdown(st.Markdown(), 80))
	default:
		fmt.Fprint(out, st.String())
	}
	return nil
}

func (a *app) doAdd(c model.Category, item string) error {
	item = strings.TrimSpace(item)
	if item == "" {
		return usageErrorf("%s: empty item", c)
	}
	st, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := a.store.AppendItem(&st, c, item); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	ui.OK(a.opt.Stdout, "added to "+c.Heading())
	return nil
}

func (a *app) doUndo() error {
	st, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if len(st.History) == 0 {
		return nil
	}
	last := st.History[len(st.History)-1]
	if _, err := a.store.Undo(&st); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	ui.OK(a.opt.Stdout, fmt.Sprintf("removed %q from %s", last.Item, last.Category.Heading()))
	return nil
}

func (a *app) doClear() error {
	if _, err := a.store.Load(); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	ui.OK(a.opt.Stdout, "cleared")
	return nil
}

// doEdit does not load first: a file that no longer parses is exactly what
// the editor is for.
func (a *app) doEdit(command string) error {
	path := a.store.Path()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := a.store.Save(model.New()); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	if err := editor.ManualEdit(path, command); err != nil {
		return err
	}
	if _, err := a.store.Load(); err != nil {
		return fmt.Errorf("edited file is not a valid standup, run \"laydown edit\" again to fix it: %w", err)
	}
	return nil
}

func (a *app) doArchive() error {
	st, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	arch := &archive.Archiver{
		Dir:    a.cfg.ArchiveDir,
		Store:  a.store,
		Prompt: a.prompter(),
	}
	today := a.opt.Now()
	done, err := arch.Archive(st, today)
	if err != nil {
		return err
	}
	if !done {
		ui.Hint(a.opt.Stdout, "kept the existing archive; standup not cleared")
		return nil
	}
	ui.OK(a.opt.Stdout, "archived to "+arch.PathFor(today))
	return nil
}

func (a *app) prompter() archive.Prompter {
	in, inOK := a.opt.Stdin.(*os.File)
	if inOK && ui.IsTerminal(in) {
		return ui.TeaPrompter{In: in, Out: a.opt.Stdout}
	}
	return ui.NewLinePrompter(a.opt.Stdin, a.opt.Stdout)
}
