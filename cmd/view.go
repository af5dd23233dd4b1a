package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grovetools/lens/cli"
	"github.com/grovetools/lens/config"
	"github.com/grovetools/lens/docload"
	"github.com/grovetools/lens/doctree"
	"github.com/grovetools/lens/logging"
	"github.com/grovetools/lens/tui"
	"github.com/grovetools/lens/tui/components/treeview"
	"github.com/grovetools/lens/version"
)

// NewRootCmd builds the lens root command. Running it with a file argument
// (or piped stdin) opens the interactive document viewer.
func NewRootCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"lens [file]",
		"Terminal explorer for JSON and YAML documents",
	)
	cmd.Long = `Lens renders a JSON or YAML document as an interactively expandable tree.

Pass a file path, or pipe a document to stdin. Use / to search (with
optional regular expressions), n/N to jump between matches, and h/l or
space to fold and unfold subtrees.

Examples:
  # View a file
  lens config.json

  # Pipe from another tool
  kubectl get pod mypod -o json | lens

  # Start fully collapsed and follow changes on disk
  lens --collapsed --watch state.yaml`
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	info := version.GetInfo()
	cmd.Version = info.Version
	cli.SetVersionTemplate(cmd, cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: info.Platform,
	})

	cmd.Flags().Bool("collapsed", false, "Start with all subtrees collapsed")
	cmd.Flags().BoolP("watch", "w", false, "Reload the document when the file changes")
	cmd.Flags().StringP("format", "f", "auto", "Document format: auto, json, yaml")
	cmd.Flags().BoolP("regex", "r", false, "Treat search terms as regular expressions")
	cmd.Flags().Bool("groups-only", false, "Highlight only regexp capture groups")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		if err := runView(cmd, path); err != nil {
			return cli.NewErrorHandler(verbose).Handle(err)
		}
		return nil
	}

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewConfigCmd())
	cli.ApplyStyledHelpRecursive(cmd)
	return cmd
}

func runView(cmd *cobra.Command, path string) error {
	log := logging.NewLogger("view")

	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	collapsed := cfg.Tree.StartCollapsed
	if cmd.Flags().Changed("collapsed") {
		collapsed, _ = cmd.Flags().GetBool("collapsed")
	}
	searchOpts := doctree.SearchOptions{
		Regex:      cfg.Search.Regex,
		GroupsOnly: cfg.Search.GroupsOnly,
	}
	if cmd.Flags().Changed("regex") {
		searchOpts.Regex, _ = cmd.Flags().GetBool("regex")
	}
	if cmd.Flags().Changed("groups-only") {
		searchOpts.GroupsOnly, _ = cmd.Flags().GetBool("groups-only")
	}
	formatStr, _ := cmd.Flags().GetString("format")
	format := docload.Format(formatStr)
	watch, _ := cmd.Flags().GetBool("watch")

	doc, err := docload.Load(path, format)
	if err != nil {
		return err
	}

	title := path
	if title == "" || title == "-" {
		title = "stdin"
	}

	store := doctree.NewStore()
	store.BuildNodes(doc, collapsed)
	log.Debugf("loaded %s: %d visible nodes", title, len(store.DisplayNodes()))

	view := treeview.New(store, title, searchOpts)
	view.Watching = watch && path != "" && path != "-"

	tui.InitializeTUI()
	program := tea.NewProgram(viewApp{tree: view}, tea.WithAltScreen())

	if view.Watching {
		watcher, err := docload.NewWatcher(path, format, 200, func(doc interface{}, err error) {
			program.Send(treeview.DocReloadedMsg{Doc: doc, Err: err})
		})
		if err != nil {
			return err
		}
		defer watcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go watcher.Start(ctx)
	}

	_, err = program.Run()
	return err
}

// viewApp is the top-level program model: it owns quit handling and defers
// everything else to the tree viewer.
type viewApp struct {
	tree treeview.Model
}

func (a viewApp) Init() tea.Cmd {
	return a.tree.Init()
}

func (a viewApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
	case treeview.BackMsg:
		return a, tea.Quit
	}

	next, cmd := a.tree.Update(msg)
	a.tree = next.(treeview.Model)
	return a, cmd
}

func (a viewApp) View() string {
	return a.tree.View()
}
