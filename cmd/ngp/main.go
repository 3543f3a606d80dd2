package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/ngp/internal/config"
	"github.com/standardbeagle/ngp/internal/debug"
	"github.com/standardbeagle/ngp/internal/scan"
	"github.com/standardbeagle/ngp/internal/subsearch"
	"github.com/standardbeagle/ngp/internal/tui"
	"github.com/standardbeagle/ngp/internal/version"
)

func main() {
	app := &cli.App{
		Name:                   "ngp",
		Usage:                  "interactive recursive source grep",
		Version:                version.Info(),
		UseShortOptionHandling: true,
		ArgsUsage:              "pattern [directory-or-file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "i", Usage: "case-insensitive search"},
			&cli.BoolFlag{Name: "r", Usage: "raw mode, scan every file"},
			&cli.StringSliceFlag{Name: "t", Usage: "add extension to include list (repeatable)"},
			&cli.StringFlag{Name: "o", Usage: "reset include list to just this extension"},
			&cli.BoolFlag{Name: "e", Usage: "treat pattern as a regular expression"},
			&cli.BoolFlag{Name: "f", Usage: "follow symbolic links"},
			&cli.StringSliceFlag{Name: "x", Usage: "exclude directory by inode (repeatable)"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	pattern := c.Args().First()
	if pattern == "" || c.Args().Len() > 2 {
		cli.ShowAppHelp(c)
		return cli.Exit("ngp: expected a pattern and an optional directory", 1)
	}

	directory := c.Args().Get(1)
	if directory == "" {
		directory = "./"
	}

	attrs, err := config.LoadNGPRC()
	if err != nil {
		return ngpFatal(err)
	}
	attrs, err = config.LoadSupplemental(attrs)
	if err != nil {
		return ngpFatal(err)
	}

	attrs, err = config.ApplyCLIFlags(attrs, config.CLIFlags{
		CaseInsensitive: c.Bool("i"),
		Raw:             c.Bool("r") || attrs.Raw,
		Regex:           c.Bool("e"),
		FollowSymlinks:  c.Bool("f"),
		AddExtensions:   c.StringSlice("t"),
		ResetExtension:  c.String("o"),
		ExcludeDirs:     c.StringSlice("x"),
	})
	if err != nil {
		return ngpFatal(err)
	}

	root, err := subsearch.NewRoot(directory, pattern, attrs.UseRegex, attrs.CaseInsensitive)
	if err != nil {
		return ngpFatal(err)
	}

	var dataMutex sync.RWMutex
	pipeline := scan.NewPipeline(directory, attrs, root.Matcher, root.Store, &dataMutex)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		debug.LogScan("received signal %v, cancelling scan", sig)
		cancel()
	}()

	scanErrChan := make(chan error, 1)
	go func() {
		runErr := pipeline.Run(ctx)
		dataMutex.Lock()
		root.Status = subsearch.StatusDone
		dataMutex.Unlock()
		scanErrChan <- runErr
	}()

	model := tui.New(root, &dataMutex, attrs.EditorCommand, attrs.CaseInsensitive)
	program := tea.NewProgram(model)
	debug.SetTUIActive(true)
	_, uiErr := program.Run()
	debug.SetTUIActive(false)

	cancel()
	<-scanErrChan

	if uiErr != nil {
		return ngpFatal(uiErr)
	}
	return nil
}

// ngpFatal reports a startup misconfiguration per spec.md §7: print a
// diagnostic and exit non-zero, rather than calling os.Exit deep in a
// helper.
func ngpFatal(err error) error {
	return cli.Exit(err.Error(), 1)
}
