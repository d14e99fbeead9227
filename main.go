package main

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"go.uber.org/zap"

	"aptls/internal/apt"
	"aptls/internal/config"
	"aptls/internal/model"
	"aptls/internal/tui"
	"aptls/internal/web"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "aptls-dev",
		Repository: "aptls",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/aptls-dev/aptls/releases")
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: aptls [options]\n\n")
		fmt.Fprintf(os.Stderr, "aptls browses apt's package list as a sortable, markable table.\n")
		fmt.Fprintf(os.Stderr, "It runs the list command locally or over ssh, parses the output,\n")
		fmt.Fprintf(os.Stderr, "and keeps aggregate statistics per status category.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  aptls                        # Start TUI mode\n")
		fmt.Fprintf(os.Stderr, "  aptls --upgradable           # Only upgradable packages\n")
		fmt.Fprintf(os.Stderr, "  aptls -H admin@web1 -r       # Remote list, plain-text report\n")
		fmt.Fprintf(os.Stderr, "  aptls --json                 # Output table and stats as JSON\n")
	}

	upgradableFlag := pflag.Bool("upgradable", false, "List only upgradable packages")
	installedFlag := pflag.Bool("installed", false, "List only installed packages")
	allVersionsFlag := pflag.Bool("all-versions", false, "List every available version")
	hostFlag := pflag.StringP("host", "H", "", "Run the list command on a remote host (user@host)")
	jsonFlag := pflag.BoolP("json", "j", false, "Output the table and statistics as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Print a plain-text report (CLI mode)")
	outputFlag := pflag.StringP("output", "o", "", "Save the report to the specified file (with --report)")
	webFlag := pflag.BoolP("web", "w", false, "Serve the table as a JSON API")
	portFlag := pflag.String("port", "8080", "Port for --web mode")
	debugFlag := pflag.Bool("debug", false, "Write debug logs to aptls-debug.log")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("aptls version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	cfg, schema, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(*debugFlag)
	defer func() {
		_ = logger.Sync()
	}()

	command := cfg.Settings.ListCommand
	switch {
	case *upgradableFlag:
		command += " --upgradable"
	case *installedFlag:
		command += " --installed"
	case *allVersionsFlag:
		command += " --all-versions"
	}

	runner := apt.ExecRunner{SSH: cfg.Settings.SSHCommand}
	session := apt.NewSession(runner, schema, logger)

	if *webFlag {
		srv := web.NewServer(session, cfg.Settings.ListCommand, *hostFlag)
		if err := srv.Start(*portFlag); err != nil {
			os.Exit(1)
		}
		return
	}

	if *reportFlag {
		runReportMode(session, command, *hostFlag, *outputFlag)
		return
	}

	if *jsonFlag {
		runJsonMode(session, command, *hostFlag)
		return
	}

	// Default: TUI
	runTuiMode(session, cfg.Settings.ListCommand, *hostFlag, *upgradableFlag)
}

// newLogger returns a file-backed debug logger, or a no-op one. The TUI owns
// the terminal, so logs never go to stdout/stderr.
func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{"aptls-debug.log"}
	zcfg.ErrorOutputPaths = []string{"aptls-debug.log"}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func runReportMode(session *apt.Session, command, target, outputFile string) {
	if err := session.RunList(command, target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report := apt.Report(session)
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(report), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
	} else {
		fmt.Println(report)
	}
}

func runJsonMode(session *apt.Session, command, target string) {
	if err := session.RunList(command, target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(session.Snapshot())
}

func runTuiMode(session *apt.Session, baseCommand, target string, upgradable bool) {
	m := tui.InitialModel(session, baseCommand, target)
	m.UpgradableOnly = upgradable
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
