package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"instagram_content_ai/pkg/ai"
	_ "instagram_content_ai/pkg/ai/providers"
	"instagram_content_ai/pkg/clipboard"
	"instagram_content_ai/pkg/config"
	"instagram_content_ai/pkg/content"
	"instagram_content_ai/pkg/logging"
	"instagram_content_ai/pkg/ui"
	"instagram_content_ai/pkg/version"

	tea "charm.land/bubbletea/v2"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/term"
)

const missingKeyMessage = "❌ API key not found. Please set API_KEY in your .env file."

var (
	newProvider = ai.GetProviderFromConfig
	isTerminal  = func(f *os.File) bool {
		return f != nil && term.IsTerminal(int(f.Fd()))
	}
)

type options struct {
	configPath  string
	topic       string
	imagePath   string
	provider    string
	model       string
	html        bool
	showVersion bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet(version.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", config.GetConfigPath(), "path to the JSON config file")
	fs.StringVar(&opts.topic, "topic", "", "generate once for this topic and print the result")
	fs.StringVar(&opts.imagePath, "image", "", "optional jpg, jpeg or png image to attach")
	fs.StringVar(&opts.provider, "provider", "", "LLM provider: "+providerNames())
	fs.StringVar(&opts.model, "model", "", "model override for the selected provider")
	fs.BoolVar(&opts.html, "html", false, "print results as escaped HTML textareas (with --topic)")
	fs.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 && opts.topic == "" {
		opts.topic = strings.Join(fs.Args(), " ")
	}
	return opts, nil
}

func providerNames() string {
	var names []string
	for _, info := range ai.ListProviders() {
		names = append(names, string(info.Type))
	}
	return strings.Join(names, ", ")
}

// loadConfig layers the config file, .env, environment and flags, then validates.
func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, err
	}
	if p := strings.TrimSpace(opts.provider); p != "" {
		cfg.LLMProvider = strings.ToLower(p)
	}
	cfg.SetModel(opts.model)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(args []string, stdin, stdout, stderr *os.File) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Info())
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		var merr *multierror.Error
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintln(stderr, missingKeyMessage)
			if !errors.As(err, &merr) || len(merr.Errors) == 1 {
				return 1
			}
		}
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(stderr, "Warning: file logging disabled: %v\n", err)
	}
	slog.Info("startup",
		"version", version.Summary(),
		"provider", cfg.LLMProvider,
	)

	provider, err := newProvider(cfg)
	if err != nil {
		slog.Error("provider_init_failed", "error", err)
		fmt.Fprintf(stderr, "Error creating provider: %v\n", err)
		return 1
	}
	requester := content.NewRequester(provider)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.topic != "" || !isTerminal(stdout) {
		topic := opts.topic
		if topic == "" && !isTerminal(stdin) {
			data, err := io.ReadAll(stdin)
			if err != nil {
				fmt.Fprintf(stderr, "Error reading topic: %v\n", err)
				return 1
			}
			topic = trimLineEnding(string(data))
		}
		return runHeadless(ctx, requester, opts, topic, stdout, stderr)
	}

	return runForm(ctx, requester, stdout, stderr)
}

func runForm(ctx context.Context, requester *content.Requester, stdout, stderr *os.File) int {
	model := ui.NewModel(ctx, requester, clipboard.NewCopier(stdout))
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(stdout))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrInterrupted) && !errors.Is(err, tea.ErrProgramKilled) {
		slog.Error("ui_failed", "error", err)
		fmt.Fprintf(stderr, "Error running form: %v\n", err)
		return 1
	}
	return 0
}

// trimLineEnding drops the single line terminator that echo and shells append
// to piped input. Anything else in the topic is kept as written.
func trimLineEnding(s string) string {
	if trimmed, ok := strings.CutSuffix(s, "\r\n"); ok {
		return trimmed
	}
	return strings.TrimSuffix(s, "\n")
}
