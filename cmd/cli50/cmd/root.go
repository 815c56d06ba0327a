package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cs50/cli50/internal/config"
	"github.com/cs50/cli50/internal/docker"
	"github.com/cs50/cli50/internal/i18n"
	"github.com/cs50/cli50/internal/logger"
	"github.com/cs50/cli50/internal/registry"
	"github.com/cs50/cli50/internal/service/login"
	"github.com/cs50/cli50/internal/service/session"
	"github.com/cs50/cli50/internal/service/stop"
	"github.com/cs50/cli50/internal/service/update"
	"github.com/cs50/cli50/internal/ui"
	"github.com/cs50/cli50/internal/version"
)

// loginPrompt marks `--login` given without a container: prompt over
// running containers. "-" is not a valid container name or identifier.
const loginPrompt = "-"

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// dotfiles are dotfiles in $HOME to mount read-only in the container.
	dotfiles []string
	// fast skips the image autoupdate and the release check.
	fast bool
	// jekyll serves a Jekyll site from the mounted directory.
	jekyll bool
	// loginTarget is the container to log into; loginPrompt means ask.
	loginTarget string
	// stopContainers stops any containers of the configured image.
	stopContainers bool
	// tag overrides the image tag.
	tag string
	// updateOnly pulls the image and exits.
	updateOnly bool
	// showVersion prints the one-line version and exits.
	showVersion bool
	// logLevel adjusts diagnostic verbosity.
	logLevel string

	// rootCmd mounts a directory in a CS50 container and attaches to it.
	rootCmd = &cobra.Command{
		Use:   "cli50 [DIRECTORY]",
		Short: "CS50 CLI, a command-line environment in a container.",
		Long: `cli50 mounts a directory inside a CS50 container and drops you into a login
shell there, with the usual web-development ports published to the host.

Without flags it updates the container image when a newer one exists, starts a
fresh container with DIRECTORY (default: the working directory) mounted at
/mnt, prints the container's port mappings, and attaches your terminal. Other
modes log into already-running containers, stop them, or just update.`,
		Args: cobra.MaximumNArgs(1),
		// Errors are printed by Execute so that ctrl-c stays a quiet,
		// successful exit instead of an error-plus-usage dump.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Line())
				return nil
			}

			// Exit cleanly on ctrl-c.
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer cancel()

			return run(ctx, cmd, args)
		},
	}
)

// run dispatches to the selected mode after the shared preflight checks.
func run(ctx context.Context, cmd *cobra.Command, args []string) error {
	if fast && updateOnly {
		return errors.New(i18n.T("fast_update_conflict"))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	engine := docker.NewClient(cfg.Timeout)

	if !engine.Installed() {
		return errors.New(i18n.T("docker_not_installed"))
	}

	if err = engine.Ping(ctx); err != nil {
		switch {
		case errors.Is(err, docker.ErrNotResponding):
			return errors.New(i18n.T("docker_not_responding"))
		default:
			return errors.New(i18n.T("docker_not_running"))
		}
	}

	// Advise about newer releases; failures here never block normal use.
	if !fast {
		if _, newer := update.CheckForNewer(ctx, cfg.UpdateURL, version.Short(), cfg.Timeout); newer {
			ui.Warn(cmd.OutOrStdout(), i18n.T("newer_version"))
		}
	}

	switch {
	case cmd.Flags().Changed("login"):
		container := loginTarget
		if container == loginPrompt {
			// `-l CONTAINER` parses the name as a positional argument.
			container = ""
			if len(args) > 0 {
				container = args[0]
			}
		}

		return login.Run(ctx, &login.Options{ConfigPath: configPath, Container: container})

	case stopContainers:
		return stop.Run(ctx, &stop.Options{ConfigPath: configPath})

	case updateOnly:
		reg := registry.NewClient(registry.WithTimeout(cfg.Timeout))
		return update.PullImage(ctx, engine, reg, cfg.Image, tagOrDefault(cfg))

	default:
		var directory string
		if len(args) > 0 {
			directory = args[0]
		}

		return session.Run(ctx, &session.Options{
			ConfigPath: configPath,
			Directory:  directory,
			Dotfiles:   dotfiles,
			Fast:       fast,
			Jekyll:     jekyll,
			Tag:        tag,
		})
	}
}

// tagOrDefault picks the command-line tag over the configured one.
func tagOrDefault(cfg *config.Config) string {
	if tag != "" {
		return tag
	}

	return cfg.Tag
}

// Execute runs the cli50 CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		// Ctrl-c is a clean exit: print a newline past the ^C and stop.
		if errors.Is(err, context.Canceled) {
			fmt.Println()
			os.Exit(0)
		}

		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file")

	flags := rootCmd.Flags()

	flags.StringArrayVarP(&dotfiles, "dotfile", "d", nil, i18n.T("flag_dotfile"))
	flags.BoolVarP(&fast, "fast", "f", false, i18n.T("flag_fast"))
	flags.BoolVarP(&jekyll, "jekyll", "j", false, i18n.T("flag_jekyll"))
	flags.StringVarP(&loginTarget, "login", "l", "", i18n.T("flag_login"))
	flags.BoolVarP(&stopContainers, "stop", "S", false, i18n.T("flag_stop"))
	flags.StringVarP(&tag, "tag", "t", "", i18n.T("flag_tag", config.DefaultImage, config.DefaultImage))
	flags.BoolVarP(&updateOnly, "update", "u", false, i18n.T("flag_update"))
	flags.BoolVarP(&showVersion, "version", "V", false, i18n.T("flag_version"))

	// `--login` without a value means "prompt over running containers".
	flags.Lookup("login").NoOptDefVal = loginPrompt

	// Hidden diagnostics knob.
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	if err := rootCmd.PersistentFlags().MarkHidden("log-level"); err != nil {
		panic(err)
	}

	// Describe the positional the same localized way the flags are described.
	rootCmd.Long += "\n\nArguments:\n  DIRECTORY   " + i18n.T("flag_directory")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if level, ok := logger.ParseLogLevel(logLevel); ok {
			logger.SetLevel(level)
		}
	}
}
