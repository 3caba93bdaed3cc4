package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/footprint-tools/brig/internal/app"
	"github.com/footprint-tools/brig/internal/cli"
	"github.com/footprint-tools/brig/internal/ui/style"
	"github.com/footprint-tools/brig/internal/usage"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	noColorFlagName = "no-color"
	noPagerFlagName = "no-pager"
	configFlagName  = "config"
	plainFlagName   = "plain"
	resultFlagName  = "result"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := createRootCommand(stdin, stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	_, _ = fmt.Fprintln(stderr, style.RenderError(err))
	return exitCode(err)
}

func exitCode(err error) int {
	var ue *usage.Error
	if errors.As(err, &ue) {
		return ue.GetExitCode()
	}
	return 1
}

func createRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "brig",
		Short:         "Interactive command shell with typed arguments and completion",
		Long:          "brig parses commands against a grammar tree, completes them as you type\nand records every execution. Without a subcommand it starts an interactive shell.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, stdout, stderr, func(a *app.Application) error {
				return interactive(cmd, a, stdin, stdout)
			})
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("brig version {{.Version}}\n")

	root.PersistentFlags().Bool(noColorFlagName, false, "disable colored output")
	root.PersistentFlags().Bool(noPagerFlagName, false, "do not page long output")
	root.PersistentFlags().String(configFlagName, "", "config file (default $BRIG_CONFIG or the user config dir)")
	root.Flags().Bool(plainFlagName, false, "use the line editor instead of the full screen shell")

	root.AddCommand(
		createRunCommand(stdout, stderr),
		createCompleteCommand(stdout, stderr),
		createUsageCommand(stdout, stderr),
	)
	return root
}

func createRunCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <input...>",
		Short: "Execute one command line and exit",
		Example: `  brig run echo hello
  brig run "execute as * run say hi"`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeRunArgs(stdout, stderr),
		RunE: func(cmd *cobra.Command, args []string) error {
			printResult, _ := cmd.Flags().GetBool(resultFlagName)
			return withApp(cmd, stdout, stderr, func(a *app.Application) error {
				result, err := a.Shell.Run(strings.Join(args, " "))
				if err != nil {
					return err
				}
				if printResult {
					_, _ = fmt.Fprintln(stdout, result)
				}
				return nil
			})
		},
	}
	cmd.Flags().Bool(resultFlagName, false, "print the command's integer result")
	return cmd
}

// completeRunArgs drives shell tab completion for "brig run" from the
// command grammar. Shells complete one word at a time, so each suggestion
// is cut down to the part from the word being completed onwards.
func completeRunArgs(stdout, stderr io.Writer) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		input := strings.Join(append(slices.Clone(args), toComplete), " ")
		wordStart := len(input) - len(toComplete)

		var candidates []string
		err := withApp(cmd, stdout, stderr, func(a *app.Application) error {
			s, err := a.Shell.Complete(cmd.Context(), input, len(input))
			if err != nil {
				return err
			}
			for _, sg := range s.List {
				if full := sg.Apply(input); len(full) >= wordStart {
					candidates = append(candidates, full[wordStart:])
				}
			}
			return nil
		})
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return candidates, cobra.ShellCompDirectiveNoFileComp
	}
}

func createCompleteCommand(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <input> [cursor]",
		Short: "Print completions for input, one per line",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			cursor := len(input)
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("cursor must be an integer: %w", err)
				}
				cursor = n
			}
			return withApp(cmd, stdout, stderr, func(a *app.Application) error {
				s, err := a.Shell.Complete(cmd.Context(), input, cursor)
				if err != nil {
					return err
				}
				for _, sg := range s.List {
					_, _ = fmt.Fprintln(stdout, sg.Apply(input))
				}
				return nil
			})
		},
	}
}

func createUsageCommand(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "List every command path, paged on terminals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, stdout, stderr, func(a *app.Application) error {
				var buf bytes.Buffer
				if _, err := a.Shell.RunTo(&buf, "usage"); err != nil {
					return err
				}
				a.Output.Pager(buf.String())
				return nil
			})
		},
	}
}

// withApp builds the application from the persistent flags, runs fn and
// closes it.
func withApp(cmd *cobra.Command, stdout, stderr io.Writer, fn func(*app.Application) error) error {
	opts := app.DefaultOptions()
	opts.Version = version
	opts.Out = stdout
	opts.ErrOut = stderr
	opts.ConfigPath, _ = cmd.Flags().GetString(configFlagName)
	opts.PagerDisabled, _ = cmd.Flags().GetBool(noPagerFlagName)
	if noColor, _ := cmd.Flags().GetBool(noColorFlagName); noColor {
		opts.Color = "never"
	}

	a, err := app.New(opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}

// interactive starts the full screen shell when both ends are terminals,
// and the line editor otherwise.
func interactive(cmd *cobra.Command, a *app.Application, stdin io.Reader, stdout io.Writer) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		if err := a.Watch(ctx); err != nil {
			a.Logger.Warn("main: config watch stopped: %v", err)
		}
	}()

	plain, _ := cmd.Flags().GetBool(plainFlagName)
	if !plain && isTerminal(stdin) && isTerminal(stdout) {
		return cli.RunTUI(ctx, a.Shell, a.Prompt())
	}
	return cli.NewREPL(a.Shell, a.Store, a.Prompt, a.ErrOut).Run(ctx)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
