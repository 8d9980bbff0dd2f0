package prjconf

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/prjconf/internal/version"
	"github.com/arthur-debert/prjconf/pkg/config"
	"github.com/arthur-debert/prjconf/pkg/core"
	"github.com/arthur-debert/prjconf/pkg/output"
	"github.com/arthur-debert/prjconf/pkg/templates"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// renderedError marks an error already written to the user.
type renderedError struct {
	error
}

func (e renderedError) Unwrap() error { return e.error }

// IsRendered reports whether err was already printed by the command that
// returned it.
func IsRendered(err error) bool {
	var r renderedError
	return stderrors.As(err, &r)
}

type outputFlags struct {
	format  string
	noColor bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", MsgFlagFormat)
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, MsgFlagNoColor)
}

// renderer picks the output format: the flag wins, then the project file,
// then text.
func (f *outputFlags) renderer(w io.Writer, cfg *config.Config) (output.Renderer, error) {
	format, err := output.ParseFormat(f.resolved(cfg))
	if err != nil {
		return nil, err
	}
	return output.New(format, w, !f.noColor && isColorWriter(w))
}

func (f *outputFlags) resolved(cfg *config.Config) string {
	if f.format == "" && cfg != nil {
		return cfg.Output.Format
	}
	return f.format
}

// fail renders err and marks it as printed. Text errors go to stderr;
// structured errors stay on stdout so callers can parse them.
func (f *outputFlags) fail(cmd *cobra.Command, cfg *config.Config, err error) error {
	format, perr := output.ParseFormat(f.resolved(cfg))
	if perr != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if format == output.FormatText {
		w = cmd.ErrOrStderr()
	}
	r, rerr := output.New(format, w, !f.noColor && isColorWriter(w))
	if rerr != nil {
		return err
	}
	if rerr := r.RenderError(err); rerr != nil {
		return err
	}
	return renderedError{err}
}

func isColorWriter(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && output.DetectColor(file)
}

func projectPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return ".", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf(MsgErrTooManyArgs, len(args))
}

func newConfigureCmd() *cobra.Command {
	var (
		flags  outputFlags
		strict bool
	)

	cmd := &cobra.Command{
		Use:     "configure [dir|file]",
		Short:   MsgConfigureShort,
		Long:    MsgConfigureLong,
		Example: MsgConfigureExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := projectPath(args)
			if err != nil {
				return err
			}

			cfg, err := config.Load(path)
			if err != nil {
				return flags.fail(cmd, nil, err)
			}

			log.Info().Str("project", cfg.Name).Str("dir", cfg.Dir).Bool("strict", strict).Msg("Configuring project")

			result, err := core.Configure(core.Options{Config: cfg, Strict: strict})
			if err != nil {
				return flags.fail(cmd, cfg, err)
			}

			r, err := flags.renderer(cmd.OutOrStdout(), cfg)
			if err != nil {
				return err
			}
			return r.RenderResult(result)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)
	return cmd
}

func newOrderCmd() *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:     "order [dir|file]",
		Short:   MsgOrderShort,
		Long:    MsgOrderLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := projectPath(args)
			if err != nil {
				return err
			}

			cfg, err := config.Load(path)
			if err != nil {
				return flags.fail(cmd, nil, err)
			}

			order, err := core.Schedule(core.Options{Config: cfg})
			if err != nil {
				return flags.fail(cmd, cfg, err)
			}

			r, err := flags.renderer(cmd.OutOrStdout(), cfg)
			if err != nil {
				return err
			}
			return r.RenderOrder(order)
		},
	}

	flags.register(cmd)
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Short:   MsgTemplatesShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := templates.Default().All()

			width := 0
			for _, t := range all {
				if len(t.Name) > width {
					width = len(t.Name)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatBold(MsgAvailableTemplates))
			for _, t := range all {
				desc := t.Description
				if t.Name == templates.DefaultTemplate {
					desc += MsgDefaultMarker
				}
				fmt.Fprintf(out, MsgTemplateItem, width, t.Name, desc)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
