package prjconf

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Configure build projects from declarative project files"
	MsgConfigureShort  = "Run a configuration pass and print the result"
	MsgOrderShort      = "Print the finalize order without running any hook"
	MsgTemplatesShort  = "List the available project templates"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgAvailableTemplates = "Available templates:"
	MsgTemplateItem       = "  %-*s  %s\n"
	MsgDefaultMarker      = " (default)"
	MsgVersionFormat      = "prjconf %s (commit %s, built %s)\n"

	// Error messages
	MsgErrNoCommand   = "no command specified"
	MsgErrTooManyArgs = "expected at most one project directory or file, got %d"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat  = "Output format (text, json, yaml, toml); defaults to the project file setting"
	MsgFlagStrict  = "Fail when a rule depends on an undefined rule"
	MsgFlagNoColor = "Disable colored output"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/configure-long.txt
	msgConfigureLongRaw string
	MsgConfigureLong    = strings.TrimSpace(msgConfigureLongRaw)

	//go:embed msgs/configure-example.txt
	msgConfigureExampleRaw string
	MsgConfigureExample    = strings.TrimRight(msgConfigureExampleRaw, "\n")

	//go:embed msgs/order-long.txt
	msgOrderLongRaw string
	MsgOrderLong    = strings.TrimSpace(msgOrderLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
