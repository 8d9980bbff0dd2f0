// Package config loads project files.
//
// Configuration is layered with koanf: the embedded defaults, then the
// project file (TOML or YAML, chosen by extension), then PRJCONF_*
// environment variables. The merged document is validated against an
// embedded JSON schema before it is decoded into a Config.
package config
