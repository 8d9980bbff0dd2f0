package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes the environment overrides.
const EnvPrefix = "PRJCONF_"

// FileNames are tried, in order, when Load is given a directory.
var FileNames = []string{"prjconf.toml", ".prjconf.toml", "prjconf.yaml", "prjconf.yml"}

// envKeys maps the supported environment variables to config keys.
var envKeys = map[string]string{
	"NAME":          "name",
	"TEMPLATE":      "template",
	"OUTPUT_FORMAT": "output.format",
	"DISABLE":       "disable",
}

// Load reads the project at path, which is a project file or a directory
// holding one of FileNames. An empty path means the working directory. A
// directory without a project file yields the defaults.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")

	dir, projectFile, err := resolve(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}

	// 2. Project file
	if projectFile != "" {
		parser, err := parserFor(projectFile)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(projectFile), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", projectFile).
				WithDetail("file", projectFile)
		}
		logger.Debug().Str("file", projectFile).Msg("Loaded project file")
	}

	// 3. Environment
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Validate the merged document
	if err := Validate(k.Raw()); err != nil {
		if projectFile != "" {
			if pe := errors.FindError(err, errors.ErrConfigInvalid); pe != nil {
				pe.WithDetail("file", projectFile)
			}
		}
		return nil, err
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToListHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	cfg.Properties = flattenProperties(k.Cut("properties"))
	cfg.Dir = dir
	cfg.File = projectFile
	if cfg.Name == "" {
		cfg.Name = filepath.Base(dir)
	}

	logger.Info().
		Str("project", cfg.Name).
		Str("template", cfg.Template).
		Int("properties", len(cfg.Properties)).
		Int("rules", len(cfg.Rules)).
		Int("extensions", len(cfg.Extensions)).
		Msg("Configuration loaded")
	return &cfg, nil
}

func resolve(path string) (dir, projectFile string, err error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot resolve %s", path).WithDetail("path", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot open %s", path).WithDetail("path", path)
	}
	if !info.IsDir() {
		return filepath.Dir(abs), abs, nil
	}

	for _, name := range FileNames {
		candidate := filepath.Join(abs, name)
		if _, err := os.Stat(candidate); err == nil {
			return abs, candidate, nil
		}
	}
	return abs, "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigLoad, "unsupported project file format %q", filepath.Ext(path)).
		WithDetail("file", path)
}

// envValue maps PRJCONF_* variables to config keys. Unknown variables map
// to the empty key, which koanf skips.
func envValue(key, value string) (string, interface{}) {
	name, ok := envKeys[strings.TrimPrefix(key, EnvPrefix)]
	if !ok {
		return "", nil
	}
	if name == "disable" {
		list := []interface{}{}
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		return name, list
	}
	return name, value
}

// stringToListHookFunc lets a single string stand for a one element list.
func stringToListHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() == reflect.String && t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String {
			return []string{data.(string)}, nil
		}
		return data, nil
	}
}

func flattenProperties(k *koanf.Koanf) map[string][]string {
	out := make(map[string][]string)
	for key, val := range k.All() {
		switch v := val.(type) {
		case map[string]interface{}:
			continue
		case []interface{}:
			list := make([]string, 0, len(v))
			for _, item := range v {
				list = append(list, fmt.Sprint(item))
			}
			out[key] = list
		case []string:
			out[key] = append([]string{}, v...)
		case nil:
			out[key] = []string{}
		default:
			out[key] = []string{fmt.Sprint(v)}
		}
	}
	return out
}
