package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/seitarof/gen-hints/internal/generator"
	"github.com/seitarof/gen-hints/internal/hint"
	"github.com/seitarof/gen-hints/internal/processor"
)

const (
	envPrefix  = "GEN_HINTS"
	configName = "gen-hints"
)

// ParseArgs parses command line arguments into Config. Every flag may also
// be set in gen-hints.yaml or through a GEN_HINTS_<FLAG> environment
// variable; flags win over the environment, which wins over the file.
func ParseArgs(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("gen-hints", pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (default ./gen-hints.yaml when present)")
	fs.StringP("model", "m", "", "YAML type model descriptor")
	fs.StringSliceP("packages", "p", nil, "comma-separated Go package patterns to load")
	fs.StringSliceP("roots", "r", nil, "comma-separated root type patterns")
	fs.StringSlice("skip-types", nil, "comma-separated type patterns to skip")
	fs.StringSlice("skip-fields", nil, "comma-separated field names to skip")
	fs.StringSlice("skip-methods", nil, "comma-separated method names to skip")
	fs.StringSlice("skip-annotations", nil, "comma-separated annotation type patterns to skip")
	fs.StringSlice("resources", nil, "comma-separated type patterns whose type file is bundled as a resource")
	fs.Bool("skip-field-inspection", false, "do not inspect fields")
	fs.Bool("skip-method-inspection", false, "do not inspect methods")
	fs.Bool("skip-constructor-inspection", false, "do not inspect constructors")
	fs.Bool("skip-annotation-inspection", false, "do not inspect annotations")
	fs.StringSlice("inspection-exclude", processor.DefaultInspectionDomains, "domains whose types are registered but not inspected")
	fs.String("type-access", hint.FullReflection.String(), "access bits for discovered types")
	fs.String("annotation-access", hint.Annotation.String(), "access bits for discovered annotations")
	fs.StringP("format", "f", generator.FormatJSON, "output format: json, yaml or go")
	fs.StringP("output", "o", generator.Stdout, "output file, - for stdout")
	fs.String("package-name", "hints", "package clause for go output")
	fs.String("name", processor.DefaultName, "processor name used in log messages")
	fs.Bool("parallel", false, "process each root pattern in its own session, concurrently")
	fs.Bool("allow-errors", false, "continue when packages have errors")
	fs.String("log-level", "warn", "log level: debug, info, warn, error")
	fs.String("log-format", "console", "log format: console or json")
	fs.Bool("summary", true, "print a summary to stderr")
	fs.Bool("no-color", false, "disable colored summary")
	fs.BoolP("version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigFile:                v.ConfigFileUsed(),
		ModelPath:                 strings.TrimSpace(v.GetString("model")),
		Packages:                  listOf(v, "packages"),
		Roots:                     listOf(v, "roots"),
		SkipTypes:                 listOf(v, "skip-types"),
		SkipFields:                listOf(v, "skip-fields"),
		SkipMethods:               listOf(v, "skip-methods"),
		SkipAnnotations:           listOf(v, "skip-annotations"),
		Resources:                 listOf(v, "resources"),
		SkipFieldInspection:       v.GetBool("skip-field-inspection"),
		SkipMethodInspection:      v.GetBool("skip-method-inspection"),
		SkipConstructorInspection: v.GetBool("skip-constructor-inspection"),
		SkipAnnotationInspection:  v.GetBool("skip-annotation-inspection"),
		InspectionExclude:         listOf(v, "inspection-exclude"),
		Format:                    strings.ToLower(strings.TrimSpace(v.GetString("format"))),
		Output:                    strings.TrimSpace(v.GetString("output")),
		Package:                   strings.TrimSpace(v.GetString("package-name")),
		Name:                      v.GetString("name"),
		Parallel:                  v.GetBool("parallel"),
		AllowErrors:               v.GetBool("allow-errors"),
		LogLevel:                  v.GetString("log-level"),
		LogFormat:                 v.GetString("log-format"),
		Summary:                   v.GetBool("summary"),
		NoColor:                   v.GetBool("no-color"),
		ShowVersion:               v.GetBool("version"),
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	var err error
	if cfg.TypeAccess, err = hint.ParseAccessBits(v.GetString("type-access")); err != nil {
		return nil, fmt.Errorf("--type-access: %w", err)
	}
	if cfg.AnnotationAccess, err = hint.ParseAccessBits(v.GetString("annotation-access")); err != nil {
		return nil, fmt.Errorf("--annotation-access: %w", err)
	}

	if cfg.ModelPath == "" && len(cfg.Packages) == 0 {
		return nil, fmt.Errorf("--model or --packages is required")
	}
	if len(cfg.Roots) == 0 {
		return nil, fmt.Errorf("--roots is required")
	}
	switch cfg.Format {
	case generator.FormatJSON, generator.FormatYAML, generator.FormatGo:
	default:
		return nil, fmt.Errorf("--format must be one of json, yaml, go; got %q", cfg.Format)
	}
	if cfg.Output == "" {
		return nil, fmt.Errorf("--output is required")
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper) error {
	if path := strings.TrimSpace(v.GetString("config")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}
	return nil
}

// listOf reads a list setting, accepting comma-separated strings from the
// environment as well as YAML sequences.
func listOf(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		out = append(out, splitCommaList(item)...)
	}
	return out
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
