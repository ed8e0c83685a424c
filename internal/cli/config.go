package cli

import "github.com/seitarof/gen-hints/internal/hint"

// Config stores CLI options for a single generation run.
type Config struct {
	ConfigFile string
	ModelPath  string
	Packages   []string
	Roots      []string

	SkipTypes       []string
	SkipFields      []string
	SkipMethods     []string
	SkipAnnotations []string
	Resources       []string

	SkipFieldInspection       bool
	SkipMethodInspection      bool
	SkipConstructorInspection bool
	SkipAnnotationInspection  bool
	InspectionExclude         []string

	TypeAccess       hint.AccessBits
	AnnotationAccess hint.AccessBits

	Format   string
	Output   string
	Package  string
	Name     string
	Parallel bool

	AllowErrors bool
	LogLevel    string
	LogFormat   string
	Summary     bool
	NoColor     bool
	ShowVersion bool
}

// OutputFilename returns destination file path for generator layer.
func (c *Config) OutputFilename() string {
	return c.Output
}

// OutputFormat returns json, yaml or go.
func (c *Config) OutputFormat() string {
	return c.Format
}

// PackageName returns the package clause used for go output.
func (c *Config) PackageName() string {
	return c.Package
}
