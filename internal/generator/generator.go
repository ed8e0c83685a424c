package generator

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
	"gopkg.in/yaml.v3"

	"github.com/seitarof/gen-hints/internal/hint"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatGo   = "go"
)

// Stdout is the output filename that writes to standard output.
const Stdout = "-"

// Generator renders hints to a file.
type Generator interface {
	Generate(cfg Config, hints []hint.Declaration) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
	OutputFormat() string
	PackageName() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated output.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
	tmpl      *template.Template
}

type goimportsFormatter struct{}

type fileWriter struct {
	stdout io.Writer
}

type templateData struct {
	Package  string
	Document Document
}

// New creates a generator.
func New(f Formatter, w FileWriter) Generator {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"quoteList": quoteList,
	}).ParseFS(templateFS, "templates/*.go.tmpl"))
	return &generatorImpl{formatter: f, writer: w, tmpl: tmpl}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer; "-" goes to os.Stdout.
func NewFileWriter() FileWriter {
	return &fileWriter{stdout: os.Stdout}
}

// NewFileWriterTo is NewFileWriter with "-" redirected to stdout.
func NewFileWriterTo(stdout io.Writer) FileWriter {
	return &fileWriter{stdout: stdout}
}

func (g *generatorImpl) Generate(cfg Config, hints []hint.Declaration) error {
	doc := BuildDocument(hints)

	var (
		out []byte
		err error
	)
	switch format := strings.ToLower(cfg.OutputFormat()); format {
	case "", FormatJSON:
		out, err = renderJSON(doc)
	case FormatYAML:
		out, err = renderYAML(doc)
	case FormatGo:
		out, err = g.renderGo(cfg, doc)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return err
	}

	if err := g.writer.Write(cfg.OutputFilename(), out); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func renderJSON(doc Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return append(b, '\n'), nil
}

func renderYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *generatorImpl) renderGo(cfg Config, doc Document) ([]byte, error) {
	pkg := cfg.PackageName()
	if pkg == "" {
		pkg = "hints"
	}

	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "hints.go.tmpl", templateData{Package: pkg, Document: doc}); err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}

	filename := cfg.OutputFilename()
	if filename == Stdout {
		filename = "hints_gen.go"
	}
	formatted, err := g.formatter.Format(filename, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return formatted, nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	if filename == Stdout {
		_, err := w.stdout.Write(data)
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

func quoteList(items []string) string {
	if len(items) == 0 {
		return "nil"
	}
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		quoted = append(quoted, strconv.Quote(it))
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}
