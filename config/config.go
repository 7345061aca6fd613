package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	gqlgenconfig "github.com/99designs/gqlgen/codegen/config"

	"github.com/vektah/gqlparser/v2/ast"
)

// Target names an output language.
type Target string

const (
	TargetJSON       Target = "json"
	TargetSwift      Target = "swift"
	TargetTS         Target = "ts"
	TargetTypeScript Target = "typescript"
	TargetFlow       Target = "flow"
	TargetFlowModern Target = "flow-modern"
	TargetScala      Target = "scala"
	TargetGo         Target = "go"
)

// Targets lists every supported target in display order.
var Targets = []Target{
	TargetJSON,
	TargetSwift,
	TargetTS,
	TargetTypeScript,
	TargetFlow,
	TargetFlowModern,
	TargetScala,
	TargetGo,
}

func (t Target) Valid() bool {
	return slices.Contains(Targets, t)
}

const (
	DefaultTagName          = "gql"
	DefaultPackage          = "generated"
	DefaultOperationIDsPath = "operationIdsMap.json"
)

// DefaultConfigFilenames are searched in order by FindConfigFile.
var DefaultConfigFilenames = []string{
	".gqltypegen.yml",
	"gqltypegen.yml",
	".gqltypegen.yaml",
	"gqltypegen.yaml",
}

// Config represents the config file.
type Config struct {
	SchemaFilename           gqlgenconfig.StringList `yaml:"schema,omitempty"`
	Endpoint                 *EndPointConfig         `yaml:"endpoint,omitempty"`
	Documents                gqlgenconfig.StringList `yaml:"documents,omitempty"`
	Target                   Target                  `yaml:"target,omitempty"`
	Output                   string                  `yaml:"output,omitempty"`
	TagName                  string                  `yaml:"tag_name,omitempty"`
	AddTypename              bool                    `yaml:"add_typename,omitempty"`
	GenerateOperationIDs     bool                    `yaml:"generate_operation_ids,omitempty"`
	OperationIDsPath         string                  `yaml:"operation_ids_path,omitempty"`
	PassthroughCustomScalars bool                    `yaml:"passthrough_custom_scalars,omitempty"`
	CustomScalarsPrefix      string                  `yaml:"custom_scalars_prefix,omitempty"`
	Namespace                string                  `yaml:"namespace,omitempty"`
	UseFlowExactObjects      bool                    `yaml:"use_flow_exact_objects,omitempty"`
	Package                  string                  `yaml:"package,omitempty"`

	Schema *ast.Schema `yaml:"-"`
}

// EndPointConfig are the allowed options for the 'endpoint' config.
type EndPointConfig struct {
	Headers http.Header  `yaml:"headers,omitempty"`
	URL     string       `yaml:"url"`
	Client  *http.Client `yaml:"-"`
}

// New returns a Config holding only defaults, for runs without a config file.
func New() *Config {
	return &Config{
		Target:  TargetJSON,
		TagName: DefaultTagName,
		Package: DefaultPackage,
	}
}

// FindConfigFile returns the first of names that exists in dir, or "" when none does.
func FindConfigFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ReadConfig decodes the config file and fills defaults without validating,
// so callers can still apply overrides.
func ReadConfig(configFilename string) (*Config, error) {
	configContent, err := os.ReadFile(configFilename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	c := New()

	yamlDecoder := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(configContent)))), yaml.DisallowUnknownField())
	if err := yamlDecoder.Decode(c); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	return c, nil
}

// LoadConfig reads and validates the config file.
func LoadConfig(configFilename string) (*Config, error) {
	c, err := ReadConfig(configFilename)
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks option consistency and expands schema and document globs.
func (c *Config) Validate() error {
	if c.SchemaFilename != nil && c.Endpoint != nil {
		return errors.New("'schema' and 'endpoint' both specified. Use schema to load from a local file, use endpoint to load from a remote server (using introspection)")
	}

	if c.SchemaFilename == nil && c.Endpoint == nil {
		return errors.New("neither 'schema' nor 'endpoint' specified. Use schema to load from a local file, use endpoint to load from a remote server (using introspection)")
	}

	if c.Endpoint != nil && c.Endpoint.URL == "" {
		return errors.New("'endpoint' requires 'url'")
	}

	if len(c.Documents) == 0 {
		return errors.New("'documents' not specified. List the .graphql, .js or .ts files that contain operations")
	}

	if !c.Target.Valid() {
		return fmt.Errorf("unknown target %q. Supported targets: %s", c.Target, joinTargets(Targets))
	}

	if c.TagName == "" {
		c.TagName = DefaultTagName
	}

	if c.Package == "" {
		c.Package = DefaultPackage
	}

	if c.GenerateOperationIDs && c.OperationIDsPath == "" {
		c.OperationIDsPath = DefaultOperationIDsPath
	}

	schemaFilename, err := expandGlobs(c.SchemaFilename)
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if c.SchemaFilename != nil {
		c.SchemaFilename = schemaFilename
	}

	documents, err := expandGlobs(c.Documents)
	if err != nil {
		return fmt.Errorf("documents: %w", err)
	}
	c.Documents = documents

	return nil
}

// expandGlobs resolves every pattern and returns the sorted, de-duplicated paths.
// A pattern without glob metacharacters is kept as is so a missing file is
// reported by the loader with its name.
func expandGlobs(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			paths = append(paths, filepath.Clean(pattern))
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", pattern)
		}
		paths = append(paths, matches...)
	}

	slices.Sort(paths)

	return slices.Compact(paths), nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[`)
}

func joinTargets(targets []Target) string {
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
