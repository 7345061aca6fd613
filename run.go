package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"

	gqlgenconfig "github.com/99designs/gqlgen/codegen/config"

	"github.com/gqlgo/gqltypegen/config"
	"github.com/gqlgo/gqltypegen/internal/log"
	"github.com/gqlgo/gqltypegen/pipeline"
)

const usage = `Usage: gqltypegen [flags] <documents...>

Generates client types for the GraphQL operations in the given documents
(.graphql, .gql, .js, .jsx, .ts, .tsx; globs allowed).

Flags:
`

type flags struct {
	configFile               string
	schema                   string
	output                   string
	target                   string
	tagName                  string
	addTypename              bool
	operationIDs             bool
	operationIDsPath         string
	passthroughCustomScalars bool
	customScalarsPrefix      string
	namespace                string
	useFlowExactObjects      bool
	pkg                      string
	verbosity                int
	version                  bool
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *flags) {
	f := &flags{}
	fs := flag.NewFlagSet("gqltypegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&f.configFile, "config", "", "config file (default: .gqltypegen.yml in the working directory, if present)")
	fs.StringVar(&f.schema, "schema", "", "schema file: SDL or introspection result (.json)")
	fs.StringVar(&f.output, "output", "", "output file (default: stdout)")
	fs.StringVar(&f.target, "target", string(config.TargetJSON), "json, swift, ts, typescript, flow, flow-modern, scala or go")
	fs.StringVar(&f.tagName, "tag-name", config.DefaultTagName, "template literal tag of operations in JS/TS sources")
	fs.BoolVar(&f.addTypename, "add-typename", false, "add __typename to every selection set below the operation root")
	fs.BoolVar(&f.operationIDs, "operation-ids", false, "write the operation id map for persisted queries")
	fs.StringVar(&f.operationIDsPath, "operation-ids-path", config.DefaultOperationIDsPath, "operation id map file")
	fs.BoolVar(&f.passthroughCustomScalars, "passthrough-custom-scalars", false, "reference custom scalars by name instead of mapping them")
	fs.StringVar(&f.customScalarsPrefix, "custom-scalars-prefix", "", "prefix of passed through custom scalars")
	fs.StringVar(&f.namespace, "namespace", "", "swift enum or scala package wrapping the output")
	fs.BoolVar(&f.useFlowExactObjects, "use-flow-exact-objects", false, "emit exact flow object types")
	fs.StringVar(&f.pkg, "package", config.DefaultPackage, "package name of go output")
	fs.IntVar(&f.verbosity, "v", 0, "log verbosity")
	fs.BoolVar(&f.version, "version", false, "print the version and exit")

	return fs, f
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, f := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if f.version {
		fmt.Fprintf(stdout, "gqltypegen v%s\n", version)
		return nil
	}

	// .env is optional; it only feeds ${VAR} expansion in the config file.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	stdr.SetVerbosity(f.verbosity)
	ctx = log.WithLogger(ctx, stdr.New(stdlog.New(stderr, "", stdlog.LstdFlags)))

	cfg, err := loadConfig(fs, f)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, stdout)
	if err != nil {
		return err
	}
	if err := p.Run(ctx); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	return nil
}

// loadConfig reads the config file, if any, and lets explicitly set flags
// and positional documents override it.
func loadConfig(fs *flag.FlagSet, f *flags) (*config.Config, error) {
	configFile := f.configFile
	if configFile == "" {
		configFile = config.FindConfigFile(".", config.DefaultConfigFilenames)
	}

	cfg := config.New()
	if configFile != "" {
		var err error
		if cfg, err = config.ReadConfig(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "schema":
			cfg.SchemaFilename = gqlgenconfig.StringList{f.schema}
			cfg.Endpoint = nil
		case "output":
			cfg.Output = f.output
		case "target":
			cfg.Target = config.Target(f.target)
		case "tag-name":
			cfg.TagName = f.tagName
		case "add-typename":
			cfg.AddTypename = f.addTypename
		case "operation-ids":
			cfg.GenerateOperationIDs = f.operationIDs
		case "operation-ids-path":
			cfg.OperationIDsPath = f.operationIDsPath
		case "passthrough-custom-scalars":
			cfg.PassthroughCustomScalars = f.passthroughCustomScalars
		case "custom-scalars-prefix":
			cfg.CustomScalarsPrefix = f.customScalarsPrefix
		case "namespace":
			cfg.Namespace = f.namespace
		case "use-flow-exact-objects":
			cfg.UseFlowExactObjects = f.useFlowExactObjects
		case "package":
			cfg.Package = f.pkg
		}
	})
	if fs.NArg() > 0 {
		cfg.Documents = fs.Args()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
