// Package pipeline runs one generation: load the schema and documents,
// validate, compile, generate and emit. A failing stage stops the run and
// nothing is written.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/gqlgo/gqltypegen/compiler"
	"github.com/gqlgo/gqltypegen/config"
	"github.com/gqlgo/gqltypegen/internal/log"
	"github.com/gqlgo/gqltypegen/ir"
	"github.com/gqlgo/gqltypegen/plugins"
	"github.com/gqlgo/gqltypegen/queryparser"
)

type Stage string

const (
	Initial   Stage = "initial"
	Loaded    Stage = "loaded"
	Validated Stage = "validated"
	Compiled  Stage = "compiled"
	Generated Stage = "generated"
	Emitted   Stage = "emitted"
	Failed    Stage = "failed"
)

// StageError reports the stage a run could not reach.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline is single use.
type Pipeline struct {
	cfg       *config.Config
	generator plugins.Generator
	stdout    io.Writer
	stage     Stage

	queryDocument *ast.QueryDocument
	document      *ir.Document
	output        []byte
}

// New prepares a run of cfg. Output goes to stdout when cfg.Output is empty.
func New(cfg *config.Config, stdout io.Writer) (*Pipeline, error) {
	generator, err := plugins.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:       cfg,
		generator: generator,
		stdout:    stdout,
		stage:     Initial,
	}, nil
}

// Stage returns the last stage reached, or Failed.
func (p *Pipeline) Stage() Stage {
	return p.stage
}

// Document returns the compiled IR once the run reached Compiled.
func (p *Pipeline) Document() *ir.Document {
	return p.document
}

func (p *Pipeline) Run(ctx context.Context) error {
	steps := []struct {
		stage Stage
		run   func(context.Context) error
	}{
		{Loaded, p.load},
		{Validated, p.validate},
		{Compiled, p.compile},
		{Generated, p.generate},
		{Emitted, p.emit},
	}

	logger := log.FromContext(ctx).WithValues("target", p.cfg.Target, "generator", p.generator.Name())
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			logger.V(1).Info("stage failed", "from", p.stage, "to", step.stage)
			p.stage = Failed
			return &StageError{Stage: step.stage, Err: err}
		}
		p.stage = step.stage
		logger.V(1).Info("stage reached", "stage", step.stage)
	}

	return nil
}

func (p *Pipeline) load(ctx context.Context) error {
	if p.cfg.Schema == nil {
		if err := p.cfg.LoadSchema(ctx); err != nil {
			return err
		}
	}

	sources, err := queryparser.LoadQuerySources(ctx, p.cfg.Documents, p.cfg.TagName)
	if err != nil {
		return err
	}

	p.queryDocument, err = queryparser.QueryDocument(sources)
	return err
}

func (p *Pipeline) validate(_ context.Context) error {
	return queryparser.Validate(p.cfg.Schema, p.queryDocument, plugins.ValidateOptions(p.cfg.Target))
}

func (p *Pipeline) compile(ctx context.Context) error {
	policy := compiler.NewPolicy(p.generator.Shape(), compiler.Options{AddTypename: p.cfg.AddTypename})

	document, err := compiler.Compile(ctx, p.cfg.Schema, p.queryDocument, policy)
	if err != nil {
		return err
	}
	p.document = document
	return nil
}

func (p *Pipeline) generate(_ context.Context) error {
	output, err := p.generator.Generate(p.document)
	if err != nil {
		return fmt.Errorf("%s: %w", p.generator.Name(), err)
	}
	p.output = output
	return nil
}

func (p *Pipeline) emit(ctx context.Context) error {
	var ids []byte
	if p.cfg.GenerateOperationIDs {
		b, err := json.Marshal(p.document.OperationIDs(), json.Deterministic(true), jsontext.WithIndent("  "))
		if err != nil {
			return fmt.Errorf("marshal operation ids: %w", err)
		}
		ids = append(b, '\n')
	}

	if p.cfg.Output == "" {
		if _, err := p.stdout.Write(p.output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else if err := writeFile(p.cfg.Output, p.output); err != nil {
		return err
	}

	if ids != nil {
		if err := writeFile(p.cfg.OperationIDsPath, ids); err != nil {
			if p.cfg.Output != "" {
				_ = os.Remove(p.cfg.Output)
			}
			return err
		}
	}

	log.FromContext(ctx).Info("generated", "target", p.cfg.Target, "output", p.cfg.Output,
		"operations", len(p.document.Operations), "fragments", len(p.document.Fragments))

	return nil
}

func writeFile(filename string, content []byte) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(filename, content, 0o644); err != nil { //nolint:gosec // generated sources are world readable
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
