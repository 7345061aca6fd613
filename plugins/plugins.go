// Package plugins maps a configured target onto the generator that renders
// it.
package plugins

import (
	"fmt"

	"github.com/gqlgo/gqltypegen/config"
	"github.com/gqlgo/gqltypegen/ir"
	"github.com/gqlgo/gqltypegen/plugins/flowmoderngen"
	"github.com/gqlgo/gqltypegen/plugins/jsongen"
	"github.com/gqlgo/gqltypegen/plugins/querygen"
	"github.com/gqlgo/gqltypegen/plugins/scalagen"
	"github.com/gqlgo/gqltypegen/plugins/swiftgen"
	"github.com/gqlgo/gqltypegen/plugins/tsgen"
	"github.com/gqlgo/gqltypegen/queryparser"
)

// Generator renders a compiled document. Generate only reads doc.
type Generator interface {
	Name() string
	// Shape is the IR layout the generator consumes.
	Shape() ir.Shape
	Generate(doc *ir.Document) ([]byte, error)
}

var (
	_ Generator = &jsongen.Generator{}
	_ Generator = &tsgen.Generator{}
	_ Generator = &flowmoderngen.Generator{}
	_ Generator = &swiftgen.Generator{}
	_ Generator = &scalagen.Generator{}
	_ Generator = &querygen.Generator{}
)

// New returns the generator for cfg.Target configured from cfg.
func New(cfg *config.Config) (Generator, error) {
	switch cfg.Target {
	////////////////////////////////////////////////////////////////////////////////////////////////////
	// legacy IR

	case config.TargetJSON:
		return jsongen.New(), nil
	case config.TargetTS, config.TargetTypeScript:
		return tsgen.New(tsgen.Options{
			Dialect:                  tsgen.TypeScript,
			PassthroughCustomScalars: cfg.PassthroughCustomScalars,
			CustomScalarsPrefix:      cfg.CustomScalarsPrefix,
		}), nil
	case config.TargetFlow:
		return tsgen.New(tsgen.Options{
			Dialect:                  tsgen.Flow,
			PassthroughCustomScalars: cfg.PassthroughCustomScalars,
			CustomScalarsPrefix:      cfg.CustomScalarsPrefix,
			UseFlowExactObjects:      cfg.UseFlowExactObjects,
		}), nil
	case config.TargetScala:
		return scalagen.New(scalagen.Options{
			Namespace:                cfg.Namespace,
			PassthroughCustomScalars: cfg.PassthroughCustomScalars,
			CustomScalarsPrefix:      cfg.CustomScalarsPrefix,
		}), nil

	////////////////////////////////////////////////////////////////////////////////////////////////////
	// modern IR

	case config.TargetFlowModern:
		return flowmoderngen.New(flowmoderngen.Options{
			PassthroughCustomScalars: cfg.PassthroughCustomScalars,
			CustomScalarsPrefix:      cfg.CustomScalarsPrefix,
			UseFlowExactObjects:      cfg.UseFlowExactObjects,
		}), nil
	case config.TargetSwift:
		return swiftgen.New(swiftgen.Options{
			Namespace:                cfg.Namespace,
			PassthroughCustomScalars: cfg.PassthroughCustomScalars,
			CustomScalarsPrefix:      cfg.CustomScalarsPrefix,
			OperationIdentifiers:     cfg.GenerateOperationIDs,
		}), nil
	case config.TargetGo:
		return querygen.New(querygen.Options{
			Package:                  cfg.Package,
			PassthroughCustomScalars: cfg.PassthroughCustomScalars,
			CustomScalarsPrefix:      cfg.CustomScalarsPrefix,
			OperationIDs:             cfg.GenerateOperationIDs,
		}), nil
	}

	return nil, fmt.Errorf("unknown target %q", cfg.Target)
}

// ValidateOptions returns the target specific validation rules. Swift
// output relies on the injected __typename, so explicit selections are
// rejected there.
func ValidateOptions(target config.Target) queryparser.ValidateOptions {
	return queryparser.ValidateOptions{
		ForbidExplicitTypename: target == config.TargetSwift,
	}
}
