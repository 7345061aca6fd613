package queryparser

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/validator"
	"github.com/vektah/gqlparser/v2/validator/rules"
)

// ValidateOptions toggles the target specific rules.
type ValidateOptions struct {
	// ForbidExplicitTypename rejects __typename selections, for targets that
	// always inject the discriminator themselves.
	ForbidExplicitTypename bool
}

// specifiedRules is the standard rule set without NoUnusedFragments, since
// fragments are routinely declared in one file and spread from another.
var specifiedRules = []validator.Rule{
	rules.FieldsOnCorrectTypeRule,
	rules.FragmentsOnCompositeTypesRule,
	rules.KnownArgumentNamesRule,
	rules.KnownDirectivesRule,
	rules.KnownFragmentNamesRule,
	rules.KnownRootTypeRule,
	rules.KnownTypeNamesRule,
	rules.LoneAnonymousOperationRule,
	rules.NoFragmentCyclesRule,
	rules.NoUndefinedVariablesRule,
	rules.NoUnusedVariablesRule,
	rules.OverlappingFieldsCanBeMergedRule,
	rules.PossibleFragmentSpreadsRule,
	rules.ProvidedRequiredArgumentsRule,
	rules.ScalarLeafsRule,
	rules.SingleFieldSubscriptionsRule,
	rules.UniqueArgumentNamesRule,
	rules.UniqueDirectivesPerLocationRule,
	rules.UniqueFragmentNamesRule,
	rules.UniqueInputFieldNamesRule,
	rules.UniqueOperationNamesRule,
	rules.UniqueVariableNamesRule,
	rules.ValuesOfCorrectTypeRule,
	rules.VariablesAreInputTypesRule,
	rules.VariablesInAllowedPositionRule,
}

var noAnonymousQueriesRule = validator.Rule{
	Name: "NoAnonymousQueries",
	RuleFunc: func(observers *validator.Events, addError validator.AddErrFunc) {
		observers.OnOperation(func(walker *validator.Walker, operation *ast.OperationDefinition) {
			if operation.Name == "" {
				addError(
					validator.Message("Anonymous operations are not supported. Give every operation a name."),
					validator.At(operation.Position),
				)
			}
		})
	},
}

var noTypenameAliasRule = validator.Rule{
	Name: "NoTypenameAlias",
	RuleFunc: func(observers *validator.Events, addError validator.AddErrFunc) {
		observers.OnField(func(walker *validator.Walker, field *ast.Field) {
			if field.Alias == "__typename" && field.Name != "__typename" {
				addError(
					validator.Message(`"__typename" is inserted by the generator when needed and cannot be used as an alias.`),
					validator.At(field.Position),
				)
			}
		})
	},
}

var noExplicitTypenameRule = validator.Rule{
	Name: "NoExplicitTypename",
	RuleFunc: func(observers *validator.Events, addError validator.AddErrFunc) {
		observers.OnField(func(walker *validator.Walker, field *ast.Field) {
			if field.Name == "__typename" {
				addError(
					validator.Message(`"__typename" is inserted by the generator when needed. Remove the explicit selection.`),
					validator.At(field.Position),
				)
			}
		})
	},
}

// Validate checks doc against schema and returns a *ValidationError holding
// every failure.
func Validate(schema *ast.Schema, doc *ast.QueryDocument, opts ValidateOptions) error {
	rs := append([]validator.Rule{}, specifiedRules...)
	rs = append(rs, noAnonymousQueriesRule, noTypenameAliasRule)
	if opts.ForbidExplicitTypename {
		rs = append(rs, noExplicitTypenameRule)
	}

	if errs := validator.Validate(schema, doc, rs...); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}
