// Package formula tokenizes, validates and evaluates the arithmetic formulas
// used by KPI definitions. Grammar-level validation and evaluation delegate
// to the expr engine; the token-sequence validator layers the checks the
// grammar alone does not express.
package formula

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/spf13/cast"
)

// Validation is the outcome of one validation layer.
type Validation struct {
	Valid bool
	Error string
}

// Result is the composed outcome of Parse.
type Result struct {
	Tokens     []ClassifiedToken
	Grammar    Validation
	Custom     Validation
	Evaluation *float64
}

// ValidateGrammar compiles the formula with the expression engine and reports
// the compile error verbatim. Identifiers are allowed to be unknown here;
// cross-referencing them against counters is the caller's concern.
func ValidateGrammar(formula string) Validation {
	if _, err := compile(formula); err != nil {
		return Validation{Valid: false, Error: err.Error()}
	}
	return Validation{Valid: true}
}

// ValidateTokens applies the token-sequence rules: parenthesis nesting must
// never go negative and must end balanced, two operands must not be
// adjacent, and an operator must not follow another operator. Unary minus
// after an operator or an opening paren is the one permitted exception; the
// expression engine would also accept a unary plus there, which these
// formulas do not.
func ValidateTokens(tokens []ClassifiedToken) Validation {
	balance := 0
	for i, tok := range tokens {
		if tok.Token == "(" {
			balance++
		}
		if tok.Token == ")" {
			balance--
		}
		if balance < 0 {
			return Validation{Valid: false, Error: "Too many closing parentheses"}
		}
		if i > 0 {
			prev := tokens[i-1]
			if prev.Type.IsOperand() && tok.Type.IsOperand() {
				return Validation{
					Valid: false,
					Error: fmt.Sprintf("Invalid sequence: '%s' followed by '%s'", prev.Token, tok.Token),
				}
			}
			if prev.Type.operatorFamily() && prev.Token != ")" &&
				tok.Type.operatorFamily() && tok.Token != "(" && tok.Type != TokenUnaryMinus {
				return Validation{
					Valid: false,
					Error: fmt.Sprintf("Invalid sequence: '%s' followed by '%s'", prev.Token, tok.Token),
				}
			}
		}
	}
	if balance != 0 {
		return Validation{Valid: false, Error: "Unbalanced parentheses"}
	}
	return Validation{Valid: true}
}

// Evaluate runs the formula over the scope and returns nil on any compile or
// runtime failure rather than an error; an invalid formula is an expected
// domain condition, not an exception.
func Evaluate(formula string, scope map[string]float64) *float64 {
	program, err := compile(formula)
	if err != nil {
		return nil
	}
	env := make(map[string]interface{}, len(scope))
	for name, value := range scope {
		env[name] = value
	}
	out, err := vm.Run(program, env)
	if err != nil {
		return nil
	}
	value, err := cast.ToFloat64E(out)
	if err != nil {
		return nil
	}
	return &value
}

// Parse is the composed pipeline: tokenize, classify, run both validators,
// and evaluate only when the grammar layer passed.
func Parse(formula string, scope map[string]float64) Result {
	tokens := Classify(Tokenize(formula))
	result := Result{
		Tokens:  tokens,
		Grammar: ValidateGrammar(formula),
		Custom:  ValidateTokens(tokens),
	}
	if result.Grammar.Valid {
		result.Evaluation = Evaluate(formula, scope)
	}
	return result
}

func compile(formula string) (*vm.Program, error) {
	return expr.Compile(formula, expr.Env(map[string]interface{}{}), expr.AllowUndefinedVariables())
}
