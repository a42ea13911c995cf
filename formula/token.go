package formula

import "regexp"

// TokenType labels a classified formula token.
type TokenType string

const (
	TokenNumber      TokenType = "number"
	TokenIdentifier  TokenType = "identifier"
	TokenOperator    TokenType = "operator"
	TokenUnaryMinus  TokenType = "unary-minus"
	TokenUnaryPlus   TokenType = "unary-plus"
	TokenBinaryMinus TokenType = "binary-minus"
	TokenBinaryPlus  TokenType = "binary-plus"
	TokenUnknown     TokenType = "unknown"
)

// ClassifiedToken pairs a raw token with its classification.
type ClassifiedToken struct {
	Token string    `json:"token"`
	Type  TokenType `json:"type"`
}

var (
	tokenPattern      = regexp.MustCompile(`\d+(?:\.\d+)?|[a-zA-Z_][a-zA-Z0-9_]*|[+\-*/()]`)
	numberPattern     = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	operatorPattern   = regexp.MustCompile(`^[+\-*/()]$`)
)

// Tokenize splits a formula into numbers, identifiers and the operators
// + - * / ( ). Characters outside those classes are dropped, not reported.
func Tokenize(formula string) []string {
	return tokenPattern.FindAllString(formula, -1)
}

// Classify tags each token. A plus or minus is unary when it opens the
// formula or follows an operator-family token other than a closing paren.
func Classify(tokens []string) []ClassifiedToken {
	result := make([]ClassifiedToken, 0, len(tokens))
	for _, token := range tokens {
		switch {
		case numberPattern.MatchString(token):
			result = append(result, ClassifiedToken{Token: token, Type: TokenNumber})
		case identifierPattern.MatchString(token):
			result = append(result, ClassifiedToken{Token: token, Type: TokenIdentifier})
		case operatorPattern.MatchString(token):
			if token == "-" || token == "+" {
				unary := len(result) == 0
				if !unary {
					prev := result[len(result)-1]
					unary = prev.Type.operatorFamily() && prev.Token != ")"
				}
				result = append(result, ClassifiedToken{Token: token, Type: plusMinusType(token, unary)})
			} else {
				result = append(result, ClassifiedToken{Token: token, Type: TokenOperator})
			}
		default:
			result = append(result, ClassifiedToken{Token: token, Type: TokenUnknown})
		}
	}
	return result
}

func plusMinusType(token string, unary bool) TokenType {
	if token == "-" {
		if unary {
			return TokenUnaryMinus
		}
		return TokenBinaryMinus
	}
	if unary {
		return TokenUnaryPlus
	}
	return TokenBinaryPlus
}

func (t TokenType) operatorFamily() bool {
	switch t {
	case TokenOperator, TokenUnaryMinus, TokenUnaryPlus, TokenBinaryMinus, TokenBinaryPlus:
		return true
	default:
		return false
	}
}

// IsOperand reports whether the token is a number or identifier.
func (t TokenType) IsOperand() bool {
	return t == TokenNumber || t == TokenIdentifier
}
