package problem

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"phylon/internal/model"
	"phylon/internal/rng"
)

// TokenKind enumerates what a regression gene can be.
type TokenKind int

const (
	TokenAdd TokenKind = iota
	TokenSub
	TokenMul
	TokenDiv
	TokenNumber
	TokenInput
)

// Token is one gene of a candidate expression: an operator, a literal
// number, or the input variable x.
type Token struct {
	Kind   TokenKind
	Number float64
}

func (t Token) String() string {
	switch t.Kind {
	case TokenAdd:
		return "+"
	case TokenSub:
		return "-"
	case TokenMul:
		return "*"
	case TokenDiv:
		return "/"
	case TokenNumber:
		return strconv.FormatFloat(t.Number, 'g', -1, 64)
	case TokenInput:
		return "x"
	}
	return ""
}

// Sample is one observed (x, y) point the candidate expressions are
// fitted against.
type Sample struct {
	X float64
	Y float64
}

// Regression is symbolic regression over flat infix expressions: a
// chromosome is a token sequence like "3 * x - 8.5", evaluated strictly
// left to right. The score is 100/(sse+1) where sse is the summed
// squared error over the samples, so a perfect noiseless fit scores 100.
// Structurally invalid chromosomes score 0, below every valid one.
type Regression struct {
	Samples []Sample
}

// NewRegression generates samples by evaluating the target expression at
// the given inputs and adding uniform noise in [-noise, noise]. Inputs
// equal to zero are skipped; division by x must stay defined.
func NewRegression(target model.Chromosome[Token], inputs []float64, noise float64, src *rng.Source) Regression {
	samples := make([]Sample, 0, len(inputs))
	for _, x := range inputs {
		if x == 0 {
			continue
		}
		y := Evaluate(target, x)
		if noise > 0 {
			y += src.Float64(-noise, noise)
		}
		samples = append(samples, Sample{X: x, Y: y})
	}
	return Regression{Samples: samples}
}

func (Regression) Name() string { return "regression" }

func (Regression) RandomGene(src *rng.Source) Token {
	kind := TokenKind(src.Int(int(TokenAdd), int(TokenInput)))
	token := Token{Kind: kind}
	if kind == TokenNumber {
		token.Number = src.Float64(0, 100)
	}
	return token
}

func (r Regression) Score(c model.Chromosome[Token]) float64 {
	if !Valid(c) {
		return 0
	}

	sse := 0.0
	for _, sample := range r.Samples {
		diff := Evaluate(c, sample.X) - sample.Y
		sse += diff * diff
	}
	score := 100.0 / (sse + 1.0)
	if math.IsNaN(score) {
		return 0
	}
	return score
}

func (Regression) Print(c model.Chromosome[Token]) string {
	parts := make([]string, len(c))
	for i, token := range c {
		parts[i] = token.String()
	}
	return strings.Join(parts, " ")
}

// Valid reports whether tokens alternate value, operator, value, ...
// starting with a value. Only valid chromosomes are worth evaluating.
func Valid(c model.Chromosome[Token]) bool {
	for i, token := range c {
		isValue := token.Kind == TokenNumber || token.Kind == TokenInput
		if i%2 == 0 && !isValue {
			return false
		}
		if i%2 == 1 && isValue {
			return false
		}
	}
	return len(c) > 0
}

// Evaluate computes the expression strictly left to right with no
// operator precedence; a trailing operator is ignored. The chromosome
// must be Valid.
func Evaluate(c model.Chromosome[Token], x float64) float64 {
	value := func(t Token) float64 {
		if t.Kind == TokenNumber {
			return t.Number
		}
		return x
	}

	result := value(c[0])
	for i := 1; i+1 < len(c); i += 2 {
		operand := value(c[i+1])
		switch c[i].Kind {
		case TokenAdd:
			result += operand
		case TokenSub:
			result -= operand
		case TokenMul:
			result *= operand
		case TokenDiv:
			result /= operand
		}
	}
	return result
}

// ParseExpression turns a whitespace-separated expression such as
// "3 * x - 8.5" into a chromosome.
func ParseExpression(text string) (model.Chromosome[Token], error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	tokens := make(model.Chromosome[Token], 0, len(fields))
	for _, field := range fields {
		switch field {
		case "+":
			tokens = append(tokens, Token{Kind: TokenAdd})
		case "-":
			tokens = append(tokens, Token{Kind: TokenSub})
		case "*":
			tokens = append(tokens, Token{Kind: TokenMul})
		case "/":
			tokens = append(tokens, Token{Kind: TokenDiv})
		case "x":
			tokens = append(tokens, Token{Kind: TokenInput})
		default:
			number, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parse token %q: %w", field, err)
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Number: number})
		}
	}
	return tokens, nil
}

// DefaultInputs is the sampling grid the CLI uses when none is given:
// [-5, 5] in steps of 0.1, zero excluded.
func DefaultInputs() []float64 {
	inputs := make([]float64, 0, 100)
	for i := -50; i <= 50; i++ {
		if i == 0 {
			continue
		}
		inputs = append(inputs, float64(i)/10)
	}
	return inputs
}
