package tool

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Arithmetic evaluator backing the math tutor: + - * / with parentheses,
// unary minus, and decimal numbers. Anything else is rejected up front so a
// student's stray words never reach the parser.

type evalToken struct {
	kind  byte // 'n' number, 'o' operator, '(' or ')'
	value float64
	op    byte
}

func tokenizeExpression(input string) ([]evalToken, error) {
	var tokens []evalToken
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++
		case ch == '(' || ch == ')':
			tokens = append(tokens, evalToken{kind: ch})
			i++
		case ch == '+' || ch == '-' || ch == '*' || ch == '/':
			tokens = append(tokens, evalToken{kind: 'o', op: ch})
			i++
		case (ch >= '0' && ch <= '9') || ch == '.':
			j := i
			dots := 0
			for j < len(input) && ((input[j] >= '0' && input[j] <= '9') || input[j] == '.') {
				if input[j] == '.' {
					dots++
				}
				j++
			}
			if dots > 1 {
				return nil, fmt.Errorf("invalid number %q", input[i:j])
			}
			v, err := strconv.ParseFloat(input[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q", input[i:j])
			}
			tokens = append(tokens, evalToken{kind: 'n', value: v})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", ch, i)
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("expression is empty")
	}
	return tokens, nil
}

type evaluator struct {
	tokens []evalToken
	pos    int
}

func evaluateExpression(input string) (float64, error) {
	tokens, err := tokenizeExpression(strings.TrimSpace(input))
	if err != nil {
		return 0, err
	}
	e := &evaluator{tokens: tokens}
	v, err := e.parseBinary(0)
	if err != nil {
		return 0, err
	}
	if e.pos != len(e.tokens) {
		return 0, fmt.Errorf("unexpected trailing input")
	}
	return v, nil
}

func precedenceOf(op byte) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	}
	return 0
}

// parseBinary is a precedence-climbing loop over binary operators.
func (e *evaluator) parseBinary(minPrec int) (float64, error) {
	left, err := e.parseOperand()
	if err != nil {
		return 0, err
	}

	for e.pos < len(e.tokens) {
		tok := e.tokens[e.pos]
		if tok.kind != 'o' || precedenceOf(tok.op) < minPrec {
			break
		}
		e.pos++

		right, err := e.parseBinary(precedenceOf(tok.op) + 1)
		if err != nil {
			return 0, err
		}

		switch tok.op {
		case '+':
			left += right
		case '-':
			left -= right
		case '*':
			left *= right
		case '/':
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		}
	}
	return left, nil
}

func (e *evaluator) parseOperand() (float64, error) {
	if e.pos >= len(e.tokens) {
		return 0, fmt.Errorf("expression ends unexpectedly")
	}
	tok := e.tokens[e.pos]

	switch {
	case tok.kind == 'n':
		e.pos++
		return tok.value, nil
	case tok.kind == 'o' && tok.op == '-':
		e.pos++
		v, err := e.parseOperand()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case tok.kind == 'o' && tok.op == '+':
		e.pos++
		return e.parseOperand()
	case tok.kind == '(':
		e.pos++
		v, err := e.parseBinary(0)
		if err != nil {
			return 0, err
		}
		if e.pos >= len(e.tokens) || e.tokens[e.pos].kind != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		e.pos++
		return v, nil
	default:
		return 0, fmt.Errorf("unexpected token")
	}
}

const answerTolerance = 1e-9

// checkAnswer grades a student's numeric answer against the expression.
func checkAnswer(expression string, answer float64) (correct bool, expected float64, err error) {
	expected, err = evaluateExpression(expression)
	if err != nil {
		return false, 0, err
	}
	return math.Abs(expected-answer) <= answerTolerance, expected, nil
}
