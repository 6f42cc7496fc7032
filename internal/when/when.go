// Package when serializes keybinding "when" conditions into a canonical form
// and extracts the context keys they reference.
//
// Conditions are parsed with the CEL parser, which accepts the common subset
// of the when-clause grammar (&&, ||, !, ==, !=, parentheses, dotted keys and
// quoted strings). Conditions CEL cannot parse, such as regex matches with
// =~, fall back to whitespace-collapsed text and a lexical key scan.
package when

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Clause is a normalized when condition.
type Clause struct {
	// Raw is the condition as written, trimmed.
	Raw string `json:"raw" yaml:"raw"`
	// Canonical is the serialized form. Empty when Raw is empty.
	Canonical string `json:"canonical" yaml:"canonical"`
	// Keys are the context keys the condition reads, sorted and unique.
	Keys []string `json:"keys,omitempty" yaml:"keys,omitempty"`
	// Parsed is false when the condition fell back to lexical handling.
	Parsed bool `json:"parsed" yaml:"parsed"`
}

// Normalizer parses when conditions. It is safe for concurrent use.
type Normalizer struct {
	env *cel.Env
}

// NewNormalizer creates a Normalizer with an empty CEL environment; parsing
// does not need declarations.
func NewNormalizer() (*Normalizer, error) {
	env, err := cel.NewEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Normalizer{env: env}, nil
}

// Normalize serializes expr. It never fails: unparsable input is kept as
// text with collapsed whitespace.
func (n *Normalizer) Normalize(expr string) Clause {
	raw := strings.TrimSpace(expr)
	if raw == "" {
		return Clause{}
	}
	c := Clause{Raw: raw}

	ast, issues := n.env.Parse(raw)
	if issues == nil || issues.Err() == nil {
		canonical, err := cel.AstToString(ast)
		parsed, perr := cel.AstToParsedExpr(ast)
		if err == nil && perr == nil {
			c.Canonical = canonical
			c.Keys = uniqueSorted(contextKeys(parsed.GetExpr()))
			c.Parsed = true
			return c
		}
	}

	c.Canonical = strings.Join(strings.Fields(raw), " ")
	c.Keys = uniqueSorted(lexicalKeys(raw))
	return c
}

// comparisons are the operators whose right-hand side is a value rather than
// a context key.
var comparisons = map[string]bool{
	"_==_": true,
	"_!=_": true,
	"_<_":  true,
	"_<=_": true,
	"_>_":  true,
	"_>=_": true,
	"@in":  true,
}

func contextKeys(expr *exprpb.Expr) []string {
	var keys []string
	var walk func(*exprpb.Expr)
	walk = func(e *exprpb.Expr) {
		if e == nil {
			return
		}
		switch e.ExprKind.(type) {
		case *exprpb.Expr_IdentExpr, *exprpb.Expr_SelectExpr:
			if path, ok := dottedPath(e); ok {
				keys = append(keys, path)
				return
			}
			if sel := e.GetSelectExpr(); sel != nil {
				walk(sel.GetOperand())
			}
		case *exprpb.Expr_CallExpr:
			call := e.GetCallExpr()
			if comparisons[call.GetFunction()] && len(call.GetArgs()) == 2 {
				walk(call.GetArgs()[0])
				return
			}
			walk(call.GetTarget())
			for _, arg := range call.GetArgs() {
				walk(arg)
			}
		case *exprpb.Expr_ListExpr:
			for _, el := range e.GetListExpr().GetElements() {
				walk(el)
			}
		}
	}
	walk(expr)
	return keys
}

// dottedPath renders an identifier or a chain of field selections on an
// identifier, e.g. config.editor.wordWrap.
func dottedPath(e *exprpb.Expr) (string, bool) {
	switch e.ExprKind.(type) {
	case *exprpb.Expr_IdentExpr:
		return e.GetIdentExpr().GetName(), true
	case *exprpb.Expr_SelectExpr:
		sel := e.GetSelectExpr()
		base, ok := dottedPath(sel.GetOperand())
		if !ok {
			return "", false
		}
		return base + "." + sel.GetField(), true
	}
	return "", false
}

var (
	clauseSplit = regexp.MustCompile(`&&|\|\|`)
	operatorCut = regexp.MustCompile(`\s*(==|!=|=~|<=|>=|<|>|\snot in\s|\sin\s)`)
	keyPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.:-]*$`)
)

func lexicalKeys(raw string) []string {
	var keys []string
	for _, clause := range clauseSplit.Split(raw, -1) {
		clause = strings.Trim(clause, " \t()!")
		if loc := operatorCut.FindStringIndex(clause); loc != nil {
			clause = strings.TrimSpace(clause[:loc[0]])
		}
		clause = strings.Trim(clause, " \t()!")
		if keyPattern.MatchString(clause) && clause != "true" && clause != "false" {
			keys = append(keys, clause)
		}
	}
	return keys
}

func uniqueSorted(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}
