package buildfile

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/felixgeelhaar/makeflow/internal/actions"
	"github.com/felixgeelhaar/makeflow/internal/domain/target"
)

type hclRoot struct {
	Requires string       `hcl:"requires,optional"`
	Subdirs  []*hclSubdir `hcl:"subdir,block"`
	Targets  []*hclTarget `hcl:"target,block"`
}

type hclSubdir struct {
	Name string `hcl:"name,label"`
	File string `hcl:"file,optional"`
}

type hclTarget struct {
	Name    string   `hcl:"name,label"`
	Action  string   `hcl:"action,optional"`
	Depends []string `hcl:"depends,optional"`
	Remain  hcl.Body `hcl:",remain"`
}

// Variables available to deferred expressions.
var hclVariables = []string{"dir", "env", "prefix", "target", "values"}

var hclFunctions = map[string]function.Function{
	"format":    stdlib.FormatFunc,
	"join":      stdlib.JoinFunc,
	"lower":     stdlib.LowerFunc,
	"trimspace": stdlib.TrimSpaceFunc,
	"upper":     stdlib.UpperFunc,
}

// HCLParser parses HCL build files.
//
// Target attributes other than action and depends become action arguments.
// Constant expressions are evaluated while parsing. Expressions that reference
// variables are evaluated when the action starts.
type HCLParser struct {
	// Environ supplies the env variable. Defaults to os.Environ.
	Environ func() []string
}

// ParseHCL parses an HCL build file with the process environment.
func ParseHCL(path string, data []byte) (*File, error) {
	return HCLParser{}.Parse(path, data)
}

// Parse parses data as the HCL build file at path.
func (p HCLParser) Parse(path string, data []byte) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, NewParseError(path, diags)
	}

	var root hclRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, NewParseError(path, diags)
	}

	f := &File{
		Path:     path,
		Format:   FormatHCL,
		Requires: root.Requires,
		Subdirs:  make([]SubdirDecl, 0, len(root.Subdirs)),
		Targets:  make([]TargetDecl, 0, len(root.Targets)),
	}
	for _, s := range root.Subdirs {
		f.Subdirs = append(f.Subdirs, SubdirDecl{Name: s.Name, File: s.File})
	}
	for _, t := range root.Targets {
		args, diags := p.arguments(t.Remain)
		if diags.HasErrors() {
			return nil, NewParseError(path, diags)
		}
		f.Targets = append(f.Targets, TargetDecl{
			Name:    t.Name,
			Action:  t.Action,
			Depends: t.Depends,
			Args:    args,
		})
	}
	return f, nil
}

func (p HCLParser) arguments(body hcl.Body) (actions.Args, hcl.Diagnostics) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	args := make(actions.Args, len(attrs))
	for name, attr := range attrs {
		if len(attr.Expr.Variables()) == 0 {
			val, valDiags := attr.Expr.Value(&hcl.EvalContext{Functions: hclFunctions})
			diags = append(diags, valDiags...)
			if valDiags.HasErrors() {
				continue
			}
			v, err := fromCty(val)
			if err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Unsupported argument value",
					Detail:   fmt.Sprintf("The %q argument: %v.", name, err),
					Subject:  attr.Expr.Range().Ptr(),
				})
				continue
			}
			args[name] = target.Literal(v)
			continue
		}

		if varDiags := checkVariables(attr.Expr); varDiags.HasErrors() {
			diags = append(diags, varDiags...)
			continue
		}
		args[name] = p.deferred(name, attr.Expr)
	}
	return args, diags
}

func (p HCLParser) deferred(name string, expr hcl.Expression) target.Value[interface{}] {
	return target.Supplier(func(rc target.RunContext) (interface{}, error) {
		val, diags := expr.Value(p.evalContext(rc))
		if diags.HasErrors() {
			return nil, diags
		}
		v, err := fromCty(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	})
}

func checkVariables(expr hcl.Expression) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, traversal := range expr.Variables() {
		root := traversal.RootName()
		if !knownVariable(root) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown variable",
				Detail:   fmt.Sprintf("There is no variable named %q. Available: %s.", root, strings.Join(hclVariables, ", ")),
				Subject:  traversal.SourceRange().Ptr(),
			})
		}
	}
	return diags
}

func knownVariable(name string) bool {
	for _, v := range hclVariables {
		if v == name {
			return true
		}
	}
	return false
}

func (p HCLParser) evalContext(rc target.RunContext) *hcl.EvalContext {
	dir := rc.Dir()
	if dir == "" {
		dir = "."
	}
	name := ""
	if t := rc.Target(); t != nil {
		name = t.Name
	}
	opts := rc.Options()

	vars := map[string]cty.Value{
		"dir":    cty.StringVal(dir),
		"env":    p.envValue(),
		"prefix": cty.StringVal(opts.Prefix),
		"target": cty.StringVal(name),
		"values": toCty(opts.Values),
	}
	return &hcl.EvalContext{Variables: vars, Functions: hclFunctions}
}

func (p HCLParser) envValue() cty.Value {
	environ := p.Environ
	if environ == nil {
		environ = os.Environ
	}
	env := make(map[string]cty.Value)
	for _, kv := range environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = cty.StringVal(v)
	}
	if len(env) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	return cty.MapVal(env)
}

// fromCty converts an evaluated expression into the plain Go values actions
// consume. Whole numbers become int64.
func fromCty(val cty.Value) (interface{}, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]interface{})
		it := val.ElementIterator()
		for it.Next() {
			k, v := it.Element()
			converted, err := fromCty(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = converted
		}
		return out, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]interface{}, 0, val.LengthInt())
		it := val.ElementIterator()
		for it.Next() {
			_, v := it.Element()
			converted, err := fromCty(v)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

// toCty converts caller-defined option values for use in expressions. Values
// of unknown types are rendered with fmt.
func toCty(v interface{}) cty.Value {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case string:
		return cty.StringVal(x)
	case bool:
		return cty.BoolVal(x)
	case int, int32, int64, uint, uint32, uint64, float32, float64:
		n, err := gocty.ToCtyValue(x, cty.Number)
		if err != nil {
			return cty.StringVal(fmt.Sprint(x))
		}
		return n
	case []string:
		items := make([]interface{}, len(x))
		for i, s := range x {
			items[i] = s
		}
		return toCty(items)
	case []interface{}:
		if len(x) == 0 {
			return cty.EmptyTupleVal
		}
		items := make([]cty.Value, len(x))
		for i, item := range x {
			items[i] = toCty(item)
		}
		return cty.TupleVal(items)
	case map[string]string:
		m := make(map[string]interface{}, len(x))
		for k, s := range x {
			m[k] = s
		}
		return toCty(m)
	case map[string]interface{}:
		if len(x) == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, len(x))
		for k, item := range x {
			attrs[k] = toCty(item)
		}
		return cty.ObjectVal(attrs)
	default:
		return cty.StringVal(fmt.Sprint(x))
	}
}
