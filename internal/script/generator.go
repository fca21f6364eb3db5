package script

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/dop251/goja"

	"github.com/packagesmith/packagesmith/internal/provision"
)

// Script compiles body as the body of a JavaScript function
// `(current, answers)` and returns a generator that calls it. A string result
// is used as is; objects and arrays are serialized as indented JSON.
func Script(body string) (provision.Generator, error) {
	src := "(function(current, answers) {\n" + body + "\n})"
	prog, err := goja.Compile("contents", src, true)
	if err != nil {
		return nil, &provision.Error{Code: provision.CodeScript, Err: fmt.Errorf("compiling script: %w", err)}
	}

	return func(current string, answers provision.Answers) (string, error) {
		vm := goja.New()
		bindCommon(vm)

		v, err := vm.RunProgram(prog)
		if err != nil {
			return "", &provision.Error{Code: provision.CodeScript, Err: fmt.Errorf("evaluating script: %w", err)}
		}
		fn, ok := goja.AssertFunction(v)
		if !ok {
			return "", &provision.Error{Code: provision.CodeScript, Err: fmt.Errorf("script did not produce a function")}
		}
		res, err := fn(goja.Undefined(), vm.ToValue(current), vm.ToValue(map[string]any(answers)))
		if err != nil {
			return "", &provision.Error{Code: provision.CodeScript, Err: fmt.Errorf("running script: %w", err)}
		}
		return exportText(vm, res)
	}, nil
}

func exportText(vm *goja.Runtime, v goja.Value) (string, error) {
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return "", &provision.Error{Code: provision.CodeScript, Err: fmt.Errorf("script returned %s", v.String())}
	}
	if s, ok := v.Export().(string); ok {
		return s, nil
	}
	if _, ok := v.(*goja.Object); !ok {
		return v.String(), nil
	}

	stringify, ok := goja.AssertFunction(vm.Get("JSON").ToObject(vm).Get("stringify"))
	if !ok {
		return "", &provision.Error{Code: provision.CodeScript, Err: fmt.Errorf("JSON.stringify unavailable")}
	}
	out, err := stringify(goja.Undefined(), v, goja.Null(), vm.ToValue(2))
	if err != nil {
		return "", &provision.Error{Code: provision.CodeScript, Err: fmt.Errorf("serializing script result: %w", err)}
	}
	return out.String() + "\n", nil
}

// bindCommon installs a silent console so scripts written for node do not
// fail on logging calls, plus the string helpers templates get.
func bindCommon(vm *goja.Runtime) {
	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
	_ = vm.Set("console", map[string]func(goja.FunctionCall) goja.Value{
		"log":   noop,
		"warn":  noop,
		"error": noop,
	})
	_ = vm.Set("kebab", Kebab)
}

// TemplateData is the value templates are executed against.
type TemplateData struct {
	Current string
	Answers provision.Answers
}

// Funcs are the helpers available to content templates.
var Funcs = template.FuncMap{
	"kebab": func(v any) string {
		if v == nil {
			return ""
		}
		return Kebab(fmt.Sprint(v))
	},
	"trim":  strings.TrimSpace,
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}

// Template parses text and returns a generator that renders it over the
// current contents and answers. Missing answers render as empty.
func Template(text string) (provision.Generator, error) {
	tmpl, err := template.New("contents").Funcs(Funcs).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, &provision.Error{Code: provision.CodeScript, Err: fmt.Errorf("parsing template: %w", err)}
	}
	return func(current string, answers provision.Answers) (string, error) {
		if answers == nil {
			answers = provision.Answers{}
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, TemplateData{Current: current, Answers: answers}); err != nil {
			return "", &provision.Error{Code: provision.CodeScript, Err: fmt.Errorf("rendering template: %w", err)}
		}
		return strings.ReplaceAll(buf.String(), "<no value>", ""), nil
	}, nil
}
