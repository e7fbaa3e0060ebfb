package rp

import (
	"reflect"
	"runtime"
	"strings"
)

// stepLabel generates a string such as
// `  => then(lookupUser) =>`
// from the inputs stepLabel("then", lookupUser).
func stepLabel(kind string, fn any) string {
	return "  => " + FuncStr(kind, funcName(fn)) + " =>"
}

// spanName turns a step label into a plain span name, e.g. `then lookupUser` for
// `  => then(lookupUser) =>`.
func spanName(label string) string {
	s := strings.TrimSuffix(strings.TrimPrefix(label, "  => "), " =>")
	i := strings.IndexByte(s, '(')
	if i < 0 || !strings.HasSuffix(s, ")") {
		return s
	}
	args := strings.ReplaceAll(s[i+1:len(s)-1], ", ", " ")
	if args == "" {
		return s[:i]
	}
	return s[:i] + " " + args
}

// FuncStr generates a string such as
// `my_stage_name(dep1, dep2)`
// from the inputs FuncStr("my_stage_name", "dep1", "dep2")
func FuncStr(name string, deps ...string) string {

	params := "("
	for i, dep := range deps {
		params += dep
		if i < len(deps)-1 {
			params += ", "
		}
	}
	params += ")"

	return name + params
}

// funcName returns the short name of fn, e.g. "lookupUser" or "TestScenario.func1".
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
