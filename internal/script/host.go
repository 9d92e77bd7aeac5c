// Package script implements ScriptHost (§4.5): a fresh, short-lived goja VM
// per invocation running a user's pre/post-request script against a
// deserialized JSON view of the request/response and environment.
package script

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"atac/internal/atacx/errs"
	"atac/internal/auth"
	"atac/internal/model"
)

// Result carries the three values a script call always serializes back:
// the (possibly mutated) subject, the (possibly mutated) env map, and the
// accumulated console log.
type Result struct {
	Subject map[string]any
	Env     map[string]string
	Log     string
}

// consoleBuffer backs the injected console.log/pretty_print ABI.
type consoleBuffer struct {
	lines []string
}

func (c *consoleBuffer) write(args ...goja.Value) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	c.lines = append(c.lines, strings.Join(parts, " "))
}

func (c *consoleBuffer) String() string {
	if len(c.lines) == 0 {
		return ""
	}
	return strings.Join(c.lines, "\n") + "\n"
}

// newVM builds a fresh goja runtime with the fixed host ABI: console.log,
// pretty_print, and generate_signed_jwt bridging to the auth package
// (§4.5). No state persists between calls — callers must discard vm after
// one Run.
func newVM() (*goja.Runtime, *consoleBuffer) {
	vm := goja.New()
	buf := &consoleBuffer{}

	console := vm.NewObject()
	console.Set("log", func(call goja.FunctionCall) goja.Value {
		buf.write(call.Arguments...)
		return goja.Undefined()
	})
	vm.Set("console", console)

	vm.Set("pretty_print", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Undefined()
		}
		exported := call.Arguments[0].Export()
		data, err := json.MarshalIndent(exported, "", "  ")
		if err != nil {
			buf.write(vm.ToValue(fmt.Sprintf("pretty_print error: %v", err)))
			return goja.Undefined()
		}
		buf.write(vm.ToValue(string(data)))
		return goja.Undefined()
	})

	vm.Set("generate_signed_jwt", func(call goja.FunctionCall) goja.Value {
		args := call.Arguments
		if len(args) < 4 {
			panic(vm.ToValue("generate_signed_jwt requires (alg, secret_type, secret, payload)"))
		}
		spec := model.JwtSpec{
			Algorithm:  model.JwtAlgorithm(args[0].String()),
			SecretType: model.JwtSecretType(args[1].String()),
			Secret:     args[2].String(),
		}
		payload := args[3].Export()
		payloadJSON, err := json.Marshal(payload)
		if err != nil {
			panic(vm.ToValue(err.Error()))
		}
		spec.Payload = string(payloadJSON)
		token, err := auth.EncodeJWT(spec)
		if err != nil {
			panic(vm.ToValue(err.Error()))
		}
		return vm.ToValue(token)
	})

	return vm, buf
}

// runScript evaluates body against the given global variable name bound to
// subject, with env bound to "env". It returns the post-run values of
// subject/env (re-exported from the VM) and the console log. Any panic
// inside the script (including the host ABI's own panics) is recovered and
// turned into an error per §4.5's "parse failure returns (None, original
// env, error_string)" contract generalized to script-execution failure.
func runScript(body string, bindingName string, subject map[string]any, env map[string]string) (res Result, err error) {
	vm, buf := newVM()
	defer func() {
		if r := recover(); r != nil {
			err = errs.New(errs.KindScript, "run_script", bindingName, fmt.Errorf("%v", r))
			res = Result{Subject: nil, Env: env, Log: buf.String()}
		}
	}()

	if err := vm.Set(bindingName, subject); err != nil {
		return Result{}, errs.New(errs.KindScript, "run_script", bindingName, err)
	}
	if err := vm.Set("env", env); err != nil {
		return Result{}, errs.New(errs.KindScript, "run_script", bindingName, err)
	}

	if _, err := vm.RunString(body); err != nil {
		return Result{Subject: nil, Env: env, Log: buf.String()}, errs.New(errs.KindScript, "run_script", bindingName, err)
	}

	// Serialize back to JSON and reparse, per §4.5: "the host serializes
	// [request|response, env, log] back to JSON and parses it."
	subjectVal := vm.Get(bindingName)
	envVal := vm.Get("env")

	subjectJSON, err1 := json.Marshal(subjectVal.Export())
	envJSON, err2 := json.Marshal(envVal.Export())
	if err1 != nil || err2 != nil {
		return Result{Subject: nil, Env: env, Log: buf.String()}, errs.New(errs.KindScript, "run_script", bindingName, fmt.Errorf("serialize: %v / %v", err1, err2))
	}

	var newSubject map[string]any
	if err := json.Unmarshal(subjectJSON, &newSubject); err != nil {
		return Result{Subject: nil, Env: env, Log: buf.String()}, errs.New(errs.KindScript, "run_script", bindingName, err)
	}
	var newEnv map[string]string
	if err := json.Unmarshal(envJSON, &newEnv); err != nil {
		newEnv = env
	}

	return Result{Subject: newSubject, Env: newEnv, Log: buf.String()}, nil
}

// RunPre executes a pre-request script against a JSON view of req and env,
// returning the mutated view (the caller applies it back onto the model).
func RunPre(scriptBody string, req map[string]any, env map[string]string) (Result, error) {
	return runScript(scriptBody, "request", req, env)
}

// RunPost executes a post-request script against a JSON view of resp and
// env. Status code and duration are never overwritten by a post-request
// script per §4.5 — the caller must re-attach them from the original
// response after deserialization.
func RunPost(scriptBody string, resp map[string]any, env map[string]string) (Result, error) {
	return runScript(scriptBody, "response", resp, env)
}
