package actions

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
	"github.com/felixgeelhaar/makeflow/internal/ports"
)

func execDefinition() Definition {
	return Definition{
		Kind:    KindExec,
		Summary: "runs a program and fails on a non-zero exit code",
		Params: Params{
			{Name: "program", Type: TypeString, Required: true},
			{Name: "argv", Type: TypeStrings},
			{Name: "env", Type: TypeStringMap},
			{Name: "cwd", Type: TypeString},
			{Name: "shell", Type: TypeBool},
			{Name: "ignore_exit_code", Type: TypeBool},
		},
		New: newExec,
	}
}

func newExec(args Args, deps Deps) (Built, error) {
	action := target.ActionFunc(func(rc target.RunContext) error {
		r, err := args.Resolve(rc)
		if err != nil {
			return err
		}
		program, err := r.String("program")
		if err != nil {
			return err
		}
		argv, err := r.Strings("argv")
		if err != nil {
			return err
		}
		env, err := r.StringMap("env")
		if err != nil {
			return err
		}
		cwd, err := r.StringOr("cwd", "")
		if err != nil {
			return err
		}
		shell, err := r.Bool("shell", false)
		if err != nil {
			return err
		}
		ignoreExit, err := r.Bool("ignore_exit_code", false)
		if err != nil {
			return err
		}

		dir := rc.Dir()
		if cwd != "" {
			dir = rc.Path(cwd)
		}

		result, err := deps.Runner.Run(rc.Context(), ports.CommandSpec{
			Program: program,
			Args:    argv,
			Dir:     dir,
			Env:     envList(env),
			Shell:   shell,
			Stdout:  deps.Stdout,
			Stderr:  deps.Stderr,
		})
		if err != nil {
			return fmt.Errorf("failed to launch program: %w", err)
		}
		if !result.Success() && !ignoreExit {
			return fmt.Errorf("%s exited with %d", program, result.ExitCode)
		}
		return nil
	})

	return Built{
		Action: action,
		Attrs:  literalAttrs(args, map[string]string{"program": "program"}),
	}, nil
}

// envList renders env as sorted KEY=VALUE pairs.
func envList(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
