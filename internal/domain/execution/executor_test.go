package execution_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/makeflow/internal/domain/execution"
	"github.com/felixgeelhaar/makeflow/internal/domain/target"
	"github.com/felixgeelhaar/makeflow/internal/ports"
	"github.com/felixgeelhaar/makeflow/internal/testutil"
	"github.com/felixgeelhaar/makeflow/internal/testutil/mocks"
)

// recorder builds targets whose actions append their name to a shared log.
type recorder struct {
	ran []string
}

func (r *recorder) target(name string, err error) *target.Target {
	return &target.Target{
		Name: name,
		Action: target.ActionFunc(func(target.RunContext) error {
			r.ran = append(r.ran, name)
			return err
		}),
	}
}

func TestExecutor_RunsInOrder(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	log := mocks.NewLogger()
	seq := []*target.Target{rec.target("C", nil), rec.target("B", nil), rec.target("A", nil)}

	done, err := execution.NewExecutor().WithLogger(log).Execute(context.Background(), seq)

	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, rec.ran)
	assert.Equal(t, []string{"C", "B", "A"}, target.Names(done))
	assert.Equal(t, []string{"building C", "building B", "building A"}, log.MessagesAt(ports.LevelInfo))
}

func TestExecutor_LogsWithTargetField(t *testing.T) {
	t.Parallel()

	log := mocks.NewLogger()
	tgt := &target.Target{Name: "lib", Options: target.Options{Logger: log, Prefix: "sub"}}

	_, err := execution.NewExecutor().Execute(context.Background(), []*target.Target{tgt})
	require.NoError(t, err)

	entries := log.Entries()
	require.NotEmpty(t, entries)
	name, ok := entries[0].Field("target")
	assert.True(t, ok)
	assert.Equal(t, "lib", name)
	project, _ := entries[0].Field("project")
	assert.Equal(t, "sub", project)
}

func TestExecutor_FailureStopsRun(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	log := mocks.NewLogger()
	boom := errors.New("boom")
	seq := []*target.Target{rec.target("L", nil), rec.target("M", boom), rec.target("N", nil)}

	report := execution.NewExecutor().WithLogger(log).Run(context.Background(), seq)

	assert.Equal(t, []string{"L", "M"}, rec.ran)
	require.ErrorIs(t, report.Err, target.ErrActionFailed)
	require.ErrorIs(t, report.Err, boom)
	var te *target.Error
	require.ErrorAs(t, report.Err, &te)
	assert.Equal(t, "M", te.Target)

	assert.Equal(t, execution.StateFailed, report.State)
	assert.Equal(t, execution.Summary{Total: 3, Succeeded: 1, Failed: 1, Skipped: 1}, report.Summary())
	assert.Equal(t, []string{"L"}, target.Names(report.Executed()))

	failed, ok := report.Failed()
	require.True(t, ok)
	assert.Equal(t, "M", failed.Name())
	assert.False(t, report.Success())
	assert.True(t, report.Results[2].Skipped())

	assert.Contains(t, log.MessagesAt(ports.LevelError), "target M failed")
}

func TestExecutor_PanicBecomesError(t *testing.T) {
	t.Parallel()

	seq := []*target.Target{{
		Name:   "P",
		Action: target.ActionFunc(func(target.RunContext) error { panic("kaboom") }),
	}}

	_, err := execution.NewExecutor().Execute(context.Background(), seq)

	require.ErrorIs(t, err, target.ErrActionFailed)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestExecutor_PhonyTargetSucceeds(t *testing.T) {
	t.Parallel()

	report := execution.NewExecutor().Run(context.Background(), []*target.Target{{Name: "all"}})

	require.NoError(t, report.Err)
	assert.Equal(t, execution.StatusSucceeded, report.Results[0].Status())
	assert.Equal(t, execution.StateSucceeded, report.State)
}

func TestExecutor_EmptySequence(t *testing.T) {
	t.Parallel()

	report := execution.NewExecutor().Run(context.Background(), nil)

	require.NoError(t, report.Err)
	assert.Equal(t, execution.StateSucceeded, report.State)
	assert.Equal(t, 0, report.Summary().Total)
}

func TestExecutor_CancelledContext(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())

	first := &target.Target{
		Name: "first",
		Action: target.ActionFunc(func(target.RunContext) error {
			rec.ran = append(rec.ran, "first")
			cancel()
			return nil
		}),
	}
	seq := []*target.Target{first, rec.target("second", nil)}

	report := execution.NewExecutor().Run(ctx, seq)

	assert.Equal(t, []string{"first"}, rec.ran)
	require.ErrorIs(t, report.Err, context.Canceled)
	assert.Equal(t, execution.StateCancelled, report.State)
	assert.Equal(t, execution.StatusSkipped, report.Results[1].Status())
}

func TestExecutor_DryRun(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	log := mocks.NewLogger()
	seq := []*target.Target{rec.target("A", nil), rec.target("B", errors.New("never"))}

	report := execution.NewExecutor().WithDryRun(true).WithLogger(log).Run(context.Background(), seq)

	require.NoError(t, report.Err)
	assert.Empty(t, rec.ran)
	assert.True(t, report.DryRun)
	assert.Equal(t, 2, report.Summary().Planned)
	assert.Equal(t, []string{"A", "B"}, target.Names(report.Executed()))
	assert.Equal(t, []string{"would build A", "would build B"}, log.Messages())
}

func TestExecutor_RunContextCarriesExecutionRoot(t *testing.T) {
	t.Parallel()

	var gotDir, gotPath string
	tgt := &target.Target{
		Name:    "t",
		Options: target.Options{Dir: "/work/sub"},
		Action: target.ActionFunc(func(rc target.RunContext) error {
			gotDir = rc.Dir()
			gotPath = rc.Path("out.txt")
			return nil
		}),
	}

	_, err := execution.NewExecutor().Execute(context.Background(), []*target.Target{tgt})

	require.NoError(t, err)
	assert.Equal(t, "/work/sub", gotDir)
	assert.Equal(t, "/work/sub/out.txt", gotPath)
}

func TestExecutor_ChdirRestoresOnSuccessAndFailure(t *testing.T) {
	before := testutil.Getwd(t)
	dir := testutil.RealDir(t, t.TempDir())

	var inside []string
	action := func(err error) target.Action {
		return target.ActionFunc(func(target.RunContext) error {
			wd, _ := os.Getwd()
			inside = append(inside, wd)
			return err
		})
	}

	exec := execution.NewExecutor().WithChdir(true)

	_, err := exec.Execute(context.Background(), []*target.Target{
		{Name: "ok", Options: target.Options{Dir: dir}, Action: action(nil)},
	})
	require.NoError(t, err)
	assert.Equal(t, before, testutil.Getwd(t))

	_, err = exec.Execute(context.Background(), []*target.Target{
		{Name: "bad", Options: target.Options{Dir: dir}, Action: action(errors.New("fail"))},
	})
	require.Error(t, err)
	assert.Equal(t, before, testutil.Getwd(t))

	_, err = exec.Execute(context.Background(), []*target.Target{{
		Name:    "panic",
		Options: target.Options{Dir: dir},
		Action:  target.ActionFunc(func(target.RunContext) error { panic("x") }),
	}})
	require.Error(t, err)
	assert.Equal(t, before, testutil.Getwd(t))

	assert.Equal(t, []string{dir, dir}, inside)
}

func TestExecutor_ChdirMissingDirFails(t *testing.T) {
	rec := &recorder{}
	tgt := rec.target("t", nil)
	tgt.Options.Dir = "/definitely/not/here"

	_, err := execution.NewExecutor().WithChdir(true).Execute(context.Background(), []*target.Target{tgt})

	require.ErrorIs(t, err, target.ErrActionFailed)
	assert.Empty(t, rec.ran)
}
