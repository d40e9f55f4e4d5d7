package actions_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/makeflow/internal/actions"
	"github.com/felixgeelhaar/makeflow/internal/domain/target"
	"github.com/felixgeelhaar/makeflow/internal/testutil/mocks"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type harness struct {
	fs      *mocks.FileSystem
	runner  *mocks.CommandRunner
	log     *mocks.Logger
	stdout  *bytes.Buffer
	catalog *actions.Catalog
}

func newHarness() *harness {
	h := &harness{
		fs:     mocks.NewFileSystem(),
		runner: mocks.NewCommandRunner(),
		log:    mocks.NewLogger(),
		stdout: &bytes.Buffer{},
	}
	h.fs.SetClock(func() time.Time { return fixedNow.Add(-time.Hour) })
	h.catalog = actions.NewCatalog(actions.Deps{
		FS:     h.fs,
		Runner: h.runner,
		Stdout: h.stdout,
		Stderr: h.stdout,
		Now:    func() time.Time { return fixedNow },
	})
	return h
}

// run builds kind with literal args and runs it with dir as execution root.
func (h *harness) run(t *testing.T, kind, dir string, args map[string]interface{}) error {
	t.Helper()

	built, err := h.catalog.Build(kind, actions.ArgsFrom(args))
	require.NoError(t, err)
	return h.runBuilt(built, dir)
}

func (h *harness) runBuilt(built actions.Built, dir string) error {
	tgt := &target.Target{Name: "t", Action: built.Action, Options: target.Options{Dir: dir}}
	return built.Action.Run(target.NewRunContext(context.Background(), tgt, h.log))
}
