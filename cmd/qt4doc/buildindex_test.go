package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
	main "github.com/jztan/qt4-doc-mcp-server/cmd/qt4doc"
	"github.com/jztan/qt4-doc-mcp-server/mock"
)

func TestBuildIndexCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("builds the index and prints stats", func(t *testing.T) {
		t.Parallel()

		index := &mock.IndexService{
			BuildFn: func(_ context.Context, docBase string, force bool, progress qtdoc.BuildProgressFunc) (*qtdoc.BuildStats, error) {
				assert.Equal(t, "/corpus", docBase)
				assert.False(t, force)
				progress(qtdoc.BuildProgress{Current: 1, Total: 2, RelPath: "qstring.html"})
				return &qtdoc.BuildStats{
					Indexed:  2,
					Skipped:  1,
					Duration: 3 * time.Second,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: &main.Config{DocBase: "/corpus", IndexPath: "/data/search.db"},
			Index:  index,
		}

		cmd := &main.BuildIndexCmd{}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Indexed: 2")
		assert.Contains(t, output, "Skipped: 1")
	})

	t.Run("reports when the published index is reused", func(t *testing.T) {
		t.Parallel()

		index := &mock.IndexService{
			BuildFn: func(context.Context, string, bool, qtdoc.BuildProgressFunc) (*qtdoc.BuildStats, error) {
				return &qtdoc.BuildStats{Indexed: 2, Reused: true, Fingerprint: "abcd"}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: &main.Config{DocBase: "/corpus", IndexPath: "/data/search.db"},
			Index:  index,
		}

		cmd := &main.BuildIndexCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "up to date")
		assert.Contains(t, stdout.String(), "--force")
	})

	t.Run("passes the force flag through", func(t *testing.T) {
		t.Parallel()

		var gotForce bool
		index := &mock.IndexService{
			BuildFn: func(_ context.Context, _ string, force bool, _ qtdoc.BuildProgressFunc) (*qtdoc.BuildStats, error) {
				gotForce = force
				return &qtdoc.BuildStats{Indexed: 1}, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Config: &main.Config{DocBase: "/corpus", IndexPath: "/data/search.db"},
			Index:  index,
		}

		cmd := &main.BuildIndexCmd{Force: true}
		require.NoError(t, cmd.Run(deps))
		assert.True(t, gotForce)
	})

	t.Run("reports build failures", func(t *testing.T) {
		t.Parallel()

		index := &mock.IndexService{
			BuildFn: func(context.Context, string, bool, qtdoc.BuildProgressFunc) (*qtdoc.BuildStats, error) {
				return nil, qtdoc.Errorf(qtdoc.EPARSE, "failed to index qbadpage.html")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Config: &main.Config{DocBase: "/corpus", IndexPath: "/data/search.db"},
			Index:  index,
		}

		cmd := &main.BuildIndexCmd{}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "qbadpage.html")
	})
}
