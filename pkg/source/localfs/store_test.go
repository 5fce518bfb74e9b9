package localfs

import (
	"context"
	"io/ioutil"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metacat-io/metacat/pkg/errors"
	"github.com/metacat-io/metacat/pkg/source/status"
)

func testFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "records/a1.json", []byte(`{"file_identifier":"a1"}`), 0600))
	require.NoError(t, afero.WriteFile(fs, "records/b2.json", []byte(`{"file_identifier":"b2"}`), 0600))
	require.NoError(t, afero.WriteFile(fs, "records/readme.md", []byte("not a record"), 0600))
	return fs
}

func TestList(t *testing.T) {
	src := New(testFs(t), Project("local-test"))

	infos, err := src.List(context.Background(), "main")
	require.NoError(t, err)
	require.Len(t, infos, 2, "non-record files are ignored")
	assert.Equal(t, "a1", infos[0].Identifier)
	assert.Equal(t, "b2", infos[1].Identifier)
	assert.NotEmpty(t, infos[0].ContentHash)
	assert.NotEqual(t, infos[0].ContentHash, infos[1].ContentHash)
	assert.Equal(t, "local-test", src.Project())
}

func TestListRejectsDuplicateIdentifiers(t *testing.T) {
	fs := testFs(t)
	require.NoError(t, afero.WriteFile(fs, "records/nested/a1.json", []byte(`{"file_identifier":"a1"}`), 0600))

	src := New(fs)
	_, err := src.List(context.Background(), "main")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrDuplicateIdentifier), "got %v", err)
	assert.Contains(t, err.Error(), `"a1"`)
}

func TestFetch(t *testing.T) {
	src := New(testFs(t))

	rdr, err := src.Fetch(context.Background(), "main", "records/a1.json")
	require.NoError(t, err)
	defer rdr.Close()
	raw, err := ioutil.ReadAll(rdr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"file_identifier":"a1"}`, string(raw))

	_, err = src.Fetch(context.Background(), "main", "records/zz.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound), "got %v", err)
}

func TestHeadCommitStability(t *testing.T) {
	fs := testFs(t)
	src := New(fs)

	head1, err := src.HeadCommit(context.Background(), "main")
	require.NoError(t, err)
	head2, err := src.HeadCommit(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, head1, head2, "an unchanged tree resolves to a stable head")

	require.NoError(t, afero.WriteFile(fs, "records/a1.json", []byte(`{"file_identifier":"a1","hierarchy_level":"dataset"}`), 0600))
	head3, err := src.HeadCommit(context.Background(), "main")
	require.NoError(t, err)
	assert.NotEqual(t, head1, head3, "any content change yields a new head")
}
