package sync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/wanderlust/internal/client/errs"
	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/pkg/api"
)

func newTestService(remote *fakeRemote, tokens *staticTokens, meta *memMetadata) *service {
	return NewService(remote, tokens, meta, slog.New(slog.NewTextHandler(io.Discard, nil)), Options{TimeZone: "Asia/Taipei"}).(*service)
}

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		UserProfile: models.DefaultProfile(),
		Language:    models.LanguageEN,
		Trips:       []models.Trip{{ID: "t1", Title: "Kyoto", StartDate: "2023-11-10", EndDate: "2023-11-12"}},
	}
}

func TestBackup_TwiceAgainstEmptyRemoteLeavesOneArtifact(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	meta := &memMetadata{}
	svc := newTestService(remote, &staticTokens{}, meta)

	first, err := svc.Backup(ctx, sampleSnapshot(), 1000)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, first.FileID, meta.fileID)

	second, err := svc.Backup(ctx, sampleSnapshot(), 2000)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.FileID, second.FileID)

	assert.Equal(t, 1, remote.fileCount())
	assert.Equal(t, "2000", remote.files[first.FileID].meta.AppProperties[api.AppPropertyLastModified])
}

func TestBackup_SecondDeviceFindsExistingByName(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()

	deviceA := newTestService(remote, &staticTokens{}, &memMetadata{})
	_, err := deviceA.Backup(ctx, sampleSnapshot(), 1000)
	require.NoError(t, err)

	// второе устройство без кэшированного id
	metaB := &memMetadata{}
	deviceB := newTestService(remote, &staticTokens{}, metaB)
	res, err := deviceB.Backup(ctx, sampleSnapshot(), 3000)
	require.NoError(t, err)

	assert.False(t, res.Created)
	assert.Equal(t, 1, remote.fileCount())
	assert.Equal(t, res.FileID, metaB.fileID)
}

func TestBackup_IdenticalRepeatIsByteIdentical(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	meta := &memMetadata{}
	svc := newTestService(remote, &staticTokens{}, meta)

	first, err := svc.Backup(ctx, sampleSnapshot(), 1000)
	require.NoError(t, err)
	before := append([]byte(nil), remote.files[first.FileID].content...)

	second, err := svc.Backup(ctx, sampleSnapshot(), 1000)
	require.NoError(t, err)

	assert.Equal(t, first.FileID, second.FileID)
	assert.Equal(t, before, remote.files[second.FileID].content)
	assert.Equal(t, first.FileID, meta.fileID)
}

func TestBackup_ContentIsIndentedSnapshot(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	svc := newTestService(remote, &staticTokens{}, &memMetadata{})

	res, err := svc.Backup(ctx, sampleSnapshot(), 1000)
	require.NoError(t, err)

	content := remote.files[res.FileID].content
	assert.Contains(t, string(content), "\n  \"userProfile\": {")

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(content, &snap))
	assert.Equal(t, "Kyoto", snap.Trips[0].Title)
	assert.Equal(t, BackupFileName, remote.files[res.FileID].meta.Name)
}

func TestBackup_StaleCachedIDFallsBackToSearch(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	meta := &memMetadata{fileID: "deleted-long-ago"}
	svc := newTestService(remote, &staticTokens{}, meta)

	res, err := svc.Backup(ctx, sampleSnapshot(), 1000)
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, res.FileID, meta.fileID)
	assert.Equal(t, 1, remote.fileCount())
}

func TestBackup_SearchFailureDoesNotCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.findErr = errors.New("search backend unavailable")
	svc := newTestService(remote, &staticTokens{}, &memMetadata{})

	_, err := svc.Backup(ctx, sampleSnapshot(), 1000)
	assert.Error(t, err)
	assert.Zero(t, remote.fileCount())
}

func TestBackup_TokenFailurePropagates(t *testing.T) {
	remote := newFakeRemote()
	tokens := &staticTokens{err: &errs.AuthError{Reason: "consent not granted"}}
	svc := newTestService(remote, tokens, &memMetadata{})

	_, err := svc.Backup(context.Background(), sampleSnapshot(), 1000)
	assert.ErrorIs(t, err, errs.ErrAuth)
	assert.Zero(t, remote.fileCount())
}

func TestRestore_NoArtifact(t *testing.T) {
	svc := newTestService(newFakeRemote(), &staticTokens{}, &memMetadata{})

	_, err := svc.Restore(context.Background())
	assert.ErrorIs(t, err, errs.ErrBackupNotFound)
}

func TestRestore_ReturnsSnapshotAndTimestamp(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	_, err := newTestService(remote, &staticTokens{}, &memMetadata{}).Backup(ctx, sampleSnapshot(), 1700000000123)
	require.NoError(t, err)

	meta := &memMetadata{}
	res, err := newTestService(remote, &staticTokens{}, meta).Restore(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1700000000123), res.Timestamp)
	assert.Equal(t, sampleSnapshot(), res.Snapshot)
	assert.Equal(t, "file-1", meta.fileID)
}

func TestRestore_UnparseableTimestampIsZero(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	_, err := remote.CreateFile(ctx, "", api.FileMetadata{
		Name:          BackupFileName,
		AppProperties: map[string]string{api.AppPropertyLastModified: "yesterday"},
	}, []byte(`{"trips":[]}`))
	require.NoError(t, err)

	res, err := newTestService(remote, &staticTokens{}, &memMetadata{}).Restore(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Timestamp)
}

func TestRestore_CorruptContent(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	_, err := remote.CreateFile(ctx, "", api.FileMetadata{Name: BackupFileName}, []byte(`not json`))
	require.NoError(t, err)

	_, err = newTestService(remote, &staticTokens{}, &memMetadata{}).Restore(ctx)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrBackupNotFound)
}

func TestRemoteMetadata(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		p := newTestService(newFakeRemote(), &staticTokens{}, &memMetadata{}).RemoteMetadata(ctx)
		assert.Equal(t, ProbeKindNotFound, p.Kind)
		assert.Nil(t, p.Optional())
	})

	t.Run("found", func(t *testing.T) {
		remote := newFakeRemote()
		_, err := newTestService(remote, &staticTokens{}, &memMetadata{}).Backup(ctx, sampleSnapshot(), 55)
		require.NoError(t, err)

		p := newTestService(remote, &staticTokens{}, &memMetadata{}).RemoteMetadata(ctx)
		assert.Equal(t, ProbeKindFound, p.Kind)
		require.NotNil(t, p.Optional())
		assert.Equal(t, int64(55), p.Optional().Timestamp)
	})

	t.Run("search failure", func(t *testing.T) {
		remote := newFakeRemote()
		remote.findErr = errors.New("boom")
		p := newTestService(remote, &staticTokens{}, &memMetadata{}).RemoteMetadata(ctx)
		assert.Equal(t, ProbeKindFailed, p.Kind)
		assert.Error(t, p.Err)
		assert.Nil(t, p.Optional())
	})

	t.Run("auth failure", func(t *testing.T) {
		tokens := &staticTokens{err: &errs.AuthError{Reason: "cancelled"}}
		p := newTestService(newFakeRemote(), tokens, &memMetadata{}).RemoteMetadata(ctx)
		assert.Equal(t, ProbeKindFailed, p.Kind)
		assert.ErrorIs(t, p.Err, errs.ErrAuth)
	})
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		local int64
		probe Probe
		want  Decision
	}{
		{name: "remote newer", local: 100, probe: ProbeFound(RemoteMeta{Timestamp: 200}), want: DecisionRestore},
		{name: "local newer", local: 300, probe: ProbeFound(RemoteMeta{Timestamp: 200}), want: DecisionBackup},
		{name: "equal", local: 200, probe: ProbeFound(RemoteMeta{Timestamp: 200}), want: DecisionNone},
		{name: "no remote", local: 0, probe: ProbeNotFound(), want: DecisionBackup},
		{name: "probe failed", local: 100, probe: ProbeFailed(errors.New("x")), want: DecisionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.local, tt.probe))
		})
	}
}

func TestProbeFailed_NilError(t *testing.T) {
	p := ProbeFailed(nil)
	assert.Error(t, p.Err)
	assert.Equal(t, "unknown", Decide(1, p).String())
}
