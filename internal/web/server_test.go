package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aptls/internal/apt"
	"aptls/internal/model"
)

type stubRunner struct {
	out map[string]string
	err error
}

func (r stubRunner) Run(command, target string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.out[command], nil
}

func TestHandleListReturnsSnapshot(t *testing.T) {
	runner := stubRunner{out: map[string]string{
		"apt list": "Listing...\npkg-a/stable 1.0 amd64 [installed,automatic]\n",
	}}
	session := apt.NewSession(runner, model.DefaultSchema(), nil)
	srv := NewServer(session, "apt list", "")

	rec := httptest.NewRecorder()
	srv.handleList(rec, httptest.NewRequest(http.MethodGet, "/api/list", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var snap apt.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "apt list", snap.Context.Command)
	assert.Equal(t, 1, snap.Stats.Installed)
	assert.Equal(t, 1, snap.Stats.AutoInstalled)
}

func TestHandleListUpgradableQuery(t *testing.T) {
	runner := stubRunner{out: map[string]string{
		"apt list --upgradable": "pkg-b/stable 2.0 amd64 [upgradable from: 1.9]\n",
	}}
	session := apt.NewSession(runner, model.DefaultSchema(), nil)
	srv := NewServer(session, "apt list", "")

	rec := httptest.NewRecorder()
	srv.handleList(rec, httptest.NewRequest(http.MethodGet, "/api/list?upgradable=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var snap apt.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "apt list --upgradable", snap.Context.Command)
	assert.Equal(t, 1, snap.Stats.Upgradable)
}

func TestHandleListFailure(t *testing.T) {
	session := apt.NewSession(stubRunner{err: errors.New("exit status 100")}, model.DefaultSchema(), nil)
	srv := NewServer(session, "apt list", "")

	rec := httptest.NewRecorder()
	srv.handleList(rec, httptest.NewRequest(http.MethodGet, "/api/list", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestConcurrentRequestsSeeConsistentSnapshots(t *testing.T) {
	// net/http runs handlers on separate goroutines; rebuild and read must
	// stay serialized so no response observes a half-swapped
	// table/stats/context triple.
	runner := stubRunner{out: map[string]string{
		"apt list": "pkg-a/stable 1.0 amd64 [installed]\n" +
			"pkg-b/stable 2.0 amd64 [installed,automatic]\n" +
			"pkg-c/stable 3.0 amd64 [upgradable from: 2.9]\n",
		"apt list --upgradable": "pkg-c/stable 3.0 amd64 [upgradable from: 2.9]\n",
	}}
	session := apt.NewSession(runner, model.DefaultSchema(), nil)
	srv := NewServer(session, "apt list", "")

	var wg sync.WaitGroup
	snaps := make([]apt.Snapshot, 8)
	for i := 0; i < len(snaps); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url := "/api/list"
			if i%2 == 1 {
				url = "/api/list?upgradable=1"
			}
			rec := httptest.NewRecorder()
			srv.handleList(rec, httptest.NewRequest(http.MethodGet, url, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snaps[i]))

			statsRec := httptest.NewRecorder()
			srv.handleStats(statsRec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
			assert.Equal(t, http.StatusOK, statsRec.Code)
		}(i)
	}
	wg.Wait()

	// Every response must be internally consistent with the command that
	// produced it, whichever interleaving won.
	for _, snap := range snaps {
		switch snap.Context.Command {
		case "apt list":
			assert.Len(t, snap.Records, 3)
			assert.Equal(t, 2, snap.Stats.Installed)
			assert.Equal(t, 1, snap.Stats.Upgradable)
		case "apt list --upgradable":
			assert.Len(t, snap.Records, 1)
			assert.Equal(t, 1, snap.Stats.Upgradable)
		default:
			t.Fatalf("unexpected command in snapshot: %q", snap.Context.Command)
		}
	}
}

func TestHandleStats(t *testing.T) {
	runner := stubRunner{out: map[string]string{
		"apt list": "pkg-a/stable 1.0 amd64 [installed]\n",
	}}
	session := apt.NewSession(runner, model.DefaultSchema(), nil)
	require.NoError(t, session.RunList("apt list", ""))
	srv := NewServer(session, "apt list", "")

	rec := httptest.NewRecorder()
	srv.handleStats(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var stats model.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Installed)
}
