package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/config"
	"github.com/dmitrymomot/notifykit/svc/delivery"
	"github.com/dmitrymomot/notifykit/svc/messaging"
)

// ---------------------------------------------------------------------------
// command constructors
// ---------------------------------------------------------------------------

func TestRootCmd(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()
	assert.Equal(t, "notifyctl", cmd.Use)
	assert.Equal(t, version, cmd.Version)

	out := cmd.PersistentFlags().Lookup("output")
	require.NotNil(t, out)
	assert.Equal(t, "o", out.Shorthand)
	assert.Equal(t, "text", out.DefValue)
	require.NotNil(t, cmd.PersistentFlags().Lookup("env-file"))

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"preview", "send", "category", "status"}, names)
}

func TestDraftCmds(t *testing.T) {
	t.Parallel()

	for _, cmd := range []*cobra.Command{previewCmd(&globalOptions{}), sendCmd(&globalOptions{})} {
		t.Run(cmd.Name(), func(t *testing.T) {
			t.Parallel()
			assert.NotEmpty(t, cmd.Short)
			assert.NotEmpty(t, cmd.Long)
			assert.NotNil(t, cmd.RunE)
			assert.Error(t, cmd.Args(cmd, []string{"extra"}))

			f := cmd.Flags().Lookup("file")
			require.NotNil(t, f)
			assert.Equal(t, "f", f.Shorthand)
		})
	}
}

func TestCategoryCmds(t *testing.T) {
	t.Parallel()

	cmd := categoryCmd(&globalOptions{})
	assert.Equal(t, "category", cmd.Use)

	create, _, err := cmd.Find([]string{"create"})
	require.NoError(t, err)
	for _, name := range []string{"name", "description", "parent", "contacts"} {
		assert.NotNil(t, create.Flags().Lookup(name), name)
	}

	syncCmd, _, err := cmd.Find([]string{"sync"})
	require.NoError(t, err)
	assert.NotNil(t, syncCmd.Flags().Lookup("contacts"))
	assert.Error(t, syncCmd.Args(syncCmd, nil))
	assert.NoError(t, syncCmd.Args(syncCmd, []string{"4"}))
}

func TestStatusCmd(t *testing.T) {
	t.Parallel()

	cmd := statusCmd(&globalOptions{})
	assert.Equal(t, "status <message-id>", cmd.Use)
	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"abc"}))
}

// ---------------------------------------------------------------------------
// end to end against fake services
// ---------------------------------------------------------------------------

type fakeServices struct {
	mu       sync.Mutex
	attached map[string]bool
	detached map[string]bool
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeServices) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/contacts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []messaging.Contact{
			{ID: 1, Name: "Ana", Email: "ana@example.com"},
			{ID: 2, Name: "Bo", Phone: "+15550100"},
		})
	})
	r.Get("/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []messaging.Category{{ID: 5, Name: "Choir"}})
	})
	r.Get("/contacts/category/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []messaging.Contact{{ID: 2, Name: "Bo", Phone: "+15550100"}})
	})
	r.Post("/categories", func(w http.ResponseWriter, r *http.Request) {
		var req messaging.CategoryRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusCreated, map[string]any{
			"success":  true,
			"category": messaging.Category{ID: 9, Name: req.Name},
		})
	})
	r.Post("/contacts/{cid}/categories/{catid}", func(w http.ResponseWriter, r *http.Request) {
		cid := chi.URLParam(r, "cid")
		if cid == "2" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Contact is blocked"})
			return
		}
		f.mu.Lock()
		f.attached[cid] = true
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	r.Delete("/contacts/{cid}/categories/{catid}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.detached[chi.URLParam(r, "cid")] = true
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	r.Get("/messages/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") != "msg-1" {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Message not found"})
			return
		}
		writeJSON(w, http.StatusOK, delivery.MessageStatus{MessageID: "msg-1", Status: delivery.StatusQueued, Recipient: "ana@example.com"})
	})
	return r
}

func (f *fakeServices) wasAttached(cid string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attached[cid]
}

func (f *fakeServices) wasDetached(cid string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detached[cid]
}

// setupEnv points every adapter at a fake server and sends deliveries to
// a temporary directory, which it returns.
func setupEnv(t *testing.T) (*fakeServices, string) {
	t.Helper()

	f := &fakeServices{attached: map[string]bool{}, detached: map[string]bool{}}
	srv := httptest.NewServer(f.routes())
	t.Cleanup(srv.Close)

	devDir := t.TempDir()
	t.Setenv("DIRECTORY_BASE_URL", srv.URL)
	t.Setenv("DELIVERY_BASE_URL", srv.URL)
	t.Setenv("DELIVERY_DEV_DIR", devDir)
	t.Setenv("POSTMARK_SERVER_TOKEN", "")
	t.Setenv("POSTMARK_ACCOUNT_TOKEN", "")
	t.Setenv("MESSAGING_SCHEDULE_LOCATION", "UTC")
	t.Setenv("LOG_LEVEL", "error")

	config.ResetCache()
	t.Cleanup(config.ResetCache)
	return f, devDir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestPreviewCommand(t *testing.T) {
	setupEnv(t)

	draft := `
recipient:
  contacts: [1, 2, 3]
channel: email
subject: Hello
content: Rehearsal at seven.
`
	out, err := execute(t, draft, "preview", "-f", "-", "-o", "json")
	require.NoError(t, err)

	var report SendReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "building", report.State)
	assert.Equal(t, "multiple", report.RecipientKind)
	assert.Equal(t, "email", report.Channel)
	require.Len(t, report.Recipients, 1)
	assert.Equal(t, int64(1), report.Recipients[0].ContactID)
	require.Len(t, report.Excluded, 1)
	assert.Equal(t, int64(2), report.Excluded[0].ContactID)
	assert.Equal(t, messaging.ReasonNoEmail, report.Excluded[0].Reason)
	assert.Equal(t, []int64{3}, report.Unknown)
	assert.Equal(t, 1, report.Estimate.Recipients)
	assert.InDelta(t, 0.01, report.Estimate.Total, 1e-9)
	assert.Equal(t, "EUR", report.Estimate.Currency)
	assert.Nil(t, report.Receipt)
}

func TestPreviewCommandValidationFailure(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "recipient:\n  contact: 1\nchannel: email\ncontent: no subject\n", "preview", "-f", "-", "-o", "yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, messaging.ErrMissingSubject)
	assert.Contains(t, out, "state: failed")
}

func TestSendCommand(t *testing.T) {
	_, devDir := setupEnv(t)

	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recipient:\n  contact: 1\nchannel: email\nsubject: Hi\ncontent: Hello Ana\n"), 0o600))

	out, err := execute(t, "", "send", "-f", path, "-o", "json")
	require.NoError(t, err)

	var report SendReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "succeeded", report.State)
	require.NotNil(t, report.Receipt)
	assert.True(t, report.Receipt.Success)
	assert.NotEmpty(t, report.Receipt.MessageID)

	files, err := os.ReadDir(devDir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestSendCommandTextOutput(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "recipient:\n  contact: 2\nchannel: sms\ncontent: Hello Bo\n", "send", "-f", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "STATE:")
	assert.Contains(t, out, "succeeded")
	assert.Contains(t, out, "Bo")
	assert.Contains(t, out, "MESSAGE ID:")
}

func TestCategoryCreateCommand(t *testing.T) {
	f, _ := setupEnv(t)

	out, err := execute(t, "", "category", "create", "--name", "Tenors", "--contacts", "1,2", "-o", "json")
	require.Error(t, err)
	assert.ErrorIs(t, err, messaging.ErrPartialAttachmentFailure)

	var report MembershipReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "partially_succeeded", report.State)
	assert.Equal(t, int64(9), report.CategoryID)
	assert.Equal(t, 1, report.Completed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, int64(2), report.Failures[0].ContactID)
	assert.True(t, f.wasAttached("1"))
}

func TestCategorySyncCommand(t *testing.T) {
	f, _ := setupEnv(t)

	out, err := execute(t, "", "category", "sync", "5", "--contacts", "1", "-o", "json")
	require.NoError(t, err)

	var report MembershipReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "succeeded", report.State)
	assert.Equal(t, []int64{1}, report.Attached)
	assert.Equal(t, []int64{2}, report.Detached)
	assert.True(t, f.wasAttached("1"))
	assert.True(t, f.wasDetached("2"))
}

func TestCategorySyncCommandInvalidID(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "category", "sync", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid category id")
}

func TestStatusCommand(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "status", "msg-1", "-o", "json")
	require.NoError(t, err)

	var report StatusReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, delivery.StatusQueued, report.Status)
	assert.True(t, report.Pending)

	_, err = execute(t, "", "status", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUnknownOutputFormat(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "status", "msg-1", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestMissingEnvFile(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "status", "msg-1", "--env-file", filepath.Join(t.TempDir(), "absent.env"))
	require.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
