package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	httpapi "github.com/toyswap/toyswap/internal/api/http"
	"github.com/toyswap/toyswap/internal/domain/exchange"
	"github.com/toyswap/toyswap/internal/domain/item"
	"github.com/toyswap/toyswap/internal/domain/user"
	"github.com/toyswap/toyswap/internal/sandbox"
)

type cliEnv struct {
	t     *testing.T
	url   string
	store *sandbox.Store
}

type jsonResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("EXCHANGE_USER_ID", "")
	t.Setenv("EXCHANGE_API_HOST", "")

	store := sandbox.NewStore()
	srv := httptest.NewServer(httpapi.NewServer(store, zerolog.Nop()).Router())
	t.Cleanup(srv.Close)
	return &cliEnv{t: t, url: srv.URL, store: store}
}

func (e *cliEnv) user(first, email string) string {
	e.t.Helper()
	u, err := e.store.Register(user.Registration{
		Name:            user.Name{FirstName: first, LastName: "Test"},
		Email:           email,
		Password:        "password1",
		ConfirmPassword: "password1",
	})
	require.NoError(e.t, err)
	return u.UserID
}

func (e *cliEnv) toy(owner, name string) string {
	e.t.Helper()
	it, err := e.store.CreateItem(owner, "", item.Draft{Name: name})
	require.NoError(e.t, err)
	return it.ItemID
}

// run executes the CLI as userID with JSON output.
func (e *cliEnv) run(userID string, args ...string) (jsonResponse, int) {
	e.t.Helper()
	full := append([]string{"--format", "json", "--host", e.url}, args...)
	if userID != "" {
		full = append(full, "--user", userID)
	}
	out, code := execute(full...)
	var resp jsonResponse
	require.NoError(e.t, json.Unmarshal([]byte(out), &resp), out)
	return resp, code
}

func (e *cliEnv) view(userID string, args ...string) *exchange.View {
	e.t.Helper()
	resp, code := e.run(userID, args...)
	require.Equal(e.t, ExitSuccess, code, "%+v", resp.Error)
	var v exchange.View
	require.NoError(e.t, json.Unmarshal(resp.Data, &v))
	return &v
}

func execute(args ...string) (string, int) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), GetExitCode(err)
}

func TestCommands_RegisterAndLoginSaveSession(t *testing.T) {
	env := newCLIEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "exchangectl.yaml")

	resp, code := env.run("", "register", "--config", cfgPath,
		"--first-name", "Alice", "--last-name", "Smith",
		"--email", "Alice@Example.com", "--password", "password1")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "ok", resp.Status)

	var registered struct {
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &registered))
	require.NotEmpty(t, registered.UserID)

	raw, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	var saved map[string]string
	require.NoError(t, yaml.Unmarshal(raw, &saved))
	assert.Equal(t, registered.UserID, saved["user_id"])
	assert.Equal(t, env.url, saved["api_host"])

	resp, code = env.run("", "login", "--email", "alice@example.com", "--password", "password1")
	require.Equal(t, ExitSuccess, code)
	var loggedIn struct {
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &loggedIn))
	assert.Equal(t, registered.UserID, loggedIn.UserID)

	resp, code = env.run("", "login", "--email", "alice@example.com", "--password", "wrong-password")
	assert.Equal(t, ExitFailure, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "application", resp.Error.Code)
}

func TestCommands_SavedSessionIsUsed(t *testing.T) {
	env := newCLIEnv(t)
	alice := env.user("Alice", "alice@example.com")
	env.toy(alice, "Red Truck")

	cfgPath := filepath.Join(t.TempDir(), "exchangectl.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("api_host: "+env.url+"\nuser_id: "+alice+"\n"), 0o600))

	out, code := execute("--config", cfgPath, "toys", "mine")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Red Truck")
}

func TestCommands_ToyLifecycle(t *testing.T) {
	env := newCLIEnv(t)
	alice := env.user("Alice", "alice@example.com")
	bob := env.user("Bob", "bob@example.com")

	photo := filepath.Join(t.TempDir(), "truck.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpeg-bytes"), 0o644))

	resp, code := env.run(alice, "toys", "create", "--name", "Red Truck", "--description", "Die-cast", "--photo", photo)
	require.Equal(t, ExitSuccess, code, "%+v", resp.Error)
	var created item.Item
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "Red Truck", created.Name)
	assert.Equal(t, item.StatusCreated, created.Status)
	require.NotNil(t, created.Description)
	assert.Equal(t, "Die-cast", *created.Description)

	resp, code = env.run(alice, "toys", "update", created.ItemID, "--name", "Big Red Truck")
	require.Equal(t, ExitSuccess, code, "%+v", resp.Error)
	var updated item.Item
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, "Big Red Truck", updated.Name)

	resp, code = env.run(alice, "toys", "list-for-exchange", created.ItemID)
	require.Equal(t, ExitSuccess, code, "%+v", resp.Error)

	resp, code = env.run(bob, "toys", "shop")
	require.Equal(t, ExitSuccess, code)
	var shop itemList
	require.NoError(t, json.Unmarshal(resp.Data, &shop))
	require.Len(t, shop.Items, 1)
	assert.Equal(t, created.ItemID, shop.Items[0].ItemID)

	out := filepath.Join(t.TempDir(), "out.jpg")
	_, code = env.run(bob, "toys", "photo", created.ItemID, "--out", out)
	require.Equal(t, ExitSuccess, code)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)

	resp, code = env.run(bob, "toys", "delete", created.ItemID)
	assert.Equal(t, ExitFailure, code)
	require.NotNil(t, resp.Error)

	resp, code = env.run(alice, "toys", "unlist", created.ItemID)
	require.Equal(t, ExitSuccess, code, "%+v", resp.Error)

	_, code = env.run(alice, "toys", "delete", created.ItemID)
	require.Equal(t, ExitSuccess, code)

	resp, code = env.run(alice, "toys", "mine")
	require.Equal(t, ExitSuccess, code)
	var mine itemList
	require.NoError(t, json.Unmarshal(resp.Data, &mine))
	assert.Empty(t, mine.Items)
}

func TestCommands_ExchangeToSuccess(t *testing.T) {
	env := newCLIEnv(t)
	alice := env.user("Alice", "alice@example.com")
	bob := env.user("Bob", "bob@example.com")
	truck := env.toy(alice, "Red Truck")
	kite := env.toy(bob, "Blue Kite")
	_, code := env.run(bob, "toys", "list-for-exchange", kite)
	require.Equal(t, ExitSuccess, code)

	v := env.view(alice, "exchange", "propose", "--my-toy", truck, "--owner", bob, "--their-toy", kite)
	id := v.ExchangeID
	require.NotEmpty(t, id)
	assert.Equal(t, exchange.StatusCreated, v.Status)
	assert.Equal(t, exchange.ActionConfirm1, v.Decision.Action)
	assert.Equal(t, "Blue Kite", v.Counterpart.Item.Name)

	v = env.view(alice, "exchange", "confirm", id)
	assert.Equal(t, exchange.ParticipantConfirm1, v.Mine.Status)
	assert.False(t, v.Decision.Available())

	resp, code := env.run(alice, "exchange", "confirm", id)
	assert.Equal(t, ExitFailure, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid", resp.Error.Code)

	v = env.view(bob, "exchange", "confirm", id)
	assert.Equal(t, exchange.StatusConfirm, v.Status)

	v = env.view(alice, "exchange", "confirm", id)
	assert.Equal(t, exchange.ParticipantConfirm2, v.Mine.Status)
	assert.True(t, v.Decision.Waiting)

	v = env.view(bob, "exchange", "confirm", id)
	assert.Equal(t, exchange.StatusSuccess, v.Status)
	assert.True(t, v.Decision.Terminal)

	resp, code = env.run(alice, "exchange", "list", "--all", "--status", "success")
	require.Equal(t, ExitSuccess, code)
	var list struct {
		Exchanges []exchange.View `json:"exchanges"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	require.Len(t, list.Exchanges, 1)
	assert.Equal(t, id, list.Exchanges[0].ExchangeID)
	assert.Equal(t, "Exchange completed", list.Exchanges[0].StatusLabel)

	got, err := env.store.GetItem(truck)
	require.NoError(t, err)
	assert.Equal(t, item.StatusExchanged, got.Status)
}

func TestCommands_ExchangeCancel(t *testing.T) {
	env := newCLIEnv(t)
	alice := env.user("Alice", "alice@example.com")
	bob := env.user("Bob", "bob@example.com")
	truck := env.toy(alice, "Red Truck")
	kite := env.toy(bob, "Blue Kite")
	_, code := env.run(bob, "toys", "list-for-exchange", kite)
	require.Equal(t, ExitSuccess, code)

	v := env.view(alice, "exchange", "propose", "--my-toy", truck, "--owner", bob, "--their-toy", kite)

	v = env.view(bob, "exchange", "cancel", v.ExchangeID)
	assert.Equal(t, exchange.StatusFailed, v.Status)
	assert.Equal(t, "Exchange cancelled", v.Message)

	resp, code := env.run(alice, "exchange", "cancel", v.ExchangeID)
	assert.Equal(t, ExitFailure, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid", resp.Error.Code)
}

func TestCommands_ExitCodes(t *testing.T) {
	env := newCLIEnv(t)
	alice := env.user("Alice", "alice@example.com")

	t.Run("no session", func(t *testing.T) {
		resp, code := env.run("", "toys", "mine")
		assert.Equal(t, ExitCommandError, code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "no_session", resp.Error.Code)
	})

	t.Run("unknown exchange", func(t *testing.T) {
		resp, code := env.run(alice, "exchange", "show", "missing")
		assert.Equal(t, ExitFailure, code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "application", resp.Error.Code)
		assert.NotNil(t, resp.Error.Details)
	})

	t.Run("bad status filter", func(t *testing.T) {
		resp, code := env.run(alice, "exchange", "list", "--status", "pending")
		assert.Equal(t, ExitCommandError, code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "usage", resp.Error.Code)
	})

	t.Run("unreachable service", func(t *testing.T) {
		out, code := execute("--format", "json", "--host", "http://127.0.0.1:1", "--user", alice, "toys", "mine")
		assert.Equal(t, ExitCommandError, code)
		var resp jsonResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "transport", resp.Error.Code)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, code := execute("--format", "xml", "toys", "mine")
		assert.Equal(t, ExitCommandError, code)
	})

	t.Run("missing argument", func(t *testing.T) {
		_, code := execute("exchange", "confirm")
		assert.Equal(t, ExitCommandError, code)
	})
}

func TestCommands_TextOutput(t *testing.T) {
	env := newCLIEnv(t)
	alice := env.user("Alice", "alice@example.com")
	bob := env.user("Bob", "bob@example.com")
	truck := env.toy(alice, "Red Truck")
	kite := env.toy(bob, "Blue Kite")
	_, code := env.run(bob, "toys", "list-for-exchange", kite)
	require.Equal(t, ExitSuccess, code)

	out, code := execute("--host", env.url, "--user", alice, "exchange", "propose", "--my-toy", truck, "--owner", bob, "--their-toy", kite)
	require.Equal(t, ExitSuccess, code, out)
	assert.Contains(t, out, "You:         Red Truck ("+truck+"), Awaiting your action")
	assert.Contains(t, out, "Counterpart: Bob Test, Blue Kite ("+kite+"), Awaiting action")
	assert.Contains(t, out, "Action:      Get in touch")

	out, code = execute("--host", env.url, "--user", alice, "exchange", "show", "missing")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out, "Error [application]:")
}
