package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig, origColor := os.Stdout, color.Output
	os.Stdout, color.Output = w, w
	defer func() { os.Stdout, color.Output = orig, origColor }()

	fn()
	require.NoError(t, w.Close())

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestOutputText(t *testing.T) {
	out := NewOutput("text")

	got := captureStdout(t, func() {
		out.Print(PlayerResult{Player: &PlayerInfo{PlayerID: "p-1", PlayerName: "Ada"}})
	})
	assert.Contains(t, got, "Ada (p-1)")

	got = captureStdout(t, func() {
		out.Print(PlayerResult{Message: "Player not found"})
	})
	assert.Contains(t, got, "Player not found")

	got = captureStdout(t, func() {
		out.Print([]Score{})
	})
	assert.Contains(t, got, "No scores recorded")
}

func TestOutputJSON(t *testing.T) {
	out := NewOutput("json")

	got := captureStdout(t, func() {
		out.Print(DeliveryResult{TxHash: "0xabc"})
	})
	assert.JSONEq(t, `{"txHash":"0xabc"}`, got)
}

func TestCommandTree(t *testing.T) {
	root := NewRootCmd()

	for _, path := range [][]string{
		{"player", "get"},
		{"player", "create-external"},
		{"player", "create-wallet"},
		{"session", "start"},
		{"session", "end"},
		{"score", "submit"},
		{"score", "list"},
		{"score", "create-game"},
		{"reward", "list"},
		{"reward", "create"},
		{"reward", "get"},
		{"reward", "grant"},
		{"asset", "deliver"},
		{"discord", "login"},
		{"discord", "logout"},
		{"discord", "chat"},
		{"health"},
		{"hash-key"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
