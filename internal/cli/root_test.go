package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "exchangectl", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"register"},
		{"login"},
		{"toys", "mine"},
		{"toys", "shop"},
		{"toys", "create"},
		{"toys", "update"},
		{"toys", "show"},
		{"toys", "list-for-exchange"},
		{"toys", "unlist"},
		{"toys", "delete"},
		{"toys", "photo"},
		{"exchange", "propose"},
		{"exchange", "show"},
		{"exchange", "confirm"},
		{"exchange", "cancel"},
		{"exchange", "list"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "host", "user"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestProposeFlags(t *testing.T) {
	cmd := NewRootCommand()
	propose, _, err := cmd.Find([]string{"exchange", "propose"})
	require.NoError(t, err)

	for _, name := range []string{"my-toy", "owner", "their-toy"} {
		assert.NotNil(t, propose.Flags().Lookup(name), name)
	}
}

func TestListFlags(t *testing.T) {
	cmd := NewRootCommand()
	list, _, err := cmd.Find([]string{"exchange", "list"})
	require.NoError(t, err)

	assert.Equal(t, "false", list.Flags().Lookup("all").DefValue)
	assert.Equal(t, "0", list.Flags().Lookup("limit").DefValue)
	assert.Equal(t, "[]", list.Flags().Lookup("status").DefValue)
}

func TestPhotoFlags(t *testing.T) {
	cmd := NewRootCommand()
	photo, _, err := cmd.Find([]string{"toys", "photo"})
	require.NoError(t, err)

	out := photo.Flags().Lookup("out")
	require.NotNil(t, out)
	assert.Equal(t, "o", out.Shorthand)
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, isValidFormat("json"))
	assert.True(t, isValidFormat("text"))
	assert.False(t, isValidFormat("xml"))
}
