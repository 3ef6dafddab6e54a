package main_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/zhextract/cmd/zhextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"parse", "add", "list", "records", "export", "delete"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesFlags(t *testing.T) {
	t.Parallel()

	t.Run("add defaults", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"add", "hot", "https://www.zhihu.com/people/someone/answers"})
		require.NoError(t, err)

		assert.Equal(t, "hot", cli.Add.Name)
		assert.Equal(t, "answers", cli.Add.Variant)
		assert.Equal(t, 1, cli.Add.Pages)
		assert.Equal(t, 4, cli.Add.Concurrency)
		assert.InDelta(t, 1.0, cli.Add.Rate, 0.0001)
		assert.Equal(t, "10s", cli.Add.Timeout.String())
	})

	t.Run("add with variant and pages", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"add", "people", "https://www.zhihu.com/people/someone", "--variant", "author", "-n", "3", "--rate", "0"})
		require.NoError(t, err)

		assert.Equal(t, "author", cli.Add.Variant)
		assert.Equal(t, 3, cli.Add.Pages)
		assert.Zero(t, cli.Add.Rate)
	})

	t.Run("rejects unknown variant", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"add", "x", "https://www.zhihu.com", "--variant", "feed"})
		require.Error(t, err)
	})

	t.Run("verbose flag before command", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		ctx, err := parser.Parse([]string{"-v", "records", "hot", "--kind", "simple_answer"})
		require.NoError(t, err)

		assert.True(t, cli.Verbose)
		assert.Equal(t, "records <name>", ctx.Command())
		assert.Equal(t, "simple_answer", cli.Records.Kind)
	})
}
