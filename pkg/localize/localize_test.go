package localize_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradykim7/commando/pkg/commando"
	"github.com/bradykim7/commando/pkg/commando/commandotest"
	"github.com/bradykim7/commando/pkg/localize"
)

func invocation(t *testing.T, loc commando.Localizer, locale string) *commando.Invocation {
	t.Helper()
	e, err := commando.NewEngine(commando.Options{
		Transport: commandotest.NewTransport(1),
		Localizer: loc,
	})
	require.NoError(t, err)
	src := commandotest.GuildMessage("")
	src.Locale = locale
	return e.NewInvocation(context.Background(), src)
}

func TestNewBundle(t *testing.T) {
	_, err := localize.NewBundle("not a locale!")
	assert.Error(t, err)

	bundle, err := localize.NewBundle("en-US")
	require.NoError(t, err)
	assert.NotEmpty(t, bundle.LanguageTags())
}

func TestLocalizerFormat(t *testing.T) {
	bundle, err := localize.NewBundle("en-US")
	require.NoError(t, err)
	loc := localize.New(bundle, "en-US")

	tests := []struct {
		name   string
		locale string
		key    string
		args   []any
		want   string
	}{
		{name: "default locale", key: "Prompt_Cancelled", want: "Cancelled command."},
		{name: "caller locale", locale: "es-ES", key: "Prompt_Cancelled", want: "Comando cancelado."},
		{name: "language only", locale: "es", key: "Usage_Or", want: "o"},
		{name: "arguments", locale: "es-ES", key: "Restriction_GuildOnly", args: []any{"stage"}, want: "El comando `stage` debe usarse en un canal de servidor."},
		{name: "untranslated key", locale: "es-ES", key: "Help_NSFW", want: "(NSFW)"},
		{name: "unsupported locale", locale: "ja", key: "Prompt_Cancelled", want: "Cancelled command."},
		{name: "plain text", locale: "es-ES", key: "Which number?", want: "Which number?"},
		{name: "plain text with arguments", key: "%d left", args: []any{3}, want: "3 left"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := invocation(t, loc, tt.locale)
			assert.Equal(t, tt.want, inv.Format(tt.key, tt.args...))
		})
	}
}

func TestSampleCommandName(t *testing.T) {
	bundle, err := localize.NewBundle("en-US")
	require.NoError(t, err)
	loc := localize.New(bundle, "en-US")

	inv := invocation(t, loc, "es-ES")
	assert.Equal(t, "comando", inv.Engine().SampleCommand().DisplayName(inv))
	inv = invocation(t, loc, "en-GB")
	assert.Equal(t, "command", inv.Engine().SampleCommand().DisplayName(inv))
}

func TestLocalizerWithoutInvocation(t *testing.T) {
	bundle, err := localize.NewBundle("es")
	require.NoError(t, err)
	loc := localize.New(bundle, "es")

	assert.Equal(t, "Comando cancelado.", loc.Format("Prompt_Cancelled", nil))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "active.fr.toml"), []byte(`Prompt_Cancelled = "Commande annulée."`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "active.de.json"), []byte(`{"Prompt_Cancelled": "Befehl abgebrochen."}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a message file"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts"), 0o755))

	bundle, err := localize.NewBundle("en-US")
	require.NoError(t, err)
	require.NoError(t, localize.LoadDir(bundle, dir))
	loc := localize.New(bundle, "en-US")

	assert.Equal(t, "Commande annulée.", invocation(t, loc, "fr").Format("Prompt_Cancelled"))
	assert.Equal(t, "Befehl abgebrochen.", invocation(t, loc, "de").Format("Prompt_Cancelled"))
	assert.Equal(t, "Cancelled command: no reply in time.", invocation(t, loc, "fr").Format("Prompt_Timeout"))
}

func TestLoadDirErrors(t *testing.T) {
	bundle, err := localize.NewBundle("en-US")
	require.NoError(t, err)

	assert.Error(t, localize.LoadDir(bundle, filepath.Join(t.TempDir(), "missing")))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "active.fr.toml"), []byte(`Prompt_Cancelled = `), 0o644))
	assert.Error(t, localize.LoadDir(bundle, dir))
}
