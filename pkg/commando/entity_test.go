package commando_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradykim7/commando/pkg/commando"
	"github.com/bradykim7/commando/pkg/commando/commandotest"
)

func entities(kind commando.EntityKind, names ...string) []commando.Entity {
	return commandotest.NewDirectory().Add(kind, names...).Items[kind]
}

func TestResolveEntity(t *testing.T) {
	channels := entities(commando.KindTextChannel, "general", "general-chat", "random", "Off-Topic")

	tests := []struct {
		name    string
		kind    commando.EntityKind
		raw     string
		in      []commando.Entity
		wantID  string
		wantErr error
	}{
		{name: "single substring", raw: "rand", in: channels, wantID: "102"},
		{name: "case-insensitive", raw: "off-TOPIC", in: channels, wantID: "103"},
		{name: "exact name breaks tie", raw: "general", in: channels, wantID: "100"},
		{name: "exact name breaks tie ignoring case", raw: "GENERAL", in: channels, wantID: "100"},
		{name: "several substrings", raw: "gen", in: channels, wantErr: commando.ErrAmbiguous},
		{name: "no match", raw: "memes", in: channels, wantErr: commando.ErrNotFound},
		{name: "channel mention", raw: "<#101>", in: channels, wantID: "101"},
		{name: "bare id", raw: "102", in: channels, wantID: "102"},
		{name: "unknown mention", raw: "<#999>", in: channels, wantErr: commando.ErrNotFound},
		{name: "shared prefix", raw: "ab", in: entities(commando.KindRole, "abc", "abd"), kind: commando.KindRole, wantErr: commando.ErrAmbiguous},
		{name: "duplicate exact names", raw: "mods", in: entities(commando.KindRole, "Mods", "mods", "mods-lead"), kind: commando.KindRole, wantErr: commando.ErrAmbiguous},
		{name: "role mention", raw: "<@&101>", in: entities(commando.KindRole, "a", "b"), kind: commando.KindRole, wantID: "101"},
		{name: "member mention", raw: "<@100>", in: entities(commando.KindMember, "ann"), kind: commando.KindMember, wantID: "100"},
		{name: "member nickname mention", raw: "<@!100>", in: entities(commando.KindMember, "ann"), kind: commando.KindMember, wantID: "100"},
		{name: "no candidates", raw: "general", wantErr: commando.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := commando.ResolveEntity(tt.kind, tt.raw, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)

			again, err := commando.ResolveEntity(tt.kind, got.ID, tt.in)
			require.NoError(t, err)
			assert.Equal(t, got, again, "resolving the result again yields it unchanged")
		})
	}
}

func TestEntityArgument(t *testing.T) {
	ctx := context.Background()
	var got commando.Entity
	topic := func(t *testing.T, typ *commando.ArgumentType) *commando.Command {
		return mustCommand(t, "topic", func(_ context.Context, _ *commando.Invocation, args commando.Args) error {
			got, _ = args.Entity("channel")
			return nil
		}, commando.WithArguments(commando.NewArgument("channel", "Which channel?", typ)))
	}
	directory := func() *commandotest.Directory {
		return commandotest.NewDirectory().Add(commando.KindTextChannel, "general", "general-chat", "random")
	}

	t.Run("resolved by name", func(t *testing.T) {
		e, _ := newEngine(t, commando.Options{Directory: directory()}, topic(t, commando.TextChannel()))
		require.NoError(t, e.HandleMessage(ctx, commandotest.GuildMessage("!topic general")))
		assert.Equal(t, commando.Entity{ID: "100", Name: "general", Kind: commando.KindTextChannel}, got)
	})

	t.Run("ambiguous prompts again", func(t *testing.T) {
		e, tr := newEngine(t, commando.Options{Directory: directory()}, topic(t, commando.TextChannel()))
		done := startMessage(e, ctx, commandotest.GuildMessage("!topic gen"))
		prompt := await(t, tr)
		assert.Contains(t, prompt.Text, "Multiple text channels match `gen`. Please be more specific.")

		require.NoError(t, e.HandleMessage(ctx, commandotest.GuildMessage("<#101>")))
		require.NoError(t, waitDone(t, done))
		assert.Equal(t, "general-chat", got.Name)
	})

	t.Run("restricted names", func(t *testing.T) {
		e, _ := newEngine(t, commando.Options{Directory: directory()}, topic(t, commando.TextChannel().OneOf("general", "random")))
		inv := e.NewInvocation(ctx, commandotest.GuildMessage(""))
		typ := e.Command("topic").Arguments()[0].Type()

		assert.NoError(t, typ.Validate(inv, "random"))
		err := typ.Validate(inv, "general-chat")
		var uerr *commando.UserError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, "Please pick a text channel among: general, random", uerr.Message)
	})

	t.Run("not found", func(t *testing.T) {
		e, _ := newEngine(t, commando.Options{Directory: directory()})
		inv := e.NewInvocation(ctx, commandotest.GuildMessage(""))
		err := commando.VoiceChannel().Validate(inv, "general")
		assert.ErrorIs(t, err, commando.ErrNotFound)
		assert.EqualError(t, err, "not found: No voice channel matches `general`.")
	})

	t.Run("nothing to resolve in private", func(t *testing.T) {
		e, _ := newEngine(t, commando.Options{Directory: directory()})
		inv := e.NewInvocation(ctx, commandotest.DirectMessage(""))
		assert.ErrorIs(t, commando.TextChannel().Validate(inv, "general"), commando.ErrNotFound)
	})

	t.Run("directory failure", func(t *testing.T) {
		dir := directory()
		dir.Err = errors.New("gateway down")
		e, tr := newEngine(t, commando.Options{Directory: dir}, topic(t, commando.TextChannel()))
		err := e.HandleMessage(ctx, commandotest.GuildMessage("!topic general"))
		assert.ErrorIs(t, err, dir.Err)
		assert.Equal(t, []string{"An error occurred while running the command."}, tr.Texts())
	})
}
