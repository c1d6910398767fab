package commando_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradykim7/commando/pkg/commando"
	"github.com/bradykim7/commando/pkg/commando/commandotest"
)

func TestNewCommandErrors(t *testing.T) {
	t.Run("duplicate argument name", func(t *testing.T) {
		cmd, err := commando.NewCommand("greet", "test", "", noop, commando.WithArguments(
			commando.NewArgument("who", "", nil),
			commando.NewArgument("who", "", nil),
		))
		require.ErrorIs(t, err, commando.ErrDuplicateArgumentName)
		assert.Nil(t, cmd)
	})

	t.Run("repeatable not last", func(t *testing.T) {
		cmd, err := commando.NewCommand("greet", "test", "", noop, commando.WithArguments(
			commando.NewArgument("who", "", nil, commando.Repeatable()),
			commando.NewArgument("how", "", nil),
		))
		assert.Error(t, err)
		assert.Nil(t, cmd)
	})

	t.Run("invalid name", func(t *testing.T) {
		for _, name := range []string{"", "  ", "two words"} {
			_, err := commando.NewCommand(name, "test", "", noop)
			assert.Error(t, err, name)
		}
	})

	t.Run("no run action", func(t *testing.T) {
		_, err := commando.NewCommand("idle", "test", "", nil)
		assert.Error(t, err)
	})
}

func TestCommandAccessors(t *testing.T) {
	cmd := mustCommand(t, "ban", noop,
		commando.WithArguments(
			commando.NewArgument("member", "", commando.Member()),
			commando.NewArgument("reason", "", nil, commando.WithDefault("")),
		),
		commando.WithAliases("b"),
		commando.WithExamples("ban @someone"),
		commando.WithDetails("Bans a member."),
		commando.WithUserPermissions(commando.PermissionBanMembers),
		commando.GuildOnly(),
		commando.Hidden())

	assert.Equal(t, "ban", cmd.Name())
	assert.Equal(t, "ban", cmd.DisplayName(nil))
	assert.Equal(t, "test", cmd.Group())
	assert.Equal(t, []string{"b"}, cmd.Aliases())
	assert.Equal(t, []string{"ban @someone"}, cmd.Examples())
	assert.Equal(t, "<member> [reason]", cmd.ArgumentUsage())
	assert.Equal(t, commando.PermissionBanMembers, cmd.UserPermissions())
	assert.True(t, cmd.IsGuildOnly())
	assert.True(t, cmd.IsHidden())
	assert.False(t, cmd.IsNSFW())
	assert.Equal(t, "Test command", cmd.Description(nil))
	assert.Equal(t, "Bans a member.", cmd.Details(nil))
	assert.Empty(t, mustCommand(t, "plain", noop).Details(nil))
	assert.Equal(t, "or", mustCommand(t, "named", noop, commando.WithNameKey("Usage_Or")).DisplayName(nil))
}

func TestRestriction(t *testing.T) {
	e, _ := newEngine(t, commando.Options{})
	ctx := context.Background()

	guild := commandotest.GuildMessage("")
	thread := commandotest.GuildMessage("")
	thread.InThread = true
	nsfw := commandotest.GuildMessage("")
	nsfw.NSFWChannel = true
	private := commandotest.DirectMessage("")

	tests := []struct {
		name string
		opt  commando.CommandOption
		src  commando.Source
		want string
	}{
		{"guild only in guild", commando.GuildOnly(), guild, ""},
		{"guild only in private", commando.GuildOnly(), private, "The `x` command must be used in a server channel."},
		{"private only in private", commando.PrivateOnly(), private, ""},
		{"private only in guild", commando.PrivateOnly(), guild, "The `x` command can only be used in direct messages."},
		{"thread only in thread", commando.ThreadOnly(), thread, ""},
		{"thread only in channel", commando.ThreadOnly(), guild, "The `x` command can only be used in threads."},
		{"nsfw in nsfw channel", commando.NSFW(), nsfw, ""},
		{"nsfw in channel", commando.NSFW(), guild, "The `x` command can only be used in NSFW channels."},
		{"nsfw in private", commando.NSFW(), private, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := mustCommand(t, "x", noop, tt.opt)
			err := cmd.Restriction(e.NewInvocation(ctx, tt.src))
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, commando.ErrRestrictionViolated)
			assert.EqualError(t, err, "restriction violated: "+tt.want)
		})
	}
}

func TestCheckPermissionsSurfaces(t *testing.T) {
	e, _ := newEngine(t, commando.Options{})
	ctx := context.Background()
	msg := e.NewInvocation(ctx, commandotest.GuildMessage(""))
	interaction := e.NewInvocation(ctx, commandotest.GuildInteraction("x", nil))

	cmd := mustCommand(t, "x", noop,
		commando.WithPermission(func(*commando.Invocation) string { return "any" }),
		commando.WithMessagePermission(func(*commando.Invocation) string { return "message" }))
	assert.Equal(t, "message", cmd.CheckPermissions(msg))
	assert.Equal(t, "any", cmd.CheckPermissions(interaction))

	open := mustCommand(t, "y", noop)
	assert.Empty(t, open.CheckPermissions(msg))
	assert.Empty(t, open.CheckPermissions(interaction))
}
