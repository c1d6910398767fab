package commando_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradykim7/commando/pkg/commando"
	"github.com/bradykim7/commando/pkg/commando/commandotest"
)

func parse(t *testing.T, typ *commando.ArgumentType, inv *commando.Invocation, raw string) any {
	t.Helper()
	require.NoError(t, typ.Validate(inv, raw))
	v, err := typ.Parse(inv, raw)
	require.NoError(t, err)
	return v
}

func rejection(t *testing.T, typ *commando.ArgumentType, inv *commando.Invocation, raw string) string {
	t.Helper()
	err := typ.Validate(inv, raw)
	require.Error(t, err)
	var uerr *commando.UserError
	require.ErrorAs(t, err, &uerr)
	return uerr.Message
}

func TestStringType(t *testing.T) {
	assert.Equal(t, "anything at all", parse(t, commando.String(), nil, "anything at all"))

	colors := commando.String("red", "blue")
	assert.Equal(t, "red", parse(t, colors, nil, "RED"))
	assert.Equal(t, "Please enter one of the following options: red, blue", rejection(t, colors, nil, "green"))
}

func TestIntegerType(t *testing.T) {
	assert.Equal(t, int64(-7), parse(t, commando.Integer(), nil, "-7"))
	assert.Equal(t, "Please enter a whole number.", rejection(t, commando.Integer(), nil, "7.5"))

	bounded := commando.IntegerBetween(1, 10)
	assert.Equal(t, int64(10), parse(t, bounded, nil, "10"))
	assert.Equal(t, "Please enter a number above or exactly 1.", rejection(t, bounded, nil, "0"))
	assert.Equal(t, "Please enter a number below or exactly 10.", rejection(t, bounded, nil, "11"))

	sizes := commando.Integer().OneOf("1", "2", "4")
	assert.Equal(t, int64(4), parse(t, sizes, nil, "4"))
	assert.Equal(t, "Please enter one of the following options: 1, 2, 4", rejection(t, sizes, nil, "3"))
	assert.Empty(t, commando.Integer().ValidValues, "OneOf must not modify the original")
}

func TestFloatType(t *testing.T) {
	assert.InDelta(t, 2.5, parse(t, commando.Float(), nil, "2.5"), 1e-9)
	assert.Equal(t, "Please enter a number.", rejection(t, commando.Float(), nil, "two"))
	assert.Equal(t, "Please enter a number below or exactly 1.", rejection(t, commando.FloatBetween(0, 1), nil, "1.5"))
}

func TestDurationType(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"90", 90 * time.Second},
		{"90s", 90 * time.Second},
		{"1h30m", 90 * time.Minute},
		{"250ms", 250 * time.Millisecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parse(t, commando.Duration(), nil, tt.raw), tt.raw)
	}

	assert.Equal(t, "Please enter a duration such as `90`, `90s` or `1h30m`.", rejection(t, commando.Duration(), nil, "soon"))

	bounded := commando.DurationBetween(5*time.Second, time.Hour)
	assert.Equal(t, "Please enter a duration of at least 5s.", rejection(t, bounded, nil, "2"))
	assert.Equal(t, "Please enter a duration of at most 1h0m0s.", rejection(t, bounded, nil, "2h"))

	// Second counts that overflow time.Duration.
	remind := commando.DurationBetween(5*time.Second, 24*time.Hour)
	for _, raw := range []string{"18446744079", "-18446744079", "9223372037"} {
		assert.Equal(t, "Please enter a duration such as `90`, `90s` or `1h30m`.", rejection(t, remind, nil, raw), raw)
	}
	assert.Equal(t, 24*time.Hour, parse(t, remind, nil, "86400"))
}

func TestBooleanType(t *testing.T) {
	for _, raw := range []string{"yes", "Y", "true", "on", "enable", "1", "+"} {
		assert.Equal(t, true, parse(t, commando.Boolean(), nil, raw), raw)
	}
	for _, raw := range []string{"no", "N", "false", "OFF", "disabled", "0", "-"} {
		assert.Equal(t, false, parse(t, commando.Boolean(), nil, raw), raw)
	}
	assert.Equal(t, "Please answer yes or no.", rejection(t, commando.Boolean(), nil, "maybe"))
}

func TestUnionType(t *testing.T) {
	all, err := commando.NewCommand("all", "test", "", noop)
	require.NoError(t, err)
	e, _ := newEngine(t, commando.Options{}, all, mustCommand(t, "ping", noop))
	inv := e.NewInvocation(context.Background(), commandotest.GuildMessage(""))

	typ := commando.Union(commando.String("all"), commando.CommandRef())

	t.Run("first accepting type wins", func(t *testing.T) {
		v := parse(t, typ, inv, "all")
		assert.Equal(t, commando.Choice{Tag: commando.TagString, Value: "all"}, v)
	})

	t.Run("later type", func(t *testing.T) {
		v := parse(t, typ, inv, "PING")
		choice, ok := v.(commando.Choice)
		require.True(t, ok)
		assert.Equal(t, commando.TagCommand, choice.Tag)
		assert.Same(t, e.Command("ping"), choice.Value)
	})

	t.Run("nothing accepts", func(t *testing.T) {
		msg := rejection(t, typ, inv, "pong")
		assert.Equal(t, "Couldn't understand that:\nPlease enter one of the following options: all\nNo command named `pong` exists.", msg)
	})

	t.Run("duplicate messages collapse", func(t *testing.T) {
		msg := rejection(t, commando.Union(commando.Integer(), commando.IntegerBetween(1, 2)), inv, "x")
		assert.Equal(t, "Couldn't understand that:\nPlease enter a whole number.", msg)
	})
}

func TestCommandRefWithoutEngine(t *testing.T) {
	err := commando.CommandRef().Validate(nil, "help")
	assert.ErrorIs(t, err, commando.ErrNotFound)
}

func TestArgumentResolve(t *testing.T) {
	required := commando.NewArgument("n", "Number?", commando.Integer())
	optional := commando.NewArgument("n", "Number?", commando.Integer(), commando.WithDefault(int64(3)))

	_, err := required.Resolve(nil, "", false)
	assert.ErrorIs(t, err, commando.ErrArgumentMissing)
	_, err = required.Resolve(nil, "   ", true)
	assert.ErrorIs(t, err, commando.ErrArgumentMissing)

	v, err := optional.Resolve(nil, "", false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	v, err = required.Resolve(nil, " 8 ", true)
	require.NoError(t, err)
	assert.Equal(t, int64(8), v)

	_, err = required.Resolve(nil, "eight", true)
	assert.ErrorIs(t, err, commando.ErrValidationFailed)
}

func TestArgumentOverrides(t *testing.T) {
	arg := commando.NewArgument("word", "Word?", nil,
		commando.WithValidator(func(_ *commando.Invocation, raw string) error {
			if raw == "bad" {
				return assert.AnError
			}
			return nil
		}),
		commando.WithParser(func(_ *commando.Invocation, raw string) (any, error) {
			return len(raw), nil
		}),
		commando.WithPromptParser(func(a *commando.Argument, _ *commando.Invocation) string {
			return "Give me a " + a.Name()
		}))

	assert.Equal(t, commando.TagString, arg.Type().Tag)
	assert.Equal(t, "Give me a word", arg.Prompt(nil))

	v, err := arg.Resolve(nil, "four", true)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = arg.Resolve(nil, "bad", true)
	var uerr *commando.UserError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, commando.ErrValidationFailed, uerr.Kind)
	assert.Equal(t, assert.AnError.Error(), uerr.Message)
}

func TestArgumentUsage(t *testing.T) {
	assert.Equal(t, "<a>", commando.NewArgument("a", "", nil).Usage())
	assert.Equal(t, "[a]", commando.NewArgument("a", "", nil, commando.WithDefault("")).Usage())
	assert.Equal(t, "<a...>", commando.NewArgument("a", "", nil, commando.Repeatable()).Usage())
}

func TestArgsAccessors(t *testing.T) {
	args := commando.Args{
		"s": "text",
		"i": int64(4),
		"f": 1.5,
		"b": true,
		"d": time.Minute,
		"e": commando.Entity{ID: "1", Name: "general"},
		"c": commando.Choice{Tag: commando.TagString, Value: "all"},
		"v": []any{int64(1)},
	}
	assert.Equal(t, "text", args.String("s"))
	assert.Equal(t, int64(4), args.Int("i"))
	assert.Equal(t, 1.5, args.Float("f"))
	assert.True(t, args.Bool("b"))
	assert.Equal(t, time.Minute, args.Duration("d"))
	ent, ok := args.Entity("e")
	assert.True(t, ok)
	assert.Equal(t, "general", ent.Name)
	choice, ok := args.Choice("c")
	assert.True(t, ok)
	assert.Equal(t, "all", choice.Value)
	assert.Len(t, args.Values("v"), 1)

	assert.Empty(t, args.String("i"), "wrong type reads as zero")
	assert.Zero(t, args.Int("missing"))
	_, ok = args.Entity("missing")
	assert.False(t, ok)
}
