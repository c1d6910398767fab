package commando

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Type tags of the built-in argument types.
const (
	TagString       = "string"
	TagInteger      = "integer"
	TagFloat        = "float"
	TagDuration     = "duration"
	TagBoolean      = "boolean"
	TagUnion        = "union"
	TagCommand      = "command"
	TagTextChannel  = "text-channel"
	TagVoiceChannel = "voice-channel"
	TagStageChannel = "stage-channel"
	TagCategory     = "category"
	TagRole         = "role"
	TagMember       = "member"
)

// ValidateFunc checks raw input, returning nil when it is acceptable.
type ValidateFunc func(inv *Invocation, raw string) error

// ParseFunc converts raw input that passed validation into a value.
type ParseFunc func(inv *Invocation, raw string) (any, error)

// ArgumentType is a named kind of argument value. Its behaviour is plain data:
// a validate and a parse function plus optional valid-value constraints.
//
// ValidateFunc rejects input with a *UserError. Any other error means the
// input could not be checked and fails the invocation.
type ArgumentType struct {
	Tag         string
	ValidValues []string

	ValidateFunc func(t *ArgumentType, inv *Invocation, raw string) error
	ParseFunc    func(t *ArgumentType, inv *Invocation, raw string) (any, error)
}

// Validate checks raw against the type.
func (t *ArgumentType) Validate(inv *Invocation, raw string) error {
	if t.ValidateFunc == nil {
		return nil
	}
	return t.ValidateFunc(t, inv, raw)
}

// Parse converts raw into the type's value. It must only be called on input
// Validate accepted.
func (t *ArgumentType) Parse(inv *Invocation, raw string) (any, error) {
	if t.ParseFunc == nil {
		return raw, nil
	}
	return t.ParseFunc(t, inv, raw)
}

// OneOf returns a copy of t restricted to the given values.
func (t *ArgumentType) OneOf(values ...string) *ArgumentType {
	c := *t
	c.ValidValues = append([]string(nil), values...)
	return &c
}

func (t *ArgumentType) validValue(raw string) (string, bool) {
	for _, v := range t.ValidValues {
		if strings.EqualFold(v, raw) {
			return v, true
		}
	}
	return "", false
}

func invalid(inv *Invocation, key string, args ...any) error {
	return &UserError{Kind: ErrValidationFailed, Message: inv.Format(key, args...)}
}

// String accepts any text, or one of valid when given.
func String(valid ...string) *ArgumentType {
	return &ArgumentType{
		Tag:         TagString,
		ValidValues: valid,
		ValidateFunc: func(t *ArgumentType, inv *Invocation, raw string) error {
			if len(t.ValidValues) == 0 {
				return nil
			}
			if _, ok := t.validValue(raw); !ok {
				return invalid(inv, "Argument_String_OneOf", strings.Join(t.ValidValues, ", "))
			}
			return nil
		},
		ParseFunc: func(t *ArgumentType, _ *Invocation, raw string) (any, error) {
			if v, ok := t.validValue(raw); ok {
				return v, nil
			}
			return raw, nil
		},
	}
}

// Integer accepts whole numbers.
func Integer() *ArgumentType {
	return integerType(nil, nil)
}

// IntegerBetween accepts whole numbers in [min, max].
func IntegerBetween(min, max int64) *ArgumentType {
	return integerType(&min, &max)
}

func integerType(min, max *int64) *ArgumentType {
	return &ArgumentType{
		Tag: TagInteger,
		ValidateFunc: func(t *ArgumentType, inv *Invocation, raw string) error {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return invalid(inv, "Argument_Integer_Invalid")
			}
			if len(t.ValidValues) > 0 {
				if _, ok := t.validValue(raw); !ok {
					return invalid(inv, "Argument_String_OneOf", strings.Join(t.ValidValues, ", "))
				}
			}
			if min != nil && n < *min {
				return invalid(inv, "Argument_Number_Min", *min)
			}
			if max != nil && n > *max {
				return invalid(inv, "Argument_Number_Max", *max)
			}
			return nil
		},
		ParseFunc: func(_ *ArgumentType, _ *Invocation, raw string) (any, error) {
			return strconv.ParseInt(raw, 10, 64)
		},
	}
}

// Float accepts decimal numbers.
func Float() *ArgumentType {
	return floatType(nil, nil)
}

// FloatBetween accepts decimal numbers in [min, max].
func FloatBetween(min, max float64) *ArgumentType {
	return floatType(&min, &max)
}

func floatType(min, max *float64) *ArgumentType {
	return &ArgumentType{
		Tag: TagFloat,
		ValidateFunc: func(_ *ArgumentType, inv *Invocation, raw string) error {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return invalid(inv, "Argument_Float_Invalid")
			}
			if min != nil && f < *min {
				return invalid(inv, "Argument_Number_Min", *min)
			}
			if max != nil && f > *max {
				return invalid(inv, "Argument_Number_Max", *max)
			}
			return nil
		},
		ParseFunc: func(_ *ArgumentType, _ *Invocation, raw string) (any, error) {
			return strconv.ParseFloat(raw, 64)
		},
	}
}

// Duration accepts Go duration syntax ("90s", "1h30m") or a bare number of
// seconds.
func Duration() *ArgumentType {
	return durationType(0, 0)
}

// DurationBetween accepts durations in [min, max].
func DurationBetween(min, max time.Duration) *ArgumentType {
	return durationType(min, max)
}

func durationType(min, max time.Duration) *ArgumentType {
	return &ArgumentType{
		Tag: TagDuration,
		ValidateFunc: func(_ *ArgumentType, inv *Invocation, raw string) error {
			d, err := parseDuration(raw)
			if err != nil {
				return invalid(inv, "Argument_Duration_Invalid")
			}
			if min > 0 && d < min {
				return invalid(inv, "Argument_Duration_Min", min)
			}
			if max > 0 && d > max {
				return invalid(inv, "Argument_Duration_Max", max)
			}
			return nil
		},
		ParseFunc: func(_ *ArgumentType, _ *Invocation, raw string) (any, error) {
			return parseDuration(raw)
		},
	}
}

func parseDuration(raw string) (time.Duration, error) {
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if secs > math.MaxInt64/int64(time.Second) || secs < math.MinInt64/int64(time.Second) {
			return 0, fmt.Errorf("duration %q out of range", raw)
		}
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(raw)
}

var (
	truthy = []string{"true", "t", "yes", "y", "on", "enable", "enabled", "1", "+"}
	falsy  = []string{"false", "f", "no", "n", "off", "disable", "disabled", "0", "-"}
)

// Boolean accepts yes/no style answers.
func Boolean() *ArgumentType {
	return &ArgumentType{
		Tag: TagBoolean,
		ValidateFunc: func(_ *ArgumentType, inv *Invocation, raw string) error {
			if _, ok := parseBool(raw); !ok {
				return invalid(inv, "Argument_Boolean_Invalid")
			}
			return nil
		},
		ParseFunc: func(_ *ArgumentType, inv *Invocation, raw string) (any, error) {
			b, ok := parseBool(raw)
			if !ok {
				return nil, invalid(inv, "Argument_Boolean_Invalid")
			}
			return b, nil
		},
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.ToLower(raw)
	for _, v := range truthy {
		if raw == v {
			return true, true
		}
	}
	for _, v := range falsy {
		if raw == v {
			return false, true
		}
	}
	return false, false
}

// Choice is the value of a union argument: the tag of the type that accepted
// the input and that type's parsed value.
type Choice struct {
	Tag   string
	Value any
}

// Union tries each type in order. The first type whose Validate accepts the
// input wins, even if a later type could also parse it.
func Union(types ...*ArgumentType) *ArgumentType {
	return &ArgumentType{
		Tag: TagUnion,
		ValidateFunc: func(_ *ArgumentType, inv *Invocation, raw string) error {
			var messages []string
			for _, t := range types {
				err := t.Validate(inv, raw)
				if err == nil {
					return nil
				}
				var uerr *UserError
				if !errors.As(err, &uerr) {
					return err
				}
				if !contains(messages, uerr.Message) {
					messages = append(messages, uerr.Message)
				}
			}
			return invalid(inv, "Argument_Union_Invalid", strings.Join(messages, "\n"))
		},
		ParseFunc: func(_ *ArgumentType, inv *Invocation, raw string) (any, error) {
			for _, t := range types {
				if t.Validate(inv, raw) != nil {
					continue
				}
				v, err := t.Parse(inv, raw)
				if err != nil {
					return nil, err
				}
				return Choice{Tag: t.Tag, Value: v}, nil
			}
			return nil, invalid(inv, "Argument_Union_Invalid", raw)
		},
	}
}

// CommandRef accepts the name or alias of a registered command.
func CommandRef() *ArgumentType {
	return &ArgumentType{
		Tag: TagCommand,
		ValidateFunc: func(_ *ArgumentType, inv *Invocation, raw string) error {
			if inv.Engine() == nil || inv.Engine().Command(raw) == nil {
				return &UserError{Kind: ErrNotFound, Message: inv.Format("Argument_Command_NotFound", raw)}
			}
			return nil
		},
		ParseFunc: func(_ *ArgumentType, inv *Invocation, raw string) (any, error) {
			cmd := inv.Engine().Command(raw)
			if cmd == nil {
				return nil, &UserError{Kind: ErrNotFound, Message: inv.Format("Argument_Command_NotFound", raw)}
			}
			return cmd, nil
		},
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
