package commando

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	channelMention = regexp.MustCompile(`^(?:<#)?(\d+)>?$`)
	roleMention    = regexp.MustCompile(`^(?:<@&)?(\d+)>?$`)
	memberMention  = regexp.MustCompile(`^(?:<@!?)?(\d+)>?$`)
)

func mentionPattern(kind EntityKind) *regexp.Regexp {
	switch kind {
	case KindRole:
		return roleMention
	case KindMember:
		return memberMention
	default:
		return channelMention
	}
}

// ResolveEntity finds the entity raw refers to among candidates.
//
// A mention or bare ID resolves by exact ID. Anything else is matched as a
// case-insensitive substring of the candidate names; when several names
// contain it, the match is narrowed to case-insensitive exact names and must
// then be unique. It returns ErrNotFound or ErrAmbiguous otherwise.
func ResolveEntity(kind EntityKind, raw string, candidates []Entity) (Entity, error) {
	if m := mentionPattern(kind).FindStringSubmatch(raw); m != nil {
		for _, c := range candidates {
			if c.ID == m[1] {
				return c, nil
			}
		}
		return Entity{}, ErrNotFound
	}

	needle := strings.ToLower(raw)
	var matches []Entity
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return Entity{}, ErrNotFound
	case 1:
		return matches[0], nil
	}

	var exact []Entity
	for _, c := range matches {
		if strings.ToLower(c.Name) == needle {
			exact = append(exact, c)
		}
	}
	if len(exact) == 1 {
		return exact[0], nil
	}
	return Entity{}, ErrAmbiguous
}

// TextChannel accepts a text channel of the invocation's guild.
func TextChannel() *ArgumentType { return EntityType(TagTextChannel, KindTextChannel) }

// VoiceChannel accepts a voice channel of the invocation's guild.
func VoiceChannel() *ArgumentType { return EntityType(TagVoiceChannel, KindVoiceChannel) }

// StageChannel accepts a stage channel of the invocation's guild.
func StageChannel() *ArgumentType { return EntityType(TagStageChannel, KindStageChannel) }

// Category accepts a channel category of the invocation's guild.
func Category() *ArgumentType { return EntityType(TagCategory, KindCategory) }

// Role accepts a role of the invocation's guild.
func Role() *ArgumentType { return EntityType(TagRole, KindRole) }

// Member accepts a member of the invocation's guild.
func Member() *ArgumentType { return EntityType(TagMember, KindMember) }

// EntityType builds an argument type resolving entities of kind through the
// engine's Directory. ValidValues, when set, restricts the accepted names.
func EntityType(tag string, kind EntityKind) *ArgumentType {
	return &ArgumentType{
		Tag: tag,
		ValidateFunc: func(t *ArgumentType, inv *Invocation, raw string) error {
			_, err := resolveEntityArg(t, inv, kind, raw)
			return err
		},
		ParseFunc: func(t *ArgumentType, inv *Invocation, raw string) (any, error) {
			return resolveEntityArg(t, inv, kind, raw)
		},
	}
}

func resolveEntityArg(t *ArgumentType, inv *Invocation, kind EntityKind, raw string) (Entity, error) {
	candidates, err := inv.Engine().entities(inv, kind)
	if err != nil {
		return Entity{}, fmt.Errorf("list %ss: %w", kind, err)
	}

	e, err := ResolveEntity(kind, raw, candidates)
	switch {
	case err == ErrNotFound:
		return Entity{}, &UserError{Kind: ErrNotFound, Message: inv.Format("Argument_Entity_NotFound", kind, raw)}
	case err == ErrAmbiguous:
		return Entity{}, &UserError{Kind: ErrAmbiguous, Message: inv.Format("Argument_Entity_TooMany", kind, raw)}
	case err != nil:
		return Entity{}, err
	}

	if len(t.ValidValues) > 0 {
		if _, ok := t.validValue(e.Name); !ok {
			return Entity{}, invalid(inv, "Argument_Entity_OneOf", kind, strings.Join(t.ValidValues, ", "))
		}
	}
	return e, nil
}
