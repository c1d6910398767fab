package commando

import (
	"context"
	"sync"
)

// Delivery identifies a message the transport has sent.
type Delivery struct {
	ID        string
	ChannelID string
}

// Transport delivers text back to the caller.
type Transport interface {
	// Send posts text to the invocation's channel.
	Send(ctx context.Context, inv *Invocation, text string) (Delivery, error)
	// Reply answers the invocation directly. Ephemeral replies are only
	// visible to the caller where the surface supports it.
	Reply(ctx context.Context, inv *Invocation, text string, ephemeral bool) (Delivery, error)
	// Edit replaces the content of a previous delivery.
	Edit(ctx context.Context, inv *Invocation, d Delivery, text string) error
}

// EntityKind selects a family of named entities inside a guild.
type EntityKind int

const (
	KindTextChannel EntityKind = iota
	KindVoiceChannel
	KindStageChannel
	KindCategory
	KindRole
	KindMember
)

func (k EntityKind) String() string {
	switch k {
	case KindTextChannel:
		return "text channel"
	case KindVoiceChannel:
		return "voice channel"
	case KindStageChannel:
		return "stage channel"
	case KindCategory:
		return "category"
	case KindRole:
		return "role"
	case KindMember:
		return "member"
	default:
		return "entity"
	}
}

// Entity is a named object an argument can refer to.
type Entity struct {
	ID   string
	Name string
	Kind EntityKind
}

// Directory answers identity and membership questions about a guild.
type Directory interface {
	// Entities lists every entity of kind in the guild.
	Entities(ctx context.Context, guildID string, kind EntityKind) ([]Entity, error)
	// Permissions returns the user's effective permission bits in a channel.
	Permissions(ctx context.Context, guildID, channelID, userID string) (Permission, error)
}

// Localizer turns a message key into text for an invocation. inv may be nil
// when no invocation is in flight.
type Localizer interface {
	Format(key string, inv *Invocation, args ...any) string
}

// PrefixStore holds per-guild command prefixes. A stored empty prefix means
// the guild only accepts mention-prefixed commands.
type PrefixStore interface {
	Prefix(ctx context.Context, guildID string) (prefix string, ok bool, err error)
	SetPrefix(ctx context.Context, guildID, prefix string) error
	ResetPrefix(ctx context.Context, guildID string) error
}

// MemoryPrefixStore is a PrefixStore kept in process memory.
type MemoryPrefixStore struct {
	mu       sync.RWMutex
	prefixes map[string]string
}

// NewMemoryPrefixStore returns an empty MemoryPrefixStore.
func NewMemoryPrefixStore() *MemoryPrefixStore {
	return &MemoryPrefixStore{prefixes: make(map[string]string)}
}

func (s *MemoryPrefixStore) Prefix(_ context.Context, guildID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prefixes[guildID]
	return p, ok, nil
}

func (s *MemoryPrefixStore) SetPrefix(_ context.Context, guildID, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefixes[guildID] = prefix
	return nil
}

func (s *MemoryPrefixStore) ResetPrefix(_ context.Context, guildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.prefixes, guildID)
	return nil
}
