package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/bradykim7/commando/internal/models"
)

// GuildSettingsCollection is the collection guild settings live in.
const GuildSettingsCollection = "guild_settings"

// GuildSettingsRepository persists per-guild settings and serves them as the
// engine's prefix store. Reads are cached; this process is the only writer.
type GuildSettingsRepository struct {
	coll *mongo.Collection
	log  *zap.Logger

	mu    sync.RWMutex
	cache map[string]*models.GuildSettings
}

// NewGuildSettingsRepository creates a repository over coll
func NewGuildSettingsRepository(coll *mongo.Collection, log *zap.Logger) *GuildSettingsRepository {
	return &GuildSettingsRepository{
		coll:  coll,
		log:   log.Named("guild-settings-repository"),
		cache: make(map[string]*models.GuildSettings),
	}
}

// Get returns the settings of a guild. A guild without stored settings gets
// an empty record.
func (r *GuildSettingsRepository) Get(ctx context.Context, guildID string) (*models.GuildSettings, error) {
	r.mu.RLock()
	cached, ok := r.cache[guildID]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var settings models.GuildSettings
	err := r.coll.FindOne(ctx, bson.M{"_id": guildID}).Decode(&settings)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		settings = models.GuildSettings{GuildID: guildID}
	case err != nil:
		return nil, fmt.Errorf("failed to find settings of guild %s: %w", guildID, err)
	}

	r.mu.Lock()
	r.cache[guildID] = &settings
	r.mu.Unlock()
	return &settings, nil
}

// Prefix returns the stored prefix of a guild.
func (r *GuildSettingsRepository) Prefix(ctx context.Context, guildID string) (string, bool, error) {
	settings, err := r.Get(ctx, guildID)
	if err != nil {
		return "", false, err
	}
	return settings.PrefixOr(""), settings.HasPrefix(), nil
}

// SetPrefix stores prefix for a guild. An empty prefix leaves only mentions.
func (r *GuildSettingsRepository) SetPrefix(ctx context.Context, guildID, prefix string) error {
	update := bson.M{"$set": bson.M{"prefix": prefix, "updated_at": time.Now()}}
	if err := r.update(ctx, guildID, update); err != nil {
		return err
	}
	r.log.Info("Guild prefix updated", zap.String("guild_id", guildID), zap.String("prefix", prefix))
	return nil
}

// ResetPrefix removes a guild's prefix so the default applies again.
func (r *GuildSettingsRepository) ResetPrefix(ctx context.Context, guildID string) error {
	update := bson.M{
		"$unset": bson.M{"prefix": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}
	if err := r.update(ctx, guildID, update); err != nil {
		return err
	}
	r.log.Info("Guild prefix reset", zap.String("guild_id", guildID))
	return nil
}

func (r *GuildSettingsRepository) update(ctx context.Context, guildID string, update bson.M) error {
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": guildID}, update, opts); err != nil {
		return fmt.Errorf("failed to update settings of guild %s: %w", guildID, err)
	}
	r.mu.Lock()
	delete(r.cache, guildID)
	r.mu.Unlock()
	return nil
}
