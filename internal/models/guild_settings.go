package models

import (
	"time"
)

// GuildSettings는 길드별 봇 설정을 나타냅니다
type GuildSettings struct {
	GuildID string `bson:"_id" json:"guild_id"`
	// Prefix가 nil이면 기본 접두사를 사용합니다. 빈 문자열은 멘션으로만 명령을 받습니다.
	Prefix    *string   `bson:"prefix,omitempty" json:"prefix,omitempty"`
	Locale    string    `bson:"locale,omitempty" json:"locale,omitempty"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	UpdatedBy string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

// HasPrefix는 길드에 저장된 접두사가 있는지 확인합니다
func (g *GuildSettings) HasPrefix() bool {
	return g != nil && g.Prefix != nil
}

// PrefixOr는 저장된 접두사 또는 fallback을 반환합니다
func (g *GuildSettings) PrefixOr(fallback string) string {
	if !g.HasPrefix() {
		return fallback
	}
	return *g.Prefix
}
