package commando

import (
	"fmt"
	"math/bits"
	"strings"
)

// Permission is a set of guild permission bits. The values match the
// Discord permission flags so adapters can pass them through unchanged.
type Permission int64

const (
	PermissionCreateInstantInvite Permission = 1 << 0
	PermissionKickMembers         Permission = 1 << 1
	PermissionBanMembers          Permission = 1 << 2
	PermissionAdministrator       Permission = 1 << 3
	PermissionManageChannels      Permission = 1 << 4
	PermissionManageGuild         Permission = 1 << 5
	PermissionAddReactions        Permission = 1 << 6
	PermissionViewAuditLogs       Permission = 1 << 7
	PermissionSendMessages        Permission = 1 << 11
	PermissionManageMessages      Permission = 1 << 13
	PermissionEmbedLinks          Permission = 1 << 14
	PermissionAttachFiles         Permission = 1 << 15
	PermissionMentionEveryone     Permission = 1 << 17
	PermissionVoiceMuteMembers    Permission = 1 << 22
	PermissionVoiceMoveMembers    Permission = 1 << 24
	PermissionManageNicknames     Permission = 1 << 27
	PermissionManageRoles         Permission = 1 << 28
	PermissionManageWebhooks      Permission = 1 << 29
	PermissionManageThreads       Permission = 1 << 34
	PermissionModerateMembers     Permission = 1 << 40
)

var permissionNames = map[Permission]string{
	PermissionCreateInstantInvite: "Create Instant Invite",
	PermissionKickMembers:         "Kick Members",
	PermissionBanMembers:          "Ban Members",
	PermissionAdministrator:       "Administrator",
	PermissionManageChannels:      "Manage Channels",
	PermissionManageGuild:         "Manage Server",
	PermissionAddReactions:        "Add Reactions",
	PermissionViewAuditLogs:       "View Audit Logs",
	PermissionSendMessages:        "Send Messages",
	PermissionManageMessages:      "Manage Messages",
	PermissionEmbedLinks:          "Embed Links",
	PermissionAttachFiles:         "Attach Files",
	PermissionMentionEveryone:     "Mention Everyone",
	PermissionVoiceMuteMembers:    "Mute Members",
	PermissionVoiceMoveMembers:    "Move Members",
	PermissionManageNicknames:     "Manage Nicknames",
	PermissionManageRoles:         "Manage Roles",
	PermissionManageWebhooks:      "Manage Webhooks",
	PermissionManageThreads:       "Manage Threads",
	PermissionModerateMembers:     "Moderate Members",
}

// Has reports whether every bit of want is set in p.
func (p Permission) Has(want Permission) bool {
	return p&want == want
}

// Missing returns the bits of want that p lacks.
func (p Permission) Missing(want Permission) Permission {
	return want &^ p
}

// Names lists the human readable names of the set bits, lowest bit first.
func (p Permission) Names() []string {
	var names []string
	for rest := uint64(p); rest != 0; rest &= rest - 1 {
		bit := Permission(1) << bits.TrailingZeros64(rest)
		name, ok := permissionNames[bit]
		if !ok {
			name = fmt.Sprintf("0x%x", int64(bit))
		}
		names = append(names, name)
	}
	return names
}

func (p Permission) String() string {
	return strings.Join(p.Names(), ", ")
}
