package models

// Capability is a coarse permission derived from a member's Discord
// permission bits. It is the legacy fallback used when no explicit
// role rule matches a command.
type Capability string

const (
	CapabilityManageTickets Capability = "manage_tickets"
	CapabilityViewStats     Capability = "view_stats"
	CapabilityManageEmbeds  Capability = "manage_embeds"
	CapabilityManageGuild   Capability = "manage_guild"
)

// Discord permission bit flags consulted by the legacy fallback.
// Values match the Discord API permission field.
const (
	PermissionManageChannels int64 = 1 << 4
	PermissionManageMessages int64 = 1 << 13
	PermissionAdministrator  int64 = 1 << 3
)

// CapabilitySet is the set of capabilities a member holds
type CapabilitySet map[Capability]struct{}

// Contains reports whether the capability is in the set
func (s CapabilitySet) Contains(c Capability) bool {
	_, ok := s[c]
	return ok
}

// DeriveCapabilities maps a member's raw Discord permission bits to a
// capability set. Administrators get everything; moderators (manage
// messages or manage channels) get ticket management, stats viewing and
// embed authoring; everyone else can author embeds only.
func DeriveCapabilities(permissions int64) CapabilitySet {
	if permissions&PermissionAdministrator != 0 {
		return CapabilitySet{
			CapabilityManageTickets: {},
			CapabilityViewStats:     {},
			CapabilityManageEmbeds:  {},
			CapabilityManageGuild:   {},
		}
	}
	if permissions&(PermissionManageMessages|PermissionManageChannels) != 0 {
		return CapabilitySet{
			CapabilityManageTickets: {},
			CapabilityViewStats:     {},
			CapabilityManageEmbeds:  {},
		}
	}
	return CapabilitySet{
		CapabilityManageEmbeds: {},
	}
}
