package models

// CommandMeta is the static metadata attached to a catalog command: the
// feature gating it (if any) and the capability required by the legacy
// permission fallback. A subcommand entry overrides the command-level
// capability; an empty override marks the subcommand as open to everyone.
type CommandMeta struct {
	Name        string
	Feature     FeatureName // empty: command is not feature-gated
	Capability  Capability  // empty: no capability required
	Subcommands map[string]Capability
}

// CommandCatalog is the compile-time command catalog. Feature gating and
// capability requirements live here so the permission resolver stays
// decoupled from the Discord command definitions.
var CommandCatalog = []CommandMeta{
	{
		Name:       "ticket",
		Feature:    FeatureTickets,
		Capability: CapabilityManageTickets,
		Subcommands: map[string]Capability{
			"create": "", // opening a ticket is always open to everyone
			"close":  CapabilityManageTickets,
			"add":    CapabilityManageTickets,
			"remove": CapabilityManageTickets,
		},
	},
	{
		Name:       "autoresponse",
		Feature:    FeatureAutoResponses,
		Capability: CapabilityManageGuild,
		Subcommands: map[string]Capability{
			"add":    CapabilityManageGuild,
			"remove": CapabilityManageGuild,
			"list":   "",
		},
	},
	{
		Name:       "stats",
		Feature:    FeatureStatistics,
		Capability: CapabilityViewStats,
	},
	{
		Name:       "autorole",
		Feature:    FeatureAutoRoles,
		Capability: CapabilityManageGuild,
	},
	{
		Name:       "webhook",
		Feature:    FeatureWebhooks,
		Capability: CapabilityManageGuild,
	},
	{
		Name:       "embed",
		Capability: CapabilityManageEmbeds,
	},
	{
		Name:       "config",
		Capability: CapabilityManageGuild,
	},
	{
		Name: "botadmin", // restricted to global admins inside the handler
	},
	{
		Name: "help",
	},
}

// FindCommandMeta returns the catalog entry for a command name
func FindCommandMeta(command string) (CommandMeta, bool) {
	for _, meta := range CommandCatalog {
		if meta.Name == command {
			return meta, true
		}
	}
	return CommandMeta{}, false
}

// FeatureForCommand returns the feature gating a command, if any.
// Commands absent from the catalog have no feature mapping.
func FeatureForCommand(command string) (FeatureName, bool) {
	meta, ok := FindCommandMeta(command)
	if !ok || meta.Feature == "" {
		return "", false
	}
	return meta.Feature, true
}

// RequiredCapability returns the capability required to run a command
// (or subcommand). The boolean is false when no capability is required.
func RequiredCapability(command, subcommand string) (Capability, bool) {
	meta, ok := FindCommandMeta(command)
	if !ok {
		return "", false
	}
	if subcommand != "" {
		if cap, ok := meta.Subcommands[subcommand]; ok {
			if cap == "" {
				return "", false
			}
			return cap, true
		}
	}
	if meta.Capability == "" {
		return "", false
	}
	return meta.Capability, true
}
