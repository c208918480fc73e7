package bot

import (
	"ticketbot/models"

	"github.com/bwmarrin/discordgo"
)

// commandDefinitions returns the Discord definitions for the full static
// catalog. Feature gating and capability metadata for the same commands
// live in models.CommandCatalog; the two are joined by command name.
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ticket",
			Description: "Open and manage support tickets",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Open a new support ticket",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "subject",
							Description: "Short description of your issue",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "close",
					Description: "Close the current ticket",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a user to the current ticket",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to add",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a user from the current ticket",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to remove",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "autoresponse",
			Description: "Manage automatic responses",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add an automatic response",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "trigger",
							Description: "Text that triggers the response",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "response",
							Description: "Message to send when triggered",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "exact",
							Description: "Require the message to match the trigger exactly",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove an automatic response",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "trigger",
							Description: "Trigger of the response to remove",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List this server's automatic responses",
				},
			},
		},
		{
			Name:        "stats",
			Description: "View server ticket statistics",
		},
		{
			Name:        "autorole",
			Description: "Configure the role assigned to new members",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to assign on join (leave empty to disable)",
					Required:    false,
				},
			},
		},
		{
			Name:        "webhook",
			Description: "Configure the event webhook for this server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "url",
					Description: "Webhook URL (leave empty to disable)",
					Required:    false,
				},
			},
		},
		{
			Name:        "embed",
			Description: "Post a custom embed message",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "title",
					Description: "Embed title",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "body",
					Description: "Embed body text",
					Required:    true,
				},
			},
		},
		{
			Name:        "config",
			Description: "View or change bot configuration for this server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "features",
					Description: "View the currently enabled features",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "enable",
					Description: "Enable a feature",
					Options:     []*discordgo.ApplicationCommandOption{featureOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "disable",
					Description: "Disable a feature",
					Options:     []*discordgo.ApplicationCommandOption{featureOption()},
				},
			},
		},
		{
			Name:        "botadmin",
			Description: "Manage bot administrators",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "grant",
					Description: "Grant bot admin to a user",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to grant",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "level",
							Description: "Admin level (1-3)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "revoke",
					Description: "Revoke bot admin from a user",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to revoke",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "check",
					Description: "Check a user's bot admin status",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to check",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "help",
			Description: "Show available commands",
		},
	}
}

func featureOption() *discordgo.ApplicationCommandOption {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.AllFeatures()))
	for _, f := range models.AllFeatures() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(f),
			Value: string(f),
		})
	}
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "feature",
		Description: "Feature name",
		Required:    true,
		Choices:     choices,
	}
}

// FilterCatalog returns the command definitions whose mapped feature (if
// any) is in the enabled set. Commands with no feature mapping are
// always included.
func FilterCatalog(enabled models.FeatureSet) []*discordgo.ApplicationCommand {
	var filtered []*discordgo.ApplicationCommand
	for _, cmd := range commandDefinitions() {
		if feature, gated := models.FeatureForCommand(cmd.Name); gated && !enabled.Contains(feature) {
			continue
		}
		filtered = append(filtered, cmd)
	}
	return filtered
}
