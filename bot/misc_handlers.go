package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ticketbot/bot/common"
	"ticketbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Settings keys written by the configuration commands
const (
	settingAutoRole   = "autorole_role_id"
	settingWebhookURL = "webhook_url"
)

// handleStats shows ticket statistics for the guild. Ticket persistence
// lives in an external collaborator, so this surfaces what the bot
// tracks locally.
func (b *Bot) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	ctx := context.Background()
	enabled := b.featureService.GetEnabledFeatures(ctx, guildID)

	embed := &discordgo.MessageEmbed{
		Title: "Server Statistics",
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Enabled Features",
				Value:  strings.Join(enabled.Names(), ", "),
				Inline: false,
			},
		},
		Color: 0x5865F2,
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Failed to respond to stats command: %v", err)
	}
}

// handleAutoRole stores or clears the role assigned to new members
func (b *Bot) handleAutoRole(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	var roleID string
	options := i.ApplicationCommandData().Options
	if len(options) > 0 {
		roleID = options[0].RoleValue(s, i.GuildID).ID
	}

	ctx := context.Background()
	if err := b.settingsService.SetSetting(ctx, guildID, settingAutoRole, roleID); err != nil {
		log.Errorf("Failed to save autorole setting: %v", err)
		common.RespondWithError(s, i, "❌ Failed to update settings")
		return
	}

	message := "✅ Auto-role disabled"
	if roleID != "" {
		message = fmt.Sprintf("✅ New members will receive <@&%s>", roleID)
	}
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to autorole command: %v", err)
	}
}

// handleWebhook stores or clears the guild's event webhook URL.
// Delivery itself is handled by an external collaborator.
func (b *Bot) handleWebhook(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	var url string
	options := i.ApplicationCommandData().Options
	if len(options) > 0 {
		url = options[0].StringValue()
	}

	ctx := context.Background()
	if err := b.settingsService.SetSetting(ctx, guildID, settingWebhookURL, url); err != nil {
		log.Errorf("Failed to save webhook setting: %v", err)
		common.RespondWithError(s, i, "❌ Failed to update settings")
		return
	}

	message := "✅ Event webhook disabled"
	if url != "" {
		message = "✅ Event webhook configured"
	}
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to webhook command: %v", err)
	}
}

// handleEmbed posts a custom embed authored by the caller
func (b *Bot) handleEmbed(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	var title, body string
	for _, opt := range data.Options {
		switch opt.Name {
		case "title":
			title = opt.StringValue()
		case "body":
			body = opt.StringValue()
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: body,
		Color:       0x5865F2,
	}
	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Failed to respond to embed command: %v", err)
	}
}

// handleHelp lists the commands currently available in this guild
func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	ctx := context.Background()
	enabled := b.featureService.GetEnabledFeatures(ctx, guildID)

	var lines []string
	for _, meta := range models.CommandCatalog {
		if meta.Feature != "" && !enabled.Contains(meta.Feature) {
			continue
		}
		lines = append(lines, fmt.Sprintf("`/%s`", meta.Name))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Available Commands",
		Description: strings.Join(lines, "\n"),
		Color:       0x5865F2,
	}
	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		log.Errorf("Failed to respond to help command: %v", err)
	}
}
