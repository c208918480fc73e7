package configcmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ticketbot/bot/common"
	"ticketbot/models"
	"ticketbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleCommand routes /config subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "❌ Missing subcommand")
		return
	}

	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID: %v", err)
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	switch options[0].Name {
	case "features":
		f.handleView(s, i, guildID)
	case "enable":
		f.handleToggle(s, i, guildID, options[0], true)
	case "disable":
		f.handleToggle(s, i, guildID, options[0], false)
	default:
		common.RespondWithError(s, i, "❌ Unknown subcommand")
	}
}

func (f *Feature) handleView(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) {
	ctx := context.Background()
	enabled := f.featureService.GetEnabledFeatures(ctx, guildID)

	var lines []string
	for _, feature := range models.AllFeatures() {
		marker := "❌"
		if enabled.Contains(feature) {
			marker = "✅"
		}
		lines = append(lines, fmt.Sprintf("%s %s", marker, feature))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Feature Flags",
		Description: strings.Join(lines, "\n"),
		Color:       0x5865F2,
	}
	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		log.Errorf("Failed to respond to config view: %v", err)
	}
}

func (f *Feature) handleToggle(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, opt *discordgo.ApplicationCommandInteractionDataOption, enable bool) {
	var feature string
	for _, o := range opt.Options {
		if o.Name == "feature" {
			feature = o.StringValue()
		}
	}

	actorID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	ctx := context.Background()
	patch := map[models.FeatureName]bool{models.FeatureName(feature): enable}
	enabled, err := f.featureService.UpdateFeatures(ctx, guildID, actorID, patch)
	if err != nil {
		if errors.Is(err, service.ErrUnknownFeature) {
			common.RespondWithError(s, i, fmt.Sprintf("❌ Unknown feature `%s`", feature))
			return
		}
		log.Errorf("Failed to update features: %v", err)
		common.RespondWithError(s, i, "❌ Failed to update features")
		return
	}

	verb := "enabled"
	if !enable {
		verb = "disabled"
	}
	message := fmt.Sprintf("✅ Feature `%s` %s. Enabled: %s", feature, verb, strings.Join(enabled.Names(), ", "))
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to config toggle: %v", err)
	}
}
