package autoresponse

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ticketbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleCommand routes /autoresponse subcommands
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
	case "add":
		f.handleAdd(s, i, guildID, options[0])
	case "remove":
		f.handleRemove(s, i, guildID, options[0])
	case "list":
		f.handleList(s, i, guildID)
	default:
		common.RespondWithError(s, i, "❌ Unknown subcommand")
	}
}

func (f *Feature) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, opt *discordgo.ApplicationCommandInteractionDataOption) {
	var trigger, response string
	var exact bool
	for _, o := range opt.Options {
		switch o.Name {
		case "trigger":
			trigger = o.StringValue()
		case "response":
			response = o.StringValue()
		case "exact":
			exact = o.BoolValue()
		}
	}

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	ctx := context.Background()
	created, err := f.autoResponseService.Add(ctx, guildID, trigger, response, exact, userID)
	if err != nil {
		log.Errorf("Failed to add auto-response: %v", err)
		common.RespondWithError(s, i, "❌ Failed to add auto-response")
		return
	}

	message := fmt.Sprintf("✅ Auto-response added for trigger `%s`", created.Trigger)
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to autoresponse add: %v", err)
	}
}

func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, opt *discordgo.ApplicationCommandInteractionDataOption) {
	var trigger string
	for _, o := range opt.Options {
		if o.Name == "trigger" {
			trigger = o.StringValue()
		}
	}

	ctx := context.Background()
	removed, err := f.autoResponseService.Remove(ctx, guildID, trigger)
	if err != nil {
		log.Errorf("Failed to remove auto-response: %v", err)
		common.RespondWithError(s, i, "❌ Failed to remove auto-response")
		return
	}

	message := fmt.Sprintf("✅ Auto-response for `%s` removed", trigger)
	if !removed {
		message = fmt.Sprintf("No auto-response found for `%s`", trigger)
	}
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to autoresponse remove: %v", err)
	}
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) {
	ctx := context.Background()
	responses, err := f.autoResponseService.List(ctx, guildID)
	if err != nil {
		log.Errorf("Failed to list auto-responses: %v", err)
		common.RespondWithError(s, i, "❌ Failed to list auto-responses")
		return
	}

	if len(responses) == 0 {
		if err := common.RespondWithMessage(s, i, "This server has no auto-responses yet.", true); err != nil {
			log.Errorf("Failed to respond to autoresponse list: %v", err)
		}
		return
	}

	var lines []string
	for _, r := range responses {
		mode := "contains"
		if r.ExactMatch {
			mode = "exact"
		}
		lines = append(lines, fmt.Sprintf("`%s` (%s)", r.Trigger, mode))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Auto-Responses",
		Description: strings.Join(lines, "\n"),
		Color:       0x5865F2,
	}
	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		log.Errorf("Failed to respond to autoresponse list: %v", err)
	}
}
