package admincmd

import (
	"context"
	"fmt"
	"strconv"

	"ticketbot/bot/common"
	"ticketbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleCommand routes /botadmin subcommands. Grant and revoke require
// the caller to already be a manager-level global admin.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "❌ Missing subcommand")
		return
	}

	actorID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	ctx := context.Background()

	switch options[0].Name {
	case "grant":
		if !f.requireLevel(ctx, s, i, actorID, models.AdminLevelManager) {
			return
		}
		f.handleGrant(s, i, actorID, options[0])
	case "revoke":
		if !f.requireLevel(ctx, s, i, actorID, models.AdminLevelManager) {
			return
		}
		f.handleRevoke(s, i, actorID, options[0])
	case "check":
		f.handleCheck(s, i, options[0])
	default:
		common.RespondWithError(s, i, "❌ Unknown subcommand")
	}
}

// requireLevel checks the caller's admin level and responds with a
// denial when it is insufficient
func (f *Feature) requireLevel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, actorID int64, level int) bool {
	status, err := f.adminService.IsGlobalAdmin(ctx, actorID)
	if err != nil {
		log.Errorf("Failed to check admin status: %v", err)
		common.RespondWithError(s, i, "❌ Failed to verify your admin status")
		return false
	}
	if !status.IsAdmin || status.Level < level {
		common.RespondWithError(s, i, "❌ You need bot manager privileges to use this command")
		return false
	}
	return true
}

func (f *Feature) handleGrant(s *discordgo.Session, i *discordgo.InteractionCreate, actorID int64, opt *discordgo.ApplicationCommandInteractionDataOption) {
	var target *discordgo.User
	var level int64
	for _, o := range opt.Options {
		switch o.Name {
		case "user":
			target = o.UserValue(s)
		case "level":
			level = o.IntValue()
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "❌ Missing user")
		return
	}

	targetID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "❌ Invalid user")
		return
	}

	ctx := context.Background()
	if err := f.adminService.Grant(ctx, targetID, target.Username, int(level), actorID); err != nil {
		log.Errorf("Failed to grant admin: %v", err)
		common.RespondWithError(s, i, "❌ Failed to grant admin")
		return
	}

	message := fmt.Sprintf("✅ %s is now a level %d bot admin", target.Username, level)
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to botadmin grant: %v", err)
	}
}

func (f *Feature) handleRevoke(s *discordgo.Session, i *discordgo.InteractionCreate, actorID int64, opt *discordgo.ApplicationCommandInteractionDataOption) {
	var target *discordgo.User
	for _, o := range opt.Options {
		if o.Name == "user" {
			target = o.UserValue(s)
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "❌ Missing user")
		return
	}

	targetID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "❌ Invalid user")
		return
	}

	ctx := context.Background()
	if err := f.adminService.Revoke(ctx, actorID, targetID); err != nil {
		log.Errorf("Failed to revoke admin: %v", err)
		common.RespondWithError(s, i, "❌ Failed to revoke admin")
		return
	}

	message := fmt.Sprintf("✅ %s is no longer a bot admin", target.Username)
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to botadmin revoke: %v", err)
	}
}

func (f *Feature) handleCheck(s *discordgo.Session, i *discordgo.InteractionCreate, opt *discordgo.ApplicationCommandInteractionDataOption) {
	var target *discordgo.User
	for _, o := range opt.Options {
		if o.Name == "user" {
			target = o.UserValue(s)
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "❌ Missing user")
		return
	}

	targetID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "❌ Invalid user")
		return
	}

	ctx := context.Background()
	status, err := f.adminService.IsGlobalAdmin(ctx, targetID)
	if err != nil {
		log.Errorf("Failed to check admin status: %v", err)
		common.RespondWithError(s, i, "❌ Failed to check admin status")
		return
	}

	message := fmt.Sprintf("%s is not a bot admin", target.Username)
	if status.IsAdmin {
		message = fmt.Sprintf("%s is a level %d bot admin", target.Username, status.Level)
	}
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to botadmin check: %v", err)
	}
}
