package ticket

import (
	"fmt"

	"ticketbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles /ticket commands. Channel lifecycle and transcript
// persistence are owned by the ticket collaborator; this handler
// acknowledges the gated operations.
type Feature struct{}

// NewFeature creates the ticket feature
func NewFeature() *Feature {
	return &Feature{}
}

// HandleCommand routes /ticket subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "❌ Missing subcommand")
		return
	}

	switch options[0].Name {
	case "create":
		f.handleCreate(s, i, options[0])
	case "close":
		f.respond(s, i, "✅ Ticket close requested")
	case "add":
		f.respond(s, i, "✅ User added to ticket")
	case "remove":
		f.respond(s, i, "✅ User removed from ticket")
	default:
		common.RespondWithError(s, i, "❌ Unknown subcommand")
	}
}

func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opt *discordgo.ApplicationCommandInteractionDataOption) {
	subject := "General support"
	for _, o := range opt.Options {
		if o.Name == "subject" {
			subject = o.StringValue()
		}
	}
	f.respond(s, i, fmt.Sprintf("🎫 Ticket opened: %s", subject))
}

func (f *Feature) respond(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to ticket command: %v", err)
	}
}
