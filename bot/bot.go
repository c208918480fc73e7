package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"ticketbot/bot/common"
	"ticketbot/bot/features/admincmd"
	"ticketbot/bot/features/autoresponse"
	"ticketbot/bot/features/configcmd"
	"ticketbot/bot/features/ticket"
	"ticketbot/events"
	"ticketbot/models"
	"ticketbot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token string
}

type Bot struct {
	config              Config
	session             *discordgo.Session
	permissionService   service.PermissionService
	featureService      service.FeatureService
	autoResponseService service.AutoResponseService
	settingsService     service.GuildSettingsService
	synchronizer        *CatalogSynchronizer
	eventBus            *events.Bus

	ticketFeature       *ticket.Feature
	autoResponseFeature *autoresponse.Feature
	configFeature       *configcmd.Feature
	adminFeature        *admincmd.Feature
}

// New creates the Discord bot, opens the gateway connection, and wires
// the catalog synchronizer to feature changes and guild joins
func New(config Config, permissionService service.PermissionService, featureService service.FeatureService, adminService service.AdminService, autoResponseService service.AutoResponseService, settingsService service.GuildSettingsService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	bot := &Bot{
		config:              config,
		session:             dg,
		permissionService:   permissionService,
		featureService:      featureService,
		autoResponseService: autoResponseService,
		settingsService:     settingsService,
		eventBus:            eventBus,
		ticketFeature:       ticket.NewFeature(),
		autoResponseFeature: autoresponse.NewFeature(autoResponseService),
		configFeature:       configcmd.NewFeature(featureService),
		adminFeature:        admincmd.NewFeature(adminService),
	}

	bot.synchronizer = NewCatalogSynchronizer(&sessionRegistrar{session: dg}, featureService)
	bot.synchronizer.SubscribeToFeatureChanges(eventBus)

	// Register interaction and gateway handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleGuildCreate)
	dg.AddHandler(bot.handleMessage)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// handleGuildCreate resyncs the guild's command catalog. Discord sends
// GuildCreate for every current guild on connect, so this also covers
// the required startup resync.
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	guildID, err := strconv.ParseInt(g.ID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID %q: %v", g.ID, err)
		return
	}

	go func() {
		ctx := context.Background()
		if err := b.synchronizer.Resync(ctx, guildID); err != nil {
			log.Errorf("Startup catalog resync failed for guild %d: %v", guildID, err)
		}
	}()
}

// handleCommands gates every application command through the permission
// resolver before routing it to its handler. Handlers never run side
// effects before the check returns.
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.Member == nil || i.Member.User == nil {
		return // DM interactions are not supported
	}

	check, err := b.buildPermissionCheck(s, i)
	if err != nil {
		log.Errorf("Failed to build permission check: %v", err)
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	ctx := context.Background()
	decision := b.permissionService.CheckCommand(ctx, check)
	if !decision.Allowed {
		common.RespondWithError(s, i, deniedMessage(decision.Reason))
		return
	}

	switch check.Command {
	case "ticket":
		b.ticketFeature.HandleCommand(s, i)
	case "autoresponse":
		b.autoResponseFeature.HandleCommand(s, i)
	case "config":
		b.configFeature.HandleCommand(s, i)
	case "botadmin":
		b.adminFeature.HandleCommand(s, i)
	case "stats":
		b.handleStats(s, i)
	case "autorole":
		b.handleAutoRole(s, i)
	case "webhook":
		b.handleWebhook(s, i)
	case "embed":
		b.handleEmbed(s, i)
	case "help":
		b.handleHelp(s, i)
	default:
		log.Warnf("No handler for command %q", check.Command)
	}
}

// buildPermissionCheck assembles the resolver input from the interaction
func (b *Bot) buildPermissionCheck(s *discordgo.Session, i *discordgo.InteractionCreate) (service.PermissionCheck, error) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		return service.PermissionCheck{}, fmt.Errorf("invalid guild ID %q: %w", i.GuildID, err)
	}
	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		return service.PermissionCheck{}, fmt.Errorf("invalid user ID %q: %w", i.Member.User.ID, err)
	}

	roleIDs := make([]int64, 0, len(i.Member.Roles))
	for _, roleStr := range i.Member.Roles {
		roleID, err := strconv.ParseInt(roleStr, 10, 64)
		if err != nil {
			continue
		}
		roleIDs = append(roleIDs, roleID)
	}

	data := i.ApplicationCommandData()
	var subcommand string
	if len(data.Options) > 0 && data.Options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		subcommand = data.Options[0].Name
	}

	return service.PermissionCheck{
		GuildID:     guildID,
		UserID:      userID,
		OwnerID:     b.guildOwnerID(s, i.GuildID),
		RoleIDs:     roleIDs,
		Permissions: i.Member.Permissions,
		Command:     data.Name,
		Subcommand:  subcommand,
	}, nil
}

// guildOwnerID resolves the guild's owner, preferring the session state
// cache over a REST call. Returns 0 when the owner cannot be resolved;
// the resolver then simply skips the owner rule.
func (b *Bot) guildOwnerID(s *discordgo.Session, guildIDStr string) int64 {
	guild, err := s.State.Guild(guildIDStr)
	if err != nil || guild.OwnerID == "" {
		guild, err = s.Guild(guildIDStr)
		if err != nil {
			log.Warnf("Failed to resolve owner for guild %s: %v", guildIDStr, err)
			return 0
		}
	}

	ownerID, err := strconv.ParseInt(guild.OwnerID, 10, 64)
	if err != nil {
		return 0
	}
	return ownerID
}

// deniedMessage maps a decision reason to the user-facing denial text.
// Feature-gated and permission-denied rejections read differently so
// operators can tell which rule fired.
func deniedMessage(reason service.DecisionReason) string {
	if reason == service.ReasonFeatureDisabled {
		return "❌ This feature is disabled on this server. A server admin can enable it with `/config enable`."
	}
	return "❌ You don't have permission to use this command."
}

// handleMessage serves auto-responses on regular guild messages
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	guildID, err := strconv.ParseInt(m.GuildID, 10, 64)
	if err != nil {
		return
	}

	ctx := context.Background()
	if !b.featureService.IsFeatureEnabled(ctx, guildID, models.FeatureAutoResponses) {
		return
	}

	responses, err := b.autoResponseService.List(ctx, guildID)
	if err != nil {
		log.Errorf("Failed to load auto-responses for guild %d: %v", guildID, err)
		return
	}

	content := strings.ToLower(strings.TrimSpace(m.Content))
	for _, response := range responses {
		trigger := strings.ToLower(response.Trigger)
		matched := content == trigger
		if !response.ExactMatch {
			matched = matched || strings.Contains(content, trigger)
		}
		if matched {
			if _, err := s.ChannelMessageSend(m.ChannelID, response.Response); err != nil {
				log.Errorf("Failed to send auto-response: %v", err)
			}
			return
		}
	}
}
