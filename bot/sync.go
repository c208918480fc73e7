package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ticketbot/events"
	"ticketbot/models"
	"ticketbot/service"

	"github.com/bwmarrin/discordgo"
	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// CommandRegistrar publishes a guild's full command set. The engine
// always sends the complete desired set, never a delta.
type CommandRegistrar interface {
	OverwriteGuildCommands(guildID string, commands []*discordgo.ApplicationCommand) error
}

// sessionRegistrar registers commands through the live Discord session
type sessionRegistrar struct {
	session *discordgo.Session
}

func (r *sessionRegistrar) OverwriteGuildCommands(guildID string, commands []*discordgo.ApplicationCommand) error {
	_, err := r.session.ApplicationCommandBulkOverwrite(r.session.State.User.ID, guildID, commands)
	return err
}

// CatalogSynchronizer keeps a guild's registered command set in sync
// with its enabled features
type CatalogSynchronizer struct {
	registrar      CommandRegistrar
	featureService service.FeatureService
	maxRetries     uint64
}

// NewCatalogSynchronizer creates a new catalog synchronizer
func NewCatalogSynchronizer(registrar CommandRegistrar, featureService service.FeatureService) *CatalogSynchronizer {
	return &CatalogSynchronizer{
		registrar:      registrar,
		featureService: featureService,
		maxRetries:     3,
	}
}

// Resync republishes the guild's command set filtered by its currently
// enabled features. A publish failure is a soft error: the feature
// change that triggered the resync is never rolled back, the guild just
// keeps its previous command set until the next successful resync.
func (s *CatalogSynchronizer) Resync(ctx context.Context, guildID int64) error {
	enabled := s.featureService.GetEnabledFeatures(ctx, guildID)
	return s.publish(ctx, guildID, enabled)
}

// ResyncWithFeatures republishes using an already-known enabled set,
// avoiding a redundant resolver read when the caller just updated flags
func (s *CatalogSynchronizer) ResyncWithFeatures(ctx context.Context, guildID int64, enabled models.FeatureSet) error {
	return s.publish(ctx, guildID, enabled)
}

func (s *CatalogSynchronizer) publish(ctx context.Context, guildID int64, enabled models.FeatureSet) error {
	commands := FilterCatalog(enabled)
	guildIDStr := strconv.FormatInt(guildID, 10)

	operation := func() error {
		return s.registrar.OverwriteGuildCommands(guildIDStr, commands)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(500*time.Millisecond),
			backoff.WithMaxElapsedTime(10*time.Second),
		), s.maxRetries),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		log.WithFields(log.Fields{
			"guildId":      guildID,
			"commandCount": len(commands),
			"error":        err,
		}).Error("Failed to publish command catalog")
		return fmt.Errorf("failed to publish command catalog for guild %d: %w", guildID, err)
	}

	log.WithFields(log.Fields{
		"guildId":      guildID,
		"commandCount": len(commands),
		"features":     enabled.Names(),
	}).Info("Command catalog synchronized")

	return nil
}

// SubscribeToFeatureChanges wires the synchronizer to the event bus so
// every successful feature update triggers exactly one resync
func (s *CatalogSynchronizer) SubscribeToFeatureChanges(bus *events.Bus) {
	bus.Subscribe(events.EventTypeFeaturesChanged, func(ctx context.Context, event events.Event) {
		changed, ok := event.(events.FeaturesChangedEvent)
		if !ok {
			return
		}
		if err := s.ResyncWithFeatures(ctx, changed.GuildID, changed.Enabled); err != nil {
			log.Errorf("Catalog resync after feature change failed: %v", err)
		}
	})
}
