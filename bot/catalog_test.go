package bot

import (
	"testing"

	"ticketbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandDefinitions_CoverTheStaticCatalog(t *testing.T) {
	defined := make(map[string]bool)
	for _, cmd := range commandDefinitions() {
		defined[cmd.Name] = true
	}

	// Every catalog entry must have a Discord definition, otherwise its
	// gating metadata is dead weight
	for _, meta := range models.CommandCatalog {
		assert.True(t, defined[meta.Name], "catalog entry %q has no command definition", meta.Name)
	}
	assert.Len(t, defined, len(models.CommandCatalog))
}

func TestFilterCatalog_DropsDisabledFeatureCommands(t *testing.T) {
	enabled := models.NewFeatureSet(models.FeatureTickets)

	var names []string
	for _, cmd := range FilterCatalog(enabled) {
		names = append(names, cmd.Name)
	}

	assert.Contains(t, names, "ticket")
	assert.NotContains(t, names, "stats")
	assert.NotContains(t, names, "autoresponse")
	assert.NotContains(t, names, "webhook")
}

func TestFilterCatalog_AlwaysKeepsUngatedCommands(t *testing.T) {
	var names []string
	for _, cmd := range FilterCatalog(models.NewFeatureSet()) {
		names = append(names, cmd.Name)
	}

	// With every feature off only the ungated commands remain
	assert.ElementsMatch(t, []string{"embed", "config", "botadmin", "help"}, names)
}

func TestFilterCatalog_AllFeaturesKeepsEverything(t *testing.T) {
	filtered := FilterCatalog(models.AllFeaturesEnabled())
	require.Len(t, filtered, len(commandDefinitions()))
}
