package configcmd

import (
	"ticketbot/service"
)

// Feature handles /config commands. Flag writes from the dashboard take
// the same UpdateFeatures path; this is the in-Discord surface for it.
type Feature struct {
	featureService service.FeatureService
}

// NewFeature creates the config feature
func NewFeature(featureService service.FeatureService) *Feature {
	return &Feature{
		featureService: featureService,
	}
}
