package autoresponse

import (
	"ticketbot/service"
)

// Feature handles /autoresponse commands
type Feature struct {
	autoResponseService service.AutoResponseService
}

// NewFeature creates the auto-response feature
func NewFeature(autoResponseService service.AutoResponseService) *Feature {
	return &Feature{
		autoResponseService: autoResponseService,
	}
}
