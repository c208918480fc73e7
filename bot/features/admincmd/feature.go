package admincmd

import (
	"ticketbot/service"
)

// Feature handles /botadmin commands. These manage the cross-guild admin
// roster, so access is gated on the caller's own admin level rather than
// guild permissions.
type Feature struct {
	adminService service.AdminService
}

// NewFeature creates the botadmin feature
func NewFeature(adminService service.AdminService) *Feature {
	return &Feature{
		adminService: adminService,
	}
}
