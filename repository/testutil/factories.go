package testutil

import (
	"ticketbot/models"
)

// CreateTestAdminRecord creates an active admin record with default values
func CreateTestAdminRecord(userID int64, username string) *models.AdminRecord {
	return &models.AdminRecord{
		UserID:    userID,
		Username:  username,
		Level:     models.AdminLevelSupport,
		GrantedBy: 1,
		IsActive:  true,
	}
}

// CreateTestAdminRecordWithLevel creates an active admin record at a specific level
func CreateTestAdminRecordWithLevel(userID int64, username string, level int) *models.AdminRecord {
	record := CreateTestAdminRecord(userID, username)
	record.Level = level
	return record
}

// CreateTestPermissionRule creates a permission rule with the given lists
func CreateTestPermissionRule(guildID, roleID int64, allowed, denied []string) *models.CommandPermissionRule {
	return &models.CommandPermissionRule{
		GuildID:         guildID,
		RoleID:          roleID,
		AllowedCommands: allowed,
		DeniedCommands:  denied,
	}
}

// CreateTestAutoResponse creates an auto-response with default values
func CreateTestAutoResponse(guildID int64, trigger, response string) *models.AutoResponse {
	return &models.AutoResponse{
		GuildID:    guildID,
		Trigger:    trigger,
		Response:   response,
		ExactMatch: false,
		CreatedBy:  1,
	}
}
