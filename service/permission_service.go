package service

import (
	"context"
	"fmt"
	"time"

	"ticketbot/models"

	log "github.com/sirupsen/logrus"
)

// permissionService implements the PermissionService interface
type permissionService struct {
	featureService FeatureService
	adminService   AdminService
	uowFactory     UnitOfWorkFactory
	storeTimeout   time.Duration
}

// NewPermissionService creates a new command permission resolver
func NewPermissionService(featureService FeatureService, adminService AdminService, uowFactory UnitOfWorkFactory, storeTimeout time.Duration) PermissionService {
	return &permissionService{
		featureService: featureService,
		adminService:   adminService,
		uowFactory:     uowFactory,
		storeTimeout:   storeTimeout,
	}
}

// CheckCommand resolves a single allow/deny decision. Steps run in strict
// order; the first matching rule wins:
//
//  1. feature gate (applies to everyone, owners and admins included)
//  2. guild owner
//  3. global admin
//  4. explicit role rules, deny over allow
//  5. legacy capability fallback from Discord permission bits
//  6. unmapped commands default to allowed
//
// A store failure while fetching role rules logs and falls through to the
// legacy fallback rather than denying.
func (s *permissionService) CheckCommand(ctx context.Context, check PermissionCheck) Decision {
	// Step 1: feature gate
	if feature, gated := models.FeatureForCommand(check.Command); gated {
		if !s.featureService.IsFeatureEnabled(ctx, check.GuildID, feature) {
			return Decision{Allowed: false, Reason: ReasonFeatureDisabled}
		}
	}

	// Step 2: guild owner
	if check.OwnerID != 0 && check.UserID == check.OwnerID {
		return Decision{Allowed: true, Reason: ReasonGuildOwner}
	}

	// Step 3: global admin
	status, err := s.adminService.IsGlobalAdmin(ctx, check.UserID)
	if err != nil {
		log.WithFields(log.Fields{
			"userId": check.UserID,
			"error":  err,
		}).Warn("Admin status lookup failed, continuing without admin privilege")
	} else if status.IsAdmin {
		return Decision{Allowed: true, Reason: ReasonGlobalAdmin}
	}

	// Step 4: explicit role rules
	rules, err := s.fetchRules(ctx, check.GuildID, check.RoleIDs)
	if err != nil {
		log.WithFields(log.Fields{
			"guildId": check.GuildID,
			"userId":  check.UserID,
			"error":   err,
		}).Warn("Role rule lookup failed, falling through to legacy permissions")
	} else {
		switch AggregateRules(rules, check.Command) {
		case RuleDeny:
			return Decision{Allowed: false, Reason: ReasonRoleDenied}
		case RuleAllow:
			return Decision{Allowed: true, Reason: ReasonRoleAllowed}
		}
	}

	// Steps 5 and 6: legacy capability fallback; commands requiring no
	// capability are open
	required, ok := models.RequiredCapability(check.Command, check.Subcommand)
	if !ok {
		return Decision{Allowed: true, Reason: ReasonUnrestricted}
	}

	if models.DeriveCapabilities(check.Permissions).Contains(required) {
		return Decision{Allowed: true, Reason: ReasonCapability}
	}
	return Decision{Allowed: false, Reason: ReasonNoCapability}
}

// fetchRules loads the permission rules for the user's roles
func (s *permissionService) fetchRules(ctx context.Context, guildID int64, roleIDs []int64) ([]*models.CommandPermissionRule, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rules, err := uow.CommandPermissionRepository().GetByGuildAndRoles(ctx, guildID, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permission rules for guild %d: %w", guildID, err)
	}

	return rules, nil
}
