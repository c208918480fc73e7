package service

import (
	"ticketbot/models"
)

// RuleOutcome is the aggregate result of a user's role rules for one command
type RuleOutcome int

const (
	// RuleNoMatch means no rule mentioned the command
	RuleNoMatch RuleOutcome = iota
	// RuleAllow means at least one role allows the command and none deny it
	RuleAllow
	// RuleDeny means at least one role denies the command
	RuleDeny
)

// AggregateRules unions the allow and deny lists across all of a user's
// role rules and reduces them to a single outcome. A deny contributed by
// any role wins over an allow contributed by any other role. Pure
// function: no store access, property-testable in isolation.
func AggregateRules(rules []*models.CommandPermissionRule, command string) RuleOutcome {
	outcome := RuleNoMatch
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		if rule.Denies(command) {
			return RuleDeny
		}
		if rule.Allows(command) {
			outcome = RuleAllow
		}
	}
	return outcome
}
