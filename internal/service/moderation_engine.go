package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/givespark/moderation-backend/internal/config"
	"github.com/givespark/moderation-backend/internal/domain"
)

// The scoring engine. Every function here is pure: same campaign in, same
// scores out. No storage or network access happens below this line.

// extractContent flattens a campaign into one lower-cased blob for pattern
// matching: title, story, description, then each budget line as
// "{item} {description}", space-joined. Missing fields contribute nothing.
func extractContent(c *domain.Campaign) string {
	parts := make([]string, 0, 4)
	if c.Title != "" {
		parts = append(parts, c.Title)
	}
	if c.Story != "" {
		parts = append(parts, c.Story)
	}
	if c.Description != "" {
		parts = append(parts, c.Description)
	}
	for _, item := range c.Budget() {
		parts = append(parts, strings.TrimSpace(item.Item+" "+item.Description))
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// matchGroups runs every pattern of every group against the text and
// returns the accumulated points plus the de-duplicated matched terms.
func matchGroups(text string, groups []keywordGroup) (float64, []string) {
	var points float64
	var matched []string
	seen := make(map[string]bool)

	for _, group := range groups {
		for _, pattern := range group.patterns {
			term := pattern.FindString(text)
			if term == "" {
				continue
			}
			points += group.points
			if !seen[term] {
				seen[term] = true
				matched = append(matched, term)
			}
		}
	}
	return points, matched
}

// matchCategories awards each group's points at most once, regardless of
// how many of its patterns hit. Returns the names of matched categories.
func matchCategories(text string, groups []keywordGroup) (float64, []string) {
	var points float64
	var matched []string

	for _, group := range groups {
		for _, pattern := range group.patterns {
			if pattern.MatchString(text) {
				points += group.points
				matched = append(matched, group.name)
				break
			}
		}
	}
	return points, matched
}

func matchAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// scoreLuxury rates lavish-lifestyle content: keyword hits plus budget
// red flags (oversized line items, oversized goal).
func scoreLuxury(text string, c *domain.Campaign) (float64, []string) {
	score, matched := matchGroups(text, luxuryGroups)

	for _, item := range c.Budget() {
		if item.Amount > budgetItemHardThreshold {
			score += budgetItemHardPenalty
		} else if item.Amount > budgetItemThreshold && c.NeedType != domain.NeedTypeMedical {
			score += budgetItemPenalty
		}
	}

	if c.GoalAmount > goalAmountTier1 {
		score += goalTier1Penalty
	}
	if c.GoalAmount > goalAmountTier2 {
		score += goalTier2Penalty
	}

	return clampScore(score), matched
}

// scoreInappropriate rates banned-category content
func scoreInappropriate(text string, _ *domain.Campaign) (float64, []string) {
	score, matched := matchGroups(text, inappropriateGroups)
	return clampScore(score), matched
}

// scoreFraud rates suspicious financial phrasing plus structural red
// flags: vague stories, missing budgets, fabricated-looking numbers.
func scoreFraud(text string, c *domain.Campaign) (float64, []string) {
	score, matched := matchGroups(text, suspiciousFinancialGroups)

	if len(strings.TrimSpace(c.Story)) < minStoryLength {
		score += shortStoryPenalty
	}

	budget := c.Budget()
	if len(budget) == 0 {
		score += emptyBudgetPenalty
	} else if len(budget) > 2 && allRoundAmounts(budget) {
		score += roundBudgetPenalty
	}

	return clampScore(score), matched
}

// allRoundAmounts reports whether every line item is an exact multiple of
// 100. Real budgets have odd numbers in them.
func allRoundAmounts(items []domain.BudgetItem) bool {
	for _, item := range items {
		if item.Amount == 0 || math.Mod(item.Amount, 100) != 0 {
			return false
		}
	}
	return true
}

// scoreNeedValidation starts from a fully-validated 100 and subtracts
// need-type-specific legitimacy penalties.
func scoreNeedValidation(text string, c *domain.Campaign) float64 {
	score := 100.0

	switch c.NeedType {
	case domain.NeedTypeMedical:
		if !matchAny(text, medicalLegitimatePatterns) {
			score -= missingMedicalPenalty
		}
		if matchAny(text, medicalSuspiciousPatterns) {
			score -= suspiciousMedicalPenalty
		}
	case domain.NeedTypeEducation:
		if !matchAny(text, educationLegitimatePatterns) {
			score -= missingEducationPenalty
		}
		if matchAny(text, educationSuspiciousPatterns) {
			score -= suspiciousEducationPenalty
		}
	case domain.NeedTypeEmergency:
		// a claimed emergency with almost no story is too vague to verify
		if len(strings.TrimSpace(c.Story)) < minEmergencyStoryLength {
			score -= vagueEmergencyPenalty
		}
	}

	return clampScore(score)
}

// scoreTrust starts from a neutral baseline and adds a fixed increment per
// distinct positive-signal category present in the text.
func scoreTrust(text string, _ *domain.Campaign) (float64, []string) {
	points, matched := matchCategories(text, trustCategories)
	return clampScore(trustBaseline + points), matched
}

// composeOverall combines the five dimension scores into the composite.
// Negative dimensions pull the score down from the baseline, positive
// dimensions pull it up.
func composeOverall(cfg config.ModerationConfig, s domain.ModerationScores) float64 {
	overall := cfg.BaseScore -
		cfg.LuxuryWeight*s.Luxury -
		cfg.InappropriateWeight*s.Inappropriate -
		cfg.FraudWeight*s.Fraud +
		cfg.NeedWeight*s.NeedValidation +
		cfg.TrustWeight*s.Trust
	return clampScore(overall)
}

// decide maps the overall score onto a disposition. The mapping is total:
// boundary values belong to the higher band.
func decide(cfg config.ModerationConfig, overall float64) (decision string, flags, recommendations []string) {
	switch {
	case overall >= cfg.ApproveThreshold:
		return domain.DecisionApproved,
			[]string{},
			[]string{"Campaign looks good for publication"}
	case overall >= cfg.ReviewThreshold:
		return domain.DecisionReview,
			[]string{domain.FlagManualReviewRequired},
			[]string{
				"Campaign requires manual review",
				"Consider requesting additional documentation",
			}
	default:
		return domain.DecisionRejected,
			[]string{domain.FlagHighRisk},
			[]string{
				"Campaign does not meet platform guidelines",
				"Significant concerns detected",
			}
	}
}

// recommendedChanges inspects which dimensions crossed their concern
// thresholds and tells the creator what to fix. Used by the
// request-changes review action.
func recommendedChanges(s domain.ModerationScores) []string {
	var changes []string
	if s.Luxury > 50 {
		changes = append(changes, "Remove luxury or lifestyle references from the campaign")
	}
	if s.Inappropriate > 0 {
		changes = append(changes, "Remove inappropriate content")
	}
	if s.Fraud > 40 {
		changes = append(changes, "Add specific details about how funds will be used")
	}
	if s.Trust < 50 {
		changes = append(changes, "Add receipts or an itemized budget for transparency")
	}
	if len(changes) == 0 {
		changes = append(changes, "Address the concerns noted by the reviewer")
	}
	return changes
}

// statusForDecision maps a disposition onto the campaign status field
func statusForDecision(decision string) (string, error) {
	switch decision {
	case domain.DecisionApproved:
		return domain.CampaignStatusActive, nil
	case domain.DecisionReview:
		return domain.CampaignStatusUnderReview, nil
	case domain.DecisionRejected:
		return domain.CampaignStatusRejected, nil
	default:
		return "", fmt.Errorf("no campaign status for decision %q", decision)
	}
}

// clampScore bounds a score to [0,100]
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
