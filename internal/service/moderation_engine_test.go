package service

import (
	"fmt"
	"testing"

	"github.com/givespark/moderation-backend/internal/config"
	"github.com/givespark/moderation-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCampaign(needType string, budget []domain.BudgetItem) *domain.Campaign {
	c := &domain.Campaign{
		ID:          "c-1",
		Title:       "Help with medical bills",
		Story:       "My father was admitted to the hospital last month and needs ongoing treatment after his diagnosis. Every donation helps cover the costs.",
		Description: "Support for treatment costs",
		NeedType:    needType,
		GoalAmount:  5000,
	}
	if budget != nil {
		_ = c.SetBudget(budget)
	}
	return c
}

func validBudget() []domain.BudgetItem {
	return []domain.BudgetItem{
		{Item: "Hospital invoice", Description: "outstanding balance", Amount: 2350.75},
		{Item: "Medication", Description: "monthly prescription", Amount: 412.50},
		{Item: "Transport", Description: "clinic visits", Amount: 180},
	}
}

func TestExtractContent(t *testing.T) {
	c := &domain.Campaign{
		Title:       "Title Here",
		Story:       "Story HERE",
		Description: "Desc",
	}
	_ = c.SetBudget([]domain.BudgetItem{
		{Item: "Laptop", Description: "for classes", Amount: 800},
	})

	text := extractContent(c)
	assert.Equal(t, "title here story here desc laptop for classes", text)
}

func TestExtractContentEmptyFields(t *testing.T) {
	c := &domain.Campaign{}
	assert.Equal(t, "", extractContent(c))

	c.Story = "only a story"
	assert.Equal(t, "only a story", extractContent(c))
}

func TestScoreBoundsOnEmptyCampaign(t *testing.T) {
	c := &domain.Campaign{ID: "empty"}
	text := extractContent(c)

	lux, _ := scoreLuxury(text, c)
	inap, _ := scoreInappropriate(text, c)
	fraud, _ := scoreFraud(text, c)
	need := scoreNeedValidation(text, c)
	trust, _ := scoreTrust(text, c)

	for name, score := range map[string]float64{
		"luxury": lux, "inappropriate": inap, "fraud": fraud,
		"need_validation": need, "trust": trust,
	} {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 100.0, name)
	}
}

func TestLuxuryDetection(t *testing.T) {
	c := testCampaign(domain.NeedTypeOther, nil)
	c.Story = "I need a brand new Mercedes and a Rolex"

	score, matched := scoreLuxury(extractContent(c), c)

	assert.Greater(t, score, 0.0)
	assert.Contains(t, matched, "brand new")
	assert.Contains(t, matched, "mercedes")
	assert.Contains(t, matched, "rolex")
}

func TestLuxuryMatchesDeduplicated(t *testing.T) {
	c := testCampaign(domain.NeedTypeOther, nil)
	c.Story = "rolex rolex rolex and another rolex"

	_, matched := scoreLuxury(extractContent(c), c)

	count := 0
	for _, m := range matched {
		if m == "rolex" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestLuxuryBudgetPenalties(t *testing.T) {
	base := testCampaign(domain.NeedTypeCommunity, []domain.BudgetItem{
		{Item: "Supplies", Description: "paint and lumber", Amount: 412.50},
		{Item: "Rental", Description: "equipment", Amount: 180},
	})
	baseScore, _ := scoreLuxury(extractContent(base), base)

	// a single oversized line item for a non-medical need is penalized
	inflated := testCampaign(domain.NeedTypeCommunity, []domain.BudgetItem{
		{Item: "Equipment", Description: "one big item", Amount: 2500},
	})
	inflatedScore, _ := scoreLuxury(extractContent(inflated), inflated)
	assert.Greater(t, inflatedScore, baseScore)

	// medical campaigns are allowed expensive line items below the hard cap
	medical := testCampaign(domain.NeedTypeMedical, []domain.BudgetItem{
		{Item: "Surgery", Description: "procedure", Amount: 2500},
	})
	medicalScore, _ := scoreLuxury(extractContent(medical), medical)
	assert.Less(t, medicalScore, inflatedScore)

	// but nothing escapes the hard threshold
	hard := testCampaign(domain.NeedTypeMedical, []domain.BudgetItem{
		{Item: "Surgery", Description: "procedure", Amount: 7500},
	})
	hardScore, _ := scoreLuxury(extractContent(hard), hard)
	assert.Greater(t, hardScore, medicalScore)
}

func TestLuxuryGoalTiers(t *testing.T) {
	small := testCampaign(domain.NeedTypeCommunity, validBudget())
	small.GoalAmount = 10000
	smallScore, _ := scoreLuxury(extractContent(small), small)

	big := testCampaign(domain.NeedTypeCommunity, validBudget())
	big.GoalAmount = 75000
	bigScore, _ := scoreLuxury(extractContent(big), big)

	huge := testCampaign(domain.NeedTypeCommunity, validBudget())
	huge.GoalAmount = 150000
	hugeScore, _ := scoreLuxury(extractContent(huge), huge)

	assert.Greater(t, bigScore, smallScore)
	assert.Greater(t, hugeScore, bigScore)
}

func TestInappropriateContent(t *testing.T) {
	clean := testCampaign(domain.NeedTypeMedical, validBudget())
	cleanScore, _ := scoreInappropriate(extractContent(clean), clean)
	assert.Equal(t, 0.0, cleanScore)

	dirty := testCampaign(domain.NeedTypeOther, nil)
	dirty.Story = "Join my pyramid scheme, it is definitely not a ponzi"
	dirtyScore, matched := scoreInappropriate(extractContent(dirty), dirty)
	assert.Greater(t, dirtyScore, 0.0)
	assert.Contains(t, matched, "pyramid scheme")
	assert.Contains(t, matched, "ponzi")
}

func TestFraudEmptyBudgetPenalty(t *testing.T) {
	withBudget := testCampaign(domain.NeedTypeMedical, validBudget())
	withScore, _ := scoreFraud(extractContent(withBudget), withBudget)

	noBudget := testCampaign(domain.NeedTypeMedical, nil)
	noScore, _ := scoreFraud(extractContent(noBudget), noBudget)

	assert.Greater(t, noScore, withScore)
}

func TestFraudShortStoryPenalty(t *testing.T) {
	vague := testCampaign(domain.NeedTypeOther, validBudget())
	vague.Story = "need money"
	vagueScore, _ := scoreFraud(extractContent(vague), vague)

	detailed := testCampaign(domain.NeedTypeOther, validBudget())
	detailedScore, _ := scoreFraud(extractContent(detailed), detailed)

	assert.Greater(t, vagueScore, detailedScore)
}

func TestFraudRoundNumberBudget(t *testing.T) {
	round := testCampaign(domain.NeedTypeOther, []domain.BudgetItem{
		{Item: "a", Amount: 500},
		{Item: "b", Amount: 1000},
		{Item: "c", Amount: 300},
	})
	roundScore, _ := scoreFraud(extractContent(round), round)

	organic := testCampaign(domain.NeedTypeOther, []domain.BudgetItem{
		{Item: "a", Amount: 512.30},
		{Item: "b", Amount: 1043},
		{Item: "c", Amount: 317.85},
	})
	organicScore, _ := scoreFraud(extractContent(organic), organic)

	assert.Greater(t, roundScore, organicScore)

	// two round items are not enough to conclude fabrication
	twoItems := testCampaign(domain.NeedTypeOther, []domain.BudgetItem{
		{Item: "a", Amount: 500},
		{Item: "b", Amount: 1000},
	})
	twoScore, _ := scoreFraud(extractContent(twoItems), twoItems)
	assert.Equal(t, organicScore, twoScore)
}

func TestFraudKeywords(t *testing.T) {
	c := testCampaign(domain.NeedTypeOther, validBudget())
	c.Story = "Guaranteed return on your donation, wire transfer only, act now! This opportunity truly will not wait for anyone."

	score, matched := scoreFraud(extractContent(c), c)
	assert.Greater(t, score, 0.0)
	assert.Contains(t, matched, "guaranteed return")
	assert.Contains(t, matched, "wire transfer only")
	assert.Contains(t, matched, "act now")
}

func TestNeedValidationMedical(t *testing.T) {
	// neutral title/description so only the story drives the outcome
	mkCampaign := func(story string) *domain.Campaign {
		return &domain.Campaign{
			ID:       "c-1",
			Title:    "Help my family",
			Story:    story,
			NeedType: domain.NeedTypeMedical,
		}
	}

	legit := mkCampaign("My mother is in the hospital awaiting surgery after her diagnosis was confirmed.")
	legitScore := scoreNeedValidation(extractContent(legit), legit)

	vague := mkCampaign("She is very sick and we are asking kindly for help from anyone who can give.")
	vagueScore := scoreNeedValidation(extractContent(vague), vague)

	assert.Greater(t, legitScore, vagueScore)

	scam := mkCampaign("Fund this miracle cure that doctors hate, a secret remedy passed down for generations.")
	scamScore := scoreNeedValidation(extractContent(scam), scam)
	assert.Less(t, scamScore, vagueScore)
}

func TestNeedValidationEducation(t *testing.T) {
	legit := testCampaign(domain.NeedTypeEducation, nil)
	legit.Story = "I was accepted to university but cannot afford the tuition for next semester."
	legitScore := scoreNeedValidation(extractContent(legit), legit)
	assert.Equal(t, 100.0, legitScore)

	vague := testCampaign(domain.NeedTypeEducation, nil)
	vague.Story = "I want to learn things and become a better person, please support my journey."
	vagueScore := scoreNeedValidation(extractContent(vague), vague)
	assert.Less(t, vagueScore, legitScore)
}

func TestNeedValidationEmergency(t *testing.T) {
	vague := testCampaign(domain.NeedTypeEmergency, nil)
	vague.Story = "Fire. Need help."
	vagueScore := scoreNeedValidation(extractContent(vague), vague)

	detailed := testCampaign(domain.NeedTypeEmergency, nil)
	detailed.Story = "A fire destroyed our family home on Tuesday night. We escaped safely but lost everything, and we need temporary housing while the insurance claim is processed over the coming months."
	detailedScore := scoreNeedValidation(extractContent(detailed), detailed)

	assert.Greater(t, detailedScore, vagueScore)
}

func TestTrustCategoriesCountOnce(t *testing.T) {
	single := testCampaign(domain.NeedTypeCommunity, nil)
	single.Story = "We will publish every receipt."
	singleScore, singleCats := scoreTrust(extractContent(single), single)

	repeated := testCampaign(domain.NeedTypeCommunity, nil)
	repeated.Story = "Receipts receipts receipts, itemized and transparent with full documentation."
	repeatedScore, _ := scoreTrust(extractContent(repeated), repeated)

	// repetition inside one category earns nothing extra
	assert.Equal(t, singleScore, repeatedScore)
	assert.Contains(t, singleCats, "transparency")

	multi := testCampaign(domain.NeedTypeCommunity, nil)
	multi.Story = "Our church is collecting receipts from local volunteers."
	multiScore, multiCats := scoreTrust(extractContent(multi), multi)
	assert.Greater(t, multiScore, singleScore)
	assert.Len(t, multiCats, 3)
}

func TestTrustBaseline(t *testing.T) {
	c := testCampaign(domain.NeedTypeOther, nil)
	c.Story = "Nothing signal-worthy in here at all, just plain prose about circumstances."
	score, cats := scoreTrust(extractContent(c), c)
	assert.Equal(t, 50.0, score)
	assert.Empty(t, cats)
}

func TestComposeOverallFormula(t *testing.T) {
	cfg := config.DefaultModeration()
	scores := domain.ModerationScores{
		Luxury:         20,
		Inappropriate:  0,
		Fraud:          10,
		NeedValidation: 80,
		Trust:          70,
	}

	// 50 - 0.25*20 - 0.35*0 - 0.30*10 + 0.20*80 + 0.20*70 = 72
	overall := composeOverall(cfg, scores)
	assert.InDelta(t, 72.0, overall, 1e-9)

	decision, _, _ := decide(cfg, overall)
	assert.Equal(t, domain.DecisionApproved, decision)
}

func TestComposeOverallClamping(t *testing.T) {
	cfg := config.DefaultModeration()

	worst := domain.ModerationScores{Luxury: 100, Inappropriate: 100, Fraud: 100}
	assert.Equal(t, 0.0, composeOverall(cfg, worst))

	best := domain.ModerationScores{NeedValidation: 100, Trust: 100}
	// 50 + 20 + 20 = 90, no clamping needed but stays in range
	assert.Equal(t, 90.0, composeOverall(cfg, best))
}

func TestDecisionBands(t *testing.T) {
	cfg := config.DefaultModeration()

	tests := []struct {
		overall  float64
		expected string
	}{
		{100, domain.DecisionApproved},
		{70, domain.DecisionApproved}, // boundary belongs to the higher band
		{69.99, domain.DecisionReview},
		{40, domain.DecisionReview}, // boundary belongs to the higher band
		{39.99, domain.DecisionRejected},
		{0, domain.DecisionRejected},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("overall=%.2f", tt.overall), func(t *testing.T) {
			decision, flags, recommendations := decide(cfg, tt.overall)
			assert.Equal(t, tt.expected, decision)
			require.NotNil(t, flags)
			require.NotEmpty(t, recommendations)

			switch decision {
			case domain.DecisionApproved:
				assert.Empty(t, flags)
			case domain.DecisionReview:
				assert.Contains(t, flags, domain.FlagManualReviewRequired)
			case domain.DecisionRejected:
				assert.Contains(t, flags, domain.FlagHighRisk)
			}
		})
	}
}

func TestRecommendedChanges(t *testing.T) {
	changes := recommendedChanges(domain.ModerationScores{
		Luxury:         60,
		Inappropriate:  20,
		Fraud:          45,
		NeedValidation: 80,
		Trust:          30,
	})
	assert.Len(t, changes, 4)

	clean := recommendedChanges(domain.ModerationScores{
		Luxury:         0,
		Inappropriate:  0,
		Fraud:          0,
		NeedValidation: 100,
		Trust:          80,
	})
	// the reviewer asked for changes, so there is always at least one
	assert.Len(t, clean, 1)
}

func TestStatusForDecision(t *testing.T) {
	status, err := statusForDecision(domain.DecisionApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusActive, status)

	status, err = statusForDecision(domain.DecisionReview)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusUnderReview, status)

	status, err = statusForDecision(domain.DecisionRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusRejected, status)

	_, err = statusForDecision(domain.DecisionError)
	assert.Error(t, err)
}
