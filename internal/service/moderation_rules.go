package service

import "regexp"

// Keyword catalogues behind the dimension scorers. Package-level, compiled
// once, never mutated at runtime. Tuning a rule means editing data here,
// not the scoring code in moderation_engine.go.

// keywordGroup is one named catalogue of patterns sharing a point value
type keywordGroup struct {
	name     string
	points   float64
	patterns []*regexp.Regexp
}

func compileWords(words ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`\b` + w + `\b`)
	}
	return patterns
}

// Per-match point values
const (
	luxuryPoints        = 15
	inappropriatePoints = 20
	fraudPoints         = 25
)

// Budget and goal red-flag thresholds (luxury dimension)
const (
	budgetItemThreshold     = 1000.0 // single line item, non-medical campaigns
	budgetItemHardThreshold = 5000.0 // single line item, any need type
	goalAmountTier1         = 50000.0
	goalAmountTier2         = 100000.0

	budgetItemPenalty     = 10
	budgetItemHardPenalty = 20
	goalTier1Penalty      = 10
	goalTier2Penalty      = 20
)

// Structural fraud penalties
const (
	minStoryLength     = 50 // shorter stories are too vague to trust
	shortStoryPenalty  = 20
	emptyBudgetPenalty = 15
	roundBudgetPenalty = 10
)

// Need-validation penalties
const (
	missingMedicalPenalty      = 30
	suspiciousMedicalPenalty   = 40
	missingEducationPenalty    = 25
	suspiciousEducationPenalty = 35
	vagueEmergencyPenalty      = 30
	minEmergencyStoryLength    = 100
)

// Trust scoring
const (
	trustBaseline           = 50
	transparencyTrustPoints = 15
	communityTrustPoints    = 10
	localTrustPoints        = 10
)

// luxuryGroups flags lavish-lifestyle content in campaign text
var luxuryGroups = []keywordGroup{
	{
		name:   "luxury_brands",
		points: luxuryPoints,
		patterns: compileWords(
			"mercedes", "bmw", "ferrari", "lamborghini", "porsche", "bentley",
			"maserati", "rolex", "cartier", "louis vuitton", "gucci", "prada",
			"chanel", "hermes", "tiffany",
		),
	},
	{
		name:   "high_value_items",
		points: luxuryPoints,
		patterns: compileWords(
			"sports car", "yacht", "jet ski", "private jet", "diamond",
			"gold watch", "jewelry", "designer bag", "designer clothes",
			"gaming pc", "home theater",
		),
	},
	{
		name:   "luxury_travel",
		points: luxuryPoints,
		patterns: compileWords(
			"vacation", "cruise", "resort", "first class", "five star",
			"honeymoon", "world tour",
		),
	},
	{
		name:   "lavish_qualifiers",
		points: luxuryPoints,
		patterns: compileWords(
			"brand new", "top of the line", "premium", "high end", "deluxe",
			"state of the art", "latest model",
		),
	},
}

// inappropriateGroups flags banned content categories. Weighted heavier
// than luxury since a single hit is disqualifying territory.
var inappropriateGroups = []keywordGroup{
	{
		name:   "scam_terminology",
		points: inappropriatePoints,
		patterns: compileWords(
			"ponzi", "pyramid scheme", "mlm", "multi level marketing",
			"advance fee", "money laundering",
		),
	},
	{
		name:   "controlled_substances",
		points: inappropriatePoints,
		patterns: compileWords(
			"cocaine", "heroin", "methamphetamine", "illegal drugs",
			"drug dealing", "narcotics",
		),
	},
	{
		name:   "weapons",
		points: inappropriatePoints,
		patterns: compileWords(
			"firearms", "ammunition", "explosives", "assault rifle",
			"weapons cache",
		),
	},
	{
		name:   "hate_content",
		points: inappropriatePoints,
		patterns: compileWords(
			"ethnic cleansing", "racial superiority", "hate group",
			"white power",
		),
	},
	{
		name:   "adult_content",
		points: inappropriatePoints,
		patterns: compileWords(
			"pornography", "escort service", "adult entertainment",
			"strip club",
		),
	},
}

// suspiciousFinancialGroups flags fraud-pattern phrasing
var suspiciousFinancialGroups = []keywordGroup{
	{
		name:   "get_rich_quick",
		points: fraudPoints,
		patterns: compileWords(
			"get rich", "double your money", "guaranteed return",
			"guaranteed profit", "risk free investment", "easy money",
			"passive income scheme",
		),
	},
	{
		name:   "payment_red_flags",
		points: fraudPoints,
		patterns: compileWords(
			"wire transfer only", "western union", "moneygram",
			"untraceable", "cash only", "offshore account",
		),
	},
	{
		name:   "speculative_solicitation",
		points: fraudPoints,
		patterns: compileWords(
			"bitcoin", "cryptocurrency", "crypto wallet", "forex",
			"binary options", "day trading",
		),
	},
	{
		name:   "urgency_pressure",
		points: fraudPoints,
		patterns: compileWords(
			"act now", "last chance", "send immediately", "limited time only",
			"before it's too late", "right now or never",
		),
	},
}

// medicalLegitimatePatterns - at least one expected for medical campaigns
var medicalLegitimatePatterns = compileWords(
	"hospital", "treatment", "diagnosis", "surgery", "doctor", "physician",
	"medication", "therapy", "clinic", "oncology", "chemotherapy",
	"prescription", "specialist", "icu", "medical bills",
)

// medicalSuspiciousPatterns - miracle-cure style language
var medicalSuspiciousPatterns = compileWords(
	"miracle cure", "secret remedy", "doctors hate", "cure anything",
	"ancient healing secret", "guaranteed cure",
)

// educationLegitimatePatterns - at least one expected for education campaigns
var educationLegitimatePatterns = compileWords(
	"tuition", "school", "university", "college", "textbook", "semester",
	"degree", "scholarship", "classroom", "enrollment", "student loan",
)

// educationSuspiciousPatterns - diploma-mill style language
var educationSuspiciousPatterns = compileWords(
	"guaranteed job", "instant diploma", "buy a degree", "no studying required",
	"accredited overnight",
)

// trustCategories are positive signals. Each category counts once no
// matter how often it appears, so repetition can't farm trust points.
var trustCategories = []keywordGroup{
	{
		name:   "transparency",
		points: transparencyTrustPoints,
		patterns: compileWords(
			"receipt", "receipts", "itemized", "breakdown", "transparent",
			"transparency", "accountability", "documentation", "invoice",
			"progress updates",
		),
	},
	{
		name:   "faith_community",
		points: communityTrustPoints,
		patterns: compileWords(
			"church", "mosque", "temple", "synagogue", "congregation",
			"pastor", "parish", "faith", "community center",
		),
	},
	{
		name:   "local_support",
		points: localTrustPoints,
		patterns: compileWords(
			"local", "neighborhood", "neighbors", "hometown", "volunteers",
			"community support", "fundraiser event",
		),
	},
}
