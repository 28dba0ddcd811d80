package classify

import "civiscore/internal/models"

// DefaultConfig is the production keyword configuration. Positive polarity is
// the progressive pole, negative the conservative pole.
func DefaultConfig() Config {
	return Config{
		ProgressiveKeywords: []string{
			"climate change",
			"renewable energy",
			"clean energy",
			"medicare for all",
			"public option",
			"universal healthcare",
			"minimum wage",
			"collective bargaining",
			"voting rights",
			"civil rights",
			"reproductive rights",
			"gun safety",
			"background checks",
			"affordable housing",
			"student debt",
			"paid leave",
			"environmental protection",
			"emissions reduction",
			"pathway to citizenship",
			"equal pay",
		},
		ConservativeKeywords: []string{
			"tax cut",
			"tax relief",
			"deregulation",
			"border security",
			"border wall",
			"second amendment",
			"right to bear arms",
			"school choice",
			"balanced budget",
			"government overreach",
			"religious liberty",
			"energy independence",
			"domestic drilling",
			"oil and gas",
			"law and order",
			"illegal immigration",
			"national defense",
			"free market",
			"repeal",
			"states' rights",
		},
		Topics: DefaultTopics(),
	}
}

func DefaultTopics() []models.Topic {
	return []models.Topic{
		{ID: "healthcare", Name: "Healthcare", Keywords: []string{"health", "medicare", "medicaid", "insurance", "hospital", "prescription"}},
		{ID: "economy", Name: "Economy", Keywords: []string{"economy", "jobs", "employment", "wage", "inflation", "small business"}},
		{ID: "environment", Name: "Environment", Keywords: []string{"environment", "climate", "emissions", "pollution", "conservation", "wildlife"}},
		{ID: "immigration", Name: "Immigration", Keywords: []string{"immigration", "immigrant", "border", "visa", "asylum", "citizenship"}},
		{ID: "education", Name: "Education", Keywords: []string{"education", "school", "student", "teacher", "university", "tuition"}},
		{ID: "defense", Name: "Defense", Keywords: []string{"defense", "military", "armed forces", "veteran", "national security"}},
		{ID: "civil-rights", Name: "Civil Rights", Keywords: []string{"civil rights", "discrimination", "voting rights", "equality", "disability"}},
		{ID: "foreign-policy", Name: "Foreign Policy", Keywords: []string{"foreign", "treaty", "sanctions", "diplomacy", "international"}},
		{ID: "guns", Name: "Guns", Keywords: []string{"firearm", "gun", "second amendment", "ammunition"}},
		{ID: "taxation", Name: "Taxation", Keywords: []string{"tax", "revenue", "irs", "deduction"}},
	}
}
