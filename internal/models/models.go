package models

import "time"

type Chamber string

const (
	ChamberUpper Chamber = "upper"
	ChamberLower Chamber = "lower"
)

func Chambers() []Chamber {
	return []Chamber{ChamberUpper, ChamberLower}
}

type Party string

const (
	PartyDemocrat    Party = "D"
	PartyRepublican  Party = "R"
	PartyIndependent Party = "I"
)

type VotePosition string

const (
	VoteYea       VotePosition = "Yea"
	VoteNay       VotePosition = "Nay"
	VotePresent   VotePosition = "Present"
	VoteNotVoting VotePosition = "NotVoting"
)

type Legislator struct {
	ExternalID   string    `json:"external_id"`
	Name         string    `json:"name"`
	State        string    `json:"state"`
	Chamber      Chamber   `json:"chamber"`
	Party        Party     `json:"party"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	RoleTitle    string    `json:"role_title,omitempty"`
	ServingSince int       `json:"serving_since,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Bill struct {
	ExternalID     string    `json:"external_id"`
	CongressNumber int       `json:"congress_number"`
	BillType       string    `json:"bill_type"`
	BillNumber     string    `json:"bill_number"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary,omitempty"`
	IntroducedDate string    `json:"introduced_date,omitempty"`
	Status         string    `json:"status,omitempty"`
	PolarityScore  *float64  `json:"polarity_score,omitempty"`
	TopicIDs       []string  `json:"topic_ids,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type Topic struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

type VoteEvent struct {
	Chamber        Chamber   `json:"chamber"`
	CongressNumber int       `json:"congress_number"`
	Session        int       `json:"session"`
	RollCallNumber int       `json:"roll_call_number"`
	BillExternalID string    `json:"bill_external_id,omitempty"`
	VoteDate       string    `json:"vote_date,omitempty"`
	YeaTotal       int       `json:"yea_total"`
	NayTotal       int       `json:"nay_total"`
	PresentTotal   int       `json:"present_total"`
	NotVotingTotal int       `json:"not_voting_total"`
	CreatedAt      time.Time `json:"created_at"`
}

type VotingRecord struct {
	LegislatorID string       `json:"legislator_id"`
	BillID       string       `json:"bill_id"`
	Vote         VotePosition `json:"vote"`
	VoteDate     string       `json:"vote_date,omitempty"`
}

type TopicScore struct {
	LegislatorID string  `json:"legislator_id"`
	TopicID      string  `json:"topic_id"`
	Score        float64 `json:"score"`
	VoteCount    int     `json:"vote_count"`
	Confidence   float64 `json:"confidence"`
}

type AggregateScore struct {
	LegislatorID string  `json:"legislator_id"`
	OverallScore float64 `json:"overall_score"`
	Philosophy   string  `json:"philosophy"`
}

// VoteFact is one scoring-relevant row: a legislator's vote on a bill joined
// with the bill's polarity and one of its topic tags. A bill tagged with
// several topics yields one fact per topic.
type VoteFact struct {
	LegislatorID string
	TopicID      string
	BillID       string
	Polarity     *float64
	Vote         VotePosition
}
