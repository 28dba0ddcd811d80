package congress

import (
	"encoding/json"
	"fmt"
	"strings"

	"civiscore/internal/models"
)

type Pagination struct {
	Count int `json:"count"`
}

type MemberListResponse struct {
	Members    []Member   `json:"members"`
	Pagination Pagination `json:"pagination"`
}

type Member struct {
	BioguideID string `json:"bioguideId"`
	Name       string `json:"name"`
	State      string `json:"state"`
	PartyName  string `json:"partyName"`
	Depiction  struct {
		ImageURL string `json:"imageUrl"`
	} `json:"depiction"`
	Terms struct {
		Item []MemberTerm `json:"item"`
	} `json:"terms"`
}

type MemberTerm struct {
	Chamber   string `json:"chamber"`
	StartYear int    `json:"startYear"`
	EndYear   *int   `json:"endYear"`
}

// CurrentTerm returns the member's open-ended term, if any. The upstream marks
// the active term by omitting endYear.
func (m Member) CurrentTerm() (MemberTerm, bool) {
	for i := len(m.Terms.Item) - 1; i >= 0; i-- {
		if m.Terms.Item[i].EndYear == nil {
			return m.Terms.Item[i], true
		}
	}
	return MemberTerm{}, false
}

// FirstTermStart is the earliest startYear across all terms, 0 when unknown.
func (m Member) FirstTermStart() int {
	first := 0
	for _, t := range m.Terms.Item {
		if t.StartYear > 0 && (first == 0 || t.StartYear < first) {
			first = t.StartYear
		}
	}
	return first
}

// ChamberOf maps the upstream chamber label onto the domain enum. Unknown
// labels map to "", which callers treat as an invalid record.
func ChamberOf(label string) models.Chamber {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "house of representatives", "house":
		return models.ChamberLower
	case "senate":
		return models.ChamberUpper
	default:
		return ""
	}
}

// ChamberParam is the query value the upstream expects for a domain chamber.
func ChamberParam(c models.Chamber) string {
	if c == models.ChamberUpper {
		return "senate"
	}
	return "house"
}

type BillListResponse struct {
	Bills      []BillSummary `json:"bills"`
	Pagination Pagination    `json:"pagination"`
}

type BillSummary struct {
	Congress     int    `json:"congress"`
	Type         string `json:"type"`
	Number       string `json:"number"`
	Title        string `json:"title"`
	LatestAction struct {
		ActionDate string `json:"actionDate"`
		Text       string `json:"text"`
	} `json:"latestAction"`
}

type BillDetailResponse struct {
	Bill BillDetail `json:"bill"`
}

type BillDetail struct {
	Congress       int    `json:"congress"`
	Type           string `json:"type"`
	Number         string `json:"number"`
	Title          string `json:"title"`
	IntroducedDate string `json:"introducedDate"`
	Summary        string `json:"summary"`
	PolicyArea     struct {
		Name string `json:"name"`
	} `json:"policyArea"`
	Subjects     SubjectList `json:"subjects"`
	LatestAction struct {
		ActionDate string `json:"actionDate"`
		Text       string `json:"text"`
	} `json:"latestAction"`
}

// SubjectList normalizes the upstream subjects field, which mixes plain
// strings with {"name": ...} objects (and occasionally junk), into a flat
// string slice at the client boundary so consumers never see the raw shapes.
type SubjectList []string

func (s *SubjectList) UnmarshalJSON(data []byte) error {
	*s = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Tolerate a single wrapper object {"legislativeSubjects": [...]}.
		var wrapper struct {
			LegislativeSubjects []json.RawMessage `json:"legislativeSubjects"`
		}
		if err2 := json.Unmarshal(data, &wrapper); err2 != nil {
			return fmt.Errorf("decode subjects: %w", err)
		}
		raw = wrapper.LegislativeSubjects
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var str string
		if err := json.Unmarshal(r, &str); err == nil {
			if str = strings.TrimSpace(str); str != "" {
				out = append(out, str)
			}
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(r, &obj); err == nil {
			if name := strings.TrimSpace(obj.Name); name != "" {
				out = append(out, name)
			}
			continue
		}
		// Unknown element shape: dropped, not an error.
	}
	*s = out
	return nil
}

type VoteListResponse struct {
	Votes      []VoteSummary `json:"votes"`
	Pagination Pagination    `json:"pagination"`
}

type VoteSummary struct {
	Congress          int    `json:"congress"`
	SessionNumber     int    `json:"sessionNumber"`
	RollCallNumber    int    `json:"rollCallNumber"`
	LegislationType   string `json:"legislationType"`
	LegislationNumber string `json:"legislationNumber"`
	StartDate         string `json:"startDate"`
	Result            string `json:"result"`
	YeaCount          int    `json:"yeaCount"`
	NayCount          int    `json:"nayCount"`
	PresentCount      int    `json:"presentCount"`
	NotVotingCount    int    `json:"notVotingCount"`
}

// BillRef resolves the referenced bill's external id, or "" when the vote has
// no associated legislation.
func (v VoteSummary) BillRef() string {
	if strings.TrimSpace(v.LegislationType) == "" || strings.TrimSpace(v.LegislationNumber) == "" {
		return ""
	}
	return BillExternalID(v.Congress, v.LegislationType, v.LegislationNumber)
}

type VoteMembersResponse struct {
	MemberVotes []MemberVote `json:"memberVotes"`
}

type MemberVote struct {
	BioguideID string `json:"bioguideId"`
	VoteCast   string `json:"voteCast"`
}

// Position maps the upstream vote label onto the domain enum. Anything
// unrecognized counts as not voting.
func (m MemberVote) Position() models.VotePosition {
	switch strings.ToLower(strings.TrimSpace(m.VoteCast)) {
	case "yea", "aye", "yes":
		return models.VoteYea
	case "nay", "no":
		return models.VoteNay
	case "present":
		return models.VotePresent
	default:
		return models.VoteNotVoting
	}
}

// BillExternalID builds the stable congress+type+number composite key.
func BillExternalID(congress int, billType, number string) string {
	return fmt.Sprintf("%d-%s-%s", congress, strings.ToLower(strings.TrimSpace(billType)), strings.TrimSpace(number))
}
