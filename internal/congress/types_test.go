package congress

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"civiscore/internal/models"
)

func TestSubjectListNormalizesMixedShapes(t *testing.T) {
	var s SubjectList
	raw := `["Health", {"name": "Taxation"}, {"name": ""}, 42, " Climate ", null]`
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	require.Equal(t, SubjectList{"Health", "Taxation", "Climate"}, s)
}

func TestSubjectListAcceptsWrapperObject(t *testing.T) {
	var s SubjectList
	raw := `{"legislativeSubjects": ["Health", {"name": "Defense"}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	require.Equal(t, SubjectList{"Health", "Defense"}, s)
}

func TestCurrentTermPicksOpenEnded(t *testing.T) {
	end := 2021
	m := Member{}
	m.Terms.Item = []MemberTerm{
		{Chamber: "House of Representatives", StartYear: 2017, EndYear: &end},
		{Chamber: "Senate", StartYear: 2021},
	}
	term, ok := m.CurrentTerm()
	require.True(t, ok)
	require.Equal(t, "Senate", term.Chamber)
	require.Equal(t, 2017, m.FirstTermStart())

	m.Terms.Item = []MemberTerm{{Chamber: "Senate", StartYear: 2015, EndYear: &end}}
	_, ok = m.CurrentTerm()
	require.False(t, ok)
}

func TestChamberMapping(t *testing.T) {
	require.Equal(t, models.ChamberLower, ChamberOf("House of Representatives"))
	require.Equal(t, models.ChamberUpper, ChamberOf("Senate"))
	require.Equal(t, models.Chamber(""), ChamberOf("Parliament"))
	require.Equal(t, "senate", ChamberParam(models.ChamberUpper))
	require.Equal(t, "house", ChamberParam(models.ChamberLower))
}

func TestVotePositionMapping(t *testing.T) {
	require.Equal(t, models.VoteYea, MemberVote{VoteCast: "Aye"}.Position())
	require.Equal(t, models.VoteNay, MemberVote{VoteCast: "No"}.Position())
	require.Equal(t, models.VotePresent, MemberVote{VoteCast: "Present"}.Position())
	require.Equal(t, models.VoteNotVoting, MemberVote{VoteCast: "Absent"}.Position())
}

func TestBillRef(t *testing.T) {
	v := VoteSummary{Congress: 118, LegislationType: "HR", LegislationNumber: "1234"}
	require.Equal(t, "118-hr-1234", v.BillRef())
	require.Empty(t, VoteSummary{Congress: 118}.BillRef())
}
