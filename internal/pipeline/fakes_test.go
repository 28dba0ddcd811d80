package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"civiscore/internal/models"
)

// fakeFetcher serves canned responses keyed by "path|chamber|offset" for
// pages and by path for record fetches.
type fakeFetcher struct {
	pages   map[string]any
	details map[string]any
	errs    map[string]error
	calls   []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages:   map[string]any{},
		details: map[string]any{},
		errs:    map[string]error{},
	}
}

func pageKey(path, chamber, offset string) string {
	return path + "|" + chamber + "|" + offset
}

func (f *fakeFetcher) FetchPage(_ context.Context, path string, q url.Values, out any) error {
	key := pageKey(path, q.Get("chamber"), q.Get("offset"))
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return err
	}
	v, ok := f.pages[key]
	if !ok {
		return fmt.Errorf("unexpected page fetch %s", key)
	}
	return roundTrip(v, out)
}

func (f *fakeFetcher) Fetch(_ context.Context, path string, _ url.Values, out any) error {
	f.calls = append(f.calls, path)
	if err, ok := f.errs[path]; ok {
		return err
	}
	v, ok := f.details[path]
	if !ok {
		return fmt.Errorf("unexpected fetch %s", path)
	}
	return roundTrip(v, out)
}

func roundTrip(v, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// memStores is an in-memory implementation of every store interface the
// pipeline and the scoring engine need.
type memStores struct {
	legislators map[string]models.Legislator
	topics      []models.Topic
	bills       map[string]models.Bill
	billTopics  map[string][]string
	events      map[string]models.VoteEvent
	records     map[string]models.VotingRecord

	topicScores     map[string]models.TopicScore
	aggregateScores map[string]models.AggregateScore

	insertLegislatorErr error
	upsertRecordErr     error
}

func newMemStores() *memStores {
	return &memStores{
		legislators:     map[string]models.Legislator{},
		bills:           map[string]models.Bill{},
		billTopics:      map[string][]string{},
		events:          map[string]models.VoteEvent{},
		records:         map[string]models.VotingRecord{},
		topicScores:     map[string]models.TopicScore{},
		aggregateScores: map[string]models.AggregateScore{},
	}
}

func (m *memStores) stores() Stores {
	return Stores{Legislators: m, Topics: m, Bills: m, Votes: m}
}

func (m *memStores) InsertLegislator(_ context.Context, l models.Legislator) (bool, error) {
	if m.insertLegislatorErr != nil {
		return false, m.insertLegislatorErr
	}
	if _, ok := m.legislators[l.ExternalID]; ok {
		return false, nil
	}
	m.legislators[l.ExternalID] = l
	return true, nil
}

func (m *memStores) ListLegislators(context.Context) ([]models.Legislator, error) {
	out := make([]models.Legislator, 0, len(m.legislators))
	for _, l := range m.legislators {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out, nil
}

func (m *memStores) EnsureTopics(_ context.Context, topics []models.Topic) error {
	for _, t := range topics {
		found := false
		for _, have := range m.topics {
			if have.ID == t.ID {
				found = true
				break
			}
		}
		if !found {
			m.topics = append(m.topics, t)
		}
	}
	return nil
}

func (m *memStores) ListTopics(context.Context) ([]models.Topic, error) {
	return m.topics, nil
}

func (m *memStores) GetBillByExternalID(_ context.Context, id string) (*models.Bill, error) {
	b, ok := m.bills[id]
	if !ok {
		return nil, nil
	}
	b.TopicIDs = m.billTopics[id]
	return &b, nil
}

func (m *memStores) InsertBill(_ context.Context, b models.Bill) (bool, error) {
	if _, ok := m.bills[b.ExternalID]; ok {
		return false, nil
	}
	m.bills[b.ExternalID] = b
	return true, nil
}

func (m *memStores) SetBillTopics(_ context.Context, billID string, topicIDs []string) error {
	m.billTopics[billID] = topicIDs
	return nil
}

func (m *memStores) UpsertVoteEvent(_ context.Context, e models.VoteEvent) error {
	key := fmt.Sprintf("%s/%d/%d/%d", e.Chamber, e.CongressNumber, e.Session, e.RollCallNumber)
	m.events[key] = e
	return nil
}

func (m *memStores) UpsertVotingRecord(_ context.Context, r models.VotingRecord) error {
	if m.upsertRecordErr != nil {
		return m.upsertRecordErr
	}
	m.records[r.LegislatorID+"/"+r.BillID] = r
	return nil
}

func (m *memStores) ListVoteFacts(context.Context) ([]models.VoteFact, error) {
	out := make([]models.VoteFact, 0)
	for _, r := range m.records {
		b, ok := m.bills[r.BillID]
		if !ok {
			continue
		}
		for _, topicID := range m.billTopics[r.BillID] {
			out = append(out, models.VoteFact{
				LegislatorID: r.LegislatorID,
				TopicID:      topicID,
				BillID:       r.BillID,
				Polarity:     b.PolarityScore,
				Vote:         r.Vote,
			})
		}
	}
	return out, nil
}

func (m *memStores) UpsertTopicScore(_ context.Context, s models.TopicScore) error {
	m.topicScores[s.LegislatorID+"/"+s.TopicID] = s
	return nil
}

func (m *memStores) UpsertAggregateScore(_ context.Context, s models.AggregateScore) error {
	m.aggregateScores[s.LegislatorID] = s
	return nil
}
