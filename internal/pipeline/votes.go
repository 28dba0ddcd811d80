package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"civiscore/internal/congress"
	"civiscore/internal/models"
)

// SyncVotes pages through the vote-event listing per chamber and records each
// event plus, when the event resolves to a stored bill, every member's
// individual vote. Votes without a resolvable bill still persist as events but
// produce no voting records; an unresolved legislator skips just that one
// member vote.
func (p *Pipeline) SyncVotes(ctx context.Context) Result {
	start := time.Now()
	res := newResult()

	known, err := p.knownLegislators(ctx)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("votes: %v", err))
		res.DurationMS = time.Since(start).Milliseconds()
		return res
	}

	events, records := 0, 0
	for _, chamber := range models.Chambers() {
		e, r, errs := p.syncChamberVotes(ctx, chamber, known)
		events += e
		records += r
		res.Errors = append(res.Errors, errs...)
	}
	res.Counts["vote_events"] = events
	res.Counts["voting_records"] = records
	res.Success = len(res.Errors) == 0 || events > 0
	res.DurationMS = time.Since(start).Milliseconds()
	p.log.Info("vote sync finished", "events", events, "records", records, "errors", len(res.Errors))
	return res
}

func (p *Pipeline) knownLegislators(ctx context.Context) (map[string]struct{}, error) {
	legislators, err := p.stores.Legislators.ListLegislators(ctx)
	if err != nil {
		return nil, fmt.Errorf("load legislators: %w", err)
	}
	known := make(map[string]struct{}, len(legislators))
	for _, l := range legislators {
		known[l.ExternalID] = struct{}{}
	}
	return known, nil
}

func (p *Pipeline) syncChamberVotes(ctx context.Context, chamber models.Chamber, known map[string]struct{}) (int, int, []string) {
	events, records := 0, 0
	errs := []string{}
	pageSize := p.opts.pageSize()
	processed := 0
	offset := 0

pages:
	for {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(pageSize))
		q.Set("offset", strconv.Itoa(offset))
		var page congress.VoteListResponse
		path := fmt.Sprintf("vote/%d/%s", p.opts.Congress, congress.ChamberParam(chamber))
		if err := p.fetcher.FetchPage(ctx, path, q, &page); err != nil {
			errs = append(errs, fmt.Sprintf("votes %s offset=%d: %v", chamber, offset, err))
			break
		}
		for _, v := range page.Votes {
			if p.opts.VoteLimit > 0 && processed >= p.opts.VoteLimit {
				break pages
			}
			processed++
			n, verrs := p.ingestVote(ctx, chamber, v, known)
			if n >= 0 {
				events++
				records += n
			}
			errs = append(errs, verrs...)
		}
		if len(page.Votes) == 0 || len(page.Votes) < pageSize {
			break
		}
		offset += pageSize
	}
	return events, records, errs
}

// ingestVote returns the number of voting records written, or -1 when the
// event itself failed to persist.
func (p *Pipeline) ingestVote(ctx context.Context, chamber models.Chamber, v congress.VoteSummary, known map[string]struct{}) (int, []string) {
	errs := []string{}
	eventKey := fmt.Sprintf("%s/%d-%d-%d", chamber, v.Congress, v.SessionNumber, v.RollCallNumber)
	billID := v.BillRef()

	event := models.VoteEvent{
		Chamber:        chamber,
		CongressNumber: v.Congress,
		Session:        v.SessionNumber,
		RollCallNumber: v.RollCallNumber,
		BillExternalID: billID,
		VoteDate:       v.StartDate,
		YeaTotal:       v.YeaCount,
		NayTotal:       v.NayCount,
		PresentTotal:   v.PresentCount,
		NotVotingTotal: v.NotVotingCount,
	}
	if err := p.stores.Votes.UpsertVoteEvent(ctx, event); err != nil {
		return -1, []string{fmt.Sprintf("vote %s: %v", eventKey, err)}
	}
	if billID == "" {
		return 0, errs
	}
	bill, err := p.stores.Bills.GetBillByExternalID(ctx, billID)
	if err != nil {
		errs = append(errs, fmt.Sprintf("vote %s bill %s: %v", eventKey, billID, err))
		return 0, errs
	}
	if bill == nil {
		// Referenced bill never made it into the store; the event stands but
		// no member records follow.
		p.log.Debug("vote references unknown bill", "vote", eventKey, "bill", billID)
		return 0, errs
	}

	path := fmt.Sprintf("vote/%d/%s/%d/%d/members", v.Congress, congress.ChamberParam(chamber), v.SessionNumber, v.RollCallNumber)
	var detail congress.VoteMembersResponse
	if err := p.fetcher.Fetch(ctx, path, nil, &detail); err != nil {
		errs = append(errs, fmt.Sprintf("vote %s members: %v", eventKey, err))
		return 0, errs
	}

	records := 0
	for _, mv := range detail.MemberVotes {
		if _, ok := known[mv.BioguideID]; !ok {
			p.log.Debug("vote by unknown legislator", "vote", eventKey, "member", mv.BioguideID)
			continue
		}
		rec := models.VotingRecord{
			LegislatorID: mv.BioguideID,
			BillID:       billID,
			Vote:         mv.Position(),
			VoteDate:     v.StartDate,
		}
		if err := p.stores.Votes.UpsertVotingRecord(ctx, rec); err != nil {
			errs = append(errs, fmt.Sprintf("vote %s member %s: %v", eventKey, mv.BioguideID, err))
			continue
		}
		records++
	}
	return records, errs
}
