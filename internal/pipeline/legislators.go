package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"civiscore/internal/congress"
	"civiscore/internal/models"
	"civiscore/internal/util"
)

// SyncLegislators pages through the member endpoint for each chamber and
// conditionally inserts every valid record. A success result only requires
// that something synced; per-record errors ride along in the error list.
func (p *Pipeline) SyncLegislators(ctx context.Context) Result {
	start := time.Now()
	res := newResult()
	synced := 0
	for _, chamber := range models.Chambers() {
		n, errs := p.syncChamberLegislators(ctx, chamber)
		synced += n
		res.Errors = append(res.Errors, errs...)
	}
	res.Counts["legislators"] = synced
	res.Success = len(res.Errors) == 0 || synced > 0
	res.DurationMS = time.Since(start).Milliseconds()
	p.log.Info("legislator sync finished", "synced", synced, "errors", len(res.Errors))
	return res
}

func (p *Pipeline) syncChamberLegislators(ctx context.Context, chamber models.Chamber) (int, []string) {
	synced := 0
	errs := []string{}
	pageSize := p.opts.pageSize()
	processed := 0
	offset := 0
	for {
		q := url.Values{}
		q.Set("chamber", congress.ChamberParam(chamber))
		q.Set("limit", strconv.Itoa(pageSize))
		q.Set("offset", strconv.Itoa(offset))
		var page congress.MemberListResponse
		if err := p.fetcher.FetchPage(ctx, fmt.Sprintf("member/congress/%d", p.opts.Congress), q, &page); err != nil {
			// A page-level failure ends the chamber: with offset paging there
			// is no way to know what the page held.
			errs = append(errs, fmt.Sprintf("legislators %s offset=%d: %v", chamber, offset, err))
			return synced, errs
		}
		for _, m := range page.Members {
			if p.opts.LegislatorLimit > 0 && processed >= p.opts.LegislatorLimit {
				return synced, errs
			}
			processed++
			l, err := legislatorFromMember(m, chamber)
			if err != nil {
				if errors.Is(err, errWrongChamber) {
					// Cross-chamber leakage from the upstream; filtered, not
					// an error.
					p.log.Debug("filtered cross-chamber member", "member", m.BioguideID, "chamber", chamber)
					continue
				}
				p.log.Warn("skipping member", "member", m.BioguideID, "reason", err)
				errs = append(errs, fmt.Sprintf("member %s: %v", m.BioguideID, err))
				continue
			}
			inserted, err := p.stores.Legislators.InsertLegislator(ctx, l)
			if err != nil {
				errs = append(errs, fmt.Sprintf("member %s: %v", m.BioguideID, err))
				continue
			}
			if !inserted {
				p.log.Debug("legislator already present", "member", m.BioguideID)
			}
			synced++
		}
		if len(page.Members) == 0 || len(page.Members) < pageSize {
			return synced, errs
		}
		offset += pageSize
	}
}

var errWrongChamber = errors.New("current term is in the other chamber")

func legislatorFromMember(m congress.Member, chamber models.Chamber) (models.Legislator, error) {
	if strings.TrimSpace(m.BioguideID) == "" {
		return models.Legislator{}, fmt.Errorf("%w: missing bioguide id", util.ErrValidation)
	}
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.State) == "" {
		return models.Legislator{}, fmt.Errorf("%w: missing name or state", util.ErrValidation)
	}
	term, ok := m.CurrentTerm()
	if !ok {
		return models.Legislator{}, fmt.Errorf("%w: no current term", util.ErrValidation)
	}
	termChamber := congress.ChamberOf(term.Chamber)
	if termChamber == "" {
		return models.Legislator{}, fmt.Errorf("%w: unknown chamber %q", util.ErrValidation, term.Chamber)
	}
	if termChamber != chamber {
		return models.Legislator{}, errWrongChamber
	}
	return models.Legislator{
		ExternalID:   m.BioguideID,
		Name:         m.Name,
		State:        m.State,
		Chamber:      chamber,
		Party:        NormalizeParty(m.PartyName),
		PhotoURL:     m.Depiction.ImageURL,
		RoleTitle:    roleTitleFor(chamber),
		ServingSince: m.FirstTermStart(),
	}, nil
}

// NormalizeParty folds the upstream party label into the closed {D, R, I}
// enum; anything not matching a democrat/republican substring is independent.
func NormalizeParty(label string) models.Party {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "democrat"):
		return models.PartyDemocrat
	case strings.Contains(l, "republican"):
		return models.PartyRepublican
	default:
		return models.PartyIndependent
	}
}

func roleTitleFor(chamber models.Chamber) string {
	if chamber == models.ChamberUpper {
		return "Senator"
	}
	return "Representative"
}
