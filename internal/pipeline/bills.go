package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"civiscore/internal/classify"
	"civiscore/internal/congress"
	"civiscore/internal/models"
)

// SyncBills pages through the bill listing and ingests each new bill: the
// listing lacks the fields scoring needs, so every new bill costs one detail
// fetch. A bill already stored is left exactly as first ingested; its polarity
// and topics are computed once and frozen, even if the upstream text changes
// later. Refreshing them would need an explicit re-ingestion path this
// pipeline deliberately does not have.
func (p *Pipeline) SyncBills(ctx context.Context) Result {
	start := time.Now()
	res := newResult()
	ingested := 0
	existing := 0
	errs := []string{}
	pageSize := p.opts.pageSize()
	processed := 0
	offset := 0

pages:
	for {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(pageSize))
		q.Set("offset", strconv.Itoa(offset))
		var page congress.BillListResponse
		if err := p.fetcher.FetchPage(ctx, fmt.Sprintf("bill/%d", p.opts.Congress), q, &page); err != nil {
			errs = append(errs, fmt.Sprintf("bills offset=%d: %v", offset, err))
			break
		}
		for _, s := range page.Bills {
			if p.opts.BillLimit > 0 && processed >= p.opts.BillLimit {
				break pages
			}
			processed++
			extID := congress.BillExternalID(s.Congress, s.Type, s.Number)
			stored, err := p.stores.Bills.GetBillByExternalID(ctx, extID)
			if err != nil {
				errs = append(errs, fmt.Sprintf("bill %s: %v", extID, err))
				continue
			}
			if stored != nil {
				existing++
				continue
			}
			if err := p.ingestBill(ctx, s, extID); err != nil {
				p.log.Warn("bill ingest failed", "bill", extID, "reason", err)
				errs = append(errs, fmt.Sprintf("bill %s: %v", extID, err))
				continue
			}
			ingested++
		}
		if len(page.Bills) == 0 || len(page.Bills) < pageSize {
			break
		}
		offset += pageSize
	}

	res.Counts["bills"] = ingested
	res.Counts["existing_bills"] = existing
	res.Errors = errs
	res.Success = len(errs) == 0 || ingested+existing > 0
	res.DurationMS = time.Since(start).Milliseconds()
	p.log.Info("bill sync finished", "ingested", ingested, "existing", existing, "errors", len(errs))
	return res
}

func (p *Pipeline) ingestBill(ctx context.Context, s congress.BillSummary, extID string) error {
	path := fmt.Sprintf("bill/%d/%s/%s", s.Congress, strings.ToLower(s.Type), s.Number)
	var detail congress.BillDetailResponse
	if err := p.fetcher.Fetch(ctx, path, nil, &detail); err != nil {
		return fmt.Errorf("fetch detail: %w", err)
	}
	d := detail.Bill

	text := classify.BuildText(d.Title, d.Summary, d.PolicyArea.Name, strings.Join(d.Subjects, " "))
	score := p.classifier.PolarityScore(text)
	topicIDs := p.classifier.TopicsFor(text)

	title := d.Title
	if strings.TrimSpace(title) == "" {
		title = s.Title
	}
	bill := models.Bill{
		ExternalID:     extID,
		CongressNumber: s.Congress,
		BillType:       strings.ToLower(s.Type),
		BillNumber:     s.Number,
		Title:          title,
		Summary:        d.Summary,
		IntroducedDate: d.IntroducedDate,
		Status:         d.LatestAction.Text,
		PolarityScore:  &score,
	}
	created, err := p.stores.Bills.InsertBill(ctx, bill)
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	if !created {
		// Raced with an earlier ingest of the same id; the stored derived
		// fields win.
		return nil
	}
	if err := p.stores.Bills.SetBillTopics(ctx, extID, topicIDs); err != nil {
		return fmt.Errorf("set topics: %w", err)
	}
	return nil
}
