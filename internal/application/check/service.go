package check

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/doeshing/actionguard/internal/domain"
	"github.com/doeshing/actionguard/internal/ports"
)

// CheckRequest is one (action, input, value) triple.
type CheckRequest struct {
	Action string
	Input  string
	Value  string
}

// Service runs validations and records them in the audit log.
type Service struct {
	Validator ports.InputValidator
	// Audit is nil when auditing is disabled.
	Audit   ports.AuditRepository
	Logger  ports.Logger
	Workers int
	RunID   string
	Now     func() time.Time
}

// Check validates a single triple. The error is non-nil only when ctx is done.
func (s *Service) Check(ctx context.Context, req CheckRequest) (domain.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return domain.Verdict{}, err
	}
	if s.Validator == nil {
		return domain.Verdict{}, fmt.Errorf("validator unavailable")
	}
	verdict := s.Validator.Validate(req.Action, req.Input, req.Value)
	s.record(req, verdict)
	return verdict, nil
}

// Batch validates cases concurrently, preserving their order in the report.
func (s *Service) Batch(ctx context.Context, cases []domain.Case) domain.BatchReport {
	mapper := iter.Mapper[domain.Case, domain.CaseResult]{MaxGoroutines: s.workers()}
	results := mapper.Map(cases, func(c *domain.Case) domain.CaseResult {
		verdict, err := s.Check(ctx, CheckRequest{Action: c.Action, Input: c.Input, Value: c.Value})
		if err != nil {
			return domain.CaseResult{Case: *c, Skipped: true}
		}
		return domain.CaseResult{Case: *c, Verdict: verdict, Mismatch: mismatch(*c, verdict)}
	})

	report := domain.BatchReport{Results: results}
	for _, res := range results {
		switch {
		case res.Skipped:
			report.Skipped++
			continue
		case res.Verdict.Accepted:
			report.Accepted++
		default:
			report.Rejected++
		}
		if res.Mismatch != "" {
			report.Failed++
		}
	}
	s.logDebug("batch finished", map[string]interface{}{
		"cases":    len(cases),
		"accepted": report.Accepted,
		"rejected": report.Rejected,
		"skipped":  report.Skipped,
		"failed":   report.Failed,
	})
	return report
}

func (s *Service) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (s *Service) record(req CheckRequest, verdict domain.Verdict) {
	s.logDebug("input validated", map[string]interface{}{
		"action":   req.Action,
		"input":    req.Input,
		"kind":     string(verdict.Kind),
		"known":    verdict.Known,
		"accepted": verdict.Accepted,
		"reason":   string(verdict.Reason),
	})
	if s.Audit == nil {
		return
	}
	rec := domain.AuditRecord{
		RunID:       s.RunID,
		Timestamp:   s.now(),
		Action:      req.Action,
		Input:       req.Input,
		Kind:        verdict.Kind,
		Known:       verdict.Known,
		Accepted:    verdict.Accepted,
		Reason:      verdict.Reason,
		Detail:      verdict.Detail,
		ValueLength: len(req.Value),
	}
	if err := s.Audit.Save(rec); err != nil && s.Logger != nil {
		s.Logger.Warn("audit write failed", map[string]interface{}{"error": err.Error(), "path": s.Audit.Path()})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) logDebug(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields)
	}
}

func mismatch(c domain.Case, verdict domain.Verdict) string {
	switch c.Expect {
	case domain.ExpectAccept:
		if !verdict.Accepted {
			return fmt.Sprintf("expected accept, got %s", verdict)
		}
	case domain.ExpectReject:
		if verdict.Accepted {
			return "expected reject, got accept"
		}
		if c.Reason != domain.ReasonNone && c.Reason != verdict.Reason {
			return fmt.Sprintf("expected reject %s, got %s", c.Reason, verdict)
		}
	}
	return ""
}
