package consumers

import (
	"log"

	"earnings-service/internal/services"
)

// CascadeProcessor executes queued background work: referral cascades after
// registration and on-demand profit crediting runs.
type CascadeProcessor struct {
	Referral *services.ReferralService
	Profit   *services.ProfitService
}

func NewCascadeProcessor(referral *services.ReferralService, profit *services.ProfitService) *CascadeProcessor {
	return &CascadeProcessor{Referral: referral, Profit: profit}
}

// ProcessReferralCascade runs the 3-level award walk for one registration.
// Cascade-internal failures are already logged per level; only the aborting
// errors (missing referrer, missing settings) surface here.
func (p *CascadeProcessor) ProcessReferralCascade(payload services.ReferralCascadePayload) error {
	if err := p.Referral.ProcessReferral(payload.NewUserId, payload.ReferralCode); err != nil {
		log.Printf("Referral cascade failed for user %d (code %s): %v", payload.NewUserId, payload.ReferralCode, err)
		return err
	}
	return nil
}

// ProcessProfitRun executes one crediting run. Safe to repeat: the run is
// idempotent within a period.
func (p *CascadeProcessor) ProcessProfitRun(payload services.ProfitRunPayload) error {
	report, err := p.Profit.AddProfits(payload.Mode)
	if err != nil {
		log.Printf("Queued profit run (%s) failed: %v", payload.Mode, err)
		return err
	}
	log.Printf("Queued profit run (%s): credited=%d skipped=%d errors=%d", payload.Mode, report.Credited, report.Skipped, len(report.Errors))
	return nil
}
