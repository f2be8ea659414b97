package taskverify

import (
	"context"

	"github.com/allowx-lab/backend/internal/entity"
)

type Action string

const (
	Accepted         Action = "accepted"
	Rejected         Action = "rejected"
	NeedManualReview Action = "need_manual_review"
)

type Result struct {
	Action Action

	// VerificationData is persisted alongside the completion so a reviewer
	// can see what the verifier observed.
	VerificationData entity.Map
}

// Verifier checks a single social task against its external service. The
// proof is whatever the participant submitted for the task.
type Verifier interface {
	Verify(ctx context.Context, proof map[string]any) (*Result, error)
}
