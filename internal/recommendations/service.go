package recommendations

import (
	"context"
	"time"

	"web3stack-api/internal/entitlements"
	"web3stack-api/internal/questionnaire"
	"web3stack-api/internal/shared/metrics"
	"web3stack-api/internal/shared/telemetry"
	"web3stack-api/internal/stack"
)

// Result is a generated recommendation and its presentation hints.
type Result struct {
	Recommendation stack.Bundle `json:"recommendation" yaml:"recommendation"`
	Preview        Preview      `json:"preview" yaml:"preview"`
}

// Service turns questionnaire answers into recommendations.
type Service struct {
	Resolver     *stack.Resolver
	Entitlements entitlements.EntitlementService
	Limits       PreviewLimits
}

// NewService constructs a Service. A nil entitlement service locks every
// preview.
func NewService(resolver *stack.Resolver, ent entitlements.EntitlementService, limits PreviewLimits) *Service {
	if resolver == nil {
		resolver = stack.NewResolver(nil)
	}
	return &Service{Resolver: resolver, Entitlements: ent, Limits: limits}
}

// Generate validates answers, resolves a bundle and builds the preview for
// userID. Only invalid answers or a canceled context produce an error.
func (s *Service) Generate(ctx context.Context, userID string, answers stack.Answers) (Result, error) {
	if err := questionnaire.Validate(answers); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	bundle := s.Resolver.Resolve(answers)
	metrics.ObserveResolveDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.IncRecommendationsGenerated()

	unlocked := s.isUnlocked(ctx, userID)
	return Result{
		Recommendation: bundle,
		Preview:        BuildPreview(bundle, s.Limits, unlocked),
	}, nil
}

func (s *Service) isUnlocked(ctx context.Context, userID string) bool {
	if s.Entitlements == nil || userID == "" {
		return false
	}
	unlocked, err := s.Entitlements.IsUnlocked(ctx, userID)
	if err != nil {
		metrics.IncEntitlementLookupFailed()
		telemetry.Warn("recommendations.entitlement_lookup_failed", map[string]any{
			"user_id": userID,
			"error":   err,
		})
		return false
	}
	return unlocked
}
