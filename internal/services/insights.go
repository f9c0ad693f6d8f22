package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/pkg/helpers"
)

const insightsSystemPrompt = "You are a stock analyst for a caravan manufacturer's dealer network. " +
	"Summarize the dealer's stock position in plain language for a dealer principal. " +
	"Be concrete, cite the numbers you are given, and keep it under 200 words. " +
	"Never invent figures that are not in the data."

type contentGenerator interface {
	GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error)
}

type kpiSummarizer interface {
	Summary(ctx context.Context, dealerSlug string, args dto.WindowArgs) (dto.KPISummary, error)
}

type tierComparer interface {
	Compare(ctx context.Context, dealerSlug string) (dto.TierResult, error)
}

type insightsService struct {
	generator contentGenerator
	kpi       kpiSummarizer
	tiers     tierComparer
}

func NewInsightsService(generator contentGenerator, kpi kpiSummarizer, tiers tierComparer) *insightsService {
	return &insightsService{generator: generator, kpi: kpi, tiers: tiers}
}

// Summarize asks Gemini for a narrative read of the dealer's current
// position, grounded in the live KPI summary and tier comparison.
func (s *insightsService) Summarize(ctx context.Context, dealerSlug, dealerName string, req dto.InsightsRequest) (dto.InsightsResult, error) {
	if s.generator == nil {
		return dto.InsightsResult{}, errs.NewConfigError("VERTEXMODEL", "insights are not configured on this deployment")
	}

	summary, err := s.kpi.Summary(ctx, dealerSlug, dto.WindowArgs{Preset: dto.WindowLast30})
	if err != nil {
		return dto.InsightsResult{}, err
	}
	tiers, err := s.tiers.Compare(ctx, dealerSlug)
	if err != nil {
		return dto.InsightsResult{}, err
	}

	resp, err := s.generator.GenerateContent(ctx, dto.VertexGenerateRequest{
		System:      insightsSystemPrompt,
		Prompt:      buildInsightsPrompt(dealerName, summary, tiers, req.Question),
		Temperature: helpers.Ptr(float32(0.2)),
		MaxTokens:   helpers.Ptr(int32(512)),
	})
	if err != nil {
		return dto.InsightsResult{}, errs.NewExternalServiceError("vertex", "insight generation failed", true)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return dto.InsightsResult{}, errs.NewExternalServiceError("vertex", "insight generation returned no content", true)
	}
	return dto.InsightsResult{Dealer: dealerSlug, Summary: text}, nil
}

func buildInsightsPrompt(dealerName string, summary dto.KPISummary, tiers dto.TierResult, question string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dealer: %s\n", dealerName)
	fmt.Fprintf(&b, "Window: %s to %s\n", summary.From, summary.To)
	fmt.Fprintf(&b, "Left factory (PGI): %d\n", summary.PGICount)
	fmt.Fprintf(&b, "Received into yard: %d\n", summary.ReceivedCount)
	fmt.Fprintf(&b, "Handed to customers: %d\n", summary.HandoverCount)
	fmt.Fprintf(&b, "Current yard: %d total (%d stock, %d customer)\n",
		summary.CurrentYard.Total, summary.CurrentYard.Stock, summary.CurrentYard.Customer)

	if len(tiers.Tiers) > 0 {
		fmt.Fprintf(&b, "Tier stocking vs policy (baseline %d):\n", tiers.Baseline)
		for _, t := range tiers.Tiers {
			fmt.Fprintf(&b, "- %s: actual %d, target %d, minimum %d, status %s\n",
				helpers.FirstNonEmpty(t.Name, t.TierCode), t.Actual, t.TargetCount, t.Minimum, t.Status)
		}
		if tiers.Unassigned > 0 {
			fmt.Fprintf(&b, "- unclassified units in yard: %d\n", tiers.Unassigned)
		}
	}

	if q := strings.TrimSpace(question); q != "" {
		fmt.Fprintf(&b, "\nThe dealer asked: %s\n", q)
	}
	return b.String()
}
