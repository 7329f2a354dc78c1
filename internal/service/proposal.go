package service

import (
	"context"

	"github.com/luminapower/propdeck/internal/domain/billing"
	"github.com/luminapower/propdeck/internal/domain/deck"
	"github.com/luminapower/propdeck/internal/domain/tariff"
	ierr "github.com/luminapower/propdeck/internal/errors"
	"github.com/luminapower/propdeck/internal/types"
)

// ProposalService renders a commercial proposal deck from a template and
// client parameters
type ProposalService interface {
	// Render computes the before/after bills, resolves every placeholder
	// across all slides and serializes the result. Calculation errors abort
	// before any document mutation begins, so the document is either fully
	// rendered or untouched. Per-shape resolution errors never abort the
	// batch; they are collected in the result's report.
	Render(ctx context.Context, input billing.ClientInput, doc deck.Document) (*RenderResult, error)
}

// RenderResult is the outcome of a successful render
type RenderResult struct {
	// ProposalID identifies this render for tracing
	ProposalID string

	// Deck is the serialized presentation, ready for download
	Deck []byte

	// Report lists the shapes updated and skipped during resolution
	Report *deck.Report

	// Before and After are the bill breakdowns the deck was filled with
	Before billing.BillBreakdown
	After  billing.BillBreakdown
}

type proposalService struct {
	ServiceParams

	calculator *billing.Calculator
	resolver   *deck.Resolver
}

// NewProposalService creates the proposal service from the configured tariff
// regime
func NewProposalService(params ServiceParams) (ProposalService, error) {
	energy, distribution, icms, pisCofins, err := params.Config.Tariff.Rates()
	if err != nil {
		return nil, err
	}

	model, err := tariff.NewModel(energy, distribution, icms, pisCofins)
	if err != nil {
		return nil, err
	}

	return &proposalService{
		ServiceParams: params,
		calculator:    billing.NewCalculator(model),
		resolver:      deck.NewResolver(params.Logger, params.Now),
	}, nil
}

func (s *proposalService) Render(ctx context.Context, input billing.ClientInput, doc deck.Document) (*RenderResult, error) {
	log := s.Logger.WithContext(ctx)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	before, err := s.calculator.ComputeBefore(input)
	if err != nil {
		return nil, err
	}
	after := s.calculator.ComputeAfter(before, input.DiscountPercent)

	report := s.resolver.ResolveAll(doc, input, before, after)

	rendered, err := doc.Serialize()
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to serialize rendered deck").
			WithHint("The rendered presentation could not be written").
			Mark(ierr.ErrInternal)
	}

	proposalID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROPOSAL)
	log.Infow("rendered proposal deck",
		"proposal_id", proposalID,
		"client_name", input.ClientName,
		"updated_shapes", report.UpdatedShapes,
		"skipped_shapes", len(report.SkippedShapes),
		"deck_bytes", len(rendered))

	return &RenderResult{
		ProposalID: proposalID,
		Deck:       rendered,
		Report:     report,
		Before:     before,
		After:      after,
	}, nil
}
