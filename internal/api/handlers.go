package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rgehrsitz/hpgo/internal/affordability"
	"github.com/rgehrsitz/hpgo/internal/compare"
	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProjectionRequest asks for a year-by-year projection of a plan.
// MaxYears replaces the plan horizon when positive.
type ProjectionRequest struct {
	Plan           domain.PlanInput `json:"plan"`
	MaxYears       int              `json:"max_years,omitempty"`
	MaxViableYears int              `json:"max_viable_years,omitempty"`
}

type ProjectionResponse struct {
	RunID      uuid.UUID                `json:"run_id"`
	Plan       domain.PlanInput         `json:"plan"`
	TargetYear int                      `json:"target_year"`
	Rows       []domain.ProjectionRow   `json:"rows"`
	Assessment affordability.Assessment `json:"assessment"`
}

type AmortizationRequest struct {
	LoanAmount    decimal.Decimal `json:"loan_amount"`
	AnnualRatePct decimal.Decimal `json:"annual_rate_pct"`
	TermYears     int             `json:"term_years"`
	Method        string          `json:"method,omitempty"`
}

type AmortizationResponse struct {
	RunID    uuid.UUID                       `json:"run_id"`
	Schedule domain.AmortizationScheduleData `json:"schedule"`
}

// AffordabilityRequest classifies rows produced by an earlier projection.
// With ConfirmPurchase set, PurchaseYear is required and summarized.
type AffordabilityRequest struct {
	Rows            []domain.ProjectionRow `json:"rows"`
	YearsToPurchase int                    `json:"years_to_purchase"`
	MaxViableYears  int                    `json:"max_viable_years,omitempty"`
	ConfirmPurchase bool                   `json:"confirm_purchase,omitempty"`
	PurchaseYear    *int                   `json:"purchase_year,omitempty"`
}

type AffordabilityResponse struct {
	RunID      uuid.UUID                  `json:"run_id"`
	Result     domain.AffordabilityResult `json:"result"`
	Comparison domain.ComparisonData      `json:"comparison"`
	Purchase   *domain.LoanSummary        `json:"purchase,omitempty"`
}

type VariantRequest struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Transforms  []string `json:"transforms"`
}

type ComparisonRequest struct {
	Plan      domain.PlanInput `json:"plan"`
	Templates []string         `json:"templates,omitempty"`
	Variants  []VariantRequest `json:"variants,omitempty"`
	MaxYears  int              `json:"max_years,omitempty"`
}

type ComparisonResponse struct {
	RunID      uuid.UUID              `json:"run_id"`
	Comparison *compare.ComparisonSet `json:"comparison"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// normalize validates a plan body and applies service defaults
func (s *Server) normalize(input domain.PlanInput) (domain.Plan, error) {
	if err := s.parser.ValidatePlanInput(&input); err != nil {
		return domain.Plan{}, err
	}
	return config.Normalize(s.cfg.Projection.ApplyDefaults(input), s.now()), nil
}

func (s *Server) maxViable(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.cfg.Comparison.MaxViableYears
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var req ProjectionRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	plan, err := s.normalize(req.Plan)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rows := s.engine.Project(plan, s.cfg.Projection.Horizon(plan, req.MaxYears))
	resp := ProjectionResponse{
		RunID:      uuid.New(),
		Plan:       config.ToInput(plan),
		TargetYear: plan.TargetYear(),
		Rows:       rows,
		Assessment: affordability.Assess(plan, rows, s.maxViable(req.MaxViableYears)),
	}

	s.log.Debug("projection computed",
		zap.String("run_id", resp.RunID.String()),
		zap.Int("rows", len(rows)),
		zap.String("outcome", string(resp.Assessment.Result.Outcome)),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAmortization(w http.ResponseWriter, r *http.Request) {
	var req AmortizationRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	method := domain.PaymentFixed
	if req.Method != "" {
		method = domain.PaymentMethod(req.Method)
		if !method.IsValid() {
			s.writeError(w, r, domain.NewPlanError("method", fmt.Sprintf("unknown payment method %q (want fixed or decreasing)", req.Method), nil))
			return
		}
	}
	if req.TermYears > domain.MaxAmortizationYears {
		s.writeError(w, r, domain.NewPlanError("term_years", fmt.Sprintf("must be at most %d", domain.MaxAmortizationYears), nil))
		return
	}

	writeJSON(w, http.StatusOK, AmortizationResponse{
		RunID:    uuid.New(),
		Schedule: s.engine.Amortize(req.LoanAmount, req.AnnualRatePct, req.TermYears, method),
	})
}

func (s *Server) handleAffordability(w http.ResponseWriter, r *http.Request) {
	var req AffordabilityRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Rows) == 0 {
		s.writeError(w, r, errors.New("rows are required"))
		return
	}

	baseYear := req.Rows[0].Year - req.Rows[0].N
	result := affordability.Determine(req.Rows, req.YearsToPurchase)
	resp := AffordabilityResponse{
		RunID:      uuid.New(),
		Result:     result,
		Comparison: affordability.CompareViableYearsN(req.Rows, result.FirstViableYear, baseYear+req.YearsToPurchase, s.maxViable(req.MaxViableYears)),
	}

	if req.ConfirmPurchase {
		summary, err := affordability.SummarizeForPurchaseYear(req.Rows, req.PurchaseYear)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.Purchase = &summary
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	var req ComparisonRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Templates) == 0 && len(req.Variants) == 0 {
		s.writeError(w, r, errors.New("at least one template or variant is required"))
		return
	}

	plan, err := s.normalize(req.Plan)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	variants := make([]compare.Variant, 0, len(req.Variants))
	for i, v := range req.Variants {
		transforms, err := s.transforms.ParseTransformSpecs(v.Transforms)
		if err != nil {
			s.writeError(w, r, unprocessable(fmt.Errorf("variant %d: %w", i+1, err)))
			return
		}
		variants = append(variants, compare.Variant{Name: v.Name, Description: v.Description, Transforms: transforms})
	}

	// Variants that move the purchase year need their own horizon, so only an explicit request pins it
	maxYears := 0
	if req.MaxYears > 0 {
		maxYears = s.cfg.Projection.Horizon(plan, req.MaxYears)
	}

	set, err := s.compare.Compare(r.Context(), plan, compare.CompareOptions{
		Templates:      req.Templates,
		Variants:       variants,
		MaxYears:       maxYears,
		HorizonCap:     s.cfg.Projection.MaxYears,
		MaxViableYears: s.cfg.Comparison.MaxViableYears,
	})
	if err != nil {
		if r.Context().Err() != nil {
			s.log.Debug("comparison abandoned", zap.Error(err))
			return
		}
		s.writeError(w, r, unprocessable(err))
		return
	}

	writeJSON(w, http.StatusOK, ComparisonResponse{RunID: uuid.New(), Comparison: set})
}
