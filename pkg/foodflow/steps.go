package foodflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mitchellh/mapstructure"
	"github.com/nutrigraph/nutrigraph/pkg/domain"
)

// Step names shared by both workflows.
const (
	StepUserImageUnit  = "user_image_unit"
	StepValidateInput  = "validate_input"
	StepImageProcess   = "image_processing"
	StepMedicalSection = "medical_section"
	StepPersonalized   = "personalized_report_generation"
	StepValidated      = "validated_response"
	StepQualityCheck   = "quality_assurance"
	StepOutput         = "output"
	StepRejected       = "rejected"
)

// State keys the stub steps and routers agree on.
const (
	KeyUserImage          = "user_image_unit"
	KeyUserInput          = "user_input"
	KeyUserProfile        = "user_profile"
	KeyInputValid         = "input_valid"
	KeyImageResponse      = "image_processing_response"
	KeyMedicalResponse    = "medical_llm_response"
	KeyPersonalizedReport = "personalized_report"
	KeyValidatedResponse  = "validated_response"
	KeyQualityPassed      = "quality_passed"
	KeyOutput             = "output"
	KeyRejected           = "rejected"
)

// UserProfile carries the optional user metadata the UI submits alongside
// the image. It is decoded from state["user_profile"].
type UserProfile struct {
	Name                string   `mapstructure:"name"`
	Age                 int      `mapstructure:"age"`
	DietaryRestrictions []string `mapstructure:"dietary_restrictions"`
	Allergies           []string `mapstructure:"allergies"`
	MedicalReport       bool     `mapstructure:"medical_report"`
}

func userImageUnitStep(logger *slog.Logger) domain.StepFunc {
	return func(ctx context.Context, state domain.State) (domain.State, error) {
		logger.Info("processing user image unit", "image", state.String(KeyUserImage))
		return state, nil
	}
}

func validateInputStep(logger *slog.Logger) domain.StepFunc {
	return func(ctx context.Context, state domain.State) (domain.State, error) {
		logger.Info("validating input")
		// Demo stub: an image handle is the only requirement.
		state[KeyInputValid] = state.Has(KeyUserImage) && state.String(KeyUserImage) != ""
		return state, nil
	}
}

func imageProcessingStep(logger *slog.Logger) domain.StepFunc {
	return func(ctx context.Context, state domain.State) (domain.State, error) {
		logger.Info("processing image with vision model")
		state[KeyImageResponse] = map[string]any{
			"status":     "processed",
			"food_items": []any{},
		}
		return state, nil
	}
}

func medicalSectionStep(logger *slog.Logger) domain.StepFunc {
	return func(ctx context.Context, state domain.State) (domain.State, error) {
		logger.Info("processing medical section")

		response := map[string]any{"status": "analyzed"}
		if raw := state.Map(KeyUserProfile); raw != nil {
			var profile UserProfile
			if err := mapstructure.Decode(raw, &profile); err != nil {
				return nil, fmt.Errorf("invalid user profile: %w", err)
			}
			response["medical_data_available"] = profile.MedicalReport
		}
		state[KeyMedicalResponse] = response
		return state, nil
	}
}

func personalizedReportStep(logger *slog.Logger) domain.StepFunc {
	return func(ctx context.Context, state domain.State) (domain.State, error) {
		logger.Info("generating personalized report")
		state[KeyPersonalizedReport] = map[string]any{
			"recommendations":      []any{},
			"nutritional_analysis": map[string]any{},
			"health_insights":      []any{},
		}
		return state, nil
	}
}

func validatedResponseStep(logger *slog.Logger) domain.StepFunc {
	return func(ctx context.Context, state domain.State) (domain.State, error) {
		logger.Info("generating validated response")
		state[KeyValidatedResponse] = map[string]any{
			"status":          "validated",
			"recommendations": []any{},
		}
		return state, nil
	}
}

func qualityAssuranceStep(logger *slog.Logger) domain.StepFunc {
	return func(ctx context.Context, state domain.State) (domain.State, error) {
		logger.Info("performing quality assurance")
		// Demo stub: the check always passes. Integrators override this
		// step to supply a real scoring model.
		state[KeyQualityPassed] = true
		return state, nil
	}
}

func outputStep(logger *slog.Logger) domain.StepFunc {
	return func(ctx context.Context, state domain.State) (domain.State, error) {
		logger.Info("generating final output")

		finalReport := state.Map(KeyPersonalizedReport)
		if finalReport == nil {
			finalReport = state.Map(KeyValidatedResponse)
		}
		if finalReport == nil {
			finalReport = map[string]any{}
		}

		score := 0.6
		if state.Bool(KeyQualityPassed) {
			score = 0.95
		}

		state[KeyOutput] = map[string]any{
			"final_report":  finalReport,
			"quality_score": score,
		}
		return state, nil
	}
}

func rejectedStep(logger *slog.Logger) domain.StepFunc {
	return func(ctx context.Context, state domain.State) (domain.State, error) {
		logger.Info("analysis rejected by quality gate")
		state[KeyRejected] = true
		return state, nil
	}
}
