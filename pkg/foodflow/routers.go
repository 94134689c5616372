package foodflow

import (
	"context"

	"github.com/nutrigraph/nutrigraph/pkg/domain"
)

// Router names, used by WithRouter overrides.
const (
	RouterValidation = "route_after_validation"
	RouterMedical    = "route_medical_report_check"
	RouterQuality    = "route_quality_check"
)

// Branch keys returned by the routers.
const (
	BranchValidPath     = "valid_path"
	BranchInvalidInput  = "invalid_input"
	BranchMedicalFound  = "medical_report_found"
	BranchNoMedicalData = "no_medical_data"
	BranchQualityPassed = "quality_passed"
	BranchQualityFailed = "quality_failed"
)

func routeAfterValidation(ctx context.Context, state domain.State) (string, error) {
	if state.Bool(KeyInputValid) {
		return BranchValidPath, nil
	}
	return BranchInvalidInput, nil
}

func routeMedicalReportCheck(ctx context.Context, state domain.State) (string, error) {
	response := state.Map(KeyMedicalResponse)
	if available, ok := response["medical_data_available"].(bool); ok && available {
		return BranchMedicalFound, nil
	}
	return BranchNoMedicalData, nil
}

func routeQualityCheck(ctx context.Context, state domain.State) (string, error) {
	if state.Bool(KeyQualityPassed) {
		return BranchQualityPassed, nil
	}
	return BranchQualityFailed, nil
}
