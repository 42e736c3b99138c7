package orchestrators

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainRequest "fitfront/internal/domain/request"
)

// SubmitTrainingRequestInput carries the personal training intake form.
type SubmitTrainingRequestInput struct {
	Token       string
	Name        string
	Email       string
	Phone       string
	Goal        string
	HealthNotes string
}

// SubmitRequestDeps holds dependencies for the intake orchestrators.
type SubmitRequestDeps struct {
	Mutator Mutator
}

// ExecuteSubmitTrainingRequest validates and submits a training intake.
func ExecuteSubmitTrainingRequest(ctx context.Context, input SubmitTrainingRequestInput, deps SubmitRequestDeps) error {
	r := domainRequest.Request{
		Kind:        domainRequest.KindTraining,
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Status:      domainRequest.StatusPending,
		Goal:        strings.TrimSpace(input.Goal),
		HealthNotes: strings.TrimSpace(input.HealthNotes),
	}
	if err := r.Validate(); err != nil {
		return err
	}

	url := deps.Mutator.Endpoints().User().TrainingRequestAdd
	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, map[string]any{
		"name":   r.Name,
		"email":  r.Email,
		"phone":  r.Phone,
		"goal":   r.Goal,
		"health": r.HealthNotes,
	})
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("intake_event", "event", "training_request_submitted", "email", r.Email)
	return nil
}

// SubmitCourseRequestInput carries the course enrollment intake form.
type SubmitCourseRequestInput struct {
	Token       string
	Name        string
	Email       string
	Phone       string
	CourseID    string
	CourseTitle string
}

// ExecuteSubmitCourseRequest validates and submits a course enrollment
// request.
func ExecuteSubmitCourseRequest(ctx context.Context, input SubmitCourseRequestInput, deps SubmitRequestDeps) error {
	r := domainRequest.Request{
		Kind:        domainRequest.KindCourse,
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Status:      domainRequest.StatusPending,
		CourseID:    input.CourseID,
		CourseTitle: strings.TrimSpace(input.CourseTitle),
	}
	if err := r.Validate(); err != nil {
		return err
	}

	url := deps.Mutator.Endpoints().User().CourseRequestAdd
	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, map[string]any{
		"name":         r.Name,
		"email":        r.Email,
		"phone":        r.Phone,
		"course_id":    r.CourseID,
		"course_title": r.CourseTitle,
	})
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("intake_event", "event", "course_request_submitted", "email", r.Email, "course_id", r.CourseID)
	return nil
}
