package contact

import (
	"context"

	apperrors "geotrack-backend/internal/common/errors"
	"geotrack-backend/internal/common/logger"
	"geotrack-backend/internal/common/metrics"
)

// Persister writes one validated submission.
type Persister interface {
	Insert(ctx context.Context, rec *SubmissionRecord) error
}

// Notifier attempts the two notification channels for a persisted record.
type Notifier interface {
	Dispatch(ctx context.Context, rec *SubmissionRecord, labels Labels) []NotificationOutcome
}

// Result is the success payload for an accepted submission.
type Result struct {
	Message string
}

type ServiceDependencies struct {
	Rules      RuleSet
	Repository Persister
	Dispatcher Notifier
	Logger     logger.Logger
}

// Service orchestrates the submission pipeline:
// normalize → validate → persist → notify (best effort) → respond.
type Service struct {
	rules      RuleSet
	repository Persister
	dispatcher Notifier
	logger     logger.Logger
}

func NewService(deps ServiceDependencies) *Service {
	rules := deps.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	return &Service{
		rules:      rules,
		repository: deps.Repository,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Submit runs one submission through the pipeline. Validation and storage
// failures stop the flow before any notification is attempted; once the
// row is committed, notification outcomes are logged but can no longer
// affect the result.
func (s *Service) Submit(ctx context.Context, input *SubmissionInput) (*Result, error) {
	rec := Normalize(input)
	labels := NormalizeLabels(input)

	if err := s.rules.Validate(rec); err != nil {
		metrics.SubmissionsRejected.WithLabelValues(string(apperrors.AsStandardError(err).Code)).Inc()
		return nil, err
	}

	if err := s.repository.Insert(ctx, rec); err != nil {
		metrics.SubmissionsRejected.WithLabelValues(string(apperrors.AsStandardError(err).Code)).Inc()
		return nil, err
	}

	metrics.SubmissionsAccepted.Inc()

	outcomes := s.dispatcher.Dispatch(ctx, rec, labels)

	delivered := 0
	for _, o := range outcomes {
		if o.Delivered {
			delivered++
		}
	}
	s.logger.Info("Submission accepted", map[string]interface{}{
		"correo":                 rec.Correo,
		"notificationsAttempted": len(outcomes),
		"notificationsDelivered": delivered,
	})

	return &Result{Message: "Solicitud enviada correctamente."}, nil
}
