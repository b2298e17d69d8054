package match

import (
	"fmt"
	"time"

	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/apperrors"
)

// Actor is the resolved capability view of the caller for one match: whether
// they belong to either contesting team and whether they hold the organizer
// role. Resolution happens at the HTTP layer; the state machine only reads it.
type Actor struct {
	ID            uint
	IsParticipant bool
	IsOrganizer   bool
}

// The functions below form the match lifecycle state machine:
//
//	pending → in_progress → pending_confirmation → completed
//	                                  └→ disputed → completed (organizer override)
//
// Each validates the current status and the actor's capability against the
// in-memory snapshot and mutates the struct only when every precondition
// holds. Persisting the transition (and detecting concurrent writers) is the
// repository's job.

// Start moves a pending match to in_progress. Participants and organizers
// may start a match.
func Start(m *Match, actor Actor) error {
	if m.Status != StatusMatchPending {
		return fmt.Errorf("%w: cannot start match in status %q", apperrors.ErrInvalidTransition, m.Status)
	}
	if !actor.IsParticipant && !actor.IsOrganizer {
		return fmt.Errorf("%w: only participants or organizers can start a match", apperrors.ErrUnauthorized)
	}

	now := time.Now()
	m.Status = StatusMatchInProgress
	m.StartedAt = &now
	return nil
}

// SubmitScore records a claimed result and moves the match to
// pending_confirmation. Valid from pending (match played without an explicit
// start) or in_progress. A match must have a decided winner, so tied scores
// are rejected.
func SubmitScore(m *Match, actor Actor, score1, score2 int) error {
	if m.Status != StatusMatchPending && m.Status != StatusMatchInProgress {
		return fmt.Errorf("%w: cannot submit score in status %q", apperrors.ErrInvalidTransition, m.Status)
	}
	if !actor.IsParticipant && !actor.IsOrganizer {
		return fmt.Errorf("%w: only participants or organizers can submit a score", apperrors.ErrUnauthorized)
	}
	if err := validateScores(score1, score2); err != nil {
		return err
	}

	m.Score1 = &score1
	m.Score2 = &score2
	m.SubmittedByID = &actor.ID
	m.Status = StatusMatchPendingConfirmation
	return nil
}

// ConfirmScore ratifies a submitted score and completes the match. The party
// who submitted cannot confirm their own submission; the counterpart (or an
// organizer) must ratify before the result is final.
func ConfirmScore(m *Match, actor Actor) error {
	if err := checkCounterpart(m, actor, "confirm"); err != nil {
		return err
	}

	now := time.Now()
	m.Status = StatusMatchCompleted
	m.CompletedAt = &now
	return nil
}

// DisputeScore contests a submitted score. The submitted score is retained so
// the dispute stays auditable against the original claim.
func DisputeScore(m *Match, actor Actor, reason string) error {
	if err := checkCounterpart(m, actor, "dispute"); err != nil {
		return err
	}

	m.DisputeReason = &reason
	m.Status = StatusMatchDisputed
	return nil
}

// ResolveDispute is the single-step organizer override: it completes a
// disputed match with the organizer-supplied score, replacing any prior
// submission. Organizers do not go through confirmation.
func ResolveDispute(m *Match, actor Actor, score1, score2 int) error {
	if m.Status != StatusMatchDisputed {
		return fmt.Errorf("%w: cannot resolve dispute in status %q", apperrors.ErrInvalidTransition, m.Status)
	}
	if !actor.IsOrganizer {
		return fmt.Errorf("%w: only organizers can resolve a dispute", apperrors.ErrUnauthorized)
	}
	if err := validateScores(score1, score2); err != nil {
		return err
	}

	now := time.Now()
	m.Score1 = &score1
	m.Score2 = &score2
	m.DisputeReason = nil
	m.Status = StatusMatchCompleted
	m.CompletedAt = &now
	return nil
}

// checkCounterpart gates confirm/dispute: only valid from
// pending_confirmation, and only for an organizer or a participant other
// than the submitter.
func checkCounterpart(m *Match, actor Actor, action string) error {
	if m.Status != StatusMatchPendingConfirmation {
		return fmt.Errorf("%w: cannot %s score in status %q", apperrors.ErrInvalidTransition, action, m.Status)
	}
	if actor.IsOrganizer {
		return nil
	}
	if !actor.IsParticipant {
		return fmt.Errorf("%w: only participants or organizers can %s a score", apperrors.ErrUnauthorized, action)
	}
	if m.SubmittedByID != nil && *m.SubmittedByID == actor.ID {
		return fmt.Errorf("%w: the submitter cannot %s their own score", apperrors.ErrUnauthorized, action)
	}
	return nil
}

func validateScores(score1, score2 int) error {
	if score1 < 0 || score2 < 0 {
		return fmt.Errorf("%w: scores must be non-negative", apperrors.ErrInvalidInput)
	}
	if score1 == score2 {
		return fmt.Errorf("%w: a match must have a decided winner, tied scores are not allowed", apperrors.ErrInvalidInput)
	}
	return nil
}
