package services

import (
	"errors"
	"fmt"
	"time"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/pkg/errs"
)

const ReasonAgeVerificationNotSatisfied = "age verification is required and has not been satisfied"

// HandoffAdjudicator settles a record whose two attestations are both present.
type HandoffAdjudicator struct {
	engine GeoProximityEngine
}

func NewHandoffAdjudicator(engine GeoProximityEngine) HandoffAdjudicator {
	return HandoffAdjudicator{engine: engine}
}

// Adjudicate moves c to BOTH_CONFIRMED (and the leg to delivered) or to CONFLICT.
// ageGateSatisfied is only consulted when the leg requires age verification.
func (a HandoffAdjudicator) Adjudicate(
	c *confirmation.Confirmation, leg *shipment.Leg, ageGateSatisfied bool, now time.Time,
) (confirmation.Outcome, error) {
	if err := errors.Join(c.Validate(), leg.Validate()); err != nil {
		return 0, err
	}

	agent, customer := c.Agent().Attestation(), c.Customer().Attestation()
	if agent == nil || customer == nil {
		return 0, fmt.Errorf("%w: both sides must attest before adjudication", errs.ErrConflict)
	}

	result, err := a.engine.VerifyAndLocate(
		agent.Location(), customer.Location(), leg.ScheduledAddress(), leg.ProximityRadiusMeters())
	if err != nil {
		return 0, err
	}

	distance := result.DistanceBetweenParties
	if !result.InProximity {
		reason := fmt.Sprintf("parties are %.2f m apart, allowed %.2f m", distance, leg.ProximityRadiusMeters())
		if err = c.MarkConflict(reason, &distance, now); err != nil {
			return 0, err
		}
		return confirmation.OutcomeConflict, nil
	}

	if leg.RequiresAgeVerification() && !ageGateSatisfied {
		if err = c.MarkConflict(ReasonAgeVerificationNotSatisfied, &distance, now); err != nil {
			return 0, err
		}
		return confirmation.OutcomeConflict, nil
	}

	if err = c.CompleteHandoff(confirmation.HandoffResult{
		DistanceBetweenParties: result.DistanceBetweenParties,
		DistanceFromScheduled:  result.DistanceFromScheduled,
		HandoffPoint:           result.Midpoint,
		LocationType:           result.LocationType,
	}, now); err != nil {
		return 0, err
	}
	if err = leg.MarkDelivered(); err != nil {
		return 0, err
	}

	return confirmation.OutcomeDelivered, nil
}
