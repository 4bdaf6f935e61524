// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/proxy-solver/models"
)

// maxCount keeps the scaled numerators below int overflow on 32-bit targets.
const maxCount = 1 << 26

var ErrInvalidCount = errors.New("invalid member count")

// Threshold is a policy returning the minimum count needed to pass.
type Threshold func(present, represented, total int) (int, error)

// MembersQuorumPresentThreshold is one third of the membership, present in person.
func MembersQuorumPresentThreshold(present, represented, total int) (int, error) {
	return fraction(present, represented, total, 1, 3)
}

// MembersQuorumPresentOrRepresentedThreshold is two thirds of the membership,
// present or by proxy.
func MembersQuorumPresentOrRepresentedThreshold(present, represented, total int) (int, error) {
	return fraction(present, represented, total, 2, 3)
}

func MembershipElectionThreshold(present, represented, total int) (int, error) {
	return fraction(present, represented, total, 3, 4)
}

func BylawsAmendmentThreshold(present, represented, total int) (int, error) {
	return fraction(present, represented, total, 3, 4)
}

func ConstitutionalAmendmentThreshold(present, represented, total int) (int, error) {
	return fraction(present, represented, total, 17, 20)
}

// DirectorsQuorumThreshold is 5 at 15 members, plus one per 10 members beyond.
// ceil(5 + (total-15)/10) == ceil((total+35)/10)
func DirectorsQuorumThreshold(present, represented, total int) (int, error) {
	if err := checkCounts(present, represented, total); err != nil {
		return 0, err
	}
	return ceilDiv(total+35, 10), nil
}

// HaveQuorum requires both the in-person and the present-or-represented quorum.
func HaveQuorum(c models.RuleCounts) (bool, error) {
	presentThreshold, err := MembersQuorumPresentThreshold(c.Present, c.Represented, c.Total)
	if err != nil {
		return false, err
	}
	representedThreshold, err := MembersQuorumPresentOrRepresentedThreshold(c.Present, c.Represented, c.Total)
	if err != nil {
		return false, err
	}
	return c.Total > 0 &&
		c.Present >= presentThreshold &&
		c.Present+c.Represented >= representedThreshold, nil
}

// CanPass reports whether present plus represented members meet the policy.
func CanPass(policy Threshold, c models.RuleCounts) (bool, error) {
	threshold, err := policy(c.Present, c.Represented, c.Total)
	if err != nil {
		return false, err
	}
	return c.Total > 0 && c.Present+c.Represented >= threshold, nil
}

func CanElectMembers(c models.RuleCounts) (bool, error) {
	return CanPass(MembershipElectionThreshold, c)
}

func CanAmendBylaws(c models.RuleCounts) (bool, error) {
	return CanPass(BylawsAmendmentThreshold, c)
}

func CanAmendConstitution(c models.RuleCounts) (bool, error) {
	return CanPass(ConstitutionalAmendmentThreshold, c)
}

func HaveDirectorsQuorum(c models.RuleCounts) (bool, error) {
	return CanPass(DirectorsQuorumThreshold, c)
}

// Evaluate computes every threshold and predicate for the given counts.
func Evaluate(c models.RuleCounts) (models.RulesReport, error) {
	if err := checkCounts(c.Present, c.Represented, c.Total); err != nil {
		return models.RulesReport{}, err
	}

	report := models.RulesReport{Counts: c}
	// counts are already validated, so the policies cannot fail below
	report.Thresholds.MembersQuorumPresent, _ = MembersQuorumPresentThreshold(c.Present, c.Represented, c.Total)
	report.Thresholds.MembersQuorumPresentOrRepresented, _ = MembersQuorumPresentOrRepresentedThreshold(c.Present, c.Represented, c.Total)
	report.Thresholds.MembershipElection, _ = MembershipElectionThreshold(c.Present, c.Represented, c.Total)
	report.Thresholds.BylawsAmendment, _ = BylawsAmendmentThreshold(c.Present, c.Represented, c.Total)
	report.Thresholds.ConstitutionalAmendment, _ = ConstitutionalAmendmentThreshold(c.Present, c.Represented, c.Total)
	report.Thresholds.DirectorsQuorum, _ = DirectorsQuorumThreshold(c.Present, c.Represented, c.Total)

	report.HaveQuorum, _ = HaveQuorum(c)
	report.CanElectMembers, _ = CanElectMembers(c)
	report.CanAmendBylaws, _ = CanAmendBylaws(c)
	report.CanAmendConstitution, _ = CanAmendConstitution(c)
	report.HaveDirectorsQuorum, _ = HaveDirectorsQuorum(c)

	return report, nil
}

// fraction returns ceil(num/den * total) without floating point
func fraction(present, represented, total, num, den int) (int, error) {
	if err := checkCounts(present, represented, total); err != nil {
		return 0, err
	}
	return ceilDiv(num*total, den), nil
}

func checkCounts(present, represented, total int) error {
	for _, c := range []struct {
		name  string
		value int
	}{
		{"present", present},
		{"represented", represented},
		{"total", total},
	} {
		if c.value < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %d", ErrInvalidCount, c.name, c.value)
		}
		if c.value > maxCount {
			return fmt.Errorf("%w: %s exceeds %d", ErrInvalidCount, c.name, maxCount)
		}
	}
	return nil
}

// ceilDiv assumes a non-negative numerator and positive denominator
func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
