// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rules evaluates governance thresholds against meeting counts.

Every policy takes (present, represented, total) and returns the minimum
number of members required, rounded up to a whole member with integer
arithmetic:

	MembersQuorumPresentThreshold              ceil(total/3)
	MembersQuorumPresentOrRepresentedThreshold ceil(2*total/3)
	MembershipElectionThreshold                ceil(3*total/4)
	BylawsAmendmentThreshold                   ceil(3*total/4)
	ConstitutionalAmendmentThreshold           ceil(17*total/20)
	DirectorsQuorumThreshold                   ceil(5 + (total-15)/10)

Negative counts return ErrInvalidCount; they are never clamped.

Evaluate bundles all thresholds and predicates into a models.RulesReport.
*/
package rules
