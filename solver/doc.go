// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package solver assigns absent members to present proxy holders.

# Algorithm

Each absent member, in roster order, takes the first entry of their ranked
preferences that is a roster member, is present, is not themselves, and has
remaining capacity:

	solution := solver.Resolve(problem)

Members with no such candidate land in MembersUnrepresented. A capacity of 0
means holders are unbounded.

# Validation

Validate rejects structurally broken problems (negative capacity, missing
members or members_present, empty ids, missing preferences). Unknown ids are
never errors; they simply cannot be matched.

# Concurrency

Resolve is a pure function over its argument. Calls may run in parallel on
shared or disjoint problems without coordination.
*/
package solver
