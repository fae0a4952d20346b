// Package reorder implements the stable-partition reorder policy at both
// nesting levels: module blocks against a reference key order, and library
// records within a module against the reference module's records.
//
// A stable partition, not a sort: keys present in the reference keep the
// reference's relative order, everything else keeps its original relative
// order and goes last. Nothing is dropped or duplicated.
package reorder

import (
	"bralign/internal/report"
)

// Modules computes the new block order for target from the reference key
// order, replaces target.Order wholesale, and returns it.
//
// The result is reference-ordered keys that exist in target, followed by
// target-only keys in their original relative order. Every target key appears
// exactly once.
func Modules(refOrder []string, target *report.Report) []string {
	newOrder := make([]string, 0, len(target.Order))
	used := make(map[string]bool, len(target.Order))

	for _, key := range refOrder {
		if target.HasModule(key) && !used[key] {
			newOrder = append(newOrder, key)
			used[key] = true
		}
	}

	for _, key := range target.Order {
		if !used[key] {
			newOrder = append(newOrder, key)
		}
	}

	target.Order = newOrder
	return newOrder
}

// Libraries reorders target records to follow the reference records,
// matching by normalized path. Each reference record claims the first unused
// matching target record; unmatched target records are appended in their
// original relative order. The record count never changes.
func Libraries(ref, target []report.LibraryRecord) []report.LibraryRecord {
	result := make([]report.LibraryRecord, 0, len(target))
	used := make([]bool, len(target))

	for _, refRec := range ref {
		for i, rec := range target {
			if !used[i] && rec.NormPath == refRec.NormPath {
				result = append(result, rec)
				used[i] = true
				break
			}
		}
	}

	for i, rec := range target {
		if !used[i] {
			result = append(result, rec)
		}
	}

	return result
}

// LibraryPlan computes the per-module library replacement map for the deep
// reorder. Only modules whose key exists in the reference report are
// considered; target-only (or renamed) modules keep their original library
// order. Modules where either side has no library records are skipped, which
// leaves their text untouched at serialization time.
func LibraryPlan(ref, target *report.Report) map[string][]report.LibraryRecord {
	plan := make(map[string][]report.LibraryRecord)

	for _, key := range target.Order {
		refBlock, ok := ref.Blocks[key]
		if !ok {
			continue
		}

		targetLibs := report.Libraries(target.Blocks[key])
		if len(targetLibs) == 0 {
			continue
		}
		refLibs := report.Libraries(refBlock)
		if len(refLibs) == 0 {
			continue
		}

		plan[key] = Libraries(refLibs, targetLibs)
	}

	return plan
}
