package conflict

import "sort"

func sortConflicts(conflicts []Conflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		ri, rj := severityRank(conflicts[i].Severity), severityRank(conflicts[j].Severity)
		if ri != rj {
			return ri > rj
		}
		if !conflicts[i].ScheduledTime.Equal(conflicts[j].ScheduledTime) {
			return conflicts[i].ScheduledTime.Before(conflicts[j].ScheduledTime)
		}
		return conflicts[i].inputOrder < conflicts[j].inputOrder
	})
}
