// Package collect implements the collection planner (C7): for each uid, it
// decides which physical copies to transfer into the canonical store tree
// and what their relative store paths must be.
package collect

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"bozocatalog/internal/catalog"
)

// Task is one planned copy of Record.Src: to D/Record.Sto when TargetRel is
// empty (the record already has a store path whose file is missing), or to
// D/TargetRel otherwise.
type Task struct {
	Record    *catalog.PhotoRecord
	TargetRel string // empty means "already has a store path, just copy there"
}

// Counters summarizes a planning pass.
type Counters struct {
	CopiedFromElsewhere int
	AddedNew            int
	Missed              int
	AlreadyStored       int
}

// Plan computes the copy plan for every uid in c (or only those in
// filterUIDs, if non-nil), rooted at store directory root.
func Plan(c *catalog.Catalog, root string, filterUIDs map[string]struct{}) ([]Task, Counters) {
	var tasks []Task
	var counters Counters

	for uid, list := range c.PhotoDB {
		if filterUIDs != nil {
			if _, ok := filterUIDs[uid]; !ok {
				continue
			}
		}
		planUID(list, root, &tasks, &counters)
	}
	return tasks, counters
}

func planUID(list []*catalog.PhotoRecord, root string, tasks *[]Task, counters *Counters) {
	if len(list) == 0 {
		return
	}
	pStar := list[0].Prio
	for _, r := range list {
		if r.Prio < pStar {
			pStar = r.Prio
		}
	}

	var marked, candidates []*catalog.PhotoRecord
	for _, r := range list {
		if r.Stored() {
			marked = append(marked, r)
		} else if r.Prio == pStar {
			candidates = append(candidates, r)
		}
	}

	storedChkToMinPrio := make(map[string]int)

	for _, r := range marked {
		abs := filepath.Join(root, r.Sto)
		if _, err := os.Stat(abs); err == nil {
			counters.AlreadyStored++
			recordMinPrio(storedChkToMinPrio, r.Chk, r.Prio)
			continue
		}
		if _, err := os.Stat(r.Src); err == nil {
			*tasks = append(*tasks, Task{Record: r, TargetRel: ""})
			recordMinPrio(storedChkToMinPrio, r.Chk, r.Prio)
			continue
		}
		counters.Missed++
		log.Printf("collect: missed %q: neither stored path %q nor source exists", r.Chk, abs)
	}

	for _, r := range candidates {
		target := canonicalTargetPath(r)

		if minPrio, ok := storedChkToMinPrio[r.Chk]; ok && minPrio <= r.Prio {
			counters.AlreadyStored++
			continue
		}
		if _, err := os.Stat(filepath.Join(root, target)); err == nil {
			r.Sto = target
			recordMinPrio(storedChkToMinPrio, r.Chk, r.Prio)
			counters.AlreadyStored++
			continue
		}
		if _, err := os.Stat(r.Src); err == nil {
			*tasks = append(*tasks, Task{Record: r, TargetRel: target})
			recordMinPrio(storedChkToMinPrio, r.Chk, r.Prio)
			counters.AddedNew++
			continue
		}
		counters.Missed++
		log.Printf("collect: missed %q: source %q does not exist", r.Chk, r.Src)
	}
}

func recordMinPrio(m map[string]int, chk string, prio int) {
	if cur, ok := m[chk]; !ok || prio < cur {
		m[chk] = prio
	}
}

// canonicalTargetPath derives <YYYY>/<MM>-<Mon>/<YYYY-MM-DD_HH-MM-SS>-<chk7>-<basename>
// using r's local datetime interpretation.
func canonicalTargetPath(r *catalog.PhotoRecord) string {
	t := catalog.LocalDatetime(r.Ts, r.Tzo)
	chk7 := r.Chk
	if len(chk7) > 7 {
		chk7 = chk7[:7]
	}
	yearDir := t.Format("2006")
	monthDir := t.Format("01-Jan")
	stamp := t.Format("2006-01-02_15-04-05")
	name := fmt.Sprintf("%s-%s-%s", stamp, chk7, filepath.Base(r.Src))
	return filepath.Join(yearDir, monthDir, name)
}

// ApplyCopyResult is called by the external copier on success for a task
// whose TargetRel was non-empty: it writes the chosen relative path back
// onto the record.
func ApplyCopyResult(t Task) {
	if t.TargetRel != "" {
		t.Record.Sto = t.TargetRel
	}
}
