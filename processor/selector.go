// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

// Candidates - configured processors in the order they should be tried
//
// an empty preference uses registry priority order, otherwise the
// preference order is kept with unknown and repeated identities dropped
func Candidates(registry *Registry, preference []ID) []*Processor {
	if nil == registry {
		return nil
	}

	if 0 == len(preference) {
		candidates := make([]*Processor, 0, len(registry.ordered))
		for _, p := range registry.ordered {
			if p.Configured() {
				candidates = append(candidates, p)
			}
		}
		return candidates
	}

	seen := make(map[ID]struct{}, len(preference))
	candidates := make([]*Processor, 0, len(preference))
	for _, id := range preference {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		p, ok := registry.byID[id]
		if !ok || !p.Configured() {
			continue
		}
		candidates = append(candidates, p)
	}
	return candidates
}
