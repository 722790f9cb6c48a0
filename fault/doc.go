// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Every runtime module registers its closed list of errors so that a
// dispatch result can be reported as a (module, index) discriminant
// together with a human readable tag.
package fault
