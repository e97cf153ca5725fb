// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import "fmt"

// A DataError reports values in a group that violate a property the
// aggregation expects. Data errors are warnings: the aggregation
// still produces a row for the group.
type DataError struct {
	Group  string // grouping key, as printed by table.GroupID
	Column string
	Msg    string
}

func (e *DataError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("column %q: %s", e.Column, e.Msg)
	}
	return fmt.Sprintf("group %s: column %q: %s", e.Group, e.Column, e.Msg)
}

// report calls warn with err if warn is non-nil.
func report(warn func(error), err error) {
	if warn != nil {
		warn(err)
	}
}
