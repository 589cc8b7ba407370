package plot

import "cmplot/domain/core"

// ErrNoGroups rejects a computation over an empty group set
var ErrNoGroups = core.NewInputError("no groups to plot")
