// Package checks pulls in every check package for its registration side
// effects. The CLI imports this package once; adding a new layer means
// adding one import line here.
package checks

import (
	_ "github.com/tidyplan/guardrails/src/guardrail/checks/server/domain"
	_ "github.com/tidyplan/guardrails/src/guardrail/checks/server/handler"
	_ "github.com/tidyplan/guardrails/src/guardrail/checks/server/usecase"
)
