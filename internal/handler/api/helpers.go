package api

import "martcore/internal/infra"

func isNotFound(err error) bool {
	return infra.IsKind(err, infra.KindNotFound)
}
