// Package httpkit provides HTTP sugar for modules over the platform router seam
package httpkit

import (
	phttp "gamedex/internal/platform/net/http"
)

// Router aliases the platform router seam so modules import one package
type Router = phttp.Router
